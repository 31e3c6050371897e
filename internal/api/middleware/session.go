package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/ifds/dashboard/internal/core/domain"
	"github.com/ifds/dashboard/internal/core/ports"
)

const sessionContextKey = "session"

// LoadSession reads the session store exactly once per request and stashes
// the result in the echo context. Every later role check and upstream call
// works from this copy, keeping the store the single read/write boundary.
func LoadSession(store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(sessionContextKey, store.Get(c.Request()))
			return next(c)
		}
	}
}

// CurrentSession returns the session loaded by LoadSession, or the zero
// session when the middleware did not run.
func CurrentSession(c echo.Context) domain.Session {
	sess, _ := c.Get(sessionContextKey).(domain.Session)
	return sess
}
