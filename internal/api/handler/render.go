package handler

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ifds/dashboard/internal/api/middleware"
	"github.com/ifds/dashboard/internal/api/view"
	"github.com/ifds/dashboard/internal/core/policy"
	"github.com/ifds/dashboard/internal/core/ports"
	"github.com/ifds/dashboard/internal/infrastructure/upstream"
)

// upstreamMessage picks the user-facing message for a failed upstream call:
// the server's error payload when present, the generic fallback otherwise.
func upstreamMessage(err error, fallback string) string {
	return upstream.Message(err, fallback)
}

// reqCtx derives the upstream request context for the current navigation,
// carrying the session's bearer token when one exists.
func reqCtx(c echo.Context) context.Context {
	return ports.WithToken(c.Request().Context(), middleware.CurrentSession(c).Token)
}

// renderPage builds the common view envelope: session, role-filtered menu,
// and consumed flashes. inlineErr fills the page's error banner.
func renderPage(c echo.Context, sessions ports.SessionStore, code int, page, title string, content any, inlineErr string) error {
	sess := middleware.CurrentSession(c)
	return c.Render(code, page, view.Data{
		Title:   title,
		Active:  activePath(c.Request().URL.Path),
		Session: sess,
		Menu:    policy.Menu(sess),
		Flashes: sessions.Flashes(c.Response(), c.Request()),
		Error:   inlineErr,
		Content: content,
	})
}

// activePath reduces a request path to its first segment for sidebar
// highlighting: /fraud-alerts/7/review → /fraud-alerts.
func activePath(p string) string {
	if len(p) < 2 {
		return p
	}
	if i := strings.IndexByte(p[1:], '/'); i >= 0 {
		return p[:i+1]
	}
	return p
}
