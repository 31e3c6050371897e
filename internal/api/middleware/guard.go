package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ifds/dashboard/internal/api/metrics"
	"github.com/ifds/dashboard/internal/core/policy"
	"github.com/ifds/dashboard/internal/core/ports"
)

// DeniedNotice is the one-shot message attached when an authenticated role
// is turned away from a restricted page.
const DeniedNotice = "You do not have permission to view that page."

// Guard is the route guard: it re-evaluates the access policy from the
// loaded session on every navigation, with no per-request state of its own.
// Unauthenticated navigations go to the login screen; authenticated but
// unauthorized ones go back to the dashboard with a single notice.
//
// requiredRoles comes from the policy table for the route subtree being
// wrapped; nil means any authenticated role.
func Guard(store ports.SessionStore, requiredRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch policy.Decide(CurrentSession(c), requiredRoles) {
			case policy.RedirectToLogin:
				metrics.GuardDenialsTotal.WithLabelValues("unauthenticated").Inc()
				return c.Redirect(http.StatusSeeOther, "/login")
			case policy.RedirectToDashboard:
				metrics.GuardDenialsTotal.WithLabelValues("forbidden").Inc()
				_ = store.AddFlash(c.Response(), c.Request(), "notice", DeniedNotice)
				return c.Redirect(http.StatusSeeOther, "/dashboard")
			}
			return next(c)
		}
	}
}

// GuardRoute wraps Guard with the role set the policy table declares for
// path, so route registration cannot drift from the table.
func GuardRoute(store ports.SessionStore, path string) echo.MiddlewareFunc {
	return Guard(store, policy.RouteRoles(path)...)
}
