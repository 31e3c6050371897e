// Package policy is the single source of truth for client-side access
// decisions. The route guard, the sidebar menu filter, and inline visibility
// checks all derive from the tables and functions here; role literals for a
// given surface exist exactly once.
//
// The policy is a UX affordance only — the upstream API remains the real
// authorization boundary, and every gated action must still fail safely on a
// server 403.
package policy

import "github.com/ifds/dashboard/internal/core/domain"

// Decision is the outcome of evaluating a navigation against the policy.
type Decision int

const (
	// Allow renders the requested page.
	Allow Decision = iota
	// RedirectToLogin is issued for navigations without a valid session.
	RedirectToLogin
	// RedirectToDashboard is issued for authenticated sessions whose role is
	// not in the route's required set; the guard attaches a one-shot notice.
	RedirectToDashboard
)

// Decide evaluates a whole-route navigation. Rules, in order:
//  1. absent token or user → RedirectToLogin
//  2. requiredRoles non-empty and session role not in it → RedirectToDashboard
//  3. otherwise → Allow
//
// Pure function of its inputs: unchanged session state yields the same
// decision on every evaluation.
func Decide(s domain.Session, requiredRoles []string) Decision {
	if !s.Valid() {
		return RedirectToLogin
	}
	if len(requiredRoles) > 0 && !contains(requiredRoles, s.Role()) {
		return RedirectToDashboard
	}
	return Allow
}

// Visible is the two-valued form used for inline regions (menu items, page
// sections, action buttons). It never redirects or alerts — it only reports
// whether the region should render. An empty allowed set means "any
// authenticated role".
func Visible(s domain.Session, allowedRoles []string) bool {
	if !s.Valid() {
		return false
	}
	return len(allowedRoles) == 0 || contains(allowedRoles, s.Role())
}

func contains(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
