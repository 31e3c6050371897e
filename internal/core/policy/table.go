package policy

import "github.com/ifds/dashboard/internal/core/domain"

// reportsRoles is the one place the admin/manager restriction is written
// down; the /reports route guard, the sidebar filter, and the reports link
// all read it from here.
var reportsRoles = []string{domain.RoleAdmin, domain.RoleManager}

// reviewRoles gates the fraud-alert review actions (buttons and the submit
// path both check it).
var reviewRoles = []string{domain.RoleAdmin, domain.RoleManager}

// routeRoles maps protected paths to their required role sets. Paths absent
// from the table require authentication only.
var routeRoles = map[string][]string{
	"/reports": reportsRoles,
}

// RouteRoles returns the required roles for a protected path, or nil when
// any authenticated role may visit it.
func RouteRoles(path string) []string {
	return routeRoles[path]
}

// ReviewRoles returns the allowed-role set for fraud-alert review actions.
func ReviewRoles() []string {
	return reviewRoles
}

// CanReviewAlerts reports whether the session may review fraud alerts.
func CanReviewAlerts(s domain.Session) bool {
	return Visible(s, reviewRoles)
}

// MenuItem is a sidebar entry already filtered for the session's role.
type MenuItem struct {
	Path  string
	Label string
}

var menu = []MenuItem{
	{Path: "/dashboard", Label: "Dashboard"},
	{Path: "/inventory", Label: "Inventory"},
	{Path: "/transactions", Label: "Transactions"},
	{Path: "/fraud-alerts", Label: "Fraud Alerts"},
	{Path: "/reports", Label: "Reports"},
}

// Menu derives the visible sidebar entries for a session. Entries the role
// may not visit are filtered from the list entirely, not rendered-then-hidden.
func Menu(s domain.Session) []MenuItem {
	out := make([]MenuItem, 0, len(menu))
	for _, item := range menu {
		if Visible(s, routeRoles[item.Path]) {
			out = append(out, item)
		}
	}
	return out
}
