// Package policy holds the static access policy for the dashboard surface:
// which path prefixes each effective role may reach, each role's home route,
// and the small set of paths open to any signed-in user. The table is built
// once at startup and injected into the authorization gate; it is never
// mutated afterwards.
package policy

import (
	"strings"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

// Table is the immutable policy lookup structure.
type Table struct {
	dashboardRoot string
	loginRoute    string
	landingRoute  string
	public        []string
	prefixes      map[domain.EffectiveRole][]string
	homes         map[domain.EffectiveRole]string
}

// Default returns the marketplace's access policy.
func Default() *Table {
	return &Table{
		dashboardRoot: "/dashboard",
		loginRoute:    "/login",
		landingRoute:  "/",
		public: []string{
			"/dashboard/profile",
			"/dashboard/settings",
			"/dashboard/blog",
		},
		prefixes: map[domain.EffectiveRole][]string{
			domain.RoleAdmin: {
				"/dashboard/admin",
				"/dashboard/mentor",
				"/dashboard/mentee",
			},
			domain.RoleMentor:        {"/dashboard/mentor"},
			domain.RolePendingMentor: {"/dashboard/mentor"},
			domain.RoleMentee:        {"/dashboard/mentee"},
		},
		homes: map[domain.EffectiveRole]string{
			domain.RoleAdmin:         "/dashboard/admin",
			domain.RoleMentor:        "/dashboard/mentor",
			domain.RolePendingMentor: "/dashboard/mentor",
			domain.RoleMentee:        "/dashboard/mentee",
		},
	}
}

// DashboardRoot is the exact path that redirects to the role's home route.
func (t *Table) DashboardRoot() string { return t.dashboardRoot }

// LoginRoute is where unauthenticated requests are sent.
func (t *Table) LoginRoute() string { return t.loginRoute }

// LandingRoute is the neutral route for guests that already sit on the
// dashboard root.
func (t *Table) LandingRoute() string { return t.landingRoute }

// HomeRoute returns the canonical home for a role. Roles without a home
// (guest, undetermined) get the landing route.
func (t *Table) HomeRoute(role domain.EffectiveRole) string {
	if home, ok := t.homes[role]; ok {
		return home
	}
	return t.landingRoute
}

// IsPublic reports whether the path is open to any signed-in user
// regardless of role.
func (t *Table) IsPublic(path string) bool {
	for _, p := range t.public {
		if prefixMatches(p, path) {
			return true
		}
	}
	return false
}

// IsPathAccessible decides by longest matching prefix across all known
// prefixes: the most specific prefix that covers the path must belong to
// the role's own allow list. This keeps /dashboard/mentor out of reach for
// a mentee even when a broader shared prefix would match.
func (t *Table) IsPathAccessible(role domain.EffectiveRole, path string) bool {
	best := ""
	for _, set := range t.prefixes {
		for _, p := range set {
			if prefixMatches(p, path) && len(p) > len(best) {
				best = p
			}
		}
	}
	if best == "" {
		return false
	}
	for _, p := range t.prefixes[role] {
		if p == best {
			return true
		}
	}
	return false
}

// prefixMatches reports whether path lives under prefix on a path-segment
// boundary: /dashboard/mentor covers /dashboard/mentor/slots but never
// /dashboard/mentorship.
func prefixMatches(prefix, path string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
