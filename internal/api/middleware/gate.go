package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorship-api/internal/metrics"
	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/policy"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

// Gate is the authorization gate for the dashboard surface. For every
// request under the dashboard prefix it requires a valid session, resolves
// the caller's effective role, and either passes the request through or
// redirects:
//
//   - no valid session: redirect to the login route
//   - guest or undetermined role: redirect to the neutral landing surface
//   - dashboard root: redirect to the role's home route
//   - public-authenticated path: pass through for any signed-in user
//   - otherwise isPathAccessible decides; denial redirects to the role's
//     home route with the denied path attached
//
// The gate has no side effect beyond the redirect decision.
func Gate(jwtSecret string, table *policy.Table, roles ports.RoleService, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return c.Redirect(http.StatusFound, table.LoginRoute())
			}
			claims, err := parseToken(raw, jwtSecret)
			if err != nil {
				return c.Redirect(http.StatusFound, table.LoginRoute())
			}
			userID, _ := claims["sub"].(string)
			if userID == "" {
				return c.Redirect(http.StatusFound, table.LoginRoute())
			}

			role, err := roles.ResolveRole(c.Request().Context(), userID)
			if err != nil {
				role = domain.RoleUndetermined
			}

			c.Set("user_id", userID)
			c.Set("email", claims["email"])
			c.Set("effective_role", role)

			path := c.Request().URL.Path

			if role == domain.RoleGuest || role == domain.RoleUndetermined {
				metrics.GateDenialsTotal.WithLabelValues(role.String()).Inc()
				target := table.DashboardRoot()
				if path == table.DashboardRoot() {
					target = table.LandingRoute()
				}
				return c.Redirect(http.StatusFound, target)
			}

			if path == table.DashboardRoot() {
				return c.Redirect(http.StatusFound, table.HomeRoute(role))
			}

			if table.IsPublic(path) {
				return next(c)
			}

			if table.IsPathAccessible(role, path) {
				return next(c)
			}

			metrics.GateDenialsTotal.WithLabelValues(role.String()).Inc()
			logger.Warn().
				Str("user_id", userID).
				Str("role", role.String()).
				Str("path", path).
				Msg("dashboard path denied")

			q := url.Values{}
			q.Set("error", "unauthorized")
			q.Set("requestedPath", path)
			return c.Redirect(http.StatusFound, table.HomeRoute(role)+"?"+q.Encode())
		}
	}
}
