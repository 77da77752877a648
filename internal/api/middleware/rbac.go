package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

// RequireRole enforces role-based access on API routes. It resolves the
// caller's effective role and rejects callers outside the allowed set.
// Must run after Auth so the caller identity is in context.
func RequireRole(roles ports.RoleService, allowed ...domain.EffectiveRole) echo.MiddlewareFunc {
	allowedSet := make(map[domain.EffectiveRole]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}

			role, ok := c.Get("effective_role").(domain.EffectiveRole)
			if !ok {
				resolved, err := roles.ResolveRole(c.Request().Context(), userID)
				if err != nil {
					return echo.NewHTTPError(http.StatusForbidden, "role could not be determined")
				}
				role = resolved
				c.Set("effective_role", role)
			}

			if _, ok := allowedSet[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
