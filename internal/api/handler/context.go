package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

// ctxIdentity extracts the caller identity injected by the Auth middleware.
// An empty user id means the middleware did not run or the token carried no
// subject; either way the request is unusable and rejected with 401.
func ctxIdentity(c echo.Context) (userID string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// ctxRole returns the effective role resolved earlier in the middleware
// chain, or RoleUndetermined when none was resolved.
func ctxRole(c echo.Context) domain.EffectiveRole {
	role, ok := c.Get("effective_role").(domain.EffectiveRole)
	if !ok {
		return domain.RoleUndetermined
	}
	return role
}
