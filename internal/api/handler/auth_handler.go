package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentorship-api/internal/api/middleware"
	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	roleService ports.RoleService
	userRepo    ports.UserRepository
}

func NewAuthHandler(authService ports.AuthService, roleService ports.RoleService, userRepo ports.UserRepository) *AuthHandler {
	return &AuthHandler{authService: authService, roleService: roleService, userRepo: userRepo}
}

type registerRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Name     string   `json:"name" validate:"required"`
	Phone    string   `json:"phone"`
	Role     string   `json:"role" validate:"required,oneof=mentee mentor"`
	Headline string   `json:"headline"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Roles        []string `json:"roles"`
	MentorStatus string   `json:"mentor_status,omitempty"`
	Headline     string   `json:"headline,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Skills       []string `json:"skills,omitempty"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

type meResponse struct {
	User          *userResponse `json:"user"`
	EffectiveRole string        `json:"effective_role"`
}

func toUserResponse(u *domain.User) *userResponse {
	return &userResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Roles:        u.Roles,
		MentorStatus: string(u.MentorStatus),
		Headline:     u.Headline,
		Bio:          u.Bio,
		Skills:       u.Skills,
	}
}

// Register creates a new account. A mentor signup is an application and
// starts with mentor status pending.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Signup details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
		Headline: req.Headline,
		Bio:      req.Bio,
		Skills:   req.Skills,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: toUserResponse(user)})
}

// Login authenticates a user and returns a JWT token. The same token is
// also set as the session cookie for browser navigations.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}

// Me returns the caller's account and effective role.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.userRepo.FindByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	role, err := h.roleService.ResolveRole(c.Request().Context(), userID)
	if err != nil {
		role = domain.RoleUndetermined
	}

	return c.JSON(http.StatusOK, meResponse{
		User:          toUserResponse(user),
		EffectiveRole: role.String(),
	})
}
