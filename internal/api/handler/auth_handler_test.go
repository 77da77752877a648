package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentorship-api/internal/api/middleware"
	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

type stubAuthService struct {
	token string
	user  *domain.User
	err   error
}

func (s *stubAuthService) Register(context.Context, ports.RegisterInput) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	return s.token, s.user, s.err
}

func TestLogin_SessionCookieAcceptedByAuth(t *testing.T) {
	const secret = "secret"
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u1",
		"email": "u1@example.com",
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	svc := &stubAuthService{
		token: signed,
		user:  &domain.User{ID: "u1", Email: "u1@example.com", Name: "Uma", Roles: []string{"mentee"}},
	}
	h := NewAuthHandler(svc, nil, nil)

	c, rec := paymentContext(t, http.MethodPost, "/v1/auth/login",
		`{"email":"u1@example.com","password":"hunter2hunter2"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var session *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			session = ck
		}
	}
	if session == nil {
		t.Fatalf("login did not set the %s cookie", middleware.SessionCookieName)
	}
	if session.Value != signed || !session.HttpOnly {
		t.Fatalf("unexpected session cookie: %+v", session)
	}

	// The cookie alone must carry a browser navigation through Auth.
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.AddCookie(session)
	authRec := httptest.NewRecorder()
	authCtx := e.NewContext(req, authRec)

	called := false
	handler := middleware.Auth(secret)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(authCtx); err != nil {
		t.Fatalf("auth middleware rejected the session cookie: %v", err)
	}
	if !called || authCtx.Get("user_id") != "u1" {
		t.Fatalf("identity not derived from the session cookie")
	}
}
