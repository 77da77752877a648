package ports

import (
	"context"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

// RegisterInput carries signup data. Role is "mentee" or "mentor"; a mentor
// signup is an application and starts with mentor status pending.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Role     string
	Headline string
	Bio      string
	Skills   []string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// RoleService resolves a user's effective role for a request.
//
// On a backing-store failure the resolver returns RoleUndetermined together
// with the error; callers must treat that outcome exactly like guest.
type RoleService interface {
	ResolveRole(ctx context.Context, userID string) (domain.EffectiveRole, error)
}
