package ports

import (
	"context"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

// MentorFilter selects mentors for directory and admin listings.
type MentorFilter struct {
	Status domain.MentorStatus // empty = any status
	Skill  string              // optional: exact skill match
	Search string              // optional: partial match on name or headline
	Page   int                 // 1-based
	Limit  int                 // capped by the service
}

// UserRepository defines persistence operations for accounts and mentor
// profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// SetMentorStatus records the admin approval decision.
	SetMentorStatus(ctx context.Context, userID string, status domain.MentorStatus) error
	// ListMentors returns a page of users holding the mentor role and the
	// total count.
	ListMentors(ctx context.Context, filter MentorFilter) ([]*domain.User, int64, error)
}

// RoleRepository is the read side of the role directory. Both methods are
// pure lookups; assignments and mentor status are written elsewhere.
type RoleRepository interface {
	// AssignmentsFor returns every role name assigned to the user. A user
	// with no assignments yields an empty slice, not an error.
	AssignmentsFor(ctx context.Context, userID string) ([]string, error)
	// MentorStatus returns the approval state for a user holding the mentor
	// role.
	MentorStatus(ctx context.Context, userID string) (domain.MentorStatus, error)
}
