package domain

import (
	"errors"
	"time"
)

// Stored role assignment names. A user may hold several at once.
const (
	RoleNameAdmin  = "admin"
	RoleNameMentor = "mentor"
	RoleNameMentee = "mentee"
)

// MentorStatus tracks the admin-approval workflow for mentor applications.
type MentorStatus string

const (
	MentorPending  MentorStatus = "pending"
	MentorApproved MentorStatus = "approved"
	MentorRejected MentorStatus = "rejected"
)

// EffectiveRole is the single role computed for a request after applying
// precedence across all of a user's role assignments. Precedence is the
// numeric order of the constants: higher wins. RoleUndetermined marks a
// failed lookup and must be treated as guest (deny) by every caller.
type EffectiveRole int

const (
	RoleUndetermined EffectiveRole = iota
	RoleGuest
	RoleMentee
	RolePendingMentor
	RoleMentor
	RoleAdmin
)

func (r EffectiveRole) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleMentor:
		return "mentor"
	case RolePendingMentor:
		return "pending_mentor"
	case RoleMentee:
		return "mentee"
	case RoleGuest:
		return "guest"
	default:
		return "undetermined"
	}
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrRoleUndetermined = errors.New("role lookup failed")
var ErrUnauthorized = errors.New("unauthorized")
var ErrForbidden = errors.New("access forbidden")

// User models an account in the marketplace. Mentor profile fields are only
// populated for users holding the mentor role assignment.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	Phone        string       `json:"phone,omitempty"`
	PasswordHash string       `json:"-"`
	Roles        []string     `json:"roles"`
	MentorStatus MentorStatus `json:"mentor_status,omitempty"`
	Headline     string       `json:"headline,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Skills       []string     `json:"skills,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// HasRole reports whether the user holds the named role assignment.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}
