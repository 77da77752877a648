package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

// RoleService computes the effective role for a user from their role
// assignments and mentor approval status. Read-only.
type RoleService struct {
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, logger zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, logger: logger}
}

// ResolveRole applies the fixed precedence admin > mentor (approved) >
// pending_mentor > mentee > guest. A backing-store failure yields
// RoleUndetermined plus the error; callers must deny exactly as for guest.
func (s *RoleService) ResolveRole(ctx context.Context, userID string) (domain.EffectiveRole, error) {
	names, err := s.roles.AssignmentsFor(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("role assignment lookup failed")
		return domain.RoleUndetermined, fmt.Errorf("resolve role: %w", domain.ErrRoleUndetermined)
	}

	assigned := make(map[string]struct{}, len(names))
	for _, n := range names {
		assigned[n] = struct{}{}
	}

	if _, ok := assigned[domain.RoleNameAdmin]; ok {
		return domain.RoleAdmin, nil
	}

	if _, ok := assigned[domain.RoleNameMentor]; ok {
		status, err := s.roles.MentorStatus(ctx, userID)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("mentor status lookup failed")
			return domain.RoleUndetermined, fmt.Errorf("resolve role: %w", domain.ErrRoleUndetermined)
		}
		switch status {
		case domain.MentorApproved:
			return domain.RoleMentor, nil
		case domain.MentorPending:
			return domain.RolePendingMentor, nil
		}
		// rejected or unknown: fall through to the remaining assignments
	}

	if _, ok := assigned[domain.RoleNameMentee]; ok {
		return domain.RoleMentee, nil
	}

	return domain.RoleGuest, nil
}
