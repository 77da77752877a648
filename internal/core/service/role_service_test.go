package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

type stubRoleRepo struct {
	assignments map[string][]string
	statuses    map[string]domain.MentorStatus
	lookupErr   error
	statusErr   error
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{
		assignments: make(map[string][]string),
		statuses:    make(map[string]domain.MentorStatus),
	}
}

func (r *stubRoleRepo) AssignmentsFor(_ context.Context, userID string) ([]string, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	return r.assignments[userID], nil
}

func (r *stubRoleRepo) MentorStatus(_ context.Context, userID string) (domain.MentorStatus, error) {
	if r.statusErr != nil {
		return "", r.statusErr
	}
	return r.statuses[userID], nil
}

func TestResolveRole_Precedence(t *testing.T) {
	repo := newStubRoleRepo()
	svc := NewRoleService(repo, zerolog.Nop())

	cases := []struct {
		name        string
		assignments []string
		status      domain.MentorStatus
		want        domain.EffectiveRole
	}{
		{"admin wins over everything", []string{domain.RoleNameAdmin, domain.RoleNameMentor, domain.RoleNameMentee}, domain.MentorApproved, domain.RoleAdmin},
		{"approved mentor", []string{domain.RoleNameMentor}, domain.MentorApproved, domain.RoleMentor},
		{"pending mentor", []string{domain.RoleNameMentor}, domain.MentorPending, domain.RolePendingMentor},
		{"rejected mentor falls back to mentee", []string{domain.RoleNameMentor, domain.RoleNameMentee}, domain.MentorRejected, domain.RoleMentee},
		{"rejected mentor with nothing else is guest", []string{domain.RoleNameMentor}, domain.MentorRejected, domain.RoleGuest},
		{"plain mentee", []string{domain.RoleNameMentee}, "", domain.RoleMentee},
		{"no assignments is guest", nil, "", domain.RoleGuest},
		{"unknown assignment is guest", []string{"moderator"}, "", domain.RoleGuest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo.assignments["u1"] = tc.assignments
			repo.statuses["u1"] = tc.status

			got, err := svc.ResolveRole(context.Background(), "u1")
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestResolveRole_LookupFailure(t *testing.T) {
	repo := newStubRoleRepo()
	repo.lookupErr = errors.New("mongo down")
	svc := NewRoleService(repo, zerolog.Nop())

	role, err := svc.ResolveRole(context.Background(), "u1")
	if !errors.Is(err, domain.ErrRoleUndetermined) {
		t.Fatalf("expected ErrRoleUndetermined, got %v", err)
	}
	if role != domain.RoleUndetermined {
		t.Fatalf("expected RoleUndetermined, got %s", role)
	}
}

func TestResolveRole_StatusLookupFailure(t *testing.T) {
	repo := newStubRoleRepo()
	repo.assignments["u1"] = []string{domain.RoleNameMentor}
	repo.statusErr = errors.New("mongo down")
	svc := NewRoleService(repo, zerolog.Nop())

	role, err := svc.ResolveRole(context.Background(), "u1")
	if !errors.Is(err, domain.ErrRoleUndetermined) {
		t.Fatalf("expected ErrRoleUndetermined, got %v", err)
	}
	if role != domain.RoleUndetermined {
		t.Fatalf("expected RoleUndetermined, got %s", role)
	}
}

func TestEffectiveRoleOrdering(t *testing.T) {
	if !(domain.RoleUndetermined < domain.RoleGuest &&
		domain.RoleGuest < domain.RoleMentee &&
		domain.RoleMentee < domain.RolePendingMentor &&
		domain.RolePendingMentor < domain.RoleMentor &&
		domain.RoleMentor < domain.RoleAdmin) {
		t.Fatalf("effective role ranking broken")
	}
}
