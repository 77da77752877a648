package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

func seedMentor(t *testing.T, users *stubUserRepo, id string, status domain.MentorStatus) {
	t.Helper()
	if _, err := users.Create(context.Background(), &domain.User{
		ID:           id,
		Email:        id + "@example.com",
		Name:         "Mentor " + id,
		Roles:        []string{domain.RoleNameMentor},
		MentorStatus: status,
		Skills:       []string{"go"},
	}); err != nil {
		t.Fatalf("seed mentor: %v", err)
	}
}

func validOfferingInput() ports.OfferingInput {
	return ports.OfferingInput{
		Title:           "Go mentoring",
		Price:           50,
		Currency:        "USD",
		DurationMinutes: 60,
		Capacity:        2,
		Active:          true,
	}
}

func TestOfferingCreate_RequiresApprovedMentor(t *testing.T) {
	users := newStubUserRepo()
	svc := NewOfferingService(newStubOfferingRepo(), users, zerolog.Nop())

	seedMentor(t, users, "pending_mentor", domain.MentorPending)
	if _, err := svc.Create(context.Background(), "pending_mentor", validOfferingInput()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("pending mentor must not publish, got %v", err)
	}

	seedMentor(t, users, "approved_mentor", domain.MentorApproved)
	offering, err := svc.Create(context.Background(), "approved_mentor", validOfferingInput())
	if err != nil {
		t.Fatalf("approved mentor create: %v", err)
	}
	if offering.MentorID != "approved_mentor" || offering.Capacity != 2 {
		t.Fatalf("unexpected offering %+v", offering)
	}
}

func TestOfferingCreate_DefaultCapacity(t *testing.T) {
	users := newStubUserRepo()
	svc := NewOfferingService(newStubOfferingRepo(), users, zerolog.Nop())
	seedMentor(t, users, "m1", domain.MentorApproved)

	in := validOfferingInput()
	in.Capacity = 0
	offering, err := svc.Create(context.Background(), "m1", in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if offering.Capacity != 1 {
		t.Fatalf("capacity should default to 1, got %d", offering.Capacity)
	}
}

func TestOfferingUpdate_OwnerOnly(t *testing.T) {
	users := newStubUserRepo()
	offerings := newStubOfferingRepo()
	svc := NewOfferingService(offerings, users, zerolog.Nop())
	seedMentor(t, users, "m1", domain.MentorApproved)

	offering, err := svc.Create(context.Background(), "m1", validOfferingInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := validOfferingInput()
	in.Title = "Advanced Go mentoring"
	if _, err := svc.Update(context.Background(), offering.ID, "m2", in); !errors.Is(err, domain.ErrOfferingNotFound) {
		t.Fatalf("non-owner must get not-found, got %v", err)
	}

	updated, err := svc.Update(context.Background(), offering.ID, "m1", in)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Advanced Go mentoring" {
		t.Fatalf("update not applied")
	}
}

func TestMentorDirectory_ApprovedOnly(t *testing.T) {
	users := newStubUserRepo()
	svc := NewOfferingService(newStubOfferingRepo(), users, zerolog.Nop())
	seedMentor(t, users, "approved", domain.MentorApproved)
	seedMentor(t, users, "pending", domain.MentorPending)
	seedMentor(t, users, "rejected", domain.MentorRejected)

	// The directory forces approved status even when the filter asks wider.
	result, err := svc.ListMentors(context.Background(), ports.MentorFilter{Status: domain.MentorPending})
	if err != nil {
		t.Fatalf("list mentors: %v", err)
	}
	if result.Total != 1 || result.Items[0].ID != "approved" {
		t.Fatalf("directory leaked non-approved mentors: %+v", result)
	}

	if _, err := svc.GetMentor(context.Background(), "approved"); err != nil {
		t.Fatalf("approved mentor should resolve: %v", err)
	}
	if _, err := svc.GetMentor(context.Background(), "pending"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("pending mentor must be hidden, got %v", err)
	}
}
