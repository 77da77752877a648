package ports

import (
	"context"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

// OfferingInput carries create/update data for an offering.
type OfferingInput struct {
	Title           string
	Description     string
	Skills          []string
	Price           float64
	Currency        string
	DurationMinutes int
	Capacity        int
	Active          bool
}

// ListOfferingsResult is a page of offerings.
type ListOfferingsResult struct {
	Items      []*domain.Offering
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OfferingService defines offering use cases. Mutations are restricted to
// the owning approved mentor.
type OfferingService interface {
	Create(ctx context.Context, mentorID string, in OfferingInput) (*domain.Offering, error)
	Update(ctx context.Context, offeringID, mentorID string, in OfferingInput) (*domain.Offering, error)
	Get(ctx context.Context, offeringID string) (*domain.Offering, error)
	List(ctx context.Context, filter ListOfferingsFilter) (*ListOfferingsResult, error)
}

// MentorDirectoryResult is a page of approved mentors.
type MentorDirectoryResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// MentorDirectory exposes the public mentor discovery surface.
type MentorDirectory interface {
	ListMentors(ctx context.Context, filter MentorFilter) (*MentorDirectoryResult, error)
	GetMentor(ctx context.Context, mentorID string) (*domain.User, error)
}
