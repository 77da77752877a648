package ports

import (
	"context"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

// ListOfferingsFilter carries query parameters for offering listings.
type ListOfferingsFilter struct {
	MentorID   string // optional: scope to one mentor
	Skill      string // optional: exact skill match
	ActiveOnly bool
	Page       int
	Limit      int
}

// OfferingRepository defines persistence operations for offerings.
type OfferingRepository interface {
	Create(ctx context.Context, o *domain.Offering) error
	Update(ctx context.Context, o *domain.Offering) error
	FindByID(ctx context.Context, id string) (*domain.Offering, error)
	List(ctx context.Context, filter ListOfferingsFilter) ([]*domain.Offering, int64, error)
}
