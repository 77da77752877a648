package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

// OfferingService implements offering CRUD and the public mentor directory.
type OfferingService struct {
	offerings ports.OfferingRepository
	users     ports.UserRepository
	logger    zerolog.Logger
}

func NewOfferingService(offerings ports.OfferingRepository, users ports.UserRepository, logger zerolog.Logger) *OfferingService {
	return &OfferingService{offerings: offerings, users: users, logger: logger}
}

// Create publishes an offering for an approved mentor.
func (s *OfferingService) Create(ctx context.Context, mentorID string, in ports.OfferingInput) (*domain.Offering, error) {
	if err := s.requireApprovedMentor(ctx, mentorID); err != nil {
		return nil, err
	}
	if in.Title == "" || in.Price <= 0 || in.Currency == "" || in.DurationMinutes <= 0 {
		return nil, fmt.Errorf("create offering: %w", domain.ErrValidation)
	}

	capacity := in.Capacity
	if capacity <= 0 {
		capacity = 1
	}

	now := time.Now().UTC()
	offering := &domain.Offering{
		ID:              uuid.NewString(),
		MentorID:        mentorID,
		Title:           in.Title,
		Description:     in.Description,
		Skills:          in.Skills,
		Price:           in.Price,
		Currency:        in.Currency,
		DurationMinutes: in.DurationMinutes,
		Capacity:        capacity,
		Active:          in.Active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.offerings.Create(ctx, offering); err != nil {
		return nil, fmt.Errorf("create offering: %w", err)
	}

	s.logger.Info().Str("offering_id", offering.ID).Str("mentor_id", mentorID).Msg("offering created")
	return offering, nil
}

// Update modifies an offering owned by the calling mentor.
func (s *OfferingService) Update(ctx context.Context, offeringID, mentorID string, in ports.OfferingInput) (*domain.Offering, error) {
	offering, err := s.offerings.FindByID(ctx, offeringID)
	if err != nil {
		return nil, fmt.Errorf("update offering: %w", err)
	}
	if offering.MentorID != mentorID {
		return nil, fmt.Errorf("update offering: %w", domain.ErrOfferingNotFound)
	}
	if in.Title == "" || in.Price <= 0 || in.Currency == "" || in.DurationMinutes <= 0 {
		return nil, fmt.Errorf("update offering: %w", domain.ErrValidation)
	}

	offering.Title = in.Title
	offering.Description = in.Description
	offering.Skills = in.Skills
	offering.Price = in.Price
	offering.Currency = in.Currency
	offering.DurationMinutes = in.DurationMinutes
	if in.Capacity > 0 {
		offering.Capacity = in.Capacity
	}
	offering.Active = in.Active
	offering.UpdatedAt = time.Now().UTC()

	if err := s.offerings.Update(ctx, offering); err != nil {
		return nil, fmt.Errorf("update offering: %w", err)
	}
	return offering, nil
}

func (s *OfferingService) Get(ctx context.Context, offeringID string) (*domain.Offering, error) {
	offering, err := s.offerings.FindByID(ctx, offeringID)
	if err != nil {
		return nil, fmt.Errorf("get offering: %w", err)
	}
	return offering, nil
}

func (s *OfferingService) List(ctx context.Context, filter ports.ListOfferingsFilter) (*ports.ListOfferingsResult, error) {
	filter.Page = normalizePage(filter.Page)
	filter.Limit = normalizeLimit(filter.Limit)

	items, total, err := s.offerings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list offerings: %w", err)
	}
	return &ports.ListOfferingsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// ListMentors returns the public directory: approved mentors only,
// whatever the caller asked for.
func (s *OfferingService) ListMentors(ctx context.Context, filter ports.MentorFilter) (*ports.MentorDirectoryResult, error) {
	filter.Status = domain.MentorApproved
	filter.Page = normalizePage(filter.Page)
	filter.Limit = normalizeLimit(filter.Limit)

	items, total, err := s.users.ListMentors(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list mentors: %w", err)
	}
	return &ports.MentorDirectoryResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// GetMentor returns one approved mentor's public profile.
func (s *OfferingService) GetMentor(ctx context.Context, mentorID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("get mentor: %w", err)
	}
	if !user.HasRole(domain.RoleNameMentor) || user.MentorStatus != domain.MentorApproved {
		return nil, fmt.Errorf("get mentor: %w", domain.ErrUserNotFound)
	}
	return user, nil
}

func (s *OfferingService) requireApprovedMentor(ctx context.Context, mentorID string) error {
	user, err := s.users.FindByID(ctx, mentorID)
	if err != nil {
		return fmt.Errorf("offering: %w", err)
	}
	if !user.HasRole(domain.RoleNameMentor) || user.MentorStatus != domain.MentorApproved {
		return fmt.Errorf("offering: %w", domain.ErrForbidden)
	}
	return nil
}
