package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

// AdminService implements the administrator workflows.
type AdminService struct {
	users    ports.UserRepository
	bookings ports.BookingRepository
	subs     ports.SubscriptionRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	bookings ports.BookingRepository,
	subs ports.SubscriptionRepository,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{users: users, bookings: bookings, subs: subs, notifier: notifier, logger: logger}
}

// ListMentorApplications returns mentors filtered by approval status,
// defaulting to pending applications.
func (s *AdminService) ListMentorApplications(ctx context.Context, filter ports.MentorFilter) (*ports.MentorDirectoryResult, error) {
	if filter.Status == "" {
		filter.Status = domain.MentorPending
	}
	filter.Page = normalizePage(filter.Page)
	filter.Limit = normalizeLimit(filter.Limit)

	items, total, err := s.users.ListMentors(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list mentor applications: %w", err)
	}
	return &ports.MentorDirectoryResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// ApproveMentor marks a mentor application approved.
func (s *AdminService) ApproveMentor(ctx context.Context, mentorID string) error {
	return s.decide(ctx, mentorID, domain.MentorApproved)
}

// RejectMentor marks a mentor application rejected.
func (s *AdminService) RejectMentor(ctx context.Context, mentorID string) error {
	return s.decide(ctx, mentorID, domain.MentorRejected)
}

func (s *AdminService) decide(ctx context.Context, mentorID string, status domain.MentorStatus) error {
	user, err := s.users.FindByID(ctx, mentorID)
	if err != nil {
		return fmt.Errorf("mentor decision: %w", err)
	}
	if !user.HasRole(domain.RoleNameMentor) {
		return fmt.Errorf("mentor decision: %w", domain.ErrUserNotFound)
	}

	if err := s.users.SetMentorStatus(ctx, mentorID, status); err != nil {
		return fmt.Errorf("mentor decision: %w", err)
	}

	kind := domain.NotifyMentorApproved
	message := "your mentor application was approved"
	if status == domain.MentorRejected {
		kind = domain.NotifyMentorRejected
		message = "your mentor application was rejected"
	}
	s.notifier.Enqueue(ports.NotificationEvent{UserID: mentorID, Kind: kind, Message: message})

	s.logger.Info().Str("mentor_id", mentorID).Str("status", string(status)).Msg("mentor application decided")
	return nil
}

// ListBookings returns bookings across the whole marketplace.
func (s *AdminService) ListBookings(ctx context.Context, filter ports.ListBookingsFilter) (*ports.ListBookingsResult, error) {
	filter.Page = normalizePage(filter.Page)
	filter.Limit = normalizeLimit(filter.Limit)

	items, total, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return &ports.ListBookingsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// ListSubscriptions returns mentor platform subscriptions.
func (s *AdminService) ListSubscriptions(ctx context.Context, filter ports.ListSubscriptionsFilter) (*ports.ListSubscriptionsResult, error) {
	filter.Page = normalizePage(filter.Page)
	filter.Limit = normalizeLimit(filter.Limit)

	items, total, err := s.subs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return &ports.ListSubscriptionsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}
