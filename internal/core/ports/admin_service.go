package ports

import (
	"context"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

// ListSubscriptionsResult is a page of subscriptions.
type ListSubscriptionsResult struct {
	Items      []*domain.Subscription
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AdminService defines the administrator use cases: the mentor approval
// workflow and oversight of bookings and subscriptions.
type AdminService interface {
	ListMentorApplications(ctx context.Context, filter MentorFilter) (*MentorDirectoryResult, error)
	ApproveMentor(ctx context.Context, mentorID string) error
	RejectMentor(ctx context.Context, mentorID string) error
	ListBookings(ctx context.Context, filter ListBookingsFilter) (*ListBookingsResult, error)
	ListSubscriptions(ctx context.Context, filter ListSubscriptionsFilter) (*ListSubscriptionsResult, error)
}
