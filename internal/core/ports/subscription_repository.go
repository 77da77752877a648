package ports

import (
	"context"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

// ListSubscriptionsFilter carries query parameters for admin subscription
// listings.
type ListSubscriptionsFilter struct {
	MentorID string
	Status   string
	Page     int
	Limit    int
}

// SubscriptionRepository defines persistence operations for mentor platform
// subscriptions. MarkPaid and MarkPaymentFailed carry the same conditional
// write semantics as their booking counterparts.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *domain.Subscription) error
	FindByID(ctx context.Context, id string) (*domain.Subscription, error)
	FindByPaymentID(ctx context.Context, orderID string) (*domain.Subscription, error)
	MarkPaid(ctx context.Context, id string) (bool, error)
	MarkPaymentFailed(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter ListSubscriptionsFilter) ([]*domain.Subscription, int64, error)
}
