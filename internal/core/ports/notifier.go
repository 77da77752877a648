package ports

import (
	"context"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

// NotificationEvent is the unit of work handed to the notification
// dispatcher. UserID doubles as the sharding key so one user's
// notifications are delivered in order.
type NotificationEvent struct {
	UserID  string
	Kind    domain.NotificationKind
	Message string
	RefID   string
}

// NotificationService persists a single notification event.
type NotificationService interface {
	Deliver(ctx context.Context, ev NotificationEvent) error
	ListForUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

// Notifier is the fire-and-forget side used by the booking and admin
// services; the queue dispatcher implements it.
type Notifier interface {
	Enqueue(ev NotificationEvent)
}
