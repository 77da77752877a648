package ports

import (
	"context"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

// NotificationRepository defines persistence operations for in-app
// notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	ListForUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}
