package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
	"github.com/mentorhub/mentorship-api/internal/metrics"
)

// NotificationService persists in-app notifications. Delivery happens off
// the request path through the queue dispatcher.
type NotificationService struct {
	repo   ports.NotificationRepository
	logger zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, logger zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// Deliver writes a single notification record.
func (s *NotificationService) Deliver(ctx context.Context, ev ports.NotificationEvent) error {
	n := &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    ev.UserID,
		Kind:      ev.Kind,
		Message:   ev.Message,
		RefID:     ev.RefID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}
	metrics.NotificationsDeliveredTotal.WithLabelValues(string(ev.Kind)).Inc()
	s.logger.Debug().Str("user_id", ev.UserID).Str("kind", string(ev.Kind)).Msg("notification delivered")
	return nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	if limit <= 0 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	items, err := s.repo.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
