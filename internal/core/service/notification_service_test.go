package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
	"github.com/mentorhub/mentorship-api/internal/metrics"
)

type stubNotificationRepo struct {
	items     []*domain.Notification
	insertErr error
}

func (r *stubNotificationRepo) Insert(_ context.Context, n *domain.Notification) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.items = append(r.items, n)
	return nil
}

func (r *stubNotificationRepo) ListForUser(_ context.Context, userID string, limit int) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range r.items {
		if n.UserID == userID {
			out = append(out, n)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	for _, n := range r.items {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

func TestDeliver_PersistsAndCounts(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo, zerolog.Nop())

	counter := metrics.NotificationsDeliveredTotal.WithLabelValues(string(domain.NotifyBookingConfirmed))
	before := testutil.ToFloat64(counter)

	err := svc.Deliver(context.Background(), ports.NotificationEvent{
		UserID:  "u1",
		Kind:    domain.NotifyBookingConfirmed,
		Message: "your session is confirmed",
		RefID:   "b1",
	})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}

	if len(repo.items) != 1 {
		t.Fatalf("expected one persisted notification, got %d", len(repo.items))
	}
	n := repo.items[0]
	if n.ID == "" || n.UserID != "u1" || n.Kind != domain.NotifyBookingConfirmed || n.RefID != "b1" {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if n.Read {
		t.Fatalf("new notification must start unread")
	}

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Fatalf("delivered counter not incremented: before=%v after=%v", before, got)
	}
}

func TestDeliver_InsertFailureSkipsCounter(t *testing.T) {
	repo := &stubNotificationRepo{insertErr: errors.New("write failed")}
	svc := NewNotificationService(repo, zerolog.Nop())

	counter := metrics.NotificationsDeliveredTotal.WithLabelValues(string(domain.NotifyPaymentFailed))
	before := testutil.ToFloat64(counter)

	err := svc.Deliver(context.Background(), ports.NotificationEvent{
		UserID: "u1",
		Kind:   domain.NotifyPaymentFailed,
	})
	if err == nil {
		t.Fatalf("expected insert failure to surface")
	}
	if got := testutil.ToFloat64(counter); got != before {
		t.Fatalf("failed delivery must not count: before=%v after=%v", before, got)
	}
}

func TestListNotifications_DefaultsLimit(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if err := svc.Deliver(context.Background(), ports.NotificationEvent{
			UserID: "u1",
			Kind:   domain.NotifyBookingConfirmed,
		}); err != nil {
			t.Fatalf("deliver: %v", err)
		}
	}

	items, err := svc.ListForUser(context.Background(), "u1", -5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(items))
	}
}

func TestMarkRead_ScopedToOwner(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo, zerolog.Nop())

	if err := svc.Deliver(context.Background(), ports.NotificationEvent{
		UserID: "u1",
		Kind:   domain.NotifyBookingConfirmed,
	}); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	id := repo.items[0].ID

	if err := svc.MarkRead(context.Background(), id, "someone_else"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound for a stranger, got %v", err)
	}
	if err := svc.MarkRead(context.Background(), id, "u1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !repo.items[0].Read {
		t.Fatalf("notification not marked read")
	}
}
