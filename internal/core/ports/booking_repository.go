package ports

import (
	"context"
	"time"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

// ListBookingsFilter carries query parameters for booking listings.
type ListBookingsFilter struct {
	MenteeID string // non-empty = scoped to the mentee (RBAC)
	MentorID string // non-empty = scoped to the mentor
	Status   string // optional: filter by booking status
	Page     int    // 1-based
	Limit    int    // capped by the service
}

// BookingRepository defines persistence operations for bookings. The
// conditional mutations (MarkPaid, MarkPaymentFailed, DeleteIfPaymentPending)
// must evaluate their guard inside a single write so that a webhook racing a
// verify call or a rollback cannot produce a lost update.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	// FindByPaymentID resolves a booking by its gateway order reference.
	FindByPaymentID(ctx context.Context, orderID string) (*domain.Booking, error)
	// AttachPaymentID stores the gateway order reference without touching
	// status or payment_status.
	AttachPaymentID(ctx context.Context, id, orderID string) error
	// MarkPaid sets payment_status=paid and status=confirmed in one
	// conditional write guarded by payment_status != paid. Returns true when
	// this call performed the transition, false when it was already paid.
	MarkPaid(ctx context.Context, id string) (bool, error)
	// MarkPaymentFailed sets payment_status=failed, guarded by
	// payment_status != paid so a late failure can never regress a paid
	// booking.
	MarkPaymentFailed(ctx context.Context, id string) (bool, error)
	// DeleteIfPaymentPending removes the booking only when payment_status is
	// still pending at delete time. Returns true when a document was removed.
	DeleteIfPaymentPending(ctx context.Context, id string) (bool, error)
	// UpdateStatus applies a plain status change (cancel, complete).
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	// CountActiveForSlot counts pending and confirmed bookings for one
	// offering slot start, for the capacity check.
	CountActiveForSlot(ctx context.Context, offeringID string, slotStart time.Time) (int64, error)
	List(ctx context.Context, filter ListBookingsFilter) ([]*domain.Booking, int64, error)
}
