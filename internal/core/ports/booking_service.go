package ports

import (
	"context"
	"time"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

// CreateBookingInput carries the data needed to reserve a slot.
type CreateBookingInput struct {
	OfferingID string
	MenteeID   string
	SlotStart  time.Time
}

// CreateOrderResult is returned after opening a gateway order for a booking.
type CreateOrderResult struct {
	OrderID          string
	PaymentSessionID string
	PaymentURL       string
	OrderAmount      float64
	OrderCurrency    string
}

// VerifyInput identifies the order to verify. OrderID is optional; when
// empty the booking's stored payment reference is used.
type VerifyInput struct {
	BookingID string
	OrderID   string
	CallerID  string
	IsAdmin   bool
}

// VerifyResult reports the booking's payment state after a verify call.
// Verified is true only when the gateway confirmed the order as paid during
// this call or earlier.
type VerifyResult struct {
	PaymentStatus domain.PaymentStatus
	BookingStatus domain.BookingStatus
	Verified      bool
}

// WebhookResult reports what a webhook notification did. Applied is false
// for replays and for order ids matching no record (both are no-ops).
type WebhookResult struct {
	BookingID      string
	SubscriptionID string
	PaymentStatus  domain.PaymentStatus
	Applied        bool
}

// ListBookingsInput carries parameters for booking listings. Scoping is done
// by the service from the caller's effective role.
type ListBookingsInput struct {
	CallerID string
	Role     domain.EffectiveRole
	Status   string
	Page     int
	Limit    int
}

// ListBookingsResult is a page of bookings.
type ListBookingsResult struct {
	Items      []*domain.Booking
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BookingService defines the booking and payment use cases.
type BookingService interface {
	Create(ctx context.Context, in CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, bookingID, callerID string, isAdmin bool) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID, callerID string, isAdmin bool) error
	List(ctx context.Context, in ListBookingsInput) (*ListBookingsResult, error)
	// CreateOrder opens a gateway order for the caller's pending booking.
	// A gateway failure rolls the booking back (conditional delete) before
	// the error is surfaced.
	CreateOrder(ctx context.Context, bookingID, callerID string) (*CreateOrderResult, error)
	// Verify polls the gateway and applies the paid transition when observed.
	// Gateway errors leave the booking untouched and fall back to the last
	// persisted state.
	Verify(ctx context.Context, in VerifyInput) (*VerifyResult, error)
	// HandleWebhook applies an asynchronous gateway notification. Unknown
	// order ids are acknowledged as no-ops.
	HandleWebhook(ctx context.Context, payload []byte) (*WebhookResult, error)
}
