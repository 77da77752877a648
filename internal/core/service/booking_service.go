package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorship-api/internal/metrics"
	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

// WebhookDedup abstracts the webhook replay store (Redis).
type WebhookDedup interface {
	IsDuplicate(ctx context.Context, orderID, outcome string) (bool, error)
	Mark(ctx context.Context, orderID, outcome string) error
}

// BookingService implements the booking lifecycle and its payment
// transitions.
type BookingService struct {
	bookings  ports.BookingRepository
	offerings ports.OfferingRepository
	users     ports.UserRepository
	subs      ports.SubscriptionRepository
	gateway   ports.PaymentGateway
	dedup     WebhookDedup
	notifier  ports.Notifier
	logger    zerolog.Logger
}

func NewBookingService(
	bookings ports.BookingRepository,
	offerings ports.OfferingRepository,
	users ports.UserRepository,
	subs ports.SubscriptionRepository,
	gateway ports.PaymentGateway,
	dedup WebhookDedup,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		offerings: offerings,
		users:     users,
		subs:      subs,
		gateway:   gateway,
		dedup:     dedup,
		notifier:  notifier,
		logger:    logger,
	}
}

// Create reserves a slot against an offering. The new booking starts in
// pending/pending and stays unbookable for others once the offering's
// capacity for that slot start is reached.
func (s *BookingService) Create(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
	if in.OfferingID == "" || in.MenteeID == "" || in.SlotStart.IsZero() {
		return nil, fmt.Errorf("create booking: %w", domain.ErrValidation)
	}

	offering, err := s.offerings.FindByID(ctx, in.OfferingID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if !offering.Active {
		return nil, fmt.Errorf("create booking: %w", domain.ErrOfferingNotFound)
	}

	active, err := s.bookings.CountActiveForSlot(ctx, offering.ID, in.SlotStart)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if active >= int64(offering.Capacity) {
		return nil, fmt.Errorf("create booking: %w", domain.ErrSlotUnavailable)
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:            uuid.NewString(),
		OfferingID:    offering.ID,
		MentorID:      offering.MentorID,
		MenteeID:      in.MenteeID,
		SlotStart:     in.SlotStart.UTC(),
		SlotEnd:       in.SlotStart.UTC().Add(time.Duration(offering.DurationMinutes) * time.Minute),
		Amount:        offering.Price,
		Currency:      offering.Currency,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		s.logger.Error().Err(err).Str("offering_id", offering.ID).Msg("failed to create booking")
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.BookingsCreatedTotal.WithLabelValues(offering.ID).Inc()
	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("offering_id", offering.ID).
		Str("mentee_id", in.MenteeID).
		Msg("booking created")

	return booking, nil
}

// Get returns a booking visible to the caller: its mentee, its mentor, or
// an admin. Anyone else sees not-found, never forbidden, so booking ids
// cannot be probed.
func (s *BookingService) Get(ctx context.Context, bookingID, callerID string, isAdmin bool) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if !isAdmin && booking.MenteeID != callerID && booking.MentorID != callerID {
		return nil, fmt.Errorf("get booking: %w", domain.ErrBookingNotFound)
	}
	return booking, nil
}

// Cancel moves a booking to canceled by explicit user or admin action.
func (s *BookingService) Cancel(ctx context.Context, bookingID, callerID string, isAdmin bool) error {
	booking, err := s.Get(ctx, bookingID, callerID, isAdmin)
	if err != nil {
		return err
	}
	if !booking.Status.CanTransitionTo(domain.BookingCanceled) {
		return fmt.Errorf("cancel booking: %w (from %s)", domain.ErrInvalidTransition, booking.Status)
	}
	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingCanceled); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}

	s.notifier.Enqueue(ports.NotificationEvent{
		UserID:  booking.MentorID,
		Kind:    domain.NotifyBookingCanceled,
		Message: "a booked session was canceled",
		RefID:   booking.ID,
	})
	s.logger.Info().Str("booking_id", bookingID).Msg("booking canceled")
	return nil
}

// List returns the caller's bookings: mentees see their reservations,
// mentors the sessions booked with them, admins everything.
func (s *BookingService) List(ctx context.Context, in ports.ListBookingsInput) (*ports.ListBookingsResult, error) {
	filter := ports.ListBookingsFilter{
		Status: in.Status,
		Page:   normalizePage(in.Page),
		Limit:  normalizeLimit(in.Limit),
	}
	switch in.Role {
	case domain.RoleAdmin:
		// unscoped
	case domain.RoleMentor:
		filter.MentorID = in.CallerID
	default:
		filter.MenteeID = in.CallerID
	}

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

// CreateOrder opens a gateway order for the caller's pending booking.
//
// When the gateway call fails, the booking is rolled back with a delete
// that re-checks payment_status at delete time: a webhook may have marked
// the booking paid between the failed call and the rollback, in which case
// the record is left intact.
func (s *BookingService) CreateOrder(ctx context.Context, bookingID, callerID string) (*ports.CreateOrderResult, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if booking.MenteeID != callerID {
		return nil, fmt.Errorf("create order: %w", domain.ErrBookingNotFound)
	}
	if booking.PaymentStatus == domain.PaymentPaid {
		return nil, fmt.Errorf("create order: %w", domain.ErrAlreadyPaid)
	}

	customer := ports.OrderCustomer{ID: callerID}
	if user, uerr := s.users.FindByID(ctx, callerID); uerr == nil {
		customer.Name = user.Name
		customer.Email = user.Email
		customer.Phone = user.Phone
	}

	session, err := s.gateway.CreateOrder(ctx, ports.CreateOrderInput{
		BookingID: booking.ID,
		Amount:    booking.Amount,
		Currency:  booking.Currency,
		Customer:  customer,
	})
	if err != nil {
		metrics.PaymentOrdersTotal.WithLabelValues("gateway_error").Inc()
		deleted, derr := s.bookings.DeleteIfPaymentPending(ctx, booking.ID)
		if derr != nil {
			s.logger.Error().Err(derr).Str("booking_id", booking.ID).Msg("rollback delete failed")
		} else if !deleted {
			s.logger.Warn().Str("booking_id", booking.ID).Msg("rollback skipped, booking no longer payment-pending")
		}
		return nil, fmt.Errorf("create order: %w: %v", domain.ErrGateway, err)
	}

	if err := s.bookings.AttachPaymentID(ctx, booking.ID, session.OrderID); err != nil {
		return nil, fmt.Errorf("create order: attach payment id: %w", err)
	}

	metrics.PaymentOrdersTotal.WithLabelValues("created").Inc()
	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("order_id", session.OrderID).
		Msg("payment order created")

	return &ports.CreateOrderResult{
		OrderID:          session.OrderID,
		PaymentSessionID: session.PaymentSessionID,
		PaymentURL:       session.PaymentURL,
		OrderAmount:      booking.Amount,
		OrderCurrency:    booking.Currency,
	}, nil
}

// Verify polls the gateway for the order's state. Observing paid applies
// the paid transition through the conditional write; replays are no-ops.
// A gateway error is non-destructive: the last persisted state is returned.
// Only the paying mentee or an admin may verify; mentors learn the outcome
// from their listings and notifications.
func (s *BookingService) Verify(ctx context.Context, in ports.VerifyInput) (*ports.VerifyResult, error) {
	booking, err := s.bookings.FindByID(ctx, in.BookingID)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	if !in.IsAdmin && booking.MenteeID != in.CallerID {
		return nil, fmt.Errorf("verify: %w", domain.ErrBookingNotFound)
	}

	orderID := in.OrderID
	if orderID == "" {
		orderID = booking.PaymentID
	}
	if orderID == "" {
		return nil, fmt.Errorf("verify: no payment order attached: %w", domain.ErrValidation)
	}

	status, err := s.gateway.Verify(ctx, orderID)
	if err != nil {
		s.logger.Warn().Err(err).Str("order_id", orderID).Msg("verify failed, returning persisted status")
		return &ports.VerifyResult{
			PaymentStatus: booking.PaymentStatus,
			BookingStatus: booking.Status,
			Verified:      booking.PaymentStatus == domain.PaymentPaid,
		}, nil
	}

	if status.Paid && booking.PaymentStatus != domain.PaymentPaid {
		applied, err := s.bookings.MarkPaid(ctx, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("verify: mark paid: %w", err)
		}
		if applied {
			s.logger.Info().Str("booking_id", booking.ID).Str("order_id", orderID).Msg("payment verified, booking confirmed")
			s.notifyConfirmed(booking)
		}
		booking.PaymentStatus = domain.PaymentPaid
		booking.Status = domain.BookingConfirmed
	}

	return &ports.VerifyResult{
		PaymentStatus: booking.PaymentStatus,
		BookingStatus: booking.Status,
		Verified:      status.Paid,
	}, nil
}

// HandleWebhook applies an asynchronous gateway notification. The order id
// is the authoritative join key; the embedded booking reference is only a
// fallback. Order ids matching a subscription update that subscription;
// order ids matching nothing are acknowledged as no-ops because the channel
// also carries unrelated events.
func (s *BookingService) HandleWebhook(ctx context.Context, payload []byte) (*ports.WebhookResult, error) {
	event, err := s.gateway.InterpretWebhook(payload)
	if err != nil {
		return nil, fmt.Errorf("webhook: %w", err)
	}

	outcome := webhookOutcome(event)
	metrics.WebhookEventsTotal.WithLabelValues(outcome).Inc()

	if dup, derr := s.dedup.IsDuplicate(ctx, event.OrderID, outcome); derr != nil {
		s.logger.Warn().Err(derr).Str("order_id", event.OrderID).Msg("webhook dedup check failed, processing anyway")
	} else if dup {
		metrics.WebhookDedupTotal.WithLabelValues("hit").Inc()
		s.logger.Debug().Str("order_id", event.OrderID).Msg("duplicate webhook skipped")
		return &ports.WebhookResult{Applied: false}, nil
	}
	metrics.WebhookDedupTotal.WithLabelValues("miss").Inc()

	result, err := s.applyWebhook(ctx, event)
	if err != nil {
		return nil, err
	}

	if merr := s.dedup.Mark(ctx, event.OrderID, outcome); merr != nil {
		s.logger.Warn().Err(merr).Str("order_id", event.OrderID).Msg("failed to set webhook dedup key")
	}
	return result, nil
}

func (s *BookingService) applyWebhook(ctx context.Context, event *ports.WebhookEvent) (*ports.WebhookResult, error) {
	booking := s.lookupBooking(ctx, event)
	if booking != nil {
		return s.applyBookingEvent(ctx, booking, event)
	}

	if sub, err := s.subs.FindByPaymentID(ctx, event.OrderID); err == nil {
		return s.applySubscriptionEvent(ctx, sub, event)
	}

	// Unmatched order id: acknowledge without touching state.
	s.logger.Info().Str("order_id", event.OrderID).Msg("webhook for unknown order ignored")
	return &ports.WebhookResult{Applied: false}, nil
}

func (s *BookingService) lookupBooking(ctx context.Context, event *ports.WebhookEvent) *domain.Booking {
	if booking, err := s.bookings.FindByPaymentID(ctx, event.OrderID); err == nil {
		return booking
	}
	if event.BookingID != "" {
		if booking, err := s.bookings.FindByID(ctx, event.BookingID); err == nil {
			return booking
		}
	}
	return nil
}

func (s *BookingService) applyBookingEvent(ctx context.Context, booking *domain.Booking, event *ports.WebhookEvent) (*ports.WebhookResult, error) {
	switch {
	case event.Success:
		applied, err := s.bookings.MarkPaid(ctx, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("webhook: mark paid: %w", err)
		}
		if applied {
			s.logger.Info().Str("booking_id", booking.ID).Str("order_id", event.OrderID).Msg("webhook confirmed booking")
			s.notifyConfirmed(booking)
		}
		return &ports.WebhookResult{BookingID: booking.ID, PaymentStatus: domain.PaymentPaid, Applied: applied}, nil

	case event.Failed:
		applied, err := s.bookings.MarkPaymentFailed(ctx, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("webhook: mark failed: %w", err)
		}
		if applied {
			s.notifier.Enqueue(ports.NotificationEvent{
				UserID:  booking.MenteeID,
				Kind:    domain.NotifyPaymentFailed,
				Message: "payment for your booking failed, you can retry",
				RefID:   booking.ID,
			})
		}
		return &ports.WebhookResult{BookingID: booking.ID, PaymentStatus: domain.PaymentFailed, Applied: applied}, nil

	default:
		// Still pending on the gateway side; nothing to change.
		return &ports.WebhookResult{BookingID: booking.ID, PaymentStatus: booking.PaymentStatus, Applied: false}, nil
	}
}

func (s *BookingService) applySubscriptionEvent(ctx context.Context, sub *domain.Subscription, event *ports.WebhookEvent) (*ports.WebhookResult, error) {
	switch {
	case event.Success:
		applied, err := s.subs.MarkPaid(ctx, sub.ID)
		if err != nil {
			return nil, fmt.Errorf("webhook: subscription mark paid: %w", err)
		}
		return &ports.WebhookResult{SubscriptionID: sub.ID, PaymentStatus: domain.PaymentPaid, Applied: applied}, nil
	case event.Failed:
		applied, err := s.subs.MarkPaymentFailed(ctx, sub.ID)
		if err != nil {
			return nil, fmt.Errorf("webhook: subscription mark failed: %w", err)
		}
		return &ports.WebhookResult{SubscriptionID: sub.ID, PaymentStatus: domain.PaymentFailed, Applied: applied}, nil
	default:
		return &ports.WebhookResult{SubscriptionID: sub.ID, PaymentStatus: sub.PaymentStatus, Applied: false}, nil
	}
}

func (s *BookingService) notifyConfirmed(booking *domain.Booking) {
	s.notifier.Enqueue(ports.NotificationEvent{
		UserID:  booking.MentorID,
		Kind:    domain.NotifyBookingConfirmed,
		Message: "a session was booked and paid",
		RefID:   booking.ID,
	})
	s.notifier.Enqueue(ports.NotificationEvent{
		UserID:  booking.MenteeID,
		Kind:    domain.NotifyBookingConfirmed,
		Message: "your booking is confirmed",
		RefID:   booking.ID,
	})
}

func webhookOutcome(event *ports.WebhookEvent) string {
	switch {
	case event.Success:
		return "paid"
	case event.Failed:
		return "failed"
	default:
		return "pending"
	}
}

const defaultPageLimit = 20
const maxPageLimit = 100

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
