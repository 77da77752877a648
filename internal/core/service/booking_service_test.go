package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubBookingRepo struct {
	byID      map[string]*domain.Booking
	createErr error
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{byID: make(map[string]*domain.Booking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *b
	r.byID[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) FindByPaymentID(_ context.Context, orderID string) (*domain.Booking, error) {
	for _, b := range r.byID {
		if b.PaymentID == orderID && orderID != "" {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *stubBookingRepo) AttachPaymentID(_ context.Context, id, orderID string) error {
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.PaymentID = orderID
	return nil
}

// MarkPaid mirrors the conditional Mongo write: the guard and the mutation
// happen against the stored document, not a caller-held copy.
func (r *stubBookingRepo) MarkPaid(_ context.Context, id string) (bool, error) {
	b, ok := r.byID[id]
	if !ok || b.PaymentStatus == domain.PaymentPaid {
		return false, nil
	}
	b.PaymentStatus = domain.PaymentPaid
	b.Status = domain.BookingConfirmed
	return true, nil
}

func (r *stubBookingRepo) MarkPaymentFailed(_ context.Context, id string) (bool, error) {
	b, ok := r.byID[id]
	if !ok || b.PaymentStatus == domain.PaymentPaid {
		return false, nil
	}
	b.PaymentStatus = domain.PaymentFailed
	return true, nil
}

func (r *stubBookingRepo) DeleteIfPaymentPending(_ context.Context, id string) (bool, error) {
	b, ok := r.byID[id]
	if !ok || b.PaymentStatus != domain.PaymentPending {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) error {
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *stubBookingRepo) CountActiveForSlot(_ context.Context, offeringID string, slotStart time.Time) (int64, error) {
	var n int64
	for _, b := range r.byID {
		if b.OfferingID != offeringID || !b.SlotStart.Equal(slotStart) {
			continue
		}
		if b.Status == domain.BookingPending || b.Status == domain.BookingConfirmed {
			n++
		}
	}
	return n, nil
}

func (r *stubBookingRepo) List(_ context.Context, f ports.ListBookingsFilter) ([]*domain.Booking, int64, error) {
	var matched []*domain.Booking
	for _, b := range r.byID {
		if f.MenteeID != "" && b.MenteeID != f.MenteeID {
			continue
		}
		if f.MentorID != "" && b.MentorID != f.MentorID {
			continue
		}
		if f.Status != "" && string(b.Status) != f.Status {
			continue
		}
		clone := *b
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

type stubOfferingRepo struct {
	byID map[string]*domain.Offering
}

func newStubOfferingRepo() *stubOfferingRepo {
	return &stubOfferingRepo{byID: make(map[string]*domain.Offering)}
}

func (r *stubOfferingRepo) Create(_ context.Context, o *domain.Offering) error {
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

func (r *stubOfferingRepo) Update(_ context.Context, o *domain.Offering) error {
	if _, ok := r.byID[o.ID]; !ok {
		return domain.ErrOfferingNotFound
	}
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

func (r *stubOfferingRepo) FindByID(_ context.Context, id string) (*domain.Offering, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOfferingNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOfferingRepo) List(_ context.Context, f ports.ListOfferingsFilter) ([]*domain.Offering, int64, error) {
	var matched []*domain.Offering
	for _, o := range r.byID {
		if f.MentorID != "" && o.MentorID != f.MentorID {
			continue
		}
		if f.ActiveOnly && !o.Active {
			continue
		}
		if f.Skill != "" && !containsSkill(o.Skills, f.Skill) {
			continue
		}
		clone := *o
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func containsSkill(skills []string, skill string) bool {
	for _, s := range skills {
		if s == skill {
			return true
		}
	}
	return false
}

type stubUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, domain.ErrUserExists
	}
	clone := *u
	r.byID[u.ID] = &clone
	r.byEmail[u.Email] = &clone
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) SetMentorStatus(_ context.Context, userID string, status domain.MentorStatus) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.MentorStatus = status
	return nil
}

func (r *stubUserRepo) ListMentors(_ context.Context, f ports.MentorFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.byID {
		if !u.HasRole(domain.RoleNameMentor) {
			continue
		}
		if f.Status != "" && u.MentorStatus != f.Status {
			continue
		}
		if f.Skill != "" && !containsSkill(u.Skills, f.Skill) {
			continue
		}
		clone := *u
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

type stubSubRepo struct {
	byID map[string]*domain.Subscription
}

func newStubSubRepo() *stubSubRepo {
	return &stubSubRepo{byID: make(map[string]*domain.Subscription)}
}

func (r *stubSubRepo) Create(_ context.Context, s *domain.Subscription) error {
	clone := *s
	r.byID[s.ID] = &clone
	return nil
}

func (r *stubSubRepo) FindByID(_ context.Context, id string) (*domain.Subscription, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSubRepo) FindByPaymentID(_ context.Context, orderID string) (*domain.Subscription, error) {
	for _, s := range r.byID {
		if s.PaymentID == orderID && orderID != "" {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrSubscriptionNotFound
}

func (r *stubSubRepo) MarkPaid(_ context.Context, id string) (bool, error) {
	s, ok := r.byID[id]
	if !ok || s.PaymentStatus == domain.PaymentPaid {
		return false, nil
	}
	s.PaymentStatus = domain.PaymentPaid
	s.Status = domain.SubscriptionActive
	return true, nil
}

func (r *stubSubRepo) MarkPaymentFailed(_ context.Context, id string) (bool, error) {
	s, ok := r.byID[id]
	if !ok || s.PaymentStatus == domain.PaymentPaid {
		return false, nil
	}
	s.PaymentStatus = domain.PaymentFailed
	s.Status = domain.SubscriptionPastDue
	return true, nil
}

func (r *stubSubRepo) List(_ context.Context, f ports.ListSubscriptionsFilter) ([]*domain.Subscription, int64, error) {
	var matched []*domain.Subscription
	for _, s := range r.byID {
		if f.MentorID != "" && s.MentorID != f.MentorID {
			continue
		}
		if f.Status != "" && string(s.Status) != f.Status {
			continue
		}
		clone := *s
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

// ---------------------------------------------------------------------------
// Gateway, dedup, and notifier stubs
// ---------------------------------------------------------------------------

type stubGateway struct {
	createErr    error
	createCalls  int
	onCreate     func() // runs during CreateOrder, before the result is returned
	orderPaid    bool
	verifyErr    error
	lastOrderTag string
}

func (g *stubGateway) CreateOrder(_ context.Context, in ports.CreateOrderInput) (*ports.OrderSession, error) {
	g.createCalls++
	g.lastOrderTag = in.BookingID
	if g.onCreate != nil {
		g.onCreate()
	}
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &ports.OrderSession{
		OrderID:          "order_" + in.BookingID,
		PaymentSessionID: "session_" + in.BookingID,
		PaymentURL:       "https://pay.example/" + in.BookingID,
	}, nil
}

func (g *stubGateway) Verify(_ context.Context, orderID string) (*ports.OrderStatus, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	status := "ACTIVE"
	if g.orderPaid {
		status = "PAID"
	}
	return &ports.OrderStatus{Paid: g.orderPaid, RawStatus: status}, nil
}

// InterpretWebhook parses the lightweight payload shape the tests emit:
// {"order_id": ..., "booking_id": ..., "outcome": "paid"|"failed"|"pending"}.
func (g *stubGateway) InterpretWebhook(payload []byte) (*ports.WebhookEvent, error) {
	var p struct {
		OrderID   string `json:"order_id"`
		BookingID string `json:"booking_id"`
		Outcome   string `json:"outcome"`
	}
	if err := json.Unmarshal(payload, &p); err != nil || p.OrderID == "" {
		return nil, domain.ErrValidation
	}
	return &ports.WebhookEvent{
		OrderID:   p.OrderID,
		BookingID: p.BookingID,
		Success:   p.Outcome == "paid",
		Failed:    p.Outcome == "failed",
	}, nil
}

type stubDedup struct {
	seen     map[string]bool
	checkErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) IsDuplicate(_ context.Context, orderID, outcome string) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[orderID+":"+outcome], nil
}

func (d *stubDedup) Mark(_ context.Context, orderID, outcome string) error {
	d.seen[orderID+":"+outcome] = true
	return nil
}

type stubNotifier struct {
	events []ports.NotificationEvent
}

func (n *stubNotifier) Enqueue(ev ports.NotificationEvent) {
	n.events = append(n.events, ev)
}

func (n *stubNotifier) countKind(kind domain.NotificationKind) int {
	count := 0
	for _, ev := range n.events {
		if ev.Kind == kind {
			count++
		}
	}
	return count
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type bookingFixture struct {
	svc       *BookingService
	bookings  *stubBookingRepo
	offerings *stubOfferingRepo
	users     *stubUserRepo
	subs      *stubSubRepo
	gateway   *stubGateway
	dedup     *stubDedup
	notifier  *stubNotifier
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookings:  newStubBookingRepo(),
		offerings: newStubOfferingRepo(),
		users:     newStubUserRepo(),
		subs:      newStubSubRepo(),
		gateway:   &stubGateway{},
		dedup:     newStubDedup(),
		notifier:  &stubNotifier{},
	}
	f.svc = NewBookingService(
		f.bookings, f.offerings, f.users, f.subs,
		f.gateway, f.dedup, f.notifier, zerolog.Nop(),
	)
	return f
}

func (f *bookingFixture) seedOffering(id string, capacity int) *domain.Offering {
	o := &domain.Offering{
		ID:              id,
		MentorID:        "mentor_1",
		Title:           "Go mentoring",
		Price:           50,
		Currency:        "USD",
		DurationMinutes: 60,
		Capacity:        capacity,
		Active:          true,
	}
	_ = f.offerings.Create(context.Background(), o)
	return o
}

func (f *bookingFixture) seedBooking(id, menteeID string, payment domain.PaymentStatus) *domain.Booking {
	b := &domain.Booking{
		ID:            id,
		OfferingID:    "off_1",
		MentorID:      "mentor_1",
		MenteeID:      menteeID,
		SlotStart:     time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC),
		Amount:        50,
		Currency:      "USD",
		Status:        domain.BookingPending,
		PaymentStatus: payment,
	}
	if payment == domain.PaymentPaid {
		b.Status = domain.BookingConfirmed
	}
	_ = f.bookings.Create(context.Background(), b)
	return b
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreateBooking_Success(t *testing.T) {
	f := newBookingFixture()
	f.seedOffering("off_1", 2)

	booking, err := f.svc.Create(context.Background(), ports.CreateBookingInput{
		OfferingID: "off_1",
		MenteeID:   "mentee_1",
		SlotStart:  time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if booking.Status != domain.BookingPending {
		t.Fatalf("expected pending status, got %s", booking.Status)
	}
	if booking.PaymentStatus != domain.PaymentPending {
		t.Fatalf("expected pending payment, got %s", booking.PaymentStatus)
	}
	if booking.MentorID != "mentor_1" {
		t.Fatalf("mentor not copied from offering")
	}
	if !booking.SlotEnd.Equal(booking.SlotStart.Add(60 * time.Minute)) {
		t.Fatalf("slot end not derived from duration")
	}
}

func TestCreateBooking_SlotFull(t *testing.T) {
	f := newBookingFixture()
	f.seedOffering("off_1", 1)
	slot := time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)

	if _, err := f.svc.Create(context.Background(), ports.CreateBookingInput{
		OfferingID: "off_1", MenteeID: "mentee_1", SlotStart: slot,
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := f.svc.Create(context.Background(), ports.CreateBookingInput{
		OfferingID: "off_1", MenteeID: "mentee_2", SlotStart: slot,
	})
	if !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
}

func TestCreateBooking_InactiveOffering(t *testing.T) {
	f := newBookingFixture()
	o := f.seedOffering("off_1", 2)
	o.Active = false
	_ = f.offerings.Update(context.Background(), o)

	_, err := f.svc.Create(context.Background(), ports.CreateBookingInput{
		OfferingID: "off_1", MenteeID: "mentee_1",
		SlotStart: time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, domain.ErrOfferingNotFound) {
		t.Fatalf("expected ErrOfferingNotFound, got %v", err)
	}
}

func TestCreateBooking_MissingFields(t *testing.T) {
	f := newBookingFixture()
	_, err := f.svc.Create(context.Background(), ports.CreateBookingInput{OfferingID: "off_1"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Get / Cancel
// ---------------------------------------------------------------------------

func TestGetBooking_Visibility(t *testing.T) {
	f := newBookingFixture()
	f.seedBooking("b1", "mentee_1", domain.PaymentPending)

	if _, err := f.svc.Get(context.Background(), "b1", "mentee_1", false); err != nil {
		t.Fatalf("mentee should see own booking: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), "b1", "mentor_1", false); err != nil {
		t.Fatalf("mentor should see booked session: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), "b1", "someone_else", true); err != nil {
		t.Fatalf("admin should see any booking: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), "b1", "someone_else", false); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("stranger should get not-found, got %v", err)
	}
}

func TestCancelBooking(t *testing.T) {
	f := newBookingFixture()
	f.seedBooking("b1", "mentee_1", domain.PaymentPending)

	if err := f.svc.Cancel(context.Background(), "b1", "mentee_1", false); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	b, _ := f.bookings.FindByID(context.Background(), "b1")
	if b.Status != domain.BookingCanceled {
		t.Fatalf("expected canceled, got %s", b.Status)
	}
	if f.notifier.countKind(domain.NotifyBookingCanceled) != 1 {
		t.Fatalf("mentor not notified of cancellation")
	}

	// Canceled is terminal.
	if err := f.svc.Cancel(context.Background(), "b1", "mentee_1", false); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// CreateOrder
// ---------------------------------------------------------------------------

func TestCreateOrder_Success(t *testing.T) {
	f := newBookingFixture()
	f.seedBooking("b1", "mentee_1", domain.PaymentPending)

	result, err := f.svc.CreateOrder(context.Background(), "b1", "mentee_1")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if result.OrderID != "order_b1" {
		t.Fatalf("unexpected order id %q", result.OrderID)
	}
	if result.OrderAmount != 50 || result.OrderCurrency != "USD" {
		t.Fatalf("amount/currency not echoed from booking")
	}

	b, _ := f.bookings.FindByID(context.Background(), "b1")
	if b.PaymentID != "order_b1" {
		t.Fatalf("payment id not attached, got %q", b.PaymentID)
	}
	if b.PaymentStatus != domain.PaymentPending {
		t.Fatalf("order creation must not change payment status")
	}
}

func TestCreateOrder_NotOwner(t *testing.T) {
	f := newBookingFixture()
	f.seedBooking("b1", "mentee_1", domain.PaymentPending)

	_, err := f.svc.CreateOrder(context.Background(), "b1", "mentee_2")
	if !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("expected not-found for non-owner, got %v", err)
	}
	if f.gateway.createCalls != 0 {
		t.Fatalf("gateway must not be called for non-owner")
	}
}

func TestCreateOrder_AlreadyPaid(t *testing.T) {
	f := newBookingFixture()
	f.seedBooking("b1", "mentee_1", domain.PaymentPaid)

	_, err := f.svc.CreateOrder(context.Background(), "b1", "mentee_1")
	if !errors.Is(err, domain.ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestCreateOrder_GatewayFailureRollsBack(t *testing.T) {
	f := newBookingFixture()
	f.seedBooking("b1", "mentee_1", domain.PaymentPending)
	f.gateway.createErr = errors.New("connection refused")

	_, err := f.svc.CreateOrder(context.Background(), "b1", "mentee_1")
	if !errors.Is(err, domain.ErrGateway) {
		t.Fatalf("expected ErrGateway, got %v", err)
	}
	if _, err := f.bookings.FindByID(context.Background(), "b1"); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("pending booking should have been rolled back")
	}
}

func TestCreateOrder_RollbackSparesPaidBooking(t *testing.T) {
	f := newBookingFixture()
	f.seedBooking("b1", "mentee_1", domain.PaymentPending)
	f.gateway.createErr = errors.New("timeout")

	// A webhook lands while the gateway call is in flight: the service read
	// pending earlier, but by delete time the stored record is paid. The
	// guard re-checked at delete time must spare it.
	f.gateway.onCreate = func() {
		stored := f.bookings.byID["b1"]
		stored.PaymentStatus = domain.PaymentPaid
		stored.Status = domain.BookingConfirmed
	}

	_, err := f.svc.CreateOrder(context.Background(), "b1", "mentee_1")
	if !errors.Is(err, domain.ErrGateway) {
		t.Fatalf("expected ErrGateway, got %v", err)
	}

	stored, err := f.bookings.FindByID(context.Background(), "b1")
	if err != nil {
		t.Fatalf("paid booking should survive rollback: %v", err)
	}
	if stored.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("paid state lost: %+v", stored)
	}
}

// ---------------------------------------------------------------------------
// Verify
// ---------------------------------------------------------------------------

func TestVerify_AppliesPaidTransition(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking("b1", "mentee_1", domain.PaymentPending)
	_ = f.bookings.AttachPaymentID(context.Background(), b.ID, "order_b1")
	f.gateway.orderPaid = true

	result, err := f.svc.Verify(context.Background(), ports.VerifyInput{
		BookingID: "b1", CallerID: "mentee_1",
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !result.Verified || result.PaymentStatus != domain.PaymentPaid || result.BookingStatus != domain.BookingConfirmed {
		t.Fatalf("unexpected result %+v", result)
	}

	stored, _ := f.bookings.FindByID(context.Background(), "b1")
	if stored.PaymentStatus != domain.PaymentPaid || stored.Status != domain.BookingConfirmed {
		t.Fatalf("paid transition not persisted")
	}
	if f.notifier.countKind(domain.NotifyBookingConfirmed) != 2 {
		t.Fatalf("expected mentor and mentee confirmation notifications, got %d", f.notifier.countKind(domain.NotifyBookingConfirmed))
	}
}

func TestVerify_ReplayIsIdempotent(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking("b1", "mentee_1", domain.PaymentPending)
	_ = f.bookings.AttachPaymentID(context.Background(), b.ID, "order_b1")
	f.gateway.orderPaid = true

	in := ports.VerifyInput{BookingID: "b1", CallerID: "mentee_1"}
	if _, err := f.svc.Verify(context.Background(), in); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	result, err := f.svc.Verify(context.Background(), in)
	if err != nil {
		t.Fatalf("second verify: %v", err)
	}
	if !result.Verified || result.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("replay should still report paid, got %+v", result)
	}
	// Replay must not emit a second round of notifications.
	if f.notifier.countKind(domain.NotifyBookingConfirmed) != 2 {
		t.Fatalf("replay re-notified, got %d events", f.notifier.countKind(domain.NotifyBookingConfirmed))
	}
}

func TestVerify_MentorMayNotVerify(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking("b1", "mentee_1", domain.PaymentPending)
	_ = f.bookings.AttachPaymentID(context.Background(), b.ID, "order_b1")
	f.gateway.orderPaid = true

	_, err := f.svc.Verify(context.Background(), ports.VerifyInput{
		BookingID: "b1", CallerID: "mentor_1",
	})
	if !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound for the mentor, got %v", err)
	}

	stored, _ := f.bookings.FindByID(context.Background(), "b1")
	if stored.PaymentStatus != domain.PaymentPending {
		t.Fatalf("denied verify must not touch payment state")
	}
}

func TestVerify_AdminMayVerify(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking("b1", "mentee_1", domain.PaymentPending)
	_ = f.bookings.AttachPaymentID(context.Background(), b.ID, "order_b1")
	f.gateway.orderPaid = true

	result, err := f.svc.Verify(context.Background(), ports.VerifyInput{
		BookingID: "b1", CallerID: "admin_1", IsAdmin: true,
	})
	if err != nil {
		t.Fatalf("admin verify: %v", err)
	}
	if !result.Verified || result.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestVerify_GatewayErrorFallsBackToPersistedState(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking("b1", "mentee_1", domain.PaymentPending)
	_ = f.bookings.AttachPaymentID(context.Background(), b.ID, "order_b1")
	f.gateway.verifyErr = errors.New("gateway down")

	result, err := f.svc.Verify(context.Background(), ports.VerifyInput{
		BookingID: "b1", CallerID: "mentee_1",
	})
	if err != nil {
		t.Fatalf("verify must degrade, not fail: %v", err)
	}
	if result.Verified || result.PaymentStatus != domain.PaymentPending {
		t.Fatalf("expected persisted pending state, got %+v", result)
	}
}

func TestVerify_NoOrderAttached(t *testing.T) {
	f := newBookingFixture()
	f.seedBooking("b1", "mentee_1", domain.PaymentPending)

	_, err := f.svc.Verify(context.Background(), ports.VerifyInput{
		BookingID: "b1", CallerID: "mentee_1",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation without an order id, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// HandleWebhook
// ---------------------------------------------------------------------------

func webhookPayload(orderID, bookingID, outcome string) []byte {
	p, _ := json.Marshal(map[string]string{
		"order_id":   orderID,
		"booking_id": bookingID,
		"outcome":    outcome,
	})
	return p
}

func TestWebhook_SuccessConfirmsBooking(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking("b1", "mentee_1", domain.PaymentPending)
	_ = f.bookings.AttachPaymentID(context.Background(), b.ID, "order_b1")

	result, err := f.svc.HandleWebhook(context.Background(), webhookPayload("order_b1", "", "paid"))
	if err != nil {
		t.Fatalf("webhook: %v", err)
	}
	if !result.Applied || result.BookingID != "b1" || result.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("unexpected result %+v", result)
	}

	stored, _ := f.bookings.FindByID(context.Background(), "b1")
	if stored.Status != domain.BookingConfirmed {
		t.Fatalf("booking not confirmed by webhook")
	}
}

func TestWebhook_ReplayIsSkipped(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking("b1", "mentee_1", domain.PaymentPending)
	_ = f.bookings.AttachPaymentID(context.Background(), b.ID, "order_b1")

	payload := webhookPayload("order_b1", "", "paid")
	if _, err := f.svc.HandleWebhook(context.Background(), payload); err != nil {
		t.Fatalf("first webhook: %v", err)
	}
	result, err := f.svc.HandleWebhook(context.Background(), payload)
	if err != nil {
		t.Fatalf("replayed webhook: %v", err)
	}
	if result.Applied {
		t.Fatalf("replay must be a no-op")
	}
}

func TestWebhook_DedupOutageStillIdempotent(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking("b1", "mentee_1", domain.PaymentPending)
	_ = f.bookings.AttachPaymentID(context.Background(), b.ID, "order_b1")
	f.dedup.checkErr = errors.New("redis down")

	payload := webhookPayload("order_b1", "", "paid")
	first, err := f.svc.HandleWebhook(context.Background(), payload)
	if err != nil {
		t.Fatalf("first webhook: %v", err)
	}
	if !first.Applied {
		t.Fatalf("first webhook should apply")
	}

	// With dedup unavailable the replay reaches the repository, where the
	// payment_status guard makes it a no-op.
	second, err := f.svc.HandleWebhook(context.Background(), payload)
	if err != nil {
		t.Fatalf("replayed webhook: %v", err)
	}
	if second.Applied {
		t.Fatalf("conditional write should absorb the replay")
	}
}

func TestWebhook_FailureMarksFailed(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking("b1", "mentee_1", domain.PaymentPending)
	_ = f.bookings.AttachPaymentID(context.Background(), b.ID, "order_b1")

	result, err := f.svc.HandleWebhook(context.Background(), webhookPayload("order_b1", "", "failed"))
	if err != nil {
		t.Fatalf("webhook: %v", err)
	}
	if !result.Applied || result.PaymentStatus != domain.PaymentFailed {
		t.Fatalf("unexpected result %+v", result)
	}
	stored, _ := f.bookings.FindByID(context.Background(), "b1")
	if stored.PaymentStatus != domain.PaymentFailed {
		t.Fatalf("failed status not persisted")
	}
	if f.notifier.countKind(domain.NotifyPaymentFailed) != 1 {
		t.Fatalf("mentee not notified of failure")
	}
}

func TestWebhook_LateFailureCannotRegressPaid(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking("b1", "mentee_1", domain.PaymentPending)
	_ = f.bookings.AttachPaymentID(context.Background(), b.ID, "order_b1")

	if _, err := f.svc.HandleWebhook(context.Background(), webhookPayload("order_b1", "", "paid")); err != nil {
		t.Fatalf("paid webhook: %v", err)
	}
	result, err := f.svc.HandleWebhook(context.Background(), webhookPayload("order_b1", "", "failed"))
	if err != nil {
		t.Fatalf("late failed webhook: %v", err)
	}
	if result.Applied {
		t.Fatalf("paid booking must not regress to failed")
	}
	stored, _ := f.bookings.FindByID(context.Background(), "b1")
	if stored.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("payment status regressed to %s", stored.PaymentStatus)
	}
}

func TestWebhook_BookingTagFallback(t *testing.T) {
	f := newBookingFixture()
	// No payment id attached yet; only the embedded booking tag can match.
	f.seedBooking("b1", "mentee_1", domain.PaymentPending)

	result, err := f.svc.HandleWebhook(context.Background(), webhookPayload("order_unseen", "b1", "paid"))
	if err != nil {
		t.Fatalf("webhook: %v", err)
	}
	if !result.Applied || result.BookingID != "b1" {
		t.Fatalf("booking tag fallback did not resolve, got %+v", result)
	}
}

func TestWebhook_SubscriptionMatch(t *testing.T) {
	f := newBookingFixture()
	_ = f.subs.Create(context.Background(), &domain.Subscription{
		ID:            "sub_1",
		MentorID:      "mentor_1",
		Plan:          "pro",
		Status:        domain.SubscriptionPastDue,
		PaymentStatus: domain.PaymentPending,
		PaymentID:     "order_sub",
	})

	result, err := f.svc.HandleWebhook(context.Background(), webhookPayload("order_sub", "", "paid"))
	if err != nil {
		t.Fatalf("webhook: %v", err)
	}
	if !result.Applied || result.SubscriptionID != "sub_1" {
		t.Fatalf("subscription not matched, got %+v", result)
	}
	sub, _ := f.subs.FindByID(context.Background(), "sub_1")
	if sub.Status != domain.SubscriptionActive || sub.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("subscription not reactivated: %+v", sub)
	}
}

func TestWebhook_UnknownOrderIsNoOp(t *testing.T) {
	f := newBookingFixture()

	result, err := f.svc.HandleWebhook(context.Background(), webhookPayload("order_nobody", "", "paid"))
	if err != nil {
		t.Fatalf("unknown order must be acknowledged, got %v", err)
	}
	if result.Applied || result.BookingID != "" || result.SubscriptionID != "" {
		t.Fatalf("unknown order must not touch state, got %+v", result)
	}
}

func TestWebhook_InvalidPayload(t *testing.T) {
	f := newBookingFixture()

	_, err := f.svc.HandleWebhook(context.Background(), []byte(`{"no_order":"here"}`))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestListBookings_RoleScoping(t *testing.T) {
	f := newBookingFixture()
	f.seedBooking("b1", "mentee_1", domain.PaymentPending)
	f.seedBooking("b2", "mentee_2", domain.PaymentPending)

	mentee, err := f.svc.List(context.Background(), ports.ListBookingsInput{
		CallerID: "mentee_1", Role: domain.RoleMentee,
	})
	if err != nil {
		t.Fatalf("mentee list: %v", err)
	}
	if mentee.Total != 1 {
		t.Fatalf("mentee should see 1 booking, got %d", mentee.Total)
	}

	mentor, err := f.svc.List(context.Background(), ports.ListBookingsInput{
		CallerID: "mentor_1", Role: domain.RoleMentor,
	})
	if err != nil {
		t.Fatalf("mentor list: %v", err)
	}
	if mentor.Total != 2 {
		t.Fatalf("mentor should see both sessions, got %d", mentor.Total)
	}

	admin, err := f.svc.List(context.Background(), ports.ListBookingsInput{
		CallerID: "admin_1", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if admin.Total != 2 {
		t.Fatalf("admin should see everything, got %d", admin.Total)
	}
}
