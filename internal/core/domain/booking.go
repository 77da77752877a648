package domain

import (
	"errors"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
	BookingCompleted BookingStatus = "completed"
)

// PaymentStatus is the internal projection of the external payment order.
// No other values are valid inside the system.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// bookingTransitions defines the allowed state machine transitions.
// Confirmed is only ever reached as a side effect of observing a paid
// payment, which preserves the invariant confirmed => paid.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCanceled},
	BookingConfirmed: {BookingCanceled, BookingCompleted},
}

var ErrBookingNotFound = errors.New("booking not found")
var ErrAlreadyPaid = errors.New("booking already paid")
var ErrSlotUnavailable = errors.New("slot unavailable")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrValidation = errors.New("invalid input")
var ErrGateway = errors.New("payment gateway failure")

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is a mentee's reservation against a mentor's offering slot.
// PaymentID holds the external gateway order reference once an order exists.
type Booking struct {
	ID            string        `json:"id" bson:"_id"`
	OfferingID    string        `json:"offering_id" bson:"offering_id"`
	MentorID      string        `json:"mentor_id" bson:"mentor_id"`
	MenteeID      string        `json:"mentee_id" bson:"mentee_id"`
	SlotStart     time.Time     `json:"slot_start" bson:"slot_start"`
	SlotEnd       time.Time     `json:"slot_end" bson:"slot_end"`
	Amount        float64       `json:"amount" bson:"amount"`
	Currency      string        `json:"currency" bson:"currency"`
	Status        BookingStatus `json:"status" bson:"status"`
	PaymentStatus PaymentStatus `json:"payment_status" bson:"payment_status"`
	PaymentID     string        `json:"payment_id,omitempty" bson:"payment_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`
}
