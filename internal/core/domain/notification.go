package domain

import (
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationKind names the event a notification describes.
type NotificationKind string

const (
	NotifyBookingConfirmed NotificationKind = "booking_confirmed"
	NotifyBookingCanceled  NotificationKind = "booking_canceled"
	NotifyPaymentFailed    NotificationKind = "payment_failed"
	NotifyMentorApproved   NotificationKind = "mentor_approved"
	NotifyMentorRejected   NotificationKind = "mentor_rejected"
)

// Notification is an in-app message delivered to a single user.
type Notification struct {
	ID        string           `json:"id" bson:"_id"`
	UserID    string           `json:"user_id" bson:"user_id"`
	Kind      NotificationKind `json:"kind" bson:"kind"`
	Message   string           `json:"message" bson:"message"`
	RefID     string           `json:"ref_id,omitempty" bson:"ref_id,omitempty"`
	Read      bool             `json:"read" bson:"read"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}
