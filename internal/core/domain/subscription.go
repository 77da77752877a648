package domain

import (
	"errors"
	"time"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionStatus is the lifecycle state of a mentor's platform plan.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Subscription is a mentor's recurring platform plan. Its payments arrive on
// the same gateway webhook channel as booking payments, keyed by PaymentID.
type Subscription struct {
	ID               string             `json:"id" bson:"_id"`
	MentorID         string             `json:"mentor_id" bson:"mentor_id"`
	Plan             string             `json:"plan" bson:"plan"`
	Amount           float64            `json:"amount" bson:"amount"`
	Currency         string             `json:"currency" bson:"currency"`
	Status           SubscriptionStatus `json:"status" bson:"status"`
	PaymentStatus    PaymentStatus      `json:"payment_status" bson:"payment_status"`
	PaymentID        string             `json:"payment_id,omitempty" bson:"payment_id,omitempty"`
	CurrentPeriodEnd time.Time          `json:"current_period_end" bson:"current_period_end"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}
