package domain

import (
	"errors"
	"time"
)

var ErrOfferingNotFound = errors.New("offering not found")

// Offering is a bookable session type published by an approved mentor.
// Capacity is the number of concurrent bookings allowed for one slot start;
// availability is enforced by counting active bookings against it.
type Offering struct {
	ID              string    `json:"id" bson:"_id"`
	MentorID        string    `json:"mentor_id" bson:"mentor_id"`
	Title           string    `json:"title" bson:"title"`
	Description     string    `json:"description" bson:"description"`
	Skills          []string  `json:"skills,omitempty" bson:"skills,omitempty"`
	Price           float64   `json:"price" bson:"price"`
	Currency        string    `json:"currency" bson:"currency"`
	DurationMinutes int       `json:"duration_minutes" bson:"duration_minutes"`
	Capacity        int       `json:"capacity" bson:"capacity"`
	Active          bool      `json:"active" bson:"active"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}
