// Package event defines the bookable Event domain entity.
package event

import (
	"errors"
	"time"
)

// Event represents a scheduled event with finite seating capacity, owned by
// a tenant. Capacity bounds the number of confirmed bookings; it is re-read
// at every admission decision rather than cached.
type Event struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Capacity    int       `json:"capacity"`
	OrganizerID string    `json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRequest holds the fields needed to create a new event.
type CreateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Capacity    int       `json:"capacity"`
	OrganizerID string    `json:"organizer_id"`
}

// Validate checks that the CreateRequest has all required fields.
// Capacity zero is valid: such an event waitlists every booking.
func (r *CreateRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	if r.Date.IsZero() {
		return errors.New("date is required")
	}
	if r.Capacity < 0 {
		return errors.New("capacity must be non-negative")
	}
	return nil
}

// UpdateRequest holds the fields that can be updated on an event.
type UpdateRequest struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
}

// Validate checks the updatable fields.
func (r *UpdateRequest) Validate() error {
	if r.Capacity != nil && *r.Capacity < 0 {
		return errors.New("capacity must be non-negative")
	}
	return nil
}
