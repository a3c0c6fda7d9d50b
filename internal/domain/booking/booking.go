// Package booking defines the Booking domain entity and the admission and
// transition rules of the booking lifecycle.
package booking

import (
	"time"

	"github.com/seatwise/seatwise/internal/domain/identity"
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusWaitlisted Status = "waitlisted"
	StatusCanceled   Status = "canceled"
)

// ValidStatuses is the set of all valid booking statuses.
var ValidStatuses = map[Status]bool{
	StatusConfirmed:  true,
	StatusWaitlisted: true,
	StatusCanceled:   true,
}

// Booking represents a seat request by a user against a tenant's event.
// Tenant, event, and user are immutable after creation; only status moves,
// and only along the transitions allowed by CanTransition. Bookings are
// never deleted: cancellation is a status, not a removal.
type Booking struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Decide is the admission rule: a new booking is confirmed while the event
// still has free capacity, otherwise waitlisted. With capacity 0 every
// booking waitlists. The confirmed count passed in must be read under the
// same serialization point that persists the result, or concurrent
// admissions can oversell the event.
func Decide(confirmedCount, capacity int) Status {
	if confirmedCount < capacity {
		return StatusConfirmed
	}
	return StatusWaitlisted
}

// CanTransition reports whether a booking may move from one status to
// another. Canceled is terminal. Waitlisted to confirmed is the promotion
// path and is valid only for the promotion engine, never for direct user
// updates; callers enforce that distinction.
func CanTransition(from, to Status) bool {
	if from == to {
		return false
	}
	switch from {
	case StatusConfirmed:
		return to == StatusCanceled
	case StatusWaitlisted:
		return to == StatusCanceled || to == StatusConfirmed
	default:
		return false
	}
}

// CreateRequest is the inbound payload for creating a booking. Tenant, event,
// and user may each arrive as a bare ID, an embedded record, or be omitted;
// the orchestrator resolves them against the principal.
type CreateRequest struct {
	Tenant identity.Ref `json:"tenant"`
	Event  identity.Ref `json:"event"`
	User   identity.Ref `json:"user"`
}
