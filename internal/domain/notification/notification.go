// Package notification defines user-facing notifications for booking
// lifecycle transitions.
package notification

import (
	"time"

	"github.com/seatwise/seatwise/internal/domain/booking"
)

// Type identifies the kind of booking transition a notification describes.
type Type string

const (
	TypeBookingConfirmed Type = "booking_confirmed"
	TypeWaitlisted       Type = "waitlisted"
	TypeWaitlistPromoted Type = "waitlist_promoted"
	TypeBookingCanceled  Type = "booking_canceled"
)

// Notification is a per-user record of a booking state change. It is created
// only by the booking lifecycle; the only user-initiated mutation is marking
// it read.
type Notification struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	UserID    string    `json:"user_id"`
	BookingID string    `json:"booking_id"`
	EventID   string    `json:"event_id,omitempty"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// statusTypes maps a resulting booking status to its notification type.
var statusTypes = map[booking.Status]Type{
	booking.StatusConfirmed:  TypeBookingConfirmed,
	booking.StatusWaitlisted: TypeWaitlisted,
	booking.StatusCanceled:   TypeBookingCanceled,
}

// titles maps each notification type to its default title.
var titles = map[Type]string{
	TypeBookingConfirmed: "Booking confirmed",
	TypeWaitlisted:       "Added to waitlist",
	TypeWaitlistPromoted: "Promoted from waitlist",
	TypeBookingCanceled:  "Booking canceled",
}

// ForStatus returns the notification type and default title for a booking
// that just entered the given status. ok is false for statuses with no
// mapping; callers skip notification emission in that case rather than
// treating it as an error.
func ForStatus(s booking.Status) (typ Type, title string, ok bool) {
	typ, ok = statusTypes[s]
	if !ok {
		return "", "", false
	}
	return typ, titles[typ], true
}

// messages maps each notification type to its user-facing body copy.
var messages = map[Type]string{
	TypeBookingConfirmed: "Your seat is confirmed.",
	TypeWaitlisted:       "You have been added to the waitlist.",
	TypeWaitlistPromoted: "A seat opened up—your booking is now confirmed.",
	TypeBookingCanceled:  "Your booking has been canceled.",
}

// Title returns the default title for a notification type.
func Title(t Type) string {
	return titles[t]
}

// Message returns the user-facing body for a notification type.
func Message(t Type) string {
	return messages[t]
}
