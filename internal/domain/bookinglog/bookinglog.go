// Package bookinglog defines the append-only audit trail for booking
// lifecycle decisions. Entries are written once per transition and never
// updated or deleted; they are the durable record of why a status changed.
package bookinglog

import "time"

// Action identifies the lifecycle decision an entry records.
type Action string

const (
	ActionCreateRequest       Action = "create_request"
	ActionAutoWaitlist        Action = "auto_waitlist"
	ActionAutoConfirm         Action = "auto_confirm"
	ActionPromoteFromWaitlist Action = "promote_from_waitlist"
	ActionCancelConfirmed     Action = "cancel_confirmed"
)

// Entry is a single immutable audit record.
type Entry struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	BookingID string    `json:"booking_id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Action    Action    `json:"action"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
