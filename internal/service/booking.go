package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	swotel "github.com/seatwise/seatwise/internal/adapter/otel"
	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/domain/booking"
	"github.com/seatwise/seatwise/internal/domain/bookinglog"
	"github.com/seatwise/seatwise/internal/domain/identity"
	"github.com/seatwise/seatwise/internal/domain/notification"
	"github.com/seatwise/seatwise/internal/domain/user"
	"github.com/seatwise/seatwise/internal/logger"
	"github.com/seatwise/seatwise/internal/port/database"
	"github.com/seatwise/seatwise/internal/port/messagequeue"
)

// maxBookingsPage caps the page size of booking listings.
const maxBookingsPage = 100

// BookingService orchestrates the booking lifecycle: admission, cancellation,
// and waitlist promotion, plus the notification, audit, and event-stream side
// effects each transition emits. The store performs the transactional state
// changes; everything this service does after a commit is best effort and
// never rolls the transition back.
type BookingService struct {
	store   database.Store
	queue   messagequeue.Queue
	metrics *swotel.Metrics
}

// NewBookingService creates a booking service. queue and metrics may be nil;
// the corresponding side effects are then skipped.
func NewBookingService(store database.Store, queue messagequeue.Queue, metrics *swotel.Metrics) *BookingService {
	return &BookingService{store: store, queue: queue, metrics: metrics}
}

// Book admits a booking request for the acting principal. Tenant, event, and
// user references are normalized and resolved against the principal before
// the admission transaction runs. The returned booking is either confirmed
// or waitlisted depending on remaining event capacity at commit time.
func (s *BookingService) Book(ctx context.Context, principal *user.User, req booking.CreateRequest) (*booking.Booking, error) {
	tenantID, err := resolveTenant(principal, req.Tenant)
	if err != nil {
		return nil, err
	}

	userID, err := resolveBookingUser(principal, req.User)
	if err != nil {
		return nil, err
	}

	eventID := req.Event.Normalize()
	if eventID == "" {
		return nil, fmt.Errorf("event is required: %w", domain.ErrValidation)
	}

	if err := requireEnabledTenant(ctx, s.store, tenantID); err != nil {
		return nil, err
	}

	ev, err := s.store.GetEvent(ctx, eventID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("resolve event: %w", err)
	}

	live, err := s.store.CountLiveBookings(ctx, tenantID, ev.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if live > 0 {
		return nil, fmt.Errorf("user already has an active booking for this event: %w", domain.ErrConflict)
	}

	ctx, span := swotel.StartAdmissionSpan(ctx, tenantID, ev.ID, userID)
	defer span.End()

	start := time.Now()
	b, err := s.store.AdmitBooking(ctx, tenantID, ev.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("admit booking: %w", err)
	}
	if s.metrics != nil {
		s.metrics.AdmissionDuration.Record(ctx, time.Since(start).Seconds())
	}

	s.emitAdmission(ctx, b)
	return b, nil
}

// Cancel moves a booking to canceled and, when the canceled booking held a
// confirmed seat, promotes the oldest waitlisted booking on the same event
// into the freed seat. Canceling a waitlisted booking frees nothing and
// triggers no promotion.
func (s *BookingService) Cancel(ctx context.Context, principal *user.User, bookingID string) (*booking.Booking, error) {
	tenantID := principal.Tenant()
	if tenantID == "" {
		return nil, fmt.Errorf("no tenant: %w", domain.ErrUnauthorized)
	}

	if err := requireEnabledTenant(ctx, s.store, tenantID); err != nil {
		return nil, err
	}

	b, err := s.store.GetBooking(ctx, bookingID, tenantID)
	if err != nil {
		return nil, err
	}

	if !principal.CanActFor(b.UserID) {
		return nil, fmt.Errorf("booking belongs to another user: %w", domain.ErrForbidden)
	}

	if !booking.CanTransition(b.Status, booking.StatusCanceled) {
		return nil, fmt.Errorf("booking is already canceled: %w", domain.ErrValidation)
	}
	wasConfirmed := b.Status == booking.StatusConfirmed

	ctx, span := swotel.StartCancelSpan(ctx, tenantID, bookingID)
	defer span.End()

	canceled, err := s.store.UpdateBookingStatus(ctx, bookingID, tenantID, booking.StatusCanceled)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	s.emitCancellation(ctx, canceled, wasConfirmed)

	if wasConfirmed {
		s.promoteAfterCancel(ctx, tenantID, canceled.EventID)
	}
	return canceled, nil
}

// ListForUser returns the principal's bookings, newest first.
func (s *BookingService) ListForUser(ctx context.Context, principal *user.User, limit int) ([]booking.Booking, error) {
	tenantID := principal.Tenant()
	if tenantID == "" {
		return nil, fmt.Errorf("no tenant: %w", domain.ErrUnauthorized)
	}
	if limit <= 0 || limit > maxBookingsPage {
		limit = maxBookingsPage
	}
	return s.store.ListBookingsByUser(ctx, tenantID, principal.ID, limit)
}

// Get returns a single booking visible to the principal. Attendees see only
// their own bookings.
func (s *BookingService) Get(ctx context.Context, principal *user.User, bookingID string) (*booking.Booking, error) {
	tenantID := principal.Tenant()
	if tenantID == "" {
		return nil, fmt.Errorf("no tenant: %w", domain.ErrUnauthorized)
	}
	b, err := s.store.GetBooking(ctx, bookingID, tenantID)
	if err != nil {
		return nil, err
	}
	if !principal.CanActFor(b.UserID) {
		return nil, fmt.Errorf("booking belongs to another user: %w", domain.ErrForbidden)
	}
	return b, nil
}

// promoteAfterCancel runs the waitlist promotion for a freed seat. A missing
// candidate is the normal case for events without a waitlist and is not an
// error; anything else is logged and swallowed because the cancellation has
// already committed.
func (s *BookingService) promoteAfterCancel(ctx context.Context, tenantID, eventID string) {
	ctx, span := swotel.StartPromotionSpan(ctx, tenantID, eventID)
	defer span.End()

	promoted, err := s.store.PromoteOldestWaitlisted(ctx, tenantID, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return
		}
		slog.Error("waitlist promotion failed", "request_id", logger.RequestID(ctx), "tenant_id", tenantID, "event_id", eventID, "error", err)
		s.countSideEffectFailure(ctx, "promotion")
		return
	}

	s.appendLog(ctx, promoted, bookinglog.ActionPromoteFromWaitlist, "Oldest waitlisted booking promoted to confirmed")
	s.notify(ctx, promoted, notification.TypeWaitlistPromoted)
	s.publish(ctx, messagequeue.SubjectBookingPromoted, promoted)
	if s.metrics != nil {
		s.metrics.BookingsPromoted.Add(ctx, 1, metric.WithAttributes(attribute.String("tenant.id", tenantID)))
	}
}

// emitAdmission writes the audit trail, notification, stream event, and
// metrics for a freshly admitted booking. Exactly one log entry and one
// notification per admission.
func (s *BookingService) emitAdmission(ctx context.Context, b *booking.Booking) {
	switch b.Status {
	case booking.StatusConfirmed:
		s.appendLog(ctx, b, bookinglog.ActionAutoConfirm, "Auto-confirmed based on capacity")
		s.publish(ctx, messagequeue.SubjectBookingConfirmed, b)
		if s.metrics != nil {
			s.metrics.BookingsConfirmed.Add(ctx, 1, metric.WithAttributes(attribute.String("tenant.id", b.TenantID)))
		}
	case booking.StatusWaitlisted:
		s.appendLog(ctx, b, bookinglog.ActionAutoWaitlist, "Event full, auto-waitlisted")
		s.publish(ctx, messagequeue.SubjectBookingWaitlisted, b)
		if s.metrics != nil {
			s.metrics.BookingsWaitlisted.Add(ctx, 1, metric.WithAttributes(attribute.String("tenant.id", b.TenantID)))
		}
	}
	s.notifyStatus(ctx, b)
}

// emitCancellation writes the side effects for a cancellation. The audit log
// records a freed seat only when the booking actually held one; canceling a
// waitlisted booking notifies but leaves no cancel_confirmed entry.
func (s *BookingService) emitCancellation(ctx context.Context, b *booking.Booking, wasConfirmed bool) {
	if wasConfirmed {
		s.appendLog(ctx, b, bookinglog.ActionCancelConfirmed, "Confirmed booking canceled")
	}
	s.notifyStatus(ctx, b)
	s.publish(ctx, messagequeue.SubjectBookingCanceled, b)
	if s.metrics != nil {
		s.metrics.BookingsCanceled.Add(ctx, 1, metric.WithAttributes(attribute.String("tenant.id", b.TenantID)))
	}
}

func (s *BookingService) appendLog(ctx context.Context, b *booking.Booking, action bookinglog.Action, note string) {
	entry := &bookinglog.Entry{
		TenantID:  b.TenantID,
		BookingID: b.ID,
		EventID:   b.EventID,
		UserID:    b.UserID,
		Action:    action,
		Note:      note,
	}
	if err := s.store.AppendBookingLog(ctx, entry); err != nil {
		slog.Error("append booking log failed", "request_id", logger.RequestID(ctx), "booking_id", b.ID, "action", action, "error", err)
		s.countSideEffectFailure(ctx, "log")
	}
}

// notifyStatus emits the notification mapped to the booking's new status.
// Statuses without a mapping are skipped silently.
func (s *BookingService) notifyStatus(ctx context.Context, b *booking.Booking) {
	typ, _, ok := notification.ForStatus(b.Status)
	if !ok {
		return
	}
	s.notify(ctx, b, typ)
}

func (s *BookingService) notify(ctx context.Context, b *booking.Booking, typ notification.Type) {
	n := &notification.Notification{
		TenantID:  b.TenantID,
		UserID:    b.UserID,
		BookingID: b.ID,
		EventID:   b.EventID,
		Type:      typ,
		Title:     notification.Title(typ),
		Message:   notification.Message(typ),
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		slog.Error("create notification failed", "request_id", logger.RequestID(ctx), "booking_id", b.ID, "type", typ, "error", err)
		s.countSideEffectFailure(ctx, "notification")
	}
}

func (s *BookingService) publish(ctx context.Context, subject string, b *booking.Booking) {
	if s.queue == nil {
		return
	}
	data, err := json.Marshal(b)
	if err != nil {
		slog.Error("marshal booking event failed", "booking_id", b.ID, "error", err)
		return
	}
	if err := s.queue.Publish(ctx, subject, data); err != nil {
		slog.Warn("publish booking event failed", "request_id", logger.RequestID(ctx), "subject", subject, "booking_id", b.ID, "error", err)
		s.countSideEffectFailure(ctx, "publish")
	}
}

func (s *BookingService) countSideEffectFailure(ctx context.Context, kind string) {
	if s.metrics == nil {
		return
	}
	s.metrics.SideEffectFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("sideeffect.kind", kind)))
}

// resolveTenant turns the request's tenant reference into the effective
// tenant ID. An absent reference defaults to the principal's tenant; a
// reference naming a different tenant is rejected.
func resolveTenant(principal *user.User, ref identity.Ref) (string, error) {
	tenantID := principal.Tenant()
	if tenantID == "" {
		return "", fmt.Errorf("no tenant: %w", domain.ErrUnauthorized)
	}
	if requested := ref.Normalize(); requested != "" && requested != tenantID {
		return "", fmt.Errorf("tenant mismatch: %w", domain.ErrForbidden)
	}
	return tenantID, nil
}

// resolveBookingUser turns the request's user reference into the booking
// owner. An absent reference defaults to the principal; attendees may only
// book for themselves.
func resolveBookingUser(principal *user.User, ref identity.Ref) (string, error) {
	userID := identity.FirstNonEmpty(ref, identity.FromString(principal.ID))
	if !principal.CanActFor(userID) {
		return "", fmt.Errorf("cannot book for another user: %w", domain.ErrForbidden)
	}
	return userID, nil
}
