package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/domain/booking"
)

const bookingColumns = `id, tenant_id, event_id, user_id, status, created_at, updated_at`

func scanBooking(row scannable, b *booking.Booking) error {
	return row.Scan(&b.ID, &b.TenantID, &b.EventID, &b.UserID, &b.Status,
		&b.CreatedAt, &b.UpdatedAt)
}

// AdmitBooking inserts a booking for (tenant, event, user) with the admission
// decision made inside a single transaction. The event row is locked with
// SELECT ... FOR UPDATE so that concurrent admissions and promotions against
// the same event serialize: the confirmed count read here cannot go stale
// before the insert commits.
func (s *Store) AdmitBooking(ctx context.Context, tenantID, eventID, userID string) (*booking.Booking, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var capacity int
	err = tx.QueryRow(ctx, `
		SELECT capacity FROM events
		WHERE id = $1 AND tenant_id = $2
		FOR UPDATE`,
		eventID, tenantID,
	).Scan(&capacity)
	if err != nil {
		return nil, notFoundWrap(err, "lock event %s", eventID)
	}

	var confirmed int
	err = tx.QueryRow(ctx, `
		SELECT count(*) FROM bookings
		WHERE tenant_id = $1 AND event_id = $2 AND status = $3`,
		tenantID, eventID, booking.StatusConfirmed,
	).Scan(&confirmed)
	if err != nil {
		return nil, fmt.Errorf("count confirmed: %w", err)
	}

	status := booking.Decide(confirmed, capacity)

	var b booking.Booking
	err = scanBooking(tx.QueryRow(ctx, `
		INSERT INTO bookings (tenant_id, event_id, user_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+bookingColumns,
		tenantID, eventID, userID, status,
	), &b)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit admit: %w", err)
	}
	return &b, nil
}

// PromoteOldestWaitlisted flips the earliest waitlisted booking on the event
// to confirmed, but only while the event still has free capacity. It locks
// the same event row AdmitBooking does, so a promotion can never race an
// admission into overselling. The FIFO order is created_at with the booking
// id as a deterministic tie-break. Returns domain.ErrNotFound when nothing
// is waitlisted or the event is already full.
func (s *Store) PromoteOldestWaitlisted(ctx context.Context, tenantID, eventID string) (*booking.Booking, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var capacity int
	err = tx.QueryRow(ctx, `
		SELECT capacity FROM events
		WHERE id = $1 AND tenant_id = $2
		FOR UPDATE`,
		eventID, tenantID,
	).Scan(&capacity)
	if err != nil {
		return nil, notFoundWrap(err, "lock event %s", eventID)
	}

	var confirmed int
	err = tx.QueryRow(ctx, `
		SELECT count(*) FROM bookings
		WHERE tenant_id = $1 AND event_id = $2 AND status = $3`,
		tenantID, eventID, booking.StatusConfirmed,
	).Scan(&confirmed)
	if err != nil {
		return nil, fmt.Errorf("count confirmed: %w", err)
	}
	if confirmed >= capacity {
		return nil, fmt.Errorf("promote on event %s: no free capacity: %w", eventID, domain.ErrNotFound)
	}

	var oldestID string
	err = tx.QueryRow(ctx, `
		SELECT id FROM bookings
		WHERE tenant_id = $1 AND event_id = $2 AND status = $3
		ORDER BY created_at ASC, id ASC
		LIMIT 1`,
		tenantID, eventID, booking.StatusWaitlisted,
	).Scan(&oldestID)
	if err != nil {
		return nil, notFoundWrap(err, "oldest waitlisted on event %s", eventID)
	}

	var b booking.Booking
	err = scanBooking(tx.QueryRow(ctx, `
		UPDATE bookings SET status = $3, updated_at = now()
		WHERE id = $1 AND tenant_id = $2
		RETURNING `+bookingColumns,
		oldestID, tenantID, booking.StatusConfirmed,
	), &b)
	if err != nil {
		return nil, fmt.Errorf("promote booking %s: %w", oldestID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit promote: %w", err)
	}
	return &b, nil
}

func (s *Store) GetBooking(ctx context.Context, id, tenantID string) (*booking.Booking, error) {
	var b booking.Booking
	err := scanBooking(s.pool.QueryRow(ctx, `
		SELECT `+bookingColumns+` FROM bookings WHERE id = $1 AND tenant_id = $2`,
		id, tenantID), &b)
	if err != nil {
		return nil, notFoundWrap(err, "get booking %s", id)
	}
	return &b, nil
}

func (s *Store) ListBookingsByUser(ctx context.Context, tenantID, userID string, limit int) ([]booking.Booking, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT $3`,
		tenantID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list bookings by user: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]booking.Booking, error) {
	var bookings []booking.Booking
	for rows.Next() {
		var b booking.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (s *Store) UpdateBookingStatus(ctx context.Context, id, tenantID string, status booking.Status) (*booking.Booking, error) {
	var b booking.Booking
	err := scanBooking(s.pool.QueryRow(ctx, `
		UPDATE bookings SET status = $3, updated_at = now()
		WHERE id = $1 AND tenant_id = $2
		RETURNING `+bookingColumns,
		id, tenantID, status,
	), &b)
	if err != nil {
		return nil, notFoundWrap(err, "update booking %s status", id)
	}
	return &b, nil
}

func (s *Store) CountBookings(ctx context.Context, tenantID, eventID string, status booking.Status) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM bookings
		WHERE tenant_id = $1 AND event_id = $2 AND status = $3`,
		tenantID, eventID, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

func (s *Store) CountTenantBookings(ctx context.Context, tenantID string, status booking.Status) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM bookings WHERE tenant_id = $1 AND status = $2`,
		tenantID, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tenant bookings: %w", err)
	}
	return n, nil
}

// CountLiveBookings counts a user's non-canceled bookings on an event. The
// booking orchestrator uses it as the duplicate-booking guard.
func (s *Store) CountLiveBookings(ctx context.Context, tenantID, eventID, userID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM bookings
		WHERE tenant_id = $1 AND event_id = $2 AND user_id = $3 AND status <> $4`,
		tenantID, eventID, userID, booking.StatusCanceled).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count live bookings: %w", err)
	}
	return n, nil
}
