package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/seatwise/seatwise/internal/domain/bookinglog"
)

func (s *Store) AppendBookingLog(ctx context.Context, e *bookinglog.Entry) error {
	e.CreatedAt = time.Now().UTC()
	err := s.pool.QueryRow(ctx, `
		INSERT INTO booking_logs (tenant_id, booking_id, event_id, user_id, action, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		e.TenantID, e.BookingID, e.EventID, e.UserID, e.Action, e.Note, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("append booking log: %w", err)
	}
	return nil
}

func (s *Store) ListRecentBookingLogs(ctx context.Context, tenantID string, limit int) ([]bookinglog.Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, booking_id, event_id, user_id, action, note, created_at
		FROM booking_logs
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list booking logs: %w", err)
	}
	defer rows.Close()

	var entries []bookinglog.Entry
	for rows.Next() {
		var e bookinglog.Entry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.BookingID, &e.EventID,
			&e.UserID, &e.Action, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
