package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seatwise/seatwise/internal/domain/event"
)

const eventColumns = `id, tenant_id, title, description, date, capacity, organizer_id, created_at, updated_at`

func scanEvent(row scannable, ev *event.Event) error {
	return row.Scan(&ev.ID, &ev.TenantID, &ev.Title, &ev.Description, &ev.Date,
		&ev.Capacity, &ev.OrganizerID, &ev.CreatedAt, &ev.UpdatedAt)
}

func (s *Store) CreateEvent(ctx context.Context, tenantID string, req event.CreateRequest) (*event.Event, error) {
	var ev event.Event
	err := scanEvent(s.pool.QueryRow(ctx, `
		INSERT INTO events (tenant_id, title, description, date, capacity, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+eventColumns,
		tenantID, req.Title, req.Description, req.Date, req.Capacity, req.OrganizerID,
	), &ev)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &ev, nil
}

func (s *Store) GetEvent(ctx context.Context, id, tenantID string) (*event.Event, error) {
	var ev event.Event
	err := scanEvent(s.pool.QueryRow(ctx, `
		SELECT `+eventColumns+` FROM events WHERE id = $1 AND tenant_id = $2`,
		id, tenantID), &ev)
	if err != nil {
		return nil, notFoundWrap(err, "get event %s", id)
	}
	return &ev, nil
}

func (s *Store) ListEvents(ctx context.Context, tenantID string) ([]event.Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events WHERE tenant_id = $1 ORDER BY date ASC`,
		tenantID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (s *Store) ListUpcomingEvents(ctx context.Context, tenantID string, limit int) ([]event.Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE tenant_id = $1 AND date >= now()
		ORDER BY date ASC
		LIMIT $2`,
		tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]event.Event, error) {
	var events []event.Event
	for rows.Next() {
		var ev event.Event
		if err := scanEvent(rows, &ev); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *Store) UpdateEvent(ctx context.Context, ev *event.Event) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE events
		SET title = $3, description = $4, date = $5, capacity = $6, updated_at = now()
		WHERE id = $1 AND tenant_id = $2`,
		ev.ID, ev.TenantID, ev.Title, ev.Description, ev.Date, ev.Capacity)
	return execExpectOne(tag, err, "update event %s", ev.ID)
}

func (s *Store) DeleteEvent(ctx context.Context, id, tenantID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM events WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	return execExpectOne(tag, err, "delete event %s", id)
}

func (s *Store) CountEvents(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM events WHERE tenant_id = $1`, tenantID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
