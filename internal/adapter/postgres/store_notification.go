package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/seatwise/seatwise/internal/domain/notification"
)

const notificationColumns = `id, tenant_id, user_id, booking_id, event_id, type, title, message, read, created_at`

func scanNotification(row scannable, n *notification.Notification) error {
	var eventID *string
	err := row.Scan(&n.ID, &n.TenantID, &n.UserID, &n.BookingID, &eventID,
		&n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt)
	if err != nil {
		return err
	}
	if eventID != nil {
		n.EventID = *eventID
	}
	return nil
}

func (s *Store) CreateNotification(ctx context.Context, n *notification.Notification) error {
	n.CreatedAt = time.Now().UTC()
	err := s.pool.QueryRow(ctx, `
		INSERT INTO notifications (tenant_id, user_id, booking_id, event_id, type, title, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		n.TenantID, n.UserID, n.BookingID, nullIfEmpty(n.EventID),
		n.Type, n.Title, n.Message, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *Store) GetNotification(ctx context.Context, id, tenantID string) (*notification.Notification, error) {
	var n notification.Notification
	err := scanNotification(s.pool.QueryRow(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE id = $1 AND tenant_id = $2`, id, tenantID), &n)
	if err != nil {
		return nil, notFoundWrap(err, "get notification %s", id)
	}
	return &n, nil
}

func (s *Store) ListUnreadNotifications(ctx context.Context, tenantID, userID string, limit int) ([]notification.Notification, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE tenant_id = $1 AND user_id = $2 AND read = false
		ORDER BY created_at DESC
		LIMIT $3`,
		tenantID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}
	defer rows.Close()

	var ns []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := scanNotification(rows, &n); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		ns = append(ns, n)
	}
	return ns, rows.Err()
}

// MarkNotificationRead flips read to true. Marking an already-read
// notification is a no-op that still returns the current row.
func (s *Store) MarkNotificationRead(ctx context.Context, id, tenantID string) (*notification.Notification, error) {
	var n notification.Notification
	err := scanNotification(s.pool.QueryRow(ctx, `
		UPDATE notifications SET read = true
		WHERE id = $1 AND tenant_id = $2
		RETURNING `+notificationColumns,
		id, tenantID), &n)
	if err != nil {
		return nil, notFoundWrap(err, "mark notification %s read", id)
	}
	return &n, nil
}
