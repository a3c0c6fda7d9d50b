package service

import (
	"context"
	"fmt"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/domain/notification"
	"github.com/seatwise/seatwise/internal/domain/user"
	"github.com/seatwise/seatwise/internal/port/database"
)

// maxNotificationsPage caps the page size of notification listings.
const maxNotificationsPage = 100

// NotificationService serves per-user notifications. Notifications are
// created by the booking lifecycle; the only mutation exposed here is
// marking one read.
type NotificationService struct {
	store database.Store
}

// NewNotificationService creates a notification service.
func NewNotificationService(store database.Store) *NotificationService {
	return &NotificationService{store: store}
}

// ListUnread returns the principal's unread notifications, newest first.
func (s *NotificationService) ListUnread(ctx context.Context, principal *user.User, limit int) ([]notification.Notification, error) {
	tenantID := principal.Tenant()
	if tenantID == "" {
		return nil, fmt.Errorf("no tenant: %w", domain.ErrUnauthorized)
	}
	if limit <= 0 || limit > maxNotificationsPage {
		limit = maxNotificationsPage
	}
	return s.store.ListUnreadNotifications(ctx, tenantID, principal.ID, limit)
}

// MarkRead marks a notification as read. The owner may mark their own;
// organizers and admins may mark any in their tenant. Repeating the call on
// an already-read notification succeeds and changes nothing.
func (s *NotificationService) MarkRead(ctx context.Context, principal *user.User, id string) (*notification.Notification, error) {
	tenantID := principal.Tenant()
	if tenantID == "" {
		return nil, fmt.Errorf("no tenant: %w", domain.ErrUnauthorized)
	}

	n, err := s.store.GetNotification(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if !principal.CanActFor(n.UserID) {
		return nil, fmt.Errorf("notification belongs to another user: %w", domain.ErrForbidden)
	}

	return s.store.MarkNotificationRead(ctx, id, tenantID)
}
