// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/seatwise/seatwise/internal/domain/booking"
	"github.com/seatwise/seatwise/internal/domain/bookinglog"
	"github.com/seatwise/seatwise/internal/domain/event"
	"github.com/seatwise/seatwise/internal/domain/notification"
	"github.com/seatwise/seatwise/internal/domain/tenant"
	"github.com/seatwise/seatwise/internal/domain/user"
)

// Store is the port interface for database operations. Every tenant-scoped
// method takes the tenant ID explicitly; implementations must include it in
// each predicate rather than relying on ambient request state.
type Store interface {
	// Tenants
	CreateTenant(ctx context.Context, req tenant.CreateRequest) (*tenant.Tenant, error)
	GetTenant(ctx context.Context, id string) (*tenant.Tenant, error)
	ListTenants(ctx context.Context) ([]tenant.Tenant, error)
	UpdateTenant(ctx context.Context, t *tenant.Tenant) error

	// Users
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, id, tenantID string) (*user.User, error)
	// GetUserByID looks a user up without a tenant scope. Auth flows use it
	// to resolve the principal behind a refresh token; tenant-scoped reads
	// go through GetUser.
	GetUserByID(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	ListUsers(ctx context.Context, tenantID string) ([]user.User, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error

	// Refresh tokens
	CreateRefreshToken(ctx context.Context, rt *user.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*user.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldTokenHash string, next *user.RefreshToken) error
	DeleteRefreshToken(ctx context.Context, tokenHash string) error
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)

	// Events
	CreateEvent(ctx context.Context, tenantID string, req event.CreateRequest) (*event.Event, error)
	GetEvent(ctx context.Context, id, tenantID string) (*event.Event, error)
	ListEvents(ctx context.Context, tenantID string) ([]event.Event, error)
	ListUpcomingEvents(ctx context.Context, tenantID string, limit int) ([]event.Event, error)
	UpdateEvent(ctx context.Context, ev *event.Event) error
	DeleteEvent(ctx context.Context, id, tenantID string) error
	CountEvents(ctx context.Context, tenantID string) (int, error)

	// Bookings. AdmitBooking and PromoteOldestWaitlisted are the two core
	// transactional operations: each locks the event row for the duration of
	// its read-decide-write sequence so that concurrent admissions and
	// promotions on the same (tenant, event) serialize.
	AdmitBooking(ctx context.Context, tenantID, eventID, userID string) (*booking.Booking, error)
	PromoteOldestWaitlisted(ctx context.Context, tenantID, eventID string) (*booking.Booking, error)
	GetBooking(ctx context.Context, id, tenantID string) (*booking.Booking, error)
	ListBookingsByUser(ctx context.Context, tenantID, userID string, limit int) ([]booking.Booking, error)
	UpdateBookingStatus(ctx context.Context, id, tenantID string, status booking.Status) (*booking.Booking, error)
	CountBookings(ctx context.Context, tenantID, eventID string, status booking.Status) (int, error)
	CountTenantBookings(ctx context.Context, tenantID string, status booking.Status) (int, error)
	CountLiveBookings(ctx context.Context, tenantID, eventID, userID string) (int, error)

	// Notifications
	CreateNotification(ctx context.Context, n *notification.Notification) error
	GetNotification(ctx context.Context, id, tenantID string) (*notification.Notification, error)
	ListUnreadNotifications(ctx context.Context, tenantID, userID string, limit int) ([]notification.Notification, error)
	MarkNotificationRead(ctx context.Context, id, tenantID string) (*notification.Notification, error)

	// Booking logs (append-only)
	AppendBookingLog(ctx context.Context, e *bookinglog.Entry) error
	ListRecentBookingLogs(ctx context.Context, tenantID string, limit int) ([]bookinglog.Entry, error)
}
