package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/domain/booking"
	"github.com/seatwise/seatwise/internal/domain/bookinglog"
	"github.com/seatwise/seatwise/internal/domain/event"
	"github.com/seatwise/seatwise/internal/domain/notification"
	"github.com/seatwise/seatwise/internal/domain/tenant"
	"github.com/seatwise/seatwise/internal/domain/user"
	"github.com/seatwise/seatwise/internal/port/database"
)

// Ensure mockStore implements database.Store at compile time.
var _ database.Store = (*mockStore)(nil)

// mockStore is an in-memory implementation of database.Store for testing.
// AdmitBooking and PromoteOldestWaitlisted hold the mutex for their whole
// read-decide-write sequence, mirroring the row lock the real store takes.
type mockStore struct {
	mu sync.Mutex

	tenants       []tenant.Tenant
	users         []user.User
	refreshTokens []user.RefreshToken
	events        []event.Event
	bookings      []booking.Booking
	notifications []notification.Notification
	logs          []bookinglog.Entry

	nextID int

	// Error hooks. Set these to inject failures.
	admitErr        error
	promoteErr      error
	updateStatusErr error
	notificationErr error
	logErr          error
}

func (m *mockStore) genID() string {
	m.nextID++
	return fmt.Sprintf("id-%04d", m.nextID)
}

// --- Tenants ---

func (m *mockStore) CreateTenant(_ context.Context, req tenant.CreateRequest) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := tenant.Tenant{ID: m.genID(), Name: req.Name, Slug: req.Slug, Enabled: true, CreatedAt: time.Now()}
	m.tenants = append(m.tenants, t)
	return &t, nil
}

func (m *mockStore) GetTenant(_ context.Context, id string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tenants {
		if m.tenants[i].ID == id {
			t := m.tenants[i]
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListTenants(_ context.Context) ([]tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]tenant.Tenant(nil), m.tenants...), nil
}

func (m *mockStore) UpdateTenant(_ context.Context, t *tenant.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tenants {
		if m.tenants[i].ID == t.ID {
			m.tenants[i] = *t
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- Users ---

func (m *mockStore) CreateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, *u)
	return nil
}

func (m *mockStore) GetUser(_ context.Context, id, tenantID string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id && m.users[i].TenantID == tenantID {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetUserByID(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListUsers(_ context.Context, tenantID string) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []user.User
	for _, u := range m.users {
		if u.TenantID == tenantID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockStore) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- Refresh tokens ---

func (m *mockStore) CreateRefreshToken(_ context.Context, rt *user.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshTokens = append(m.refreshTokens, *rt)
	return nil
}

func (m *mockStore) GetRefreshTokenByHash(_ context.Context, tokenHash string) (*user.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.refreshTokens {
		if m.refreshTokens[i].TokenHash == tokenHash {
			rt := m.refreshTokens[i]
			return &rt, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) RotateRefreshToken(_ context.Context, oldTokenHash string, next *user.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.refreshTokens {
		if m.refreshTokens[i].TokenHash == oldTokenHash {
			m.refreshTokens[i] = *next
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) DeleteRefreshToken(_ context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.refreshTokens {
		if m.refreshTokens[i].TokenHash == tokenHash {
			m.refreshTokens = append(m.refreshTokens[:i], m.refreshTokens[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) DeleteExpiredRefreshTokens(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []user.RefreshToken
	var n int64
	for _, rt := range m.refreshTokens {
		if time.Now().After(rt.ExpiresAt) {
			n++
			continue
		}
		kept = append(kept, rt)
	}
	m.refreshTokens = kept
	return n, nil
}

// --- Events ---

func (m *mockStore) CreateEvent(_ context.Context, tenantID string, req event.CreateRequest) (*event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev := event.Event{
		ID:          m.genID(),
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Capacity:    req.Capacity,
		OrganizerID: req.OrganizerID,
		CreatedAt:   time.Now(),
	}
	m.events = append(m.events, ev)
	return &ev, nil
}

func (m *mockStore) GetEvent(_ context.Context, id, tenantID string) (*event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getEventLocked(id, tenantID)
}

func (m *mockStore) getEventLocked(id, tenantID string) (*event.Event, error) {
	for i := range m.events {
		if m.events[i].ID == id && m.events[i].TenantID == tenantID {
			ev := m.events[i]
			return &ev, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListEvents(_ context.Context, tenantID string) ([]event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []event.Event
	for _, ev := range m.events {
		if ev.TenantID == tenantID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockStore) ListUpcomingEvents(_ context.Context, tenantID string, limit int) ([]event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []event.Event
	for _, ev := range m.events {
		if ev.TenantID == tenantID && ev.Date.After(time.Now()) && len(out) < limit {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockStore) UpdateEvent(_ context.Context, ev *event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID == ev.ID && m.events[i].TenantID == ev.TenantID {
			m.events[i] = *ev
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) DeleteEvent(_ context.Context, id, tenantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID == id && m.events[i].TenantID == tenantID {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) CountEvents(_ context.Context, tenantID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ev := range m.events {
		if ev.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

// --- Bookings ---

func (m *mockStore) AdmitBooking(_ context.Context, tenantID, eventID, userID string) (*booking.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.admitErr != nil {
		return nil, m.admitErr
	}

	ev, err := m.getEventLocked(eventID, tenantID)
	if err != nil {
		return nil, err
	}

	confirmed := m.countLocked(tenantID, eventID, booking.StatusConfirmed)
	b := booking.Booking{
		ID:        m.genID(),
		TenantID:  tenantID,
		EventID:   eventID,
		UserID:    userID,
		Status:    booking.Decide(confirmed, ev.Capacity),
		CreatedAt: time.Now(),
	}
	m.bookings = append(m.bookings, b)
	return &b, nil
}

func (m *mockStore) PromoteOldestWaitlisted(_ context.Context, tenantID, eventID string) (*booking.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.promoteErr != nil {
		return nil, m.promoteErr
	}

	ev, err := m.getEventLocked(eventID, tenantID)
	if err != nil {
		return nil, err
	}
	if m.countLocked(tenantID, eventID, booking.StatusConfirmed) >= ev.Capacity {
		return nil, domain.ErrNotFound
	}

	var candidates []int
	for i := range m.bookings {
		b := &m.bookings[i]
		if b.TenantID == tenantID && b.EventID == eventID && b.Status == booking.StatusWaitlisted {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNotFound
	}
	sort.Slice(candidates, func(a, b int) bool {
		ba, bb := m.bookings[candidates[a]], m.bookings[candidates[b]]
		if !ba.CreatedAt.Equal(bb.CreatedAt) {
			return ba.CreatedAt.Before(bb.CreatedAt)
		}
		return ba.ID < bb.ID
	})

	m.bookings[candidates[0]].Status = booking.StatusConfirmed
	b := m.bookings[candidates[0]]
	return &b, nil
}

func (m *mockStore) countLocked(tenantID, eventID string, status booking.Status) int {
	n := 0
	for _, b := range m.bookings {
		if b.TenantID == tenantID && b.EventID == eventID && b.Status == status {
			n++
		}
	}
	return n
}

func (m *mockStore) GetBooking(_ context.Context, id, tenantID string) (*booking.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bookings {
		if m.bookings[i].ID == id && m.bookings[i].TenantID == tenantID {
			b := m.bookings[i]
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListBookingsByUser(_ context.Context, tenantID, userID string, limit int) ([]booking.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []booking.Booking
	for _, b := range m.bookings {
		if b.TenantID == tenantID && b.UserID == userID && len(out) < limit {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockStore) UpdateBookingStatus(_ context.Context, id, tenantID string, status booking.Status) (*booking.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateStatusErr != nil {
		return nil, m.updateStatusErr
	}
	for i := range m.bookings {
		if m.bookings[i].ID == id && m.bookings[i].TenantID == tenantID {
			m.bookings[i].Status = status
			b := m.bookings[i]
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) CountBookings(_ context.Context, tenantID, eventID string, status booking.Status) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countLocked(tenantID, eventID, status), nil
}

func (m *mockStore) CountTenantBookings(_ context.Context, tenantID string, status booking.Status) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.bookings {
		if b.TenantID == tenantID && b.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *mockStore) CountLiveBookings(_ context.Context, tenantID, eventID, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.bookings {
		if b.TenantID == tenantID && b.EventID == eventID && b.UserID == userID && b.Status != booking.StatusCanceled {
			n++
		}
	}
	return n, nil
}

// --- Notifications ---

func (m *mockStore) CreateNotification(_ context.Context, n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.notificationErr != nil {
		return m.notificationErr
	}
	n.ID = m.genID()
	n.CreatedAt = time.Now()
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockStore) GetNotification(_ context.Context, id, tenantID string) (*notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notifications {
		if m.notifications[i].ID == id && m.notifications[i].TenantID == tenantID {
			n := m.notifications[i]
			return &n, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListUnreadNotifications(_ context.Context, tenantID, userID string, limit int) ([]notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []notification.Notification
	for _, n := range m.notifications {
		if n.TenantID == tenantID && n.UserID == userID && !n.Read && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockStore) MarkNotificationRead(_ context.Context, id, tenantID string) (*notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notifications {
		if m.notifications[i].ID == id && m.notifications[i].TenantID == tenantID {
			m.notifications[i].Read = true
			n := m.notifications[i]
			return &n, nil
		}
	}
	return nil, domain.ErrNotFound
}

// --- Booking logs ---

func (m *mockStore) AppendBookingLog(_ context.Context, e *bookinglog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.logErr != nil {
		return m.logErr
	}
	e.ID = m.genID()
	e.CreatedAt = time.Now()
	m.logs = append(m.logs, *e)
	return nil
}

func (m *mockStore) ListRecentBookingLogs(_ context.Context, tenantID string, limit int) ([]bookinglog.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []bookinglog.Entry
	for i := len(m.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if m.logs[i].TenantID == tenantID {
			out = append(out, m.logs[i])
		}
	}
	return out, nil
}
