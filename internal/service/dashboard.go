package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/domain/booking"
	"github.com/seatwise/seatwise/internal/domain/bookinglog"
	"github.com/seatwise/seatwise/internal/domain/event"
	"github.com/seatwise/seatwise/internal/domain/user"
	"github.com/seatwise/seatwise/internal/port/cache"
	"github.com/seatwise/seatwise/internal/port/database"
)

const (
	dashboardUpcomingLimit = 10
	dashboardLogLimit      = 5
)

// EventSummary is one upcoming event with its booking counts.
type EventSummary struct {
	Event       event.Event `json:"event"`
	Confirmed   int         `json:"confirmed"`
	Waitlisted  int         `json:"waitlisted"`
	Canceled    int         `json:"canceled"`
	FillPercent float64     `json:"fill_percent"`
}

// Dashboard aggregates tenant-wide booking activity for organizers and
// admins.
type Dashboard struct {
	Events         int                `json:"events"`
	Confirmed      int                `json:"confirmed"`
	Waitlisted     int                `json:"waitlisted"`
	Canceled       int                `json:"canceled"`
	Upcoming       []EventSummary     `json:"upcoming"`
	RecentActivity []bookinglog.Entry `json:"recent_activity"`
	GeneratedAt    time.Time          `json:"generated_at"`
}

// DashboardService builds the organizer dashboard. Per-event counts are
// gathered in parallel and the assembled result is cached per tenant for a
// short TTL since every build hits the bookings table several times.
type DashboardService struct {
	store database.Store
	cache cache.Cache
	ttl   time.Duration
}

// NewDashboardService creates a dashboard service. cache may be nil to
// disable caching.
func NewDashboardService(store database.Store, c cache.Cache, ttl time.Duration) *DashboardService {
	return &DashboardService{store: store, cache: c, ttl: ttl}
}

// Build assembles the dashboard for the principal's tenant. Attendees are
// rejected.
func (s *DashboardService) Build(ctx context.Context, principal *user.User) (*Dashboard, error) {
	tenantID := principal.Tenant()
	if tenantID == "" {
		return nil, fmt.Errorf("no tenant: %w", domain.ErrUnauthorized)
	}
	if principal.Role == user.RoleAttendee {
		return nil, fmt.Errorf("dashboard requires organizer or admin: %w", domain.ErrForbidden)
	}

	cacheKey := "dashboard:" + tenantID
	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
			var d Dashboard
			if err := json.Unmarshal(data, &d); err == nil {
				return &d, nil
			}
			slog.Warn("corrupt dashboard cache entry", "tenant_id", tenantID)
		}
	}

	d := &Dashboard{GeneratedAt: time.Now().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Events, err = s.store.CountEvents(gctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		d.Confirmed, err = s.store.CountTenantBookings(gctx, tenantID, booking.StatusConfirmed)
		return err
	})
	g.Go(func() (err error) {
		d.Waitlisted, err = s.store.CountTenantBookings(gctx, tenantID, booking.StatusWaitlisted)
		return err
	})
	g.Go(func() (err error) {
		d.Canceled, err = s.store.CountTenantBookings(gctx, tenantID, booking.StatusCanceled)
		return err
	})
	g.Go(func() (err error) {
		d.RecentActivity, err = s.store.ListRecentBookingLogs(gctx, tenantID, dashboardLogLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build dashboard: %w", err)
	}

	upcoming, err := s.store.ListUpcomingEvents(ctx, tenantID, dashboardUpcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}
	d.Upcoming = make([]EventSummary, len(upcoming))

	// One goroutine per (event, status) count.
	g, gctx = errgroup.WithContext(ctx)
	for i := range upcoming {
		i := i
		ev := upcoming[i]
		d.Upcoming[i].Event = ev
		g.Go(func() (err error) {
			d.Upcoming[i].Confirmed, err = s.store.CountBookings(gctx, tenantID, ev.ID, booking.StatusConfirmed)
			return err
		})
		g.Go(func() (err error) {
			d.Upcoming[i].Waitlisted, err = s.store.CountBookings(gctx, tenantID, ev.ID, booking.StatusWaitlisted)
			return err
		})
		g.Go(func() (err error) {
			d.Upcoming[i].Canceled, err = s.store.CountBookings(gctx, tenantID, ev.ID, booking.StatusCanceled)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("per-event counts: %w", err)
	}
	for i := range d.Upcoming {
		if c := d.Upcoming[i].Event.Capacity; c > 0 {
			d.Upcoming[i].FillPercent = 100 * float64(d.Upcoming[i].Confirmed) / float64(c)
		}
	}

	if s.cache != nil {
		if data, err := json.Marshal(d); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, s.ttl); err != nil {
				slog.Warn("dashboard cache set failed", "tenant_id", tenantID, "error", err)
			}
		}
	}
	return d, nil
}
