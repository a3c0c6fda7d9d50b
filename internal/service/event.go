package service

import (
	"context"
	"fmt"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/domain/event"
	"github.com/seatwise/seatwise/internal/domain/user"
	"github.com/seatwise/seatwise/internal/port/database"
)

// EventService manages the event catalog of a tenant. Capacity changes take
// effect at the next admission or promotion; existing bookings are never
// reshuffled retroactively.
type EventService struct {
	store database.Store
}

// NewEventService creates an event service.
func NewEventService(store database.Store) *EventService {
	return &EventService{store: store}
}

// Create registers a new event under the principal's tenant. Attendees may
// not create events. The organizer defaults to the principal.
func (s *EventService) Create(ctx context.Context, principal *user.User, req event.CreateRequest) (*event.Event, error) {
	tenantID := principal.Tenant()
	if tenantID == "" {
		return nil, fmt.Errorf("no tenant: %w", domain.ErrUnauthorized)
	}
	if principal.Role == user.RoleAttendee {
		return nil, fmt.Errorf("attendees cannot create events: %w", domain.ErrForbidden)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}
	if req.OrganizerID == "" {
		req.OrganizerID = principal.ID
	}
	if err := requireEnabledTenant(ctx, s.store, tenantID); err != nil {
		return nil, err
	}
	return s.store.CreateEvent(ctx, tenantID, req)
}

// Get returns an event in the principal's tenant.
func (s *EventService) Get(ctx context.Context, principal *user.User, id string) (*event.Event, error) {
	tenantID := principal.Tenant()
	if tenantID == "" {
		return nil, fmt.Errorf("no tenant: %w", domain.ErrUnauthorized)
	}
	return s.store.GetEvent(ctx, id, tenantID)
}

// List returns all events in the principal's tenant ordered by date.
func (s *EventService) List(ctx context.Context, principal *user.User) ([]event.Event, error) {
	tenantID := principal.Tenant()
	if tenantID == "" {
		return nil, fmt.Errorf("no tenant: %w", domain.ErrUnauthorized)
	}
	return s.store.ListEvents(ctx, tenantID)
}

// Update applies the changed fields of req to an event. Only the organizer
// of the event or an admin may update it.
func (s *EventService) Update(ctx context.Context, principal *user.User, id string, req event.UpdateRequest) (*event.Event, error) {
	tenantID := principal.Tenant()
	if tenantID == "" {
		return nil, fmt.Errorf("no tenant: %w", domain.ErrUnauthorized)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}

	if err := requireEnabledTenant(ctx, s.store, tenantID); err != nil {
		return nil, err
	}

	ev, err := s.store.GetEvent(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if !canManageEvent(principal, ev) {
		return nil, fmt.Errorf("not the event organizer: %w", domain.ErrForbidden)
	}

	if req.Title != "" {
		ev.Title = req.Title
	}
	if req.Description != "" {
		ev.Description = req.Description
	}
	if req.Date != nil {
		ev.Date = *req.Date
	}
	if req.Capacity != nil {
		ev.Capacity = *req.Capacity
	}

	if err := s.store.UpdateEvent(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// Delete removes an event. Only the organizer or an admin may delete it.
func (s *EventService) Delete(ctx context.Context, principal *user.User, id string) error {
	tenantID := principal.Tenant()
	if tenantID == "" {
		return fmt.Errorf("no tenant: %w", domain.ErrUnauthorized)
	}
	if err := requireEnabledTenant(ctx, s.store, tenantID); err != nil {
		return err
	}
	ev, err := s.store.GetEvent(ctx, id, tenantID)
	if err != nil {
		return err
	}
	if !canManageEvent(principal, ev) {
		return fmt.Errorf("not the event organizer: %w", domain.ErrForbidden)
	}
	return s.store.DeleteEvent(ctx, id, tenantID)
}

func canManageEvent(principal *user.User, ev *event.Event) bool {
	if principal.Role == user.RoleAdmin {
		return true
	}
	return principal.Role == user.RoleOrganizer && ev.OrganizerID == principal.ID
}
