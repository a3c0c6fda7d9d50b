package service

import (
	"context"
	"fmt"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/domain/tenant"
	"github.com/seatwise/seatwise/internal/port/database"
)

// TenantService manages tenants. All methods are admin-only and enforced at
// the routing layer via the role middleware.
type TenantService struct {
	store database.Store
}

// NewTenantService creates a tenant service.
func NewTenantService(store database.Store) *TenantService {
	return &TenantService{store: store}
}

// Create registers a new tenant.
func (s *TenantService) Create(ctx context.Context, req tenant.CreateRequest) (*tenant.Tenant, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if req.Slug == "" {
		return nil, fmt.Errorf("slug is required: %w", domain.ErrValidation)
	}
	return s.store.CreateTenant(ctx, req)
}

// Get returns a tenant by ID.
func (s *TenantService) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	return s.store.GetTenant(ctx, id)
}

// List returns all tenants.
func (s *TenantService) List(ctx context.Context) ([]tenant.Tenant, error) {
	return s.store.ListTenants(ctx)
}

// Update applies name and enabled changes to a tenant.
func (s *TenantService) Update(ctx context.Context, id string, req tenant.UpdateRequest) (*tenant.Tenant, error) {
	t, err := s.store.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		t.Name = req.Name
	}
	if req.Enabled != nil {
		t.Enabled = *req.Enabled
	}
	if err := s.store.UpdateTenant(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// RequireEnabled returns ErrForbidden when the tenant is disabled.
func (s *TenantService) RequireEnabled(ctx context.Context, id string) error {
	return requireEnabledTenant(ctx, s.store, id)
}

// requireEnabledTenant rejects operations against a disabled tenant. Booking
// and event mutations call it before touching tenant data.
func requireEnabledTenant(ctx context.Context, store database.Store, id string) error {
	t, err := store.GetTenant(ctx, id)
	if err != nil {
		return err
	}
	if !t.Enabled {
		return fmt.Errorf("tenant %s is disabled: %w", id, domain.ErrForbidden)
	}
	return nil
}
