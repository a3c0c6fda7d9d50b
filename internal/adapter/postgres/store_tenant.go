package postgres

import (
	"context"
	"fmt"

	"github.com/seatwise/seatwise/internal/domain/tenant"
)

func scanTenant(row scannable, t *tenant.Tenant) error {
	return row.Scan(&t.ID, &t.Name, &t.Slug, &t.Enabled, &t.CreatedAt, &t.UpdatedAt)
}

const tenantColumns = `id, name, slug, enabled, created_at, updated_at`

func (s *Store) CreateTenant(ctx context.Context, req tenant.CreateRequest) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := scanTenant(s.pool.QueryRow(ctx,
		`INSERT INTO tenants (name, slug) VALUES ($1, $2)
		 RETURNING `+tenantColumns,
		req.Name, req.Slug,
	), &t)
	if err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	return &t, nil
}

func (s *Store) GetTenant(ctx context.Context, id string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := scanTenant(s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id,
	), &t)
	if err != nil {
		return nil, notFoundWrap(err, "get tenant %s", id)
	}
	return &t, nil
}

func (s *Store) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		var t tenant.Tenant
		if err := scanTenant(rows, &t); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (s *Store) UpdateTenant(ctx context.Context, t *tenant.Tenant) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants SET name = $2, enabled = $3, updated_at = now()
		 WHERE id = $1`,
		t.ID, t.Name, t.Enabled)
	return execExpectOne(tag, err, "update tenant %s", t.ID)
}
