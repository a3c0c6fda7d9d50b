package http

import (
	"net/http"

	"github.com/seatwise/seatwise/internal/domain/tenant"
	"github.com/seatwise/seatwise/internal/middleware"
)

// ListTenants handles GET /api/v1/tenants (admin).
func (h *Handlers) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.Tenants.List(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tenants)
}

// CreateTenant handles POST /api/v1/tenants (admin).
func (h *Handlers) CreateTenant(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[tenant.CreateRequest](w, r, maxRequestBodySize)
	if !ok {
		return
	}

	t, err := h.Tenants.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "tenant not created")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// GetTenant handles GET /api/v1/tenants/{id} (admin).
func (h *Handlers) GetTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.Tenants.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// UpdateTenant handles PUT /api/v1/tenants/{id} (admin).
func (h *Handlers) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[tenant.UpdateRequest](w, r, maxRequestBodySize)
	if !ok {
		return
	}

	t, err := h.Tenants.Update(r.Context(), urlParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// GetDashboard handles GET /api/v1/dashboard.
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())
	d, err := h.Dashboard.Build(r.Context(), principal)
	if err != nil {
		writeDomainError(w, err, "dashboard unavailable")
		return
	}
	writeJSON(w, http.StatusOK, d)
}
