package http

import (
	"net/http"

	"github.com/seatwise/seatwise/internal/service"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	Auth          *service.AuthService
	Tenants       *service.TenantService
	Events        *service.EventService
	Bookings      *service.BookingService
	Notifications *service.NotificationService
	Dashboard     *service.DashboardService
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
