package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/seatwise/seatwise/internal/domain/user"
	"github.com/seatwise/seatwise/internal/middleware"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		// Auth
		r.Post("/auth/login", h.Login)
		r.Post("/auth/refresh", h.Refresh)
		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/me", h.Me)

		// Events
		r.Get("/events", h.ListEvents)
		r.Get("/events/{id}", h.GetEvent)
		r.Post("/events/{id}/book", h.BookEvent)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleOrganizer)).Group(func(r chi.Router) {
			r.Post("/events", h.CreateEvent)
			r.Put("/events/{id}", h.UpdateEvent)
			r.Delete("/events/{id}", h.DeleteEvent)
		})

		// Bookings
		r.Post("/bookings", h.CreateBooking)
		r.Get("/bookings/my", h.MyBookings)
		r.Get("/bookings/{id}", h.GetBooking)
		r.Post("/bookings/{id}/cancel", h.CancelBooking)

		// Notifications
		r.Get("/notifications/my", h.MyNotifications)
		r.Post("/notifications/{id}/read", h.MarkNotificationRead)

		// Dashboard (role check in the service: organizer or admin)
		r.Get("/dashboard", h.GetDashboard)

		// Administration
		r.With(middleware.RequireRole(user.RoleAdmin)).Group(func(r chi.Router) {
			r.Get("/tenants", h.ListTenants)
			r.Post("/tenants", h.CreateTenant)
			r.Get("/tenants/{id}", h.GetTenant)
			r.Put("/tenants/{id}", h.UpdateTenant)
			r.Post("/users", h.CreateUser)
		})
		r.Get("/users", h.ListUsers)
	})
}
