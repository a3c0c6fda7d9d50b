package http

import (
	"net/http"
	"strconv"

	"github.com/seatwise/seatwise/internal/domain/booking"
	"github.com/seatwise/seatwise/internal/middleware"
)

// CreateBooking handles POST /api/v1/bookings. The body may reference the
// tenant, event, and user as bare IDs or embedded objects.
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())
	req, ok := readJSON[booking.CreateRequest](w, r, maxRequestBodySize)
	if !ok {
		return
	}

	b, err := h.Bookings.Book(r.Context(), principal, req)
	if err != nil {
		writeDomainError(w, err, "event not found")
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// MyBookings handles GET /api/v1/bookings/my.
func (h *Handlers) MyBookings(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	bookings, err := h.Bookings.ListForUser(r.Context(), principal, limit)
	if err != nil {
		writeDomainError(w, err, "bookings not listed")
		return
	}
	if bookings == nil {
		bookings = []booking.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// GetBooking handles GET /api/v1/bookings/{id}.
func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())
	b, err := h.Bookings.Get(r.Context(), principal, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// CancelBooking handles POST /api/v1/bookings/{id}/cancel.
func (h *Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())
	b, err := h.Bookings.Cancel(r.Context(), principal, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}
