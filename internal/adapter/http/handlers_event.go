package http

import (
	"net/http"

	"github.com/seatwise/seatwise/internal/domain/booking"
	"github.com/seatwise/seatwise/internal/domain/event"
	"github.com/seatwise/seatwise/internal/domain/identity"
	"github.com/seatwise/seatwise/internal/middleware"
)

// ListEvents handles GET /api/v1/events.
func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())
	events, err := h.Events.List(r.Context(), principal)
	if err != nil {
		writeDomainError(w, err, "events not listed")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// CreateEvent handles POST /api/v1/events.
func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())
	req, ok := readJSON[event.CreateRequest](w, r, maxRequestBodySize)
	if !ok {
		return
	}

	ev, err := h.Events.Create(r.Context(), principal, req)
	if err != nil {
		writeDomainError(w, err, "event not created")
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// GetEvent handles GET /api/v1/events/{id}.
func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())
	ev, err := h.Events.Get(r.Context(), principal, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// UpdateEvent handles PUT /api/v1/events/{id}.
func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())
	req, ok := readJSON[event.UpdateRequest](w, r, maxRequestBodySize)
	if !ok {
		return
	}

	ev, err := h.Events.Update(r.Context(), principal, urlParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// DeleteEvent handles DELETE /api/v1/events/{id}.
func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())
	if err := h.Events.Delete(r.Context(), principal, urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// BookEvent handles POST /api/v1/events/{id}/book: a shorthand booking create
// with the event taken from the URL.
func (h *Handlers) BookEvent(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())

	req := booking.CreateRequest{Event: identity.FromString(urlParam(r, "id"))}
	b, err := h.Bookings.Book(r.Context(), principal, req)
	if err != nil {
		writeDomainError(w, err, "event not found")
		return
	}
	writeJSON(w, http.StatusCreated, b)
}
