package http

import (
	"net/http"
	"strconv"

	"github.com/seatwise/seatwise/internal/domain/notification"
	"github.com/seatwise/seatwise/internal/middleware"
)

// MyNotifications handles GET /api/v1/notifications/my.
func (h *Handlers) MyNotifications(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	ns, err := h.Notifications.ListUnread(r.Context(), principal, limit)
	if err != nil {
		writeDomainError(w, err, "notifications not listed")
		return
	}
	if ns == nil {
		ns = []notification.Notification{}
	}
	writeJSON(w, http.StatusOK, ns)
}

// MarkNotificationRead handles POST /api/v1/notifications/{id}/read.
func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())
	n, err := h.Notifications.MarkRead(r.Context(), principal, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "notification not found")
		return
	}
	writeJSON(w, http.StatusOK, n)
}
