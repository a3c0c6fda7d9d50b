package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/seatwise/seatwise/internal/domain/user"
	"github.com/seatwise/seatwise/internal/middleware"
)

const refreshCookieName = "seatwise_refresh"

func setRefreshCookie(w http.ResponseWriter, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/api/v1/auth",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(maxAge / time.Second),
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/v1/auth",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

// Login handles POST /api/v1/auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.LoginRequest](w, r, maxRequestBodySize)
	if !ok {
		return
	}

	resp, rawRefresh, err := h.Auth.Login(r.Context(), req)
	if err != nil {
		slog.Debug("login failed", "email", req.Email, "error", err)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	setRefreshCookie(w, rawRefresh, 30*24*time.Hour)
	writeJSON(w, http.StatusOK, resp)
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "no refresh token")
		return
	}

	resp, newRawRefresh, err := h.Auth.RefreshTokens(r.Context(), cookie.Value)
	if err != nil {
		slog.Debug("token refresh failed", "error", err)
		clearRefreshCookie(w)
		writeError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	setRefreshCookie(w, newRawRefresh, 30*24*time.Hour)
	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /api/v1/auth/logout.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(refreshCookieName); err == nil {
		if err := h.Auth.Logout(r.Context(), cookie.Value); err != nil {
			slog.Warn("logout failed", "error", err)
		}
	}
	clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me handles GET /api/v1/auth/me.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// CreateUser handles POST /api/v1/users (admin only). The new user joins the
// admin's tenant unless the request names one explicitly.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())
	req, ok := readJSON[user.CreateRequest](w, r, maxRequestBodySize)
	if !ok {
		return
	}
	if req.TenantID == "" {
		req.TenantID = principal.Tenant()
	}

	u, err := h.Auth.Register(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "user not created")
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// ListUsers handles GET /api/v1/users.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	principal := middleware.UserFromContext(r.Context())
	users, err := h.Auth.ListUsers(r.Context(), principal.Tenant())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
