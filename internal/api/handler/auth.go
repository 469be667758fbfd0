package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/kiranshivaraju/reviewpulse/internal/api/response"
	"github.com/kiranshivaraju/reviewpulse/internal/auth"
)

// SessionManager is the admin session surface the /auth handlers use.
// *auth.Guard satisfies it.
type SessionManager interface {
	Login(password string) (string, time.Time, error)
	Verify(ctx context.Context, token string) (*auth.Session, error)
	Logout(ctx context.Context, token string) error
	SessionCookie(token string) *http.Cookie
	ClearCookie() *http.Cookie
}

// NewLoginHandler returns an http.HandlerFunc for POST /auth.
func NewLoginHandler(sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		// An undecodable body is treated as a missing password.
		_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)

		token, _, err := sm.Login(req.Password)
		switch {
		case errors.Is(err, auth.ErrPasswordRequired):
			response.Error(w, http.StatusBadRequest, response.CodeValidation, "Password is required", nil)
			return
		case errors.Is(err, auth.ErrInvalidPassword):
			slog.Warn("admin login rejected", "remote_addr", r.RemoteAddr)
			response.Error(w, http.StatusUnauthorized, response.CodeInvalidPassword, "Invalid password", nil)
			return
		case err != nil:
			slog.Error("admin login failed", "error", err)
			response.Error(w, http.StatusInternalServerError, response.CodeUnknown,
				"An unexpected error occurred. Please try again.", nil)
			return
		}

		http.SetCookie(w, sm.SessionCookie(token))
		response.OK(w)
	}
}

type sessionStatus struct {
	Authenticated bool `json:"authenticated"`
}

// NewSessionStatusHandler returns an http.HandlerFunc for GET /auth.
func NewSessionStatusHandler(sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := sm.Verify(r.Context(), auth.TokenFromRequest(r)); err != nil {
			response.Raw(w, http.StatusUnauthorized, sessionStatus{Authenticated: false})
			return
		}
		response.Raw(w, http.StatusOK, sessionStatus{Authenticated: true})
	}
}

// NewLogoutHandler returns an http.HandlerFunc for DELETE /auth.
func NewLogoutHandler(sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sm.Logout(r.Context(), auth.TokenFromRequest(r)); err != nil {
			slog.Warn("session revocation failed", "error", err)
		}
		http.SetCookie(w, sm.ClearCookie())
		response.OK(w)
	}
}
