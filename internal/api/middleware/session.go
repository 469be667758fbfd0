package middleware

import (
	"context"
	"net/http"

	"github.com/kiranshivaraju/reviewpulse/internal/api/response"
	"github.com/kiranshivaraju/reviewpulse/internal/auth"
)

// SessionVerifier checks an admin session token. *auth.Guard satisfies it.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Session, error)
}

// RequireSession rejects requests without a valid admin session cookie.
func RequireSession(v SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := v.Verify(r.Context(), auth.TokenFromRequest(r))
			if err != nil {
				response.Error(w, http.StatusUnauthorized,
					response.CodeUnauthorized, "Admin session required", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetSession(r.Context(), s)))
		})
	}
}
