package middleware

import (
	"context"
	"net/http"

	"github.com/kiranshivaraju/reviewpulse/internal/auth"
)

type contextKey string

const sessionKey contextKey = "admin_session"

func SetSession(ctx context.Context, s *auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// GetSession returns the admin session RequireSession attached, if any.
func GetSession(r *http.Request) (*auth.Session, bool) {
	s, ok := r.Context().Value(sessionKey).(*auth.Session)
	return s, ok
}
