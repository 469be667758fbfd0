// Package auth guards the admin area with a password login and a signed,
// expiring, revocable session token carried in a cookie.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kiranshivaraju/reviewpulse/internal/cache"
	"github.com/kiranshivaraju/reviewpulse/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// CookieName is the session cookie set on successful login.
const CookieName = "admin_session"

const (
	issuer          = "reviewpulse"
	generatedSecret = 32
)

var (
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrInvalidSession   = errors.New("invalid session")
)

// Session is a verified admin session.
type Session struct {
	ID        string
	ExpiresAt time.Time
}

// Guard issues and verifies admin sessions.
type Guard struct {
	hash   []byte
	secret []byte
	ttl    time.Duration
	secure bool
	cache  cache.Cache
	now    func() time.Time
}

// NewGuard prepares the password hash and signing secret. secure marks the
// cookie Secure. Revocations are kept in c; with a NopCache logout only
// clears the cookie.
func NewGuard(cfg config.AdminConfig, secure bool, c cache.Cache) (*Guard, error) {
	hash := []byte(cfg.PasswordHash)
	if len(hash) > 0 {
		if _, err := bcrypt.Cost(hash); err != nil {
			return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
		}
	} else {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, generatedSecret)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		slog.Warn("SESSION_SECRET not set, sessions will not survive a restart")
	}

	return &Guard{
		hash:   hash,
		secret: secret,
		ttl:    cfg.SessionTTL,
		secure: secure,
		cache:  c,
		now:    time.Now,
	}, nil
}

// WithClock overrides time.Now. Intended for tests.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// Login checks password and returns a signed session token.
func (g *Guard) Login(password string) (string, time.Time, error) {
	if password == "" {
		return "", time.Time{}, ErrPasswordRequired
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidPassword
	}

	now := g.now().UTC()
	expires := now.Add(g.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, expires, nil
}

func (g *Guard) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing token id", ErrInvalidSession)
	}
	return claims, nil
}

// Verify checks the token signature, expiry and revocation. A failing
// revocation lookup rejects the session.
func (g *Guard) Verify(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	claims, err := g.parse(token)
	if err != nil {
		return nil, err
	}

	_, revoked, err := g.cache.Get(ctx, cache.RevokedSessionKey(claims.ID))
	if err != nil {
		return nil, fmt.Errorf("%w: revocation lookup: %w", ErrInvalidSession, err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: revoked", ErrInvalidSession)
	}
	return &Session{ID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Logout revokes token until it would have expired. Invalid or expired
// tokens need no revocation.
func (g *Guard) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := g.parse(token)
	if err != nil {
		return nil
	}
	remaining := claims.ExpiresAt.Sub(g.now())
	if remaining < time.Second {
		remaining = time.Second
	}
	if err := g.cache.Set(ctx, cache.RevokedSessionKey(claims.ID), []byte("1"), remaining); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// SessionCookie carries token to the browser.
func (g *Guard) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(g.ttl / time.Second),
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie.
func (g *Guard) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// TokenFromRequest returns the session cookie value, or "".
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
