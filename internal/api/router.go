package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	mw "github.com/kiranshivaraju/reviewpulse/internal/api/middleware"
	"github.com/kiranshivaraju/reviewpulse/internal/api/response"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Sessions  mw.SessionVerifier
	RateLimit *mw.RateLimit

	HealthHandler        http.HandlerFunc
	SubmitReviewHandler  http.HandlerFunc
	ListReviewsHandler   http.HandlerFunc
	LoginHandler         http.HandlerFunc
	SessionStatusHandler http.HandlerFunc
	LogoutHandler        http.HandlerFunc

	// MetricsHandler defaults to the Prometheus default registry.
	MetricsHandler http.Handler
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(mw.Metrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, response.CodeNotFound, "Resource not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, response.CodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Get("/health", orNotImplemented(deps.HealthHandler))

	metrics := deps.MetricsHandler
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metrics)

	r.Post("/reviews", orNotImplemented(deps.SubmitReviewHandler))
	r.Get("/reviews", orNotImplemented(deps.ListReviewsHandler))

	loginRoute := chi.Router(r)
	if deps.RateLimit != nil {
		loginRoute = r.With(deps.RateLimit.Limit)
	}
	loginRoute.Post("/auth", orNotImplemented(deps.LoginHandler))
	r.Get("/auth", orNotImplemented(deps.SessionStatusHandler))
	r.Delete("/auth", orNotImplemented(deps.LogoutHandler))

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(requireSession(deps.Sessions))
		r.Get("/admin/reviews", orNotImplemented(deps.ListReviewsHandler))
	})

	return r
}

// requireSession denies every request when no verifier is configured.
func requireSession(v mw.SessionVerifier) func(http.Handler) http.Handler {
	if v != nil {
		return mw.RequireSession(v)
	}
	return func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, "Admin session required", nil)
		})
	}
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
