// Package main is the entrypoint for the ReviewPulse API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiranshivaraju/reviewpulse/internal/ai"
	"github.com/kiranshivaraju/reviewpulse/internal/api"
	"github.com/kiranshivaraju/reviewpulse/internal/api/handler"
	mw "github.com/kiranshivaraju/reviewpulse/internal/api/middleware"
	"github.com/kiranshivaraju/reviewpulse/internal/api/response"
	"github.com/kiranshivaraju/reviewpulse/internal/auth"
	"github.com/kiranshivaraju/reviewpulse/internal/cache"
	"github.com/kiranshivaraju/reviewpulse/internal/config"
	"github.com/kiranshivaraju/reviewpulse/internal/review"
	"github.com/kiranshivaraju/reviewpulse/internal/store"
	"github.com/kiranshivaraju/reviewpulse/pkg/models"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var rootCmd = &cobra.Command{
	Use:           "reviewpulse",
	Short:         "Customer feedback service with AI-generated replies and analytics",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	setupLogger("info")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("reviewpulse failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1. Load config; fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	setupLogger(cfg.Server.LogLevel)
	slog.Info("config loaded", "ai_provider", cfg.AI.Provider, "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Open the review store (migrations run for Postgres)
	reviewStore, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := reviewStore.Close(closeCtx); err != nil {
			slog.Warn("database close failed", "error", err)
		}
	}()
	if cfg.Database.Driver() == "" {
		slog.Warn("DATABASE_URL not set; review persistence is disabled")
	} else {
		slog.Info("database connected", "driver", cfg.Database.Driver())
	}

	// 3. Redis cache (optional)
	var appCache cache.Cache = cache.NopCache{}
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		appCache = redisCache
		slog.Info("redis connected")
	} else {
		slog.Warn("REDIS_URL not set; analytics caching, login rate limiting and session revocation are disabled")
	}

	// 4. AI provider behind a circuit breaker; no credential means fallback mode
	provider, err := newAIProvider(ctx, cfg.AI)
	if err != nil {
		return err
	}
	enricher := ai.NewEnrichmentService(provider, cfg.AI.Timeout)

	// 5. Services
	loc, err := cfg.Analytics.Location()
	if err != nil {
		return fmt.Errorf("analytics timezone: %w", err)
	}
	gateway := store.NewGateway(reviewStore,
		store.WithAnalyticsCache(appCache, cfg.Analytics.CacheTTL),
		store.WithLocation(loc),
	)
	reviews := review.NewService(enricher, gateway)

	guard, err := auth.NewGuard(cfg.Admin, cfg.Server.IsProduction(), appCache)
	if err != nil {
		return fmt.Errorf("create session guard: %w", err)
	}

	// 6. Build router with dependencies
	router := api.NewRouter(api.Dependencies{
		Sessions:  guard,
		RateLimit: mw.NewRateLimit(appCache, cfg.Admin.MaxAttemptsPerMin),

		HealthHandler:        healthHandler(gateway),
		SubmitReviewHandler:  handler.NewSubmitHandler(reviews),
		ListReviewsHandler:   handler.NewListHandler(reviews),
		LoginHandler:         handler.NewLoginHandler(guard),
		SessionStatusHandler: handler.NewSessionStatusHandler(guard),
		LogoutHandler:        handler.NewLogoutHandler(guard),
	})

	// 7. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// newAIProvider returns nil when the selected provider has no credential.
func newAIProvider(ctx context.Context, cfg config.AIConfig) (models.AIProvider, error) {
	p, err := ai.NewProvider(ctx, cfg)
	if errors.Is(err, ai.ErrNoCredentials) {
		slog.Warn("AI provider has no credential; using fallback responses", "provider", cfg.Provider)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create AI provider: %w", err)
	}
	slog.Info("AI provider initialized", "provider", p.Name())
	return ai.NewBreaker(p, ai.DefaultBreakerConfig()), nil
}

// HealthChecker reports storage reachability. *store.Gateway satisfies it.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

type healthStatus struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Services  healthServices `json:"services"`
}

type healthServices struct {
	Database bool `json:"database"`
	API      bool `json:"api"`
}

// healthHandler reports database reachability; the API is up if it answers.
// A check that panics is reported as "error".
func healthHandler(hc HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbOK, checkErr := runHealthCheck(r.Context(), hc)

		body := healthStatus{
			Status:    "ok",
			Timestamp: time.Now().UTC(),
			Services:  healthServices{Database: dbOK, API: true},
		}
		status := http.StatusOK
		switch {
		case checkErr != nil:
			body.Status = "error"
			status = http.StatusServiceUnavailable
		case !dbOK:
			body.Status = "degraded"
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		response.Raw(w, status, body)
	}
}

func runHealthCheck(ctx context.Context, hc HealthChecker) (ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("health check panicked", "panic", rec)
			ok, err = false, fmt.Errorf("health check panicked: %v", rec)
		}
	}()
	return hc.HealthCheck(ctx), nil
}
