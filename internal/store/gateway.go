package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/kiranshivaraju/reviewpulse/internal/analytics"
	"github.com/kiranshivaraju/reviewpulse/internal/cache"
	"github.com/kiranshivaraju/reviewpulse/pkg/models"
)

const (
	healthCheckTimeout = 2 * time.Second

	// analyticsGenerationTTL is added to the snapshot ttl so a generation
	// counter always outlives the snapshots written under it.
	analyticsGenerationTTL = 24 * time.Hour
)

// Gateway is the persistence boundary the request handlers talk to. It wraps
// a Store with error classification and a short-lived analytics cache.
type Gateway struct {
	store    Store
	cache    cache.Cache
	cacheTTL time.Duration
	loc      *time.Location
	now      func() time.Time
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithAnalyticsCache caches ComputeAnalytics results for ttl. A ttl of 0 disables caching.
func WithAnalyticsCache(c cache.Cache, ttl time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.cache = c
		g.cacheTTL = ttl
	}
}

// WithLocation sets the calendar used for the today and this-week windows.
func WithLocation(loc *time.Location) GatewayOption {
	return func(g *Gateway) { g.loc = loc }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) GatewayOption {
	return func(g *Gateway) { g.now = now }
}

// NewGateway creates a Gateway over s.
func NewGateway(s Store, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		store: s,
		cache: cache.NopCache{},
		loc:   time.Local,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Save inserts a record and moves the analytics cache to a new generation.
// There is no retry.
func (g *Gateway) Save(ctx context.Context, r *models.ReviewRecord) error {
	if err := g.store.InsertReview(ctx, r); err != nil {
		return fmt.Errorf("%w: save review %s: %w", ErrDatabase, r.ID, err)
	}
	if g.cacheTTL > 0 {
		_, err := g.cache.IncrWithExpiry(ctx, cache.AnalyticsGenerationKey(), g.cacheTTL+analyticsGenerationTTL)
		if err != nil && !errors.Is(err, cache.ErrDisabled) {
			slog.Warn("failed to invalidate analytics cache", "error", err)
		}
	}
	return nil
}

// ListAll returns every record, newest first.
func (g *Gateway) ListAll(ctx context.Context) ([]*models.ReviewRecord, error) {
	return g.ListFiltered(ctx, ReviewFilter{})
}

// ListFiltered returns the records matching filter, newest first.
func (g *Gateway) ListFiltered(ctx context.Context, filter ReviewFilter) ([]*models.ReviewRecord, error) {
	reviews, err := g.store.ListReviews(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list reviews: %w", ErrDatabase, err)
	}
	return reviews, nil
}

// ComputeAnalytics aggregates the full record set. Results are served from
// the cache while fresh. Cache failures are logged and fall through to the store.
//
// Snapshots are keyed by the generation read before the store is listed. A
// save that lands mid-computation bumps the generation, so the snapshot it
// races with is written under a key no later reader looks up.
func (g *Gateway) ComputeAnalytics(ctx context.Context) (models.Analytics, error) {
	gen, useCache := g.analyticsGeneration(ctx)
	if useCache {
		if a, ok := g.cachedAnalytics(ctx, gen); ok {
			return a, nil
		}
	}

	records, err := g.ListAll(ctx)
	if err != nil {
		return models.Analytics{}, err
	}
	a := analytics.Compute(records, g.now().In(g.loc))

	if useCache {
		if data, err := json.Marshal(a); err == nil {
			if err := g.cache.Set(ctx, cache.AnalyticsKey(gen), data, g.cacheTTL); err != nil {
				slog.Warn("failed to cache analytics", "error", err)
			}
		}
	}
	return a, nil
}

// analyticsGeneration reports the current generation. A missing counter is
// generation 0. The bool is false when the cache should be skipped.
func (g *Gateway) analyticsGeneration(ctx context.Context) (int64, bool) {
	if g.cacheTTL <= 0 {
		return 0, false
	}
	data, found, err := g.cache.Get(ctx, cache.AnalyticsGenerationKey())
	if err != nil {
		slog.Warn("analytics cache read failed", "error", err)
		return 0, false
	}
	if !found {
		return 0, true
	}
	gen, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		slog.Warn("analytics generation is not a number", "value", string(data))
		return 0, false
	}
	return gen, true
}

func (g *Gateway) cachedAnalytics(ctx context.Context, gen int64) (models.Analytics, bool) {
	data, found, err := g.cache.Get(ctx, cache.AnalyticsKey(gen))
	if err != nil {
		slog.Warn("analytics cache read failed", "error", err)
		return models.Analytics{}, false
	}
	if !found {
		return models.Analytics{}, false
	}
	var a models.Analytics
	if err := json.Unmarshal(data, &a); err != nil || a.RatingDistribution == nil {
		return models.Analytics{}, false
	}
	return a, true
}

// HealthCheck pings the store with a 2s bound. It never returns an error.
func (g *Gateway) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := g.store.Ping(ctx); err != nil {
		slog.Warn("database health check failed", "error", err)
		return false
	}
	return true
}
