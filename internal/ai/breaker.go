package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kiranshivaraju/reviewpulse/pkg/models"
	"github.com/sony/gobreaker/v2"
)

// BreakerConfig tunes the circuit breaker placed in front of a provider.
type BreakerConfig struct {
	// MaxRequests is how many trial calls pass while half-open.
	MaxRequests uint32
	// Interval clears the failure counts while closed. 0 never clears.
	Interval time.Duration
	// Timeout is how long the breaker stays open.
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  6,
	}
}

// Breaker decorates a provider with a circuit breaker. While open, calls fail
// immediately with gobreaker.ErrOpenState and never reach the provider.
type Breaker struct {
	provider models.AIProvider
	cb       *gobreaker.CircuitBreaker[string]
}

func NewBreaker(p models.AIProvider, cfg BreakerConfig) *Breaker {
	name := p.Name()
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		// A caller giving up is not a provider failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("ai circuit breaker state change",
				"provider", name,
				"from", from.String(),
				"to", to.String(),
			)
			breakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}
	breakerState.WithLabelValues(name).Set(0)

	return &Breaker{provider: p, cb: gobreaker.NewCircuitBreaker[string](settings)}
}

func (b *Breaker) Name() string { return b.provider.Name() }

func (b *Breaker) Generate(ctx context.Context, req models.GenerationRequest) (string, error) {
	out, err := b.cb.Execute(func() (string, error) {
		return b.provider.Generate(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
	}
	return out, err
}

// State reports the breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

var _ models.AIProvider = (*Breaker)(nil)
