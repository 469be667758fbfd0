package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"
)

// Outcome labels for enrichmentCallsTotal.
const (
	outcomeSuccess  = "success"
	outcomeFallback = "fallback"
	outcomeDisabled = "disabled"
)

var (
	enrichmentCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_calls_total",
			Help: "Generation calls made while enriching reviews, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	enrichmentCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enrichment_call_duration_seconds",
			Help:    "Duration of a single generation call",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"kind"},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ai_circuit_breaker_state",
			Help: "Current state of the AI provider circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"provider"},
	)
)

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
