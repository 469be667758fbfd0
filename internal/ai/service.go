package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kiranshivaraju/reviewpulse/pkg/models"
	"golang.org/x/sync/errgroup"
)

// Call kinds, also used as metric labels.
const (
	KindResponse        = "response"
	KindSummary         = "summary"
	KindRecommendations = "recommendations"
)

// truncationSuffix marks review text cut before prompting.
const truncationSuffix = "..."

// EnrichmentService produces the AI response, summary and recommended actions
// for a review. A nil provider runs in fallback mode.
type EnrichmentService struct {
	provider models.AIProvider
	timeout  time.Duration
}

// NewEnrichmentService creates a new EnrichmentService. timeout bounds each
// of the three generation calls separately.
func NewEnrichmentService(provider models.AIProvider, timeout time.Duration) *EnrichmentService {
	return &EnrichmentService{provider: provider, timeout: timeout}
}

// Enabled reports whether a provider is configured.
func (s *EnrichmentService) Enabled() bool {
	return s.provider != nil
}

// Enrich runs the three generation calls concurrently and waits for all of
// them. A failed, empty, timed out or panicking call degrades only its own
// field to the fallback. The only error is ErrEnrichmentAborted, returned
// when ctx ends first.
func (s *EnrichmentService) Enrich(ctx context.Context, rating int, review string) (models.Enrichment, error) {
	text := TruncateForPrompt(review)

	if s.provider == nil {
		for _, kind := range []string{KindResponse, KindSummary, KindRecommendations} {
			enrichmentCallsTotal.WithLabelValues(kind, outcomeDisabled).Inc()
		}
		return Fallback(rating, text), nil
	}

	var (
		out models.Enrichment
		g   errgroup.Group
	)

	g.Go(func() error {
		completion, ok := s.call(ctx, KindResponse, models.GenerationRequest{
			System:      systemPrompt,
			Prompt:      userResponsePrompt(rating, text),
			MaxTokens:   responseMaxTokens,
			Temperature: responseTemperature,
		})
		if !ok {
			completion = FallbackResponse(rating)
		}
		out.UserResponse = completion
		return nil
	})

	g.Go(func() error {
		completion, ok := s.call(ctx, KindSummary, models.GenerationRequest{
			System:      systemPrompt,
			Prompt:      summaryPrompt(rating, text),
			MaxTokens:   summaryMaxTokens,
			Temperature: summaryTemperature,
		})
		if !ok {
			completion = FallbackSummary(rating, text)
		}
		out.Summary = completion
		return nil
	})

	g.Go(func() error {
		completion, ok := s.call(ctx, KindRecommendations, models.GenerationRequest{
			System:      systemPrompt,
			Prompt:      recommendationsPrompt(rating, text),
			MaxTokens:   recommendationsMaxTokens,
			Temperature: recommendationsTemp,
		})
		var actions []string
		if ok {
			actions = ParseRecommendations(completion)
		}
		if len(actions) == 0 {
			actions = FallbackRecommendations(rating)
		}
		out.RecommendedActions = actions
		return nil
	})

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return models.Enrichment{}, fmt.Errorf("%w: %w", ErrEnrichmentAborted, err)
	}
	return out, nil
}

// call runs one generation with its own deadline. ok is false when the
// fallback must be used.
func (s *EnrichmentService) call(ctx context.Context, kind string, req models.GenerationRequest) (completion string, ok bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		enrichmentCallDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			slog.Error("panic in enrichment call", "kind", kind, "provider", s.provider.Name(), "error", r)
			completion, ok = "", false
		}
		outcome := outcomeSuccess
		if !ok {
			outcome = outcomeFallback
		}
		enrichmentCallsTotal.WithLabelValues(kind, outcome).Inc()
	}()

	completion, err := s.provider.Generate(ctx, req)
	if err == nil && strings.TrimSpace(completion) == "" {
		err = ErrEmptyCompletion
	}
	if err != nil {
		slog.Warn("enrichment call failed, using fallback",
			"kind", kind,
			"provider", s.provider.Name(),
			"error", err,
		)
		return "", false
	}
	return strings.TrimSpace(completion), true
}

// TruncateForPrompt cuts review text longer than models.MaxReviewLength
// characters and appends "...".
func TruncateForPrompt(review string) string {
	if utf8.RuneCountInString(review) <= models.MaxReviewLength {
		return review
	}
	return string([]rune(review)[:models.MaxReviewLength]) + truncationSuffix
}
