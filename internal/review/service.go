package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/reviewpulse/internal/store"
	"github.com/kiranshivaraju/reviewpulse/pkg/models"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEnrichment  = errors.New("review enrichment failed")
	ErrPersistence = errors.New("review persistence failed")
)

// Enricher produces the AI content for a review.
type Enricher interface {
	Enrich(ctx context.Context, rating int, review string) (models.Enrichment, error)
}

// Repository is the persistence the service needs. *store.Gateway satisfies it.
type Repository interface {
	Save(ctx context.Context, r *models.ReviewRecord) error
	ListFiltered(ctx context.Context, filter store.ReviewFilter) ([]*models.ReviewRecord, error)
	ComputeAnalytics(ctx context.Context) (models.Analytics, error)
}

// ListResult is the payload of a review listing.
type ListResult struct {
	Reviews   []*models.ReviewRecord `json:"reviews"`
	Total     int                    `json:"total"`
	Analytics models.Analytics       `json:"analytics"`
}

// Service handles review submissions and listings.
type Service struct {
	enricher Enricher
	repo     Repository
	now      func() time.Time
}

func NewService(enricher Enricher, repo Repository) *Service {
	return &Service{enricher: enricher, repo: repo, now: time.Now}
}

// WithClock overrides time.Now. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// timestamp is UTC with millisecond precision, which every backend round-trips.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// Submit enriches and stores a validated submission. Nothing is written
// unless enrichment succeeds.
func (s *Service) Submit(ctx context.Context, sub Submission) (*models.ReviewRecord, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate review id: %w", err)
	}
	createdAt := s.timestamp()

	enrichment, err := s.enricher.Enrich(ctx, sub.Rating, sub.Review)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnrichment, err)
	}

	record := &models.ReviewRecord{
		ID:                   id.String(),
		Rating:               sub.Rating,
		Review:               sub.Review,
		AIResponse:           enrichment.UserResponse,
		AISummary:            enrichment.Summary,
		AIRecommendedActions: enrichment.RecommendedActions,
		CreatedAt:            createdAt,
		ProcessedAt:          s.timestamp(),
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return record, nil
}

// List fetches matching reviews and analytics over the full record set concurrently.
func (s *Service) List(ctx context.Context, p ListParams) (*ListResult, error) {
	var (
		reviews   []*models.ReviewRecord
		analytics models.Analytics
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		reviews, err = s.repo.ListFiltered(gctx, store.ReviewFilter{Rating: p.Rating, From: p.From, To: p.To})
		return err
	})
	g.Go(func() error {
		var err error
		analytics, err = s.repo.ComputeAnalytics(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if reviews == nil {
		reviews = []*models.ReviewRecord{}
	}
	return &ListResult{Reviews: reviews, Total: len(reviews), Analytics: analytics}, nil
}
