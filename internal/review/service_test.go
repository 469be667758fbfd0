package review_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/reviewpulse/internal/ai"
	"github.com/kiranshivaraju/reviewpulse/internal/review"
	"github.com/kiranshivaraju/reviewpulse/internal/store"
	"github.com/kiranshivaraju/reviewpulse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnricher struct {
	out models.Enrichment
	err error
}

func (f *fakeEnricher) Enrich(context.Context, int, string) (models.Enrichment, error) {
	return f.out, f.err
}

type fakeRepo struct {
	mu           sync.Mutex
	saved        []*models.ReviewRecord
	saveErr      error
	listErr      error
	analyticsErr error
	lastFilter   store.ReviewFilter
}

func (f *fakeRepo) Save(_ context.Context, r *models.ReviewRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeRepo) ListFiltered(_ context.Context, filter store.ReviewFilter) ([]*models.ReviewRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.saved, nil
}

func (f *fakeRepo) ComputeAnalytics(context.Context) (models.Analytics, error) {
	if f.analyticsErr != nil {
		return models.Analytics{}, f.analyticsErr
	}
	return models.Analytics{TotalReviews: len(f.saved), RatingDistribution: map[string]int{}}, nil
}

var clock = time.Date(2025, 4, 2, 10, 0, 0, 123456789, time.UTC)

func TestSubmit(t *testing.T) {
	enr := &fakeEnricher{out: models.Enrichment{
		UserResponse:       "Thank you!",
		Summary:            "Happy.",
		RecommendedActions: []string{"Keep going"},
	}}
	repo := &fakeRepo{}
	svc := review.NewService(enr, repo).WithClock(func() time.Time { return clock })

	rec, err := svc.Submit(context.Background(), review.Submission{Rating: 5, Review: "Loved it"})
	require.NoError(t, err)

	id, err := uuid.Parse(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, "Thank you!", rec.AIResponse)
	assert.Equal(t, "Happy.", rec.AISummary)
	assert.Equal(t, []string{"Keep going"}, rec.AIRecommendedActions)
	assert.Equal(t, clock.Truncate(time.Millisecond), rec.CreatedAt)
	assert.False(t, rec.ProcessedAt.Before(rec.CreatedAt))
	require.Len(t, repo.saved, 1)
	assert.Same(t, rec, repo.saved[0])
}

func TestSubmit_WithFallbackEnrichment(t *testing.T) {
	repo := &fakeRepo{}
	svc := review.NewService(ai.NewEnrichmentService(nil, time.Second), repo)

	rec, err := svc.Submit(context.Background(), review.Submission{Rating: 3, Review: ""})
	require.NoError(t, err)
	assert.Equal(t, ai.FallbackResponse(3), rec.AIResponse)
	assert.Len(t, rec.AIRecommendedActions, 3)
}

func TestSubmit_EnrichmentErrorWritesNothing(t *testing.T) {
	repo := &fakeRepo{}
	svc := review.NewService(&fakeEnricher{err: ai.ErrEnrichmentAborted}, repo)

	_, err := svc.Submit(context.Background(), review.Submission{Rating: 2})
	assert.ErrorIs(t, err, review.ErrEnrichment)
	assert.ErrorIs(t, err, ai.ErrEnrichmentAborted)
	assert.Empty(t, repo.saved)
}

func TestSubmit_PersistenceError(t *testing.T) {
	repo := &fakeRepo{saveErr: store.ErrDatabase}
	svc := review.NewService(&fakeEnricher{}, repo)

	_, err := svc.Submit(context.Background(), review.Submission{Rating: 2})
	assert.ErrorIs(t, err, review.ErrPersistence)
	assert.ErrorIs(t, err, store.ErrDatabase)
	assert.NotErrorIs(t, err, review.ErrEnrichment)
}

func TestSubmit_UniqueIDs(t *testing.T) {
	repo := &fakeRepo{}
	svc := review.NewService(&fakeEnricher{}, repo)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		rec, err := svc.Submit(context.Background(), review.Submission{Rating: 4})
		require.NoError(t, err)
		assert.False(t, seen[rec.ID])
		seen[rec.ID] = true
	}
}

func TestList(t *testing.T) {
	repo := &fakeRepo{saved: []*models.ReviewRecord{{ID: "a", Rating: 3}, {ID: "b", Rating: 3}}}
	svc := review.NewService(&fakeEnricher{}, repo)
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	res, err := svc.List(context.Background(), review.ListParams{Rating: 3, From: from})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Reviews, 2)
	assert.Equal(t, 2, res.Analytics.TotalReviews)
	assert.Equal(t, store.ReviewFilter{Rating: 3, From: from}, repo.lastFilter)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	svc := review.NewService(&fakeEnricher{}, &fakeRepo{})

	res, err := svc.List(context.Background(), review.ListParams{})
	require.NoError(t, err)
	assert.NotNil(t, res.Reviews)
	assert.Equal(t, 0, res.Total)
}

func TestList_Errors(t *testing.T) {
	boom := errors.New("boom")
	for name, repo := range map[string]*fakeRepo{
		"list":      {listErr: boom},
		"analytics": {analyticsErr: boom},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := review.NewService(&fakeEnricher{}, repo).List(context.Background(), review.ListParams{})
			assert.ErrorIs(t, err, review.ErrPersistence)
			assert.ErrorIs(t, err, boom)
		})
	}
}
