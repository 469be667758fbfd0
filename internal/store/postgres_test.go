package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kiranshivaraju/reviewpulse/internal/store"
	"github.com/kiranshivaraju/reviewpulse/pkg/models"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewCols = []string{
	"id", "rating", "review", "ai_response", "ai_summary", "ai_recommended_actions", "created_at", "processed_at",
}

func newMockStore(t *testing.T) (*store.PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return store.NewPostgresStore(mock), mock
}

func sampleRecord() *models.ReviewRecord {
	created := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	return &models.ReviewRecord{
		ID:                   "0195932a-6c00-7000-8000-000000000001",
		Rating:               4,
		Review:               "Quick delivery",
		AIResponse:           "Thanks!",
		AISummary:            "Happy customer.",
		AIRecommendedActions: []string{"Keep it up"},
		CreatedAt:            created,
		ProcessedAt:          created.Add(2 * time.Second),
	}
}

func TestPostgres_Ping(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectPing()
	assert.NoError(t, s.Ping(context.Background()))
}

func TestPostgres_PingError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, s.Ping(context.Background()))
}

func TestPostgres_InsertReview(t *testing.T) {
	s, mock := newMockStore(t)
	r := sampleRecord()

	mock.ExpectExec(`INSERT INTO reviews`).
		WithArgs(r.ID, r.Rating, r.Review, r.AIResponse, r.AISummary, r.AIRecommendedActions, r.CreatedAt, r.ProcessedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.InsertReview(context.Background(), r))
}

func TestPostgres_InsertReview_NilActionsStoredAsEmpty(t *testing.T) {
	s, mock := newMockStore(t)
	r := sampleRecord()
	r.AIRecommendedActions = nil

	mock.ExpectExec(`INSERT INTO reviews`).
		WithArgs(r.ID, r.Rating, r.Review, r.AIResponse, r.AISummary, []string{}, r.CreatedAt, r.ProcessedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.InsertReview(context.Background(), r))
}

func TestPostgres_InsertReview_Duplicate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO reviews`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := s.InsertReview(context.Background(), sampleRecord())
	assert.ErrorIs(t, err, store.ErrDuplicateKey)
}

func TestPostgres_InsertReview_Error(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO reviews`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("disk full"))

	err := s.InsertReview(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert review")
}

func TestPostgres_ListReviews_NoFilter(t *testing.T) {
	s, mock := newMockStore(t)
	r := sampleRecord()

	rows := pgxmock.NewRows(reviewCols).
		AddRow(r.ID, r.Rating, r.Review, r.AIResponse, r.AISummary, r.AIRecommendedActions, r.CreatedAt, r.ProcessedAt)
	mock.ExpectQuery(`FROM reviews ORDER BY created_at DESC, id DESC`).WillReturnRows(rows)

	got, err := s.ListReviews(context.Background(), store.ReviewFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, r, got[0])
}

func TestPostgres_ListReviews_Empty(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`FROM reviews`).WillReturnRows(pgxmock.NewRows(reviewCols))

	got, err := s.ListReviews(context.Background(), store.ReviewFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostgres_ListReviews_RatingFilter(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`WHERE rating = \$1 ORDER BY`).
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows(reviewCols))

	_, err := s.ListReviews(context.Background(), store.ReviewFilter{Rating: 3})
	require.NoError(t, err)
}

func TestPostgres_ListReviews_AllFilters(t *testing.T) {
	s, mock := newMockStore(t)
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)

	mock.ExpectQuery(`WHERE rating = \$1 AND created_at >= \$2 AND created_at <= \$3 ORDER BY created_at DESC, id DESC`).
		WithArgs(5, from, to).
		WillReturnRows(pgxmock.NewRows(reviewCols))

	_, err := s.ListReviews(context.Background(), store.ReviewFilter{Rating: 5, From: from, To: to})
	require.NoError(t, err)
}

func TestPostgres_ListReviews_DateOnly(t *testing.T) {
	s, mock := newMockStore(t)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE created_at <= \$1 ORDER BY`).
		WithArgs(to).
		WillReturnRows(pgxmock.NewRows(reviewCols))

	_, err := s.ListReviews(context.Background(), store.ReviewFilter{To: to})
	require.NoError(t, err)
}

func TestPostgres_ListReviews_QueryError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(`FROM reviews`).WillReturnError(errors.New("timeout"))

	_, err := s.ListReviews(context.Background(), store.ReviewFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list reviews")
}

func TestReviewFilter_IsZero(t *testing.T) {
	assert.True(t, store.ReviewFilter{}.IsZero())
	assert.False(t, store.ReviewFilter{Rating: 2}.IsZero())
	assert.False(t, store.ReviewFilter{From: time.Now()}.IsZero())
}

func TestUnconfigured(t *testing.T) {
	var s store.Store = store.Unconfigured{}
	ctx := context.Background()

	assert.ErrorIs(t, s.Ping(ctx), store.ErrNotConfigured)
	assert.ErrorIs(t, s.InsertReview(ctx, sampleRecord()), store.ErrNotConfigured)
	_, err := s.ListReviews(ctx, store.ReviewFilter{})
	assert.ErrorIs(t, err, store.ErrNotConfigured)
	assert.NoError(t, s.Close(ctx))
}
