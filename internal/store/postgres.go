package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kiranshivaraju/reviewpulse/pkg/models"
)

// DBTX is the subset of *pgxpool.Pool the store needs. pgxmock pools satisfy it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close releases the pool if the store owns one.
func (s *PostgresStore) Close(context.Context) error {
	if c, ok := s.db.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}

const reviewColumns = `id, rating, review, ai_response, ai_summary, ai_recommended_actions, created_at, processed_at`

func (s *PostgresStore) InsertReview(ctx context.Context, r *models.ReviewRecord) error {
	actions := r.AIRecommendedActions
	if actions == nil {
		actions = []string{}
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO reviews (`+reviewColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.Rating, r.Review, r.AIResponse, r.AISummary, actions, r.CreatedAt, r.ProcessedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListReviews(ctx context.Context, filter ReviewFilter) ([]*models.ReviewRecord, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews`
	var (
		conds []string
		args  []any
	)

	if filter.Rating != 0 {
		args = append(args, filter.Rating)
		conds = append(conds, fmt.Sprintf("rating = $%d", len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*models.ReviewRecord{}
	for rows.Next() {
		var r models.ReviewRecord
		if err := rows.Scan(&r.ID, &r.Rating, &r.Review, &r.AIResponse, &r.AISummary,
			&r.AIRecommendedActions, &r.CreatedAt, &r.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Store = (*PostgresStore)(nil)
