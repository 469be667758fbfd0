package store

import (
	"context"
	"errors"
	"time"

	"github.com/kiranshivaraju/reviewpulse/pkg/models"
)

var (
	// ErrDatabase marks every failure that originates in the backing store.
	ErrDatabase = errors.New("database error")
	// ErrNotConfigured is returned by every call when DATABASE_URL is unset.
	ErrNotConfigured = errors.New("database not configured")
	ErrDuplicateKey  = errors.New("duplicate key violation")
)

// Store is the data access interface. All database operations go through here.
// Listing always orders by created_at DESC, then id DESC.
type Store interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	InsertReview(ctx context.Context, review *models.ReviewRecord) error
	ListReviews(ctx context.Context, filter ReviewFilter) ([]*models.ReviewRecord, error)
}

// ReviewFilter narrows ListReviews. Zero values mean "no constraint";
// From and To are inclusive.
type ReviewFilter struct {
	Rating int
	From   time.Time
	To     time.Time
}

// IsZero reports whether the filter matches every record.
func (f ReviewFilter) IsZero() bool {
	return f.Rating == 0 && f.From.IsZero() && f.To.IsZero()
}
