package store

import (
	"context"

	"github.com/kiranshivaraju/reviewpulse/pkg/models"
)

// Unconfigured stands in when no DATABASE_URL is set. Every call fails.
type Unconfigured struct{}

func (Unconfigured) Ping(context.Context) error  { return ErrNotConfigured }
func (Unconfigured) Close(context.Context) error { return nil }

func (Unconfigured) InsertReview(context.Context, *models.ReviewRecord) error {
	return ErrNotConfigured
}

func (Unconfigured) ListReviews(context.Context, ReviewFilter) ([]*models.ReviewRecord, error) {
	return nil, ErrNotConfigured
}

var _ Store = Unconfigured{}
