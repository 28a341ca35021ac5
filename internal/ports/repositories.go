package ports

import (
	"context"
	"time"

	"impactcompare/internal/domain"
)

// ComparisonStore persists comparison records keyed by id.
type ComparisonStore interface {
	// Save replaces the record with the same id or inserts a new one.
	Save(ctx context.Context, c domain.Comparison) error
	Get(ctx context.Context, id string) (domain.Comparison, error)
	Delete(ctx context.Context, id string) error
	// ListAll returns every record, newest first.
	ListAll(ctx context.Context) ([]domain.Comparison, error)
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
