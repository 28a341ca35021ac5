package ports

import (
	"context"

	"impactcompare/internal/domain"
)

type ComparisonJob struct {
	ID           string
	ComparisonID string
}

// JobRepository supports claiming and finishing comparison jobs.
type JobRepository interface {
	Enqueue(ctx context.Context, comparisonID string) (jobID string, err error)
	ClaimNext(ctx context.Context) (job ComparisonJob, found bool, err error)
	StartJobForComparison(ctx context.Context, comparisonID string) (jobID string, err error)
	MarkCompleted(ctx context.Context, jobID string, result domain.AnalysisResult) error
	MarkFailed(ctx context.Context, jobID string, reason string) error
}
