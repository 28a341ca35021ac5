package ports

import (
	"context"

	"impactcompare/internal/domain"
	"impactcompare/internal/imageref"
)

// VisionBackend answers a prompt about one image with free text.
type VisionBackend interface {
	DescribeImage(ctx context.Context, prompt string, image imageref.Ref) (string, error)
}

// TextBackend answers a system instruction plus user prompt with free text.
type TextBackend interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Analyzer runs the full variant analysis pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error)
}

// Comparisons enqueues and tracks stored comparisons.
type Comparisons interface {
	Enqueue(ctx context.Context, req domain.AnalysisRequest) (id string, err error)
	Get(ctx context.Context, id string) (domain.Comparison, error)
	List(ctx context.Context) ([]domain.Comparison, error)
	Delete(ctx context.Context, id string) error
}
