package comparisonrunner

import (
	"context"
	"log/slog"
	"time"

	"impactcompare/internal/domain"
	"impactcompare/internal/ports"
)

// Processor runs the analysis for a job's comparison id.
type Processor interface {
	Process(ctx context.Context, comparisonID string) (domain.AnalysisResult, error)
}

// AnalysisProcessor loads the stored request and runs the pipeline on it.
type AnalysisProcessor struct {
	Store    ports.ComparisonStore
	Analyzer ports.Analyzer
}

func (p AnalysisProcessor) Process(ctx context.Context, comparisonID string) (domain.AnalysisResult, error) {
	c, err := p.Store.Get(ctx, comparisonID)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	cctx := c.Context
	return p.Analyzer.Analyze(ctx, domain.AnalysisRequest{ImageA: c.ImageA, ImageB: c.ImageB, Context: &cctx})
}

// Run starts worker goroutines that claim jobs and process them.
func Run(ctx context.Context, repo ports.JobRepository, processor Processor, concurrency int, pollInterval time.Duration, logger *slog.Logger) {
	if concurrency < 1 {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	jobsCh := make(chan ports.ComparisonJob, concurrency)

	// dispatcher loop
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		defer close(jobsCh)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for {
					job, found, err := repo.ClaimNext(ctx)
					if err != nil {
						if ctx.Err() == nil {
							logger.Error("job claim error", "error", err)
						}
						break
					}
					if !found {
						break
					}
					select {
					case jobsCh <- job:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	for i := 0; i < concurrency; i++ {
		go func(idx int) {
			for job := range jobsCh {
				finish(ctx, repo, processor, job, logger.With("worker", idx))
			}
		}(i)
	}
}

func finish(ctx context.Context, repo ports.JobRepository, processor Processor, job ports.ComparisonJob, logger *slog.Logger) {
	result, err := processor.Process(ctx, job.ComparisonID)
	if err != nil {
		logger.Warn("comparison failed", "job", job.ID, "comparison", job.ComparisonID, "error", err)
		if err := repo.MarkFailed(ctx, job.ID, err.Error()); err != nil {
			logger.Error("mark failed error", "job", job.ID, "error", err)
		}
		return
	}
	if err := repo.MarkCompleted(ctx, job.ID, result); err != nil {
		logger.Error("mark completed error", "job", job.ID, "error", err)
	}
}

// ProcessInline runs one comparison synchronously with the same processor the
// background workers use, marking its job running, then completed or failed.
func ProcessInline(ctx context.Context, repo ports.JobRepository, processor Processor, comparisonID string) error {
	jobID, err := repo.StartJobForComparison(ctx, comparisonID)
	if err != nil {
		return err
	}
	result, err := processor.Process(ctx, comparisonID)
	if err != nil {
		// The request context may be the reason; record the failure regardless.
		_ = repo.MarkFailed(context.WithoutCancel(ctx), jobID, err.Error())
		return err
	}
	return repo.MarkCompleted(context.WithoutCancel(ctx), jobID, result)
}
