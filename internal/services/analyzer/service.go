// Package analyzer runs the variant analysis pipeline: concurrent feature
// extraction, heuristic scoring, reasoning and metric aggregation.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"impactcompare/internal/domain"
	"impactcompare/internal/extraction"
	"impactcompare/internal/imageref"
	"impactcompare/internal/metrics"
	"impactcompare/internal/ports"
	"impactcompare/internal/reasoning"
	"impactcompare/internal/scoring"
)

type Service struct {
	extractor *extraction.Extractor
	reasoner  *reasoning.Reasoner
	timeout   time.Duration
	logger    *slog.Logger
}

// New builds the pipeline. timeout bounds each backend call; zero means no
// per-call deadline.
func New(vision ports.VisionBackend, text ports.TextBackend, timeout time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		extractor: extraction.New(vision, logger),
		reasoner:  reasoning.New(text, logger),
		timeout:   timeout,
		logger:    logger,
	}
}

func (s *Service) Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error) {
	refA, err := imageref.Parse(req.ImageA)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: imageA: %v", domain.ErrInvalidRequest, err)
	}
	refB, err := imageref.Parse(req.ImageB)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: imageB: %v", domain.ErrInvalidRequest, err)
	}
	started := time.Now()

	// Either extraction failing cancels the other.
	var (
		featuresA, featuresB domain.VisionFeatureRecord
		degradedA, degradedB bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		callCtx, cancel := s.callContext(gctx)
		defer cancel()
		var err error
		featuresA, degradedA, err = s.extractor.Extract(callCtx, domain.VariantA, refA)
		return err
	})
	g.Go(func() error {
		callCtx, cancel := s.callContext(gctx)
		defer cancel()
		var err error
		featuresB, degradedB, err = s.extractor.Extract(callCtx, domain.VariantB, refB)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.AnalysisResult{}, err
	}
	s.logger.Info("vision analysis complete, applying heuristics")

	scoresA := scoring.Score(featuresA)
	scoresB := scoring.Score(featuresB)

	callCtx, cancel := s.callContext(ctx)
	defer cancel()
	analysis, degradedR, err := s.reasoner.Analyze(callCtx, reasoning.Input{
		FeaturesA: featuresA,
		FeaturesB: featuresB,
		ScoresA:   scoresA,
		ScoresB:   scoresB,
		Context:   req.Ctx(),
	})
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	degraded := degradedA || degradedB || degradedR
	s.logger.Info("analysis complete",
		"duration", time.Since(started).Round(time.Millisecond),
		"confidence", analysis.ProjectedMetrics.Confidence,
		"degraded", degraded)

	return domain.AnalysisResult{
		FeaturesA:  featuresA,
		FeaturesB:  featuresB,
		ScoresA:    scoresA,
		ScoresB:    scoresB,
		Analysis:   analysis,
		Impact:     metrics.Impact(analysis),
		Disclaimer: domain.Disclaimer,
		Degraded:   degraded,
	}, nil
}

func (s *Service) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
