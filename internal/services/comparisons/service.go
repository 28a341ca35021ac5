package comparisons

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"impactcompare/internal/domain"
	"impactcompare/internal/imageref"
	"impactcompare/internal/ports"
)

type Service struct {
	store ports.ComparisonStore
	jobs  ports.JobRepository
	now   func() time.Time
}

func New(store ports.ComparisonStore, jobs ports.JobRepository) *Service {
	return &Service{store: store, jobs: jobs, now: func() time.Time { return time.Now().UTC() }}
}

// Enqueue stores a queued comparison and a job for it.
func (s *Service) Enqueue(ctx context.Context, req domain.AnalysisRequest) (string, error) {
	refA, err := imageref.Parse(req.ImageA)
	if err != nil {
		return "", fmt.Errorf("%w: imageA: %v", domain.ErrInvalidRequest, err)
	}
	refB, err := imageref.Parse(req.ImageB)
	if err != nil {
		return "", fmt.Errorf("%w: imageB: %v", domain.ErrInvalidRequest, err)
	}
	now := s.now()
	c := domain.Comparison{
		ID:            uuid.NewString(),
		Status:        domain.StatusQueued,
		ImageA:        req.ImageA,
		ImageB:        req.ImageB,
		SourceDomainA: refA.SourceDomain,
		SourceDomainB: refB.SourceDomain,
		Context:       req.Ctx(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Save(ctx, c); err != nil {
		return "", err
	}
	if _, err := s.jobs.Enqueue(ctx, c.ID); err != nil {
		return "", err
	}
	return c.ID, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Comparison, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Comparison, error) {
	return s.store.ListAll(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
