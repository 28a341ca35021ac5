package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactcompare/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history", "impact.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func comparison(id string, created time.Time) domain.Comparison {
	return domain.Comparison{
		ID:            id,
		Status:        domain.StatusQueued,
		ImageA:        "https://cdn.example.com/a.png",
		ImageB:        "data:image/png;base64,iVBORw0KGgo=",
		SourceDomainA: "example.com",
		Context:       domain.ComparisonContext{UserSegment: "new users", PrimaryMetric: "CTR"},
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := comparison("c1", created)
	require.NoError(t, s.Save(ctx, c))

	got, err := s.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, c, got)
	assert.Nil(t, got.Result)
}

func TestSaveUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := comparison("c1", created)
	require.NoError(t, s.Save(ctx, c))

	c.Status = domain.StatusCompleted
	c.UpdatedAt = created.Add(time.Minute)
	c.Result = &domain.AnalysisResult{
		ScoresA:    domain.ImpactScoreRecord{PredictedCTR: 65, UsabilityRisks: []string{}},
		Disclaimer: domain.Disclaimer,
		Impact:     domain.ImpactData{Confidence: domain.ConfidenceMedium},
	}
	require.NoError(t, s.Save(ctx, c))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.StatusCompleted, all[0].Status)
	require.NotNil(t, all[0].Result)
	assert.Equal(t, 65, all[0].Result.ScoresA.PredictedCTR)
	assert.Equal(t, domain.ConfidenceMedium, all[0].Result.Impact.Confidence)
	assert.Equal(t, created, all[0].CreatedAt)
}

func TestListAllNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "newest", "middle"} {
		offsets := []time.Duration{0, 48 * time.Hour, 24 * time.Hour}
		require.NoError(t, s.Save(ctx, comparison(id, base.Add(offsets[i]))))
	}

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	var ids []string
	for _, c := range all {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"newest", "middle", "old"}, ids)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, comparison("c1", time.Now().UTC())))

	require.NoError(t, s.Delete(ctx, "c1"))
	_, err := s.Get(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "c1"), domain.ErrNotFound)
}

func TestPurgeBefore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save(ctx, comparison("stale", now.AddDate(0, 0, -40))))
	require.NoError(t, s.Save(ctx, comparison("fresh", now.AddDate(0, 0, -1))))

	n, err := s.PurgeBefore(ctx, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "fresh", all[0].ID)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "impact.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), comparison("c1", time.Now().UTC())))
	require.NoError(t, s.Close())

	s, err = Open(context.Background(), path)
	require.NoError(t, err)
	defer s.Close()
	_, err = s.Get(context.Background(), "c1")
	assert.NoError(t, err)
}
