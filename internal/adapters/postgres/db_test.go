package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactcompare/internal/domain"
)

// connect needs a disposable database; the tests are skipped without one.
func connect(t *testing.T) *DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	_, err = db.Migrate(ctx)
	require.NoError(t, err)
	return db
}

func comparison(status domain.ComparisonStatus) domain.Comparison {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.Comparison{
		ID:            uuid.NewString(),
		Status:        status,
		ImageA:        "data:image/png;base64,AAAA",
		ImageB:        "https://cdn.example.com/b.png",
		SourceDomainB: "example.com",
		Context:       domain.ComparisonContext{PrimaryMetric: "CTR"},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestComparisonRoundTrip(t *testing.T) {
	db := connect(t)
	ctx := context.Background()

	c := comparison(domain.StatusQueued)
	require.NoError(t, db.Save(ctx, c))

	got, err := db.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ImageA, got.ImageA)
	assert.Equal(t, c.ImageB, got.ImageB)
	assert.Equal(t, "CTR", got.Context.PrimaryMetric)
	assert.Nil(t, got.Result)

	require.NoError(t, db.Delete(ctx, c.ID))
	_, err = db.Get(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, db.Delete(ctx, c.ID), domain.ErrNotFound)
}

func TestJobLifecycle(t *testing.T) {
	db := connect(t)
	ctx := context.Background()

	c := comparison(domain.StatusQueued)
	require.NoError(t, db.Save(ctx, c))
	t.Cleanup(func() { _ = db.Delete(context.Background(), c.ID) })

	jobID, err := db.Enqueue(ctx, c.ID)
	require.NoError(t, err)

	started, err := db.StartJobForComparison(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, jobID, started)

	got, err := db.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, got.Status)

	res := domain.AnalysisResult{Disclaimer: domain.Disclaimer}
	require.NoError(t, db.MarkCompleted(ctx, jobID, res))

	got, err = db.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.Result)
	assert.Equal(t, domain.Disclaimer, got.Result.Disclaimer)

	_, err = db.StartJobForComparison(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurgeBefore(t *testing.T) {
	db := connect(t)
	ctx := context.Background()

	old := comparison(domain.StatusCompleted)
	old.CreatedAt = old.CreatedAt.Add(-48 * time.Hour)
	require.NoError(t, db.Save(ctx, old))

	n, err := db.PurgeBefore(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))
	_, err = db.Get(ctx, old.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
