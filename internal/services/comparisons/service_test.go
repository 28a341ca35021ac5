package comparisons

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactcompare/internal/domain"
	"impactcompare/internal/ports"
)

type memStore struct{ items map[string]domain.Comparison }

func (m *memStore) Save(_ context.Context, c domain.Comparison) error {
	m.items[c.ID] = c
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (domain.Comparison, error) {
	c, ok := m.items[id]
	if !ok {
		return domain.Comparison{}, domain.ErrNotFound
	}
	return c, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memStore) ListAll(context.Context) ([]domain.Comparison, error) {
	out := make([]domain.Comparison, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) PurgeBefore(context.Context, time.Time) (int64, error) { return 0, nil }

type memJobs struct{ enqueued []string }

func (j *memJobs) Enqueue(_ context.Context, id string) (string, error) {
	j.enqueued = append(j.enqueued, id)
	return "job-" + id, nil
}
func (j *memJobs) ClaimNext(context.Context) (ports.ComparisonJob, bool, error) {
	return ports.ComparisonJob{}, false, nil
}
func (j *memJobs) StartJobForComparison(context.Context, string) (string, error) { return "", nil }
func (j *memJobs) MarkCompleted(context.Context, string, domain.AnalysisResult) error {
	return nil
}
func (j *memJobs) MarkFailed(context.Context, string, string) error { return nil }

func TestEnqueue(t *testing.T) {
	store := &memStore{items: map[string]domain.Comparison{}}
	jobs := &memJobs{}
	svc := New(store, jobs)
	fixed := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	id, err := svc.Enqueue(context.Background(), domain.AnalysisRequest{
		ImageA:  "https://images.shop.example.co.uk/a.png",
		ImageB:  "data:image/png;base64,iVBORw0KGgo=",
		Context: &domain.ComparisonContext{UserSegment: "returning buyers"},
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, []string{id}, jobs.enqueued)

	c, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQueued, c.Status)
	assert.Equal(t, "example.co.uk", c.SourceDomainA)
	assert.Empty(t, c.SourceDomainB)
	assert.Equal(t, "returning buyers", c.Context.UserSegment)
	assert.Equal(t, fixed, c.CreatedAt)
}

func TestEnqueueRejectsEmptyImage(t *testing.T) {
	svc := New(&memStore{items: map[string]domain.Comparison{}}, &memJobs{})
	_, err := svc.Enqueue(context.Background(), domain.AnalysisRequest{ImageA: "https://x/a.png"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestListAndDelete(t *testing.T) {
	store := &memStore{items: map[string]domain.Comparison{}}
	svc := New(store, &memJobs{})
	ctx := context.Background()

	a, err := svc.Enqueue(ctx, domain.AnalysisRequest{ImageA: "https://x/a.png", ImageB: "https://x/b.png"})
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Now().UTC().Add(time.Hour) }
	b, err := svc.Enqueue(ctx, domain.AnalysisRequest{ImageA: "https://x/a.png", ImageB: "https://x/b.png"})
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, b, all[0].ID)

	require.NoError(t, svc.Delete(ctx, a))
	assert.ErrorIs(t, svc.Delete(ctx, a), domain.ErrNotFound)
}
