package board

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/normalize"
	"jobboard-engine/internal/query"
)

// stubSource counts loads and can be told to fail.
type stubSource struct {
	mu    sync.Mutex
	recs  []domain.RawJob
	err   error
	loads atomic.Int32
	delay time.Duration
}

func (s *stubSource) Load(ctx context.Context) ([]domain.RawJob, error) {
	s.loads.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.recs, nil
}

func (s *stubSource) set(recs []domain.RawJob) {
	s.mu.Lock()
	s.recs = recs
	s.mu.Unlock()
}

func records(n int) []domain.RawJob {
	out := make([]domain.RawJob, n)
	for i := range out {
		out[i] = domain.RawJob{
			"title":       "Job",
			"source":      []string{"a", "b", "c"}[i%3],
			"category":    []string{"Eng", "", "Ops"}[i%3],
			"posted_date": time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		}
	}
	return out
}

func TestServiceQuery(t *testing.T) {
	src := &stubSource{recs: records(45)}
	svc := Service{Repo: OnDemand{Source: src}, PageSize: 20}

	res := svc.Query(context.Background(), query.Criteria{}, 3)
	assert.Equal(t, 45, res.Total)
	assert.Equal(t, 45, res.Filtered)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 3, res.Page)
	require.Len(t, res.Jobs, 5)
	// newest first, so the last page holds the oldest postings
	assert.Equal(t, 4, res.Jobs[0].ID)
	assert.Equal(t, 0, res.Jobs[4].ID)

	res = svc.Query(context.Background(), query.Criteria{Source: "a"}, 99)
	assert.Equal(t, 45, res.Total)
	assert.Equal(t, 15, res.Filtered)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.Page)
}

func TestServiceGet(t *testing.T) {
	svc := Service{Repo: OnDemand{Source: &stubSource{recs: records(3)}}}
	ctx := context.Background()

	job, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, job.ID)
	assert.Equal(t, "c", job.Str("source"))

	for _, id := range []int{-1, 3, 100} {
		_, err := svc.Get(ctx, id)
		assert.True(t, errors.Is(err, ErrNotFound), "id %d", id)
	}
}

func TestServiceFacetsAndCount(t *testing.T) {
	svc := Service{Repo: OnDemand{Source: &stubSource{recs: records(6)}}}
	f := svc.Facets(context.Background())
	assert.Equal(t, []string{"a", "b", "c"}, f.Sources)
	assert.Equal(t, []string{"Eng", "Ops"}, f.Categories)
	assert.Equal(t, 6, svc.Count(context.Background()))
}

func TestUnavailableSourceIsEmpty(t *testing.T) {
	svc := Service{Repo: OnDemand{Source: &stubSource{err: errors.New("gone")}}}
	res := svc.Query(context.Background(), query.Criteria{}, 1)
	assert.Equal(t, 0, res.Total)
	assert.NotNil(t, res.Jobs)
	assert.Equal(t, 1, res.TotalPages)

	_, err := svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOnDemandReloadsEveryCall(t *testing.T) {
	src := &stubSource{recs: records(2)}
	repo := OnDemand{Source: src, Normalizer: normalize.Normalizer{}}
	ctx := context.Background()

	assert.Len(t, repo.Jobs(ctx), 2)
	src.set(records(4))
	assert.Len(t, repo.Jobs(ctx), 4)
	assert.EqualValues(t, 2, src.loads.Load())
}

func TestCachedServesUntilInvalidated(t *testing.T) {
	src := &stubSource{recs: records(2)}
	var reloads []int
	c := NewCached(src, normalize.Normalizer{}, 0)
	c.OnReload = func(n int) { reloads = append(reloads, n) }
	ctx := context.Background()

	assert.Len(t, c.Jobs(ctx), 2)
	src.set(records(5))
	assert.Len(t, c.Jobs(ctx), 2, "zero TTL keeps the collection until invalidated")
	assert.EqualValues(t, 1, src.loads.Load())
	assert.False(t, c.LoadedAt().IsZero())

	c.Invalidate()
	assert.Len(t, c.Jobs(ctx), 5)
	assert.Equal(t, []int{2, 5}, reloads)
}

func TestCachedExpiresAfterTTL(t *testing.T) {
	src := &stubSource{recs: records(1)}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewCached(src, normalize.Normalizer{}, time.Minute)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	c.Jobs(ctx)
	now = now.Add(59 * time.Second)
	c.Jobs(ctx)
	assert.EqualValues(t, 1, src.loads.Load())

	now = now.Add(time.Second)
	c.Jobs(ctx)
	assert.EqualValues(t, 2, src.loads.Load())
}

func TestCachedCollapsesConcurrentReloads(t *testing.T) {
	src := &stubSource{recs: records(3), delay: 50 * time.Millisecond}
	c := NewCached(src, normalize.Normalizer{}, 0)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, c.Jobs(context.Background()), 3)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, src.loads.Load())
}

// ctxSource fails whenever the context it is handed is done.
type ctxSource struct {
	recs []domain.RawJob
}

func (s ctxSource) Load(ctx context.Context) ([]domain.RawJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.recs, nil
}

func TestCachedRebuildIgnoresCallerCancellation(t *testing.T) {
	c := NewCached(ctxSource{recs: records(2)}, normalize.Normalizer{}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Len(t, c.Jobs(ctx), 2)
	assert.Len(t, c.Jobs(context.Background()), 2)
}

func TestCachedRetriesAfterFailedRebuild(t *testing.T) {
	src := &stubSource{err: errors.New("locked")}
	var reloads []int
	c := NewCached(src, normalize.Normalizer{}, 0)
	c.OnReload = func(n int) { reloads = append(reloads, n) }
	ctx := context.Background()

	jobs := c.Jobs(ctx)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
	assert.True(t, c.LoadedAt().IsZero())

	src.mu.Lock()
	src.err = nil
	src.recs = records(3)
	src.mu.Unlock()
	assert.Len(t, c.Jobs(ctx), 3, "a failed rebuild is not cached")
	assert.EqualValues(t, 2, src.loads.Load())
	assert.Equal(t, []int{3}, reloads)
}

func TestCachedKeepsPreviousBoardOnFailure(t *testing.T) {
	src := &stubSource{recs: records(4)}
	c := NewCached(src, normalize.Normalizer{}, 0)
	ctx := context.Background()

	require.Len(t, c.Jobs(ctx), 4)
	src.mu.Lock()
	src.err = errors.New("truncated write")
	src.mu.Unlock()

	c.Invalidate()
	assert.Len(t, c.Jobs(ctx), 4)
	assert.Len(t, c.Jobs(ctx), 4)
	assert.EqualValues(t, 3, src.loads.Load(), "each call retries while the source is down")
}
