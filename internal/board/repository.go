package board

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/normalize"
)

// Loader yields the raw records in source order.
type Loader interface {
	Load(ctx context.Context) ([]domain.RawJob, error)
}

// Repository hands out the current normalized collection. Callers must treat
// the returned slice as read-only.
type Repository interface {
	Jobs(ctx context.Context) []domain.Job
}

// OnDemand reloads and renormalizes on every call.
type OnDemand struct {
	Source     Loader
	Normalizer normalize.Normalizer
}

// An unreadable source is an empty board.
func (r OnDemand) Jobs(ctx context.Context) []domain.Job {
	jobs, err := load(ctx, r.Source, r.Normalizer)
	if err != nil {
		log.Warn().Err(err).Msg("job source unavailable; serving empty board")
		return []domain.Job{}
	}
	return jobs
}

func load(ctx context.Context, src Loader, n normalize.Normalizer) ([]domain.Job, error) {
	raws, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return n.Normalize(raws), nil
}

// Cached keeps the last normalized collection until TTL elapses or
// Invalidate is called. A TTL <= 0 means the collection lives until
// invalidated. Concurrent rebuilds are collapsed into one and ignore the
// triggering caller's cancellation.
//
// A failed rebuild leaves the cache stale: the previous collection (or an
// empty board before the first success) is served and the next call retries.
type Cached struct {
	Source     Loader
	Normalizer normalize.Normalizer
	TTL        time.Duration
	// OnReload, when set, runs after every rebuild with the new job count.
	OnReload func(n int)

	now   func() time.Time
	group singleflight.Group

	mu       sync.RWMutex
	jobs     []domain.Job
	loadedAt time.Time
	valid    bool
}

func NewCached(src Loader, n normalize.Normalizer, ttl time.Duration) *Cached {
	return &Cached{Source: src, Normalizer: n, TTL: ttl, now: time.Now}
}

func (c *Cached) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func (c *Cached) Jobs(ctx context.Context) []domain.Job {
	c.mu.RLock()
	jobs, fresh := c.jobs, c.fresh()
	c.mu.RUnlock()
	if fresh {
		return jobs
	}

	v, _, _ := c.group.Do("reload", func() (any, error) {
		// Another caller may have finished a rebuild while we waited.
		c.mu.RLock()
		if c.fresh() {
			jobs := c.jobs
			c.mu.RUnlock()
			return jobs, nil
		}
		c.mu.RUnlock()

		jobs, err := load(context.WithoutCancel(ctx), c.Source, c.Normalizer)
		if err != nil {
			c.mu.RLock()
			prev := c.jobs
			c.mu.RUnlock()
			log.Warn().Err(err).Int("jobs", len(prev)).Msg("job source unavailable; keeping previous board")
			if prev == nil {
				prev = []domain.Job{}
			}
			return prev, nil
		}

		c.mu.Lock()
		c.jobs, c.loadedAt, c.valid = jobs, c.clock(), true
		c.mu.Unlock()

		log.Debug().Int("jobs", len(jobs)).Msg("board reloaded")
		if c.OnReload != nil {
			c.OnReload(len(jobs))
		}
		return jobs, nil
	})
	return v.([]domain.Job)
}

// fresh must be called with mu held.
func (c *Cached) fresh() bool {
	if !c.valid {
		return false
	}
	return c.TTL <= 0 || c.clock().Sub(c.loadedAt) < c.TTL
}

// Invalidate drops the cached collection; the next Jobs call rebuilds it.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}

// LoadedAt reports when the cached collection was last rebuilt.
func (c *Cached) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}
