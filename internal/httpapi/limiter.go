package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// minIdle is the shortest time a bucket is kept after its last request.
const minIdle = time.Minute

type clientBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// ClientLimiter keeps one token bucket per client host. Buckets idle long
// enough to have refilled completely are dropped on the next sweep, so the
// map only holds clients seen within the last two idle windows.
type ClientLimiter struct {
	mu        sync.Mutex
	m         map[string]*clientBucket
	r         rate.Limit
	b         int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewClientLimiter returns nil when reqPerSec <= 0, which disables limiting.
func NewClientLimiter(reqPerSec float64, burst int) *ClientLimiter {
	if reqPerSec <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	idle := time.Duration(float64(burst) / reqPerSec * float64(time.Second))
	if idle < minIdle {
		idle = minIdle
	}
	return &ClientLimiter{
		m:    make(map[string]*clientBucket),
		r:    rate.Limit(reqPerSec),
		b:    burst,
		idle: idle,
		now:  time.Now,
	}
}

func (cl *ClientLimiter) limiterFor(host string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	if now.Sub(cl.lastSweep) >= cl.idle {
		cl.sweep(now)
	}
	if cb, ok := cl.m[host]; ok {
		cb.seen = now
		return cb.lim
	}
	cb := &clientBucket{lim: rate.NewLimiter(cl.r, cl.b), seen: now}
	cl.m[host] = cb
	return cb.lim
}

// sweep must be called with mu held.
func (cl *ClientLimiter) sweep(now time.Time) {
	for host, cb := range cl.m {
		if now.Sub(cb.seen) >= cl.idle {
			delete(cl.m, host)
		}
	}
	cl.lastSweep = now
}

// Clients reports how many hosts currently hold a bucket.
func (cl *ClientLimiter) Clients() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.m)
}

func (cl *ClientLimiter) Allow(host string) bool {
	return cl.limiterFor(host).Allow()
}

func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return r.RemoteAddr
	}
	return host
}
