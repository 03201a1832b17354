// Package rate keeps one token bucket per client address, guarding the
// credential endpoints against brute forcing. Idle clients are dropped so
// the map does not grow forever.
package rate

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Limiter struct {
	burst  int
	limit  rate.Limit
	expiry time.Duration

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// NewLimiter allows burst immediate attempts per client, refilling at
// limitRPS. A client unseen for expiry minutes is forgotten.
func NewLimiter(burst int, expiry int, limitRPS float64) *Limiter {
	l := &Limiter{
		burst:   burst,
		limit:   rate.Limit(limitRPS),
		expiry:  time.Duration(expiry) * time.Minute,
		clients: make(map[string]*client),
	}
	go l.sweep()
	return l
}

// Check reports whether the client identified by id may proceed.
func (l *Limiter) Check(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[id]
	if !ok {
		c = &client{bucket: rate.NewLimiter(l.limit, l.burst)}
		l.clients[id] = c
	}
	c.lastSeen = time.Now()

	return c.bucket.Allow()
}

func (l *Limiter) sweep() {
	for {
		time.Sleep(time.Minute)

		l.mu.Lock()
		for id, c := range l.clients {
			if time.Since(c.lastSeen) > l.expiry {
				delete(l.clients, id)
			}
		}
		l.mu.Unlock()
	}
}

// Every converts a per-attempt interval into the refill rate NewLimiter
// expects.
func Every(interval time.Duration) float64 {
	return float64(rate.Every(interval))
}
