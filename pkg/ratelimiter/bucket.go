package ratelimiter

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// Limiter is a keyed token bucket limiter.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	buckets *expirable.LRU[string, *bucket]
}

func New(cfg Config) (*Limiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// a bucket idle for this long is full again, so forgetting it is lossless
	idle := time.Duration(cfg.Capacity/cfg.RefillRate+1) * cfg.RefillInterval

	return &Limiter{
		cfg:     cfg,
		now:     time.Now,
		buckets: expirable.NewLRU[string, *bucket](cfg.MaxKeys, nil, idle),
	}, nil
}

// Allow consumes one token for key.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets.Get(key)
	if !ok {
		b = &bucket{tokens: l.cfg.Capacity, lastRefill: now}
	}

	// cap intervals so a long idle period cannot overflow
	maxIntervals := int64(l.cfg.Capacity/l.cfg.RefillRate + 1)
	intervals := int(min(int64(now.Sub(b.lastRefill)/l.cfg.RefillInterval), maxIntervals))
	if intervals > 0 {
		b.tokens = min(b.tokens+intervals*l.cfg.RefillRate, l.cfg.Capacity)
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * l.cfg.RefillInterval)
		if b.tokens == l.cfg.Capacity {
			b.lastRefill = now
		}
	}

	// a denied call does not dig the bucket deeper
	remaining := b.tokens - 1
	if remaining >= 0 {
		b.tokens = remaining
	}
	l.buckets.Add(key, b)

	return Result{
		Limit:     l.cfg.Capacity,
		Remaining: remaining,
		ResetAt:   b.lastRefill.Add(l.cfg.RefillInterval),
	}
}

// Reset forgets key, e.g. after a successful login.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buckets.Remove(key)
}
