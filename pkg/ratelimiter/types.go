package ratelimiter

import (
	"fmt"
	"time"
)

// Result is the outcome of one Allow call.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is how long a denied caller should wait. Zero when allowed.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

type Config struct {
	Capacity       int           `env:"LOGIN_RATE_CAPACITY" envDefault:"5"`
	RefillRate     int           `env:"LOGIN_RATE_REFILL" envDefault:"1"`
	RefillInterval time.Duration `env:"LOGIN_RATE_INTERVAL" envDefault:"1m"`
	// MaxKeys bounds the number of tracked keys; the least recently seen
	// key is forgotten first.
	MaxKeys int `env:"LOGIN_RATE_MAX_KEYS" envDefault:"100000"`
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	if c.MaxKeys <= 0 {
		return fmt.Errorf("%w: max keys must be positive, got %d", ErrInvalidConfig, c.MaxKeys)
	}
	return nil
}
