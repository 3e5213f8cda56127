package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_Allow(t *testing.T) {
	l, err := New(Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute, MaxKeys: 10})
	require.NoError(t, err)

	now := time.Now()
	l.now = func() time.Time { return now }

	assert.Equal(t, 1, l.Allow("a").Remaining)
	assert.Equal(t, 0, l.Allow("a").Remaining)

	denied := l.Allow("a")
	assert.False(t, denied.Allowed())
	assert.Greater(t, denied.RetryAfter(), time.Duration(0))

	t.Run("keys are independent", func(t *testing.T) {
		assert.True(t, l.Allow("b").Allowed())
	})

	t.Run("denials do not drain further", func(t *testing.T) {
		l.Allow("a")
		l.Allow("a")
		now = now.Add(time.Minute)
		assert.Equal(t, 0, l.Allow("a").Remaining)
	})

	t.Run("refills up to capacity", func(t *testing.T) {
		now = now.Add(time.Hour)
		res := l.Allow("a")
		assert.Equal(t, 1, res.Remaining)
		assert.Equal(t, 2, res.Limit)
	})

	t.Run("reset", func(t *testing.T) {
		l.Allow("a")
		l.Reset("a")
		assert.Equal(t, 1, l.Allow("a").Remaining)
	})
}

func TestNew_InvalidConfig(t *testing.T) {
	valid := Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second, MaxKeys: 1}

	for name, mutate := range map[string]func(*Config){
		"capacity": func(c *Config) { c.Capacity = 0 },
		"rate":     func(c *Config) { c.RefillRate = 0 },
		"interval": func(c *Config) { c.RefillInterval = 0 },
		"max keys": func(c *Config) { c.MaxKeys = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			_, err := New(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
