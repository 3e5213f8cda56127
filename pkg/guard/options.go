package guard

import (
	"log/slog"
	"time"
)

const (
	// DefaultKey is the storage key of the session record.
	DefaultKey = "session"

	defaultRestoreTimeout = 5 * time.Second
)

// Option configures a Guard.
type Option func(*Guard)

// WithLogger sets the logger used to report storage failures.
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRestoreTimeout bounds how long restoration may wait on storage.
// Non-positive values are ignored.
func WithRestoreTimeout(d time.Duration) Option {
	return func(g *Guard) {
		if d > 0 {
			g.restoreTimeout = d
		}
	}
}
