package cart

import "log/slog"

// DefaultKey is the storage key of the cart snapshot.
const DefaultKey = "cart"

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}
