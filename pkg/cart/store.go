package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dashmarket/storefront/pkg/logger"
	"github.com/dashmarket/storefront/pkg/storage"
)

// Store holds one visitor's cart and mirrors every change to durable storage.
type Store struct {
	mu      sync.RWMutex
	items   []Item
	storage storage.Storage
	key     string
	logger  *slog.Logger
}

// New creates an empty store backed by st. Call Load to hydrate it from a
// previous snapshot.
func New(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		items:   []Item{},
		storage: st,
		key:     DefaultKey,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory cart with the persisted snapshot. A missing
// snapshot yields an empty cart without error. An unreadable or corrupt
// snapshot also yields an empty cart; the error is returned for reporting.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []Item{}

	if s.storage == nil {
		return nil
	}

	data, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		s.logger.WarnContext(ctx, "cart snapshot unavailable, starting empty", logger.Error(err))
		return fmt.Errorf("load cart snapshot: %w", err)
	}

	items, dropped, err := UnmarshalSnapshot(data)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding corrupt cart snapshot", logger.Error(err))
		return fmt.Errorf("decode cart snapshot: %w", err)
	}
	if dropped > 0 {
		s.logger.WarnContext(ctx, "dropped malformed cart items", slog.Int("dropped", dropped))
	}

	s.items = items
	return nil
}

// Add appends item unless an item with the same ID is already present.
// It reports whether the cart changed. Add panics on an item that fails
// Validate: callers must check shape at the ingestion boundary.
func (s *Store) Add(ctx context.Context, item Item) bool {
	if err := item.Validate(); err != nil {
		panic(fmt.Sprintf("cart: Add called with malformed item: %v", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if Contains(s.items, item.ID) {
		return false
	}

	s.items = append(s.items, item)
	s.persist(ctx)
	return true
}

// Remove deletes the item with id. Unknown IDs are ignored.
// It reports whether the cart changed.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.items, id)
	if idx < 0 {
		return false
	}

	s.items = slices.Delete(s.items, idx, idx+1)
	s.persist(ctx)
	return true
}

// RemoveAll deletes every item whose ID is in ids and persists once.
// Items added meanwhile under other IDs are kept. It returns the number of
// items removed.
func (s *Store) RemoveAll(ctx context.Context, ids []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(it Item) bool {
		return slices.Contains(ids, it.ID)
	})
	removed := before - len(s.items)
	if removed > 0 {
		s.persist(ctx)
	}
	return removed
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []Item{}
	s.persist(ctx)
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Total returns the sum of item prices.
func (s *Store) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Total(s.items)
}

// Contains reports whether an item with id is in the cart.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Contains(s.items, id)
}

// Len returns the number of items in the cart.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// IsEmpty reports whether the cart holds no items.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// persist writes the snapshot. Must be called with s.mu held.
func (s *Store) persist(ctx context.Context) {
	if s.storage == nil {
		return
	}

	data, err := MarshalSnapshot(s.items)
	if err == nil {
		err = s.storage.Set(ctx, s.key, data)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to persist cart snapshot",
			slog.String("key", s.key),
			slog.Int("items", len(s.items)),
			logger.Error(err),
		)
	}
}
