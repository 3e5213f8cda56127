package guard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dashmarket/storefront/pkg/logger"
	"github.com/dashmarket/storefront/pkg/storage"
)

// Guard owns the session of one visitor.
type Guard struct {
	mu      sync.RWMutex
	session Session
	// generation increments on every Login/Logout so a slow restoration
	// never overwrites a newer in-memory session.
	generation uint64

	storage        storage.Storage
	key            string
	logger         *slog.Logger
	restoreTimeout time.Duration

	restoreOnce sync.Once
	ready       chan struct{}
}

// New creates an anonymous guard backed by st. The guard is not ready
// until Restore has resolved.
func New(st storage.Storage, opts ...Option) *Guard {
	g := &Guard{
		storage:        st,
		key:            DefaultKey,
		logger:         slog.New(slog.DiscardHandler),
		restoreTimeout: defaultRestoreTimeout,
		ready:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Restore hydrates the session from storage. Only the first call does any
// work; every call returns the same channel, closed once hydration resolved.
// Storage failures and incomplete records leave the session anonymous.
func (g *Guard) Restore(ctx context.Context) <-chan struct{} {
	g.restoreOnce.Do(func() {
		g.mu.RLock()
		gen := g.generation
		g.mu.RUnlock()

		// Restoration outlives the request that triggered it.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.restoreTimeout)
		go func() {
			defer cancel()
			defer close(g.ready)
			g.restore(ctx, gen)
		}()
	})
	return g.ready
}

func (g *Guard) restore(ctx context.Context, gen uint64) {
	if g.storage == nil {
		return
	}

	data, err := g.storage.Get(ctx, g.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			g.logger.WarnContext(ctx, "session restore failed, continuing anonymous", logger.Error(err))
		}
		return
	}

	sess, err := sessionFromRecord(data)
	if err != nil {
		g.logger.WarnContext(ctx, "discarding unusable session record", logger.Error(err))
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.generation != gen {
		return
	}
	g.session = sess
}

// Ready returns the channel closed once Restore has resolved.
func (g *Guard) Ready() <-chan struct{} {
	return g.ready
}

// IsReady reports whether restoration has resolved.
func (g *Guard) IsReady() bool {
	select {
	case <-g.ready:
		return true
	default:
		return false
	}
}

// Login records a session the backend has already validated. The new state
// is visible to the next route decision immediately. A storage failure is
// logged; the in-memory session stays authoritative.
func (g *Guard) Login(ctx context.Context, token, role string) error {
	if token == "" || role == "" {
		return ErrInvalidCredentials
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.generation++
	g.session = Session{Authenticated: true, Role: role, Token: token}

	if g.storage == nil {
		return nil
	}
	data, err := marshalRecord(token, role)
	if err == nil {
		err = g.storage.Set(ctx, g.key, data)
	}
	if err != nil {
		g.logger.ErrorContext(ctx, "failed to persist session record", logger.Error(err))
	}
	return nil
}

// Logout clears the session and its durable record.
func (g *Guard) Logout(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.generation++
	g.session = Session{}

	if g.storage == nil {
		return
	}
	if err := g.storage.Delete(ctx, g.key); err != nil {
		g.logger.ErrorContext(ctx, "failed to delete session record", logger.Error(err))
	}
}

// Session returns a snapshot of the current session.
func (g *Guard) Session() Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}

// Check waits for restoration, then evaluates req against the session.
// It fails with ErrNotReady only if ctx ends first.
func (g *Guard) Check(ctx context.Context, req Requirement) (Decision, error) {
	select {
	case <-g.ready:
	case <-ctx.Done():
		return Decision{}, errors.Join(ErrNotReady, ctx.Err())
	}
	return Evaluate(g.Session(), req), nil
}
