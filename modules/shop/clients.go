package shop

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dashmarket/storefront/pkg/cart"
	"github.com/dashmarket/storefront/pkg/guard"
	"github.com/dashmarket/storefront/pkg/logger"
	"github.com/dashmarket/storefront/pkg/storage"
)

const defaultLoadTimeout = 5 * time.Second

// Client is the state of one visitor.
type Client struct {
	Cart  *cart.Store
	Guard *guard.Guard

	loadOnce    sync.Once
	loadTimeout time.Duration

	// refs counts requests using the client. Guarded by Clients.mu.
	refs int
}

// load hydrates the cart once and starts session restoration. Later calls
// return immediately. Hydration is detached from ctx so an aborted first
// request cannot leave the cart empty for the client's lifetime.
func (c *Client) load(ctx context.Context) {
	c.loadOnce.Do(func() {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()
		// a failed load is logged by the store and leaves an empty cart
		_ = c.Cart.Load(lctx)
	})
	c.Guard.Restore(ctx)
}

// ClientsOption configures Clients.
type ClientsOption func(*Clients)

// WithLoadTimeout bounds cart hydration and session restoration of a new
// client. Non-positive values are ignored.
func WithLoadTimeout(d time.Duration) ClientsOption {
	return func(c *Clients) {
		if d > 0 {
			c.loadTimeout = d
		}
	}
}

// Clients maps visitor IDs to their Client.
type Clients struct {
	mu    sync.Mutex
	cache *lru.Cache[uuid.UUID, *Client]
	// inUse holds clients with active requests, including those the cache
	// has evicted, so a visitor never has two live clients.
	inUse map[uuid.UUID]*Client

	base        storage.Storage
	logger      *slog.Logger
	loadTimeout time.Duration
}

// NewClients creates a registry caching at most capacity visitors on top of
// base. Visitors with requests in flight stay in memory beyond capacity.
func NewClients(base storage.Storage, capacity int, log *slog.Logger, opts ...ClientsOption) (*Clients, error) {
	if base == nil {
		return nil, ErrNoStorage
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	c := &Clients{
		inUse:       make(map[uuid.UUID]*Client),
		base:        base,
		logger:      log,
		loadTimeout: defaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	cache, err := lru.NewWithEvict(capacity, func(id uuid.UUID, _ *Client) {
		c.logger.Debug("visitor evicted from memory", logger.VisitorID(id.String()))
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidCapacity, err)
	}
	c.cache = cache
	return c, nil
}

// Get returns the visitor's client, building and hydrating it on first use.
// The client stays the visitor's only instance until release is called,
// even if the cache evicts it meanwhile. Release is safe to call twice.
func (c *Clients) Get(ctx context.Context, id uuid.UUID) (client *Client, release func(), err error) {
	if id == uuid.Nil {
		return nil, nil, ErrNoVisitor
	}

	c.mu.Lock()
	client, ok := c.cache.Get(id)
	if !ok {
		if client, ok = c.inUse[id]; !ok {
			client = c.build(id)
		}
		c.cache.Add(id, client)
	}
	client.refs++
	c.inUse[id] = client
	c.mu.Unlock()

	client.load(ctx)
	return client, sync.OnceFunc(func() { c.release(id, client) }), nil
}

func (c *Clients) release(id uuid.UUID, client *Client) {
	c.mu.Lock()
	defer c.mu.Unlock()

	client.refs--
	if client.refs == 0 && c.inUse[id] == client {
		delete(c.inUse, id)
	}
}

// Len returns the number of visitors held in the cache.
func (c *Clients) Len() int {
	return c.cache.Len()
}

// Active returns the number of visitors with requests in flight.
func (c *Clients) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inUse)
}

func (c *Clients) build(id uuid.UUID) *Client {
	st := storage.Namespace(c.base, "visitor:"+id.String())
	log := c.logger.With(logger.VisitorID(id.String()))

	return &Client{
		Cart: cart.New(st, cart.WithLogger(log.With(logger.Component("cart")))),
		Guard: guard.New(st,
			guard.WithLogger(log.With(logger.Component("guard"))),
			guard.WithRestoreTimeout(c.loadTimeout),
		),
		loadTimeout: c.loadTimeout,
	}
}
