package shop

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dashmarket/storefront/pkg/guard"
	"github.com/dashmarket/storefront/pkg/ratelimiter"
	"github.com/dashmarket/storefront/pkg/visitor"
)

// CheckoutPath is the page that needs a non-empty cart.
const CheckoutPath = "/checkout"

// Options wires the module. Clients, Backend and Visitors are required.
type Options struct {
	Clients  *Clients
	Backend  Backend
	Visitors *visitor.Manager
	// Routes defaults to guard.DefaultRoutes.
	Routes []guard.Route
	Logger *slog.Logger
	// Health reports storage health on /healthz. Nil means always healthy.
	Health func(context.Context) error
	// LoginLimiter throttles login attempts per client IP when set.
	LoginLimiter *ratelimiter.Limiter
}

type handler struct {
	clients *Clients
	backend Backend
	logger  *slog.Logger
	health  func(context.Context) error
	limiter *ratelimiter.Limiter
}

// Router builds the module router.
func Router(opts Options) chi.Router {
	h := &handler{
		clients: opts.Clients,
		backend: opts.Backend,
		logger:  opts.Logger,
		health:  opts.Health,
		limiter: opts.LoginLimiter,
	}
	if h.logger == nil {
		h.logger = slog.New(slog.DiscardHandler)
	}
	if h.health == nil {
		h.health = func(context.Context) error { return nil }
	}

	routes := opts.Routes
	if routes == nil {
		routes = guard.DefaultRoutes()
	}

	r := chi.NewRouter()
	r.Get("/healthz", h.healthz)

	r.Group(func(r chi.Router) {
		r.Use(opts.Visitors.Middleware, h.withClient)

		r.Route("/api", func(api chi.Router) {
			api.Get("/cart", h.getCart)
			api.Delete("/cart", h.clearCart)
			api.Post("/cart/items", h.addItem)
			api.Delete("/cart/items/{id}", h.removeItem)

			api.Get("/session", h.getSession)
			if h.limiter != nil {
				api.With(ratelimiter.Middleware(h.limiter, ratelimiter.ByIP, h.tooManyRequests)).Post("/auth/login", h.login)
			} else {
				api.Post("/auth/login", h.login)
			}
			api.Post("/auth/logout", h.logout)

			api.Post("/checkout", h.checkout)

			api.Get("/packs", h.packs)
			api.Get("/dashboards", h.dashboards)
			api.Get("/dashboards/{id}", h.dashboard)
		})

		for _, rt := range routes {
			mw := chi.Middlewares{guard.Middleware(h.guardOf, rt.Requirement)}
			if rt.Path == CheckoutPath {
				mw = append(mw, h.requireItems)
			}
			r.With(mw...).Get(rt.Path, h.page)
		}
	})

	return r
}

type clientKey struct{}

// withClient pins the visitor's client for the whole request.
func (h *handler) withClient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitor.FromContext(r.Context())
		if !ok {
			renderError(w, r, h.logger, ErrNoVisitor)
			return
		}
		c, release, err := h.clients.Get(r.Context(), id)
		if err != nil {
			renderError(w, r, h.logger, err)
			return
		}
		defer release()

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), clientKey{}, c)))
	})
}

// client returns the state of the visitor making the request.
func (h *handler) client(r *http.Request) (*Client, error) {
	c, ok := r.Context().Value(clientKey{}).(*Client)
	if !ok {
		return nil, ErrNoVisitor
	}
	return c, nil
}

func (h *handler) guardOf(r *http.Request) (*guard.Guard, error) {
	c, err := h.client(r)
	if err != nil {
		return nil, err
	}
	return c.Guard, nil
}

// requireItems sends visitors with an empty cart back to the cart page.
func (h *handler) requireItems(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := h.client(r)
		if err != nil {
			renderError(w, r, h.logger, err)
			return
		}
		if c.Cart.IsEmpty() {
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) tooManyRequests(w http.ResponseWriter, r *http.Request, _ ratelimiter.Result) {
	h.logger.WarnContext(r.Context(), "login attempts throttled", slog.String("ip", ratelimiter.ByIP(r)))
	render(w, http.StatusTooManyRequests, HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"})
}
