package shop

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dashmarket/storefront/pkg/backend"
	"github.com/dashmarket/storefront/pkg/catalog"
	"github.com/dashmarket/storefront/pkg/guard"
	"github.com/dashmarket/storefront/pkg/logger"
	"github.com/dashmarket/storefront/pkg/ratelimiter"
)

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.health(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "health check failed", logger.Error(err))
		render(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	render(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.client(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	render(w, http.StatusOK, newCartView(c.Cart))
}

func (h *handler) clearCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.client(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	c.Cart.Clear(r.Context())
	render(w, http.StatusOK, newCartView(c.Cart))
}

// addItem fetches the dashboard from the backend so prices never come from
// the browser.
func (h *handler) addItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.client(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	var req addItemRequest
	if err := bindJSON(w, r, &req); err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	id := strings.TrimSpace(string(req.ID))
	if id == "" {
		renderError(w, r, h.logger, ErrBadRequest)
		return
	}

	if c.Cart.Contains(id) {
		render(w, http.StatusOK, addItemResponse{Added: false, Cart: newCartView(c.Cart)})
		return
	}

	d, err := h.backend.Dashboard(r.Context(), id)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	item, err := d.CartItem()
	if err != nil {
		h.logger.WarnContext(r.Context(), "rejected malformed dashboard", logger.ItemID(id), logger.Error(err))
		renderError(w, r, h.logger, err)
		return
	}

	added := c.Cart.Add(r.Context(), item)
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	render(w, status, addItemResponse{Added: added, Cart: newCartView(c.Cart)})
}

func (h *handler) removeItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.client(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	removed := c.Cart.Remove(r.Context(), chi.URLParam(r, "id"))
	render(w, http.StatusOK, removeItemResponse{Removed: removed, Cart: newCartView(c.Cart)})
}

func (h *handler) getSession(w http.ResponseWriter, r *http.Request) {
	c, err := h.client(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	if _, err := c.Guard.Check(r.Context(), guard.Requirement{}); err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	render(w, http.StatusOK, newSessionView(c.Guard.Session()))
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	c, err := h.client(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	var req backend.LoginRequest
	if err := bindJSON(w, r, &req); err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		renderError(w, r, h.logger, ErrBadRequest)
		return
	}

	resp, err := h.backend.Login(r.Context(), req)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	if err := c.Guard.Login(r.Context(), resp.Token, resp.Role); err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	if h.limiter != nil {
		h.limiter.Reset(ratelimiter.ByIP(r))
	}
	h.logger.InfoContext(r.Context(), "visitor logged in", logger.Role(resp.Role))

	view := newSessionView(c.Guard.Session())
	view.Redirect = returnPath(r.URL.Query().Get("from"))
	render(w, http.StatusOK, view)
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	c, err := h.client(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	c.Guard.Logout(r.Context())
	render(w, http.StatusOK, newSessionView(c.Guard.Session()))
}

func (h *handler) checkout(w http.ResponseWriter, r *http.Request) {
	c, err := h.client(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	resp, err := Checkout(r.Context(), c, h.backend)
	if err != nil {
		if he := toHTTPError(err); he.Code == http.StatusUnauthorized {
			he.Redirect = guard.Decision{Redirect: guard.LoginPath}.Location(CheckoutPath)
			render(w, he.Code, he)
			return
		}
		renderError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "purchase completed")
	render(w, http.StatusOK, checkoutResponse{
		Message:        resp.Message,
		RemainingCoins: resp.RemainingCoins,
		Cart:           newCartView(c.Cart),
	})
}

func (h *handler) packs(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, catalog.Packs())
}

func (h *handler) dashboards(w http.ResponseWriter, r *http.Request) {
	list, err := h.backend.Dashboards(r.Context())
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	tech := r.URL.Query().Get("tech")
	if tech == "" {
		tech = catalog.AllTech
	}
	filtered := catalog.FilterByTech(list, tech)
	if filtered == nil {
		filtered = []catalog.Dashboard{}
	}

	render(w, http.StatusOK, catalogResponse{
		Dashboards:   filtered,
		Technologies: catalog.Technologies(list),
		Tech:         tech,
	})
}

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	c, err := h.client(r)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	d, err := h.backend.Dashboard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	render(w, http.StatusOK, dashboardResponse{Dashboard: *d, InCart: c.Cart.Contains(string(d.ID))})
}

func (h *handler) page(w http.ResponseWriter, r *http.Request) {
	sess, _ := guard.FromContext(r.Context())
	render(w, http.StatusOK, pageView{Page: r.URL.Path, Session: newSessionView(sess)})
}

// returnPath accepts only local paths, so the login page cannot be used as
// an open redirect.
func returnPath(from string) string {
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") ||
		strings.HasPrefix(from, "/\\") || strings.HasPrefix(from, guard.LoginPath) {
		return guard.HomePath
	}
	return from
}
