package shop

import (
	"github.com/dashmarket/storefront/pkg/cart"
	"github.com/dashmarket/storefront/pkg/catalog"
	"github.com/dashmarket/storefront/pkg/guard"
)

type cartView struct {
	Items []cart.Item `json:"items"`
	Total int64       `json:"total"`
	Count int         `json:"count"`
}

func newCartView(s *cart.Store) cartView {
	items := s.Items()
	if items == nil {
		items = []cart.Item{}
	}
	return cartView{Items: items, Total: cart.Total(items), Count: len(items)}
}

type sessionView struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	// Redirect is where the visitor should land after logging in.
	Redirect string `json:"redirect,omitempty"`
}

func newSessionView(s guard.Session) sessionView {
	return sessionView{Authenticated: s.Authenticated, Role: s.Role}
}

type addItemRequest struct {
	ID catalog.ID `json:"id"`
}

type addItemResponse struct {
	Added bool     `json:"added"`
	Cart  cartView `json:"cart"`
}

type removeItemResponse struct {
	Removed bool     `json:"removed"`
	Cart    cartView `json:"cart"`
}

type checkoutResponse struct {
	Message        string   `json:"message,omitempty"`
	RemainingCoins *int64   `json:"remaining_coins,omitempty"`
	Cart           cartView `json:"cart"`
}

type catalogResponse struct {
	Dashboards   []catalog.Dashboard `json:"dashboards"`
	Technologies []string            `json:"technologies"`
	Tech         string              `json:"tech"`
}

type dashboardResponse struct {
	Dashboard catalog.Dashboard `json:"dashboard"`
	InCart    bool              `json:"in_cart"`
}

type pageView struct {
	Page    string      `json:"page"`
	Session sessionView `json:"session"`
}
