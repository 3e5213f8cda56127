package shop

import (
	"context"
	"errors"

	"github.com/dashmarket/storefront/pkg/backend"
	"github.com/dashmarket/storefront/pkg/cart"
	"github.com/dashmarket/storefront/pkg/guard"
)

// Checkout buys everything in the visitor's cart and removes the purchased
// items once the backend confirms. Items added while the purchase is in
// flight stay in the cart. The cart is left untouched on any failure, and a
// token the backend rejects ends the session.
func Checkout(ctx context.Context, c *Client, api Backend) (*backend.PurchaseResponse, error) {
	decision, err := c.Guard.Check(ctx, guard.Requirement{RequireAuth: true})
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, ErrNotAuthenticated
	}

	items := c.Cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	ids := cart.IDs(items)
	resp, err := api.Purchase(ctx, c.Guard.Session().Token, backend.PurchaseRequest{
		DashboardIDs: ids,
		Total:        cart.Total(items),
	})
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			c.Guard.Logout(ctx)
		}
		return nil, err
	}

	c.Cart.RemoveAll(ctx, ids)
	return resp, nil
}
