// Package catalog is the boundary between backend catalog data and the cart.
//
// The backend has served dashboards in two shapes over time: "price" or
// "price_coins" for the coin price, "image" or "preview_url" for the
// preview. Dashboard accepts both and CartItem converts it into the single
// canonical cart.Item, rejecting anything the cart could not hold.
package catalog
