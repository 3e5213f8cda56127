// Package cart implements the visitor's shopping cart: the ordered set of
// dashboard templates a visitor intends to buy.
//
// A Store is the single source of truth for one visitor. Every page that
// reads the cart reads the same Store, so the item list, the total and the
// "already in cart" flag always agree.
//
// Items are unique by ID. Adding an item that is already present is a no-op;
// it does not create a duplicate and it does not update the price. Removing
// an unknown ID is a no-op too. Every mutation writes a snapshot to durable
// storage, so the cart survives restarts:
//
//	store := cart.New(storage.Namespace(base, "visitor:"+id))
//	store.Load(ctx)
//
//	store.Add(ctx, cart.Item{ID: "1", Title: "Analytics", Price: 49, Tech: "React"})
//	store.Contains("1") // true
//	store.Total()       // 49
//
// Derived values are also available as pure functions (Total, Contains) over
// any item slice, so views that hold a copy of the items compute the same
// numbers as the store.
//
// Item shape is checked at the ingestion boundary with Item.Validate. A
// malformed item reaching Add is a programming error and panics.
//
// Persistence failures never fail an operation. The in-memory cart stays
// authoritative for the running process and the failure is logged; the next
// restart falls back to an empty cart.
package cart
