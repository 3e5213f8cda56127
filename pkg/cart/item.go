package cart

import (
	"errors"
	"fmt"
)

// Item is one dashboard template pending purchase.
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Price in coins.
	Price int64  `json:"price"`
	Image string `json:"image"`
	Tech  string `json:"tech"`
}

// Validate reports shape violations. Only ID and Price carry invariants the
// cart depends on.
func (i Item) Validate() error {
	if i.ID == "" {
		return errors.Join(ErrInvalidItem, errors.New("id is required"))
	}
	if i.Price < 0 {
		return errors.Join(ErrInvalidItem, fmt.Errorf("price %d is negative", i.Price))
	}
	return nil
}

// Total sums the prices of items. An empty slice totals zero.
func Total(items []Item) int64 {
	var total int64
	for _, it := range items {
		total += it.Price
	}
	return total
}

// Contains reports whether an item with id is present.
func Contains(items []Item, id string) bool {
	return indexOf(items, id) >= 0
}

// IDs returns item IDs in cart order.
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func indexOf(items []Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
