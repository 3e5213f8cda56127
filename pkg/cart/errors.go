package cart

import "errors"

var (
	// ErrInvalidItem indicates an item that violates the cart item shape.
	ErrInvalidItem = errors.New("cart.invalid_item")

	// ErrUnsupportedSnapshot indicates a snapshot written by an unknown format version.
	ErrUnsupportedSnapshot = errors.New("cart.unsupported_snapshot")
)
