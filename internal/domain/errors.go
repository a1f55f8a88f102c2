package domain

import "errors"

var (
	ErrInvalidQuantity   = errors.New("quantity must be a positive number")
	ErrInsufficientStock = errors.New("not enough stock available")
	ErrNotInCart         = errors.New("product is not in the cart")
)
