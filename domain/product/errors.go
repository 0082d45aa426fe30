package product

import "errors"

var (
	// ErrProductNotFound indicates no product has the given id.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidTransition indicates the product is not in the status the operation requires.
	ErrInvalidTransition = errors.New("invalid status transition")
)
