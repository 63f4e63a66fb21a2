package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOrder    = errors.New("invalid order")
	ErrProductNotFound = errors.New("product not found")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrNotFound        = errors.New("order not found")
	ErrInvalidState    = errors.New("invalid state transition")
)

// InsufficientStockError names the product that failed the stock check so the
// caller can surface it. Confirmation is all-or-nothing: when this is
// returned, no stock level has changed.
type InsufficientStockError struct {
	ProductID string
	Title     string
	Requested int
}

func (e *InsufficientStockError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("insufficient stock for %q (requested %d)", e.Title, e.Requested)
	}
	return fmt.Sprintf("insufficient stock for product %s (requested %d)", e.ProductID, e.Requested)
}
