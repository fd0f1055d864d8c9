package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for comparison using errors.Is()
var (
	ErrValidation            = errors.New("validation failed")
	ErrInactiveProduct       = errors.New("product is not active")
	ErrInsufficientStock     = errors.New("not enough stock available")
	ErrPurchaseLimitExceeded = errors.New("purchase limit exceeded")
	ErrNotFound              = errors.New("product not found")
)

// ValidationError reports malformed construction or mutation input.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// PurchaseError describes why a single product could not be bought.
// The message leaves the product name out; callers that report it add the name.
type PurchaseError struct {
	ProductName string
	Requested   int
	Available   int // remaining stock, for ErrInsufficientStock
	Limit       int // per-order maximum, for ErrPurchaseLimitExceeded
	Err         error
}

func (e *PurchaseError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInsufficientStock):
		return fmt.Sprintf("%v: requested %d, %d left", e.Err, e.Requested, e.Available)
	case errors.Is(e.Err, ErrPurchaseLimitExceeded):
		return fmt.Sprintf("%v: requested %d, maximum %d per purchase", e.Err, e.Requested, e.Limit)
	default:
		return e.Err.Error()
	}
}

// Unwrap returns the underlying error kind for use with errors.Is/As
func (e *PurchaseError) Unwrap() error {
	return e.Err
}

// IsValidationError checks if an error came from input validation
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsPurchaseError checks if an error is a purchase rule violation
func IsPurchaseError(err error) bool {
	return errors.Is(err, ErrInactiveProduct) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrPurchaseLimitExceeded)
}
