package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateOrderNumber is returned by the order repository when the
	// unique index on order_number rejects an insert. Creation retries with a
	// fresh number on this error.
	ErrDuplicateOrderNumber = errors.New("duplicate order number")

	// ErrStoreUnavailable marks operations that cannot proceed because the
	// primary store is unreachable. Catalog reads fall back to the sample
	// dataset instead of returning it; writes surface it.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports a single rejected field. Validation short-circuits,
// so one error carries the whole story.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
