package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrProductHasSales rejects deleting a product that sale records still
	// reference. Referential protection, not a cascade.
	ErrProductHasSales = errors.New("product has sale records and cannot be deleted")

	// ErrActiveAlertExists guards manual un-resolve when the product already
	// carries another unresolved alert.
	ErrActiveAlertExists = errors.New("product already has an active alert")
)

// ValidationError is a user-correctable input error tied to one field.
// Handlers surface it with a 400 and the field name; no mutation happened.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErrorf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsValidationError unwraps err into a ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
