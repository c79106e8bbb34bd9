package models

import (
	"errors"
	"fmt"
)

// ErrValidation marks input rejected locally, before any network call.
var ErrValidation = errors.New("validation error")

// ValidationError carries the inline message for one form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
