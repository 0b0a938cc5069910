package types

import (
	"errors"
	"fmt"
)

// Service results are typed instead of collapsing every failure into one
// absence marker: lookups that miss return ErrNotFound, uniqueness clashes
// return ErrConflict, and structural precondition failures return a
// *ValidationError carrying the human-readable cause. Anything else is an
// infrastructure fault and is passed through wrapped.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func Validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
