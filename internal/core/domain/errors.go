package domain

import (
	"errors"
	"fmt"
)

// ErrBackendUnavailable indicates that the embedding backend failed to load
// or respond. The Jaccard path stays fully functional when this occurs.
var ErrBackendUnavailable = errors.New("embedding backend unavailable")

// ValidationError reports a recoverable request fault: missing fields, a query
// that is too short, or no usable documents after filtering. It is surfaced to
// the caller as a client-side error and never logged as a system fault.
type ValidationError struct {
	Reason string
}

// NewValidationError creates a ValidationError with a formatted reason.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
