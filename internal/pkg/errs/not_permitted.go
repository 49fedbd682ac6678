package errs

import (
	"errors"
	"fmt"
)

// ErrNotPermitted is the sentinel for callers acting on objects they do not control.
var ErrNotPermitted = errors.New("operation is not permitted")

// NotPermittedError explains why the caller may not perform an operation.
type NotPermittedError struct {
	Reason string
	Cause  error
}

// NewNotPermittedError creates a NotPermittedError with a human-readable reason.
func NewNotPermittedError(reason string) *NotPermittedError {
	return &NotPermittedError{Reason: reason}
}

// NewNotPermittedErrorWithCause creates a NotPermittedError with an underlying cause.
func NewNotPermittedErrorWithCause(reason string, cause error) *NotPermittedError {
	return &NotPermittedError{Reason: reason, Cause: cause}
}

func (e *NotPermittedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrNotPermitted, sanitize(e.Reason)), e.Cause)
}

func (e *NotPermittedError) Unwrap() error {
	return ErrNotPermitted
}
