package errs

import (
	"errors"
	"fmt"
)

// ErrInadmissible is the sentinel for well-formed requests that the current
// state of an object does not allow.
var ErrInadmissible = errors.New("operation is inadmissible")

// InadmissibleError carries a reason and, when known, the expected and actual values.
type InadmissibleError struct {
	Reason   string
	Expected any
	Actual   any
}

// NewInadmissibleError creates an InadmissibleError with a reason only.
func NewInadmissibleError(reason string) *InadmissibleError {
	return &InadmissibleError{Reason: reason}
}

// NewInadmissibleErrorWithValues creates an InadmissibleError recording what
// was expected and what was found.
func NewInadmissibleErrorWithValues(reason string, expected, actual any) *InadmissibleError {
	return &InadmissibleError{Reason: reason, Expected: expected, Actual: actual}
}

func (e *InadmissibleError) Error() string {
	if e.Expected == nil && e.Actual == nil {
		return fmt.Sprintf("%s: %s", ErrInadmissible, sanitize(e.Reason))
	}
	return fmt.Sprintf("%s: %s (expected: %s, actual: %s)",
		ErrInadmissible, sanitize(e.Reason), sanitize(e.Expected), sanitize(e.Actual))
}

func (e *InadmissibleError) Unwrap() error {
	return ErrInadmissible
}
