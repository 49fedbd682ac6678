package errs

import (
	"errors"
	"fmt"
)

// ErrCollaboratorFailed is the sentinel for failures of external systems.
var ErrCollaboratorFailed = errors.New("collaborator failed")

// CollaboratorError wraps a failure reported by an external collaborator.
// Message is the collaborator's own text and is passed through to clients.
type CollaboratorError struct {
	Collaborator string
	Message      string
	Cause        error
}

// NewCollaboratorError creates a CollaboratorError carrying the collaborator's message.
func NewCollaboratorError(collaborator, message string) *CollaboratorError {
	return &CollaboratorError{Collaborator: collaborator, Message: message}
}

// NewCollaboratorErrorWithCause creates a CollaboratorError with an underlying cause.
func NewCollaboratorErrorWithCause(collaborator, message string, cause error) *CollaboratorError {
	return &CollaboratorError{Collaborator: collaborator, Message: message, Cause: cause}
}

func (e *CollaboratorError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s: %s", ErrCollaboratorFailed, e.Collaborator, sanitize(e.Message)),
		e.Cause,
	)
}

func (e *CollaboratorError) Unwrap() error {
	return ErrCollaboratorFailed
}

// Detail is Message followed by the messages of nested collaborator errors in
// Cause, outermost first, so the collaborator's own text reaches the client.
func (e *CollaboratorError) Detail() string {
	var inner *CollaboratorError
	if e.Cause != nil && errors.As(e.Cause, &inner) {
		if nested := inner.Detail(); nested != "" && nested != e.Message {
			if e.Message == "" {
				return nested
			}
			return e.Message + ": " + nested
		}
	}
	return e.Message
}
