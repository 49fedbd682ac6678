package commands

import (
	"errors"

	"ftl/internal/core/domain/model/event"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var ErrPostEventCommandIsNotConstructed = errors.New(
	"PostEventCommand must be created via NewPostEventCommand constructor",
)

// PostEventCommand reports a milestone for an order. The event is recorded as a
// transfer of the order asset to the reporting identity.
type PostEventCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	event    event.Event
	identity string

	guard guard.ConstructorGuard
}

// NewPostEventCommand validates the request. identity may be empty to sign with
// the caller's most recent identity.
func NewPostEventCommand(userID kernel.UUID, e event.Event, identity string) (PostEventCommand, error) {
	cmd := PostEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setEvent(e),
		cmd.setIdentity(identity),
	); err != nil {
		return PostEventCommand{}, err
	}

	return cmd, nil
}

func (c PostEventCommand) Validate() error {
	return c.guard.Validate(ErrPostEventCommandIsNotConstructed)
}

func (c PostEventCommand) UserID() kernel.UUID { return c.userID }
func (c PostEventCommand) Event() event.Event { return c.event }
func (c PostEventCommand) Identity() string { return c.identity }

func (c *PostEventCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	c.userID = userID
	return nil
}

func (c *PostEventCommand) setEvent(e event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	c.event = e
	return nil
}

func (c *PostEventCommand) setIdentity(identity string) error {
	if identity == "" {
		return nil
	}
	if err := kernel.ValidateIdentifier("slp_id", identity); err != nil {
		return err
	}
	c.identity = identity
	return nil
}
