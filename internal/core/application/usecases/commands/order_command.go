package commands

import (
	"errors"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var (
	ErrConfirmOrderCommandIsNotConstructed = errors.New(
		"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
	)
	ErrRejectOrderCommandIsNotConstructed = errors.New(
		"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
	)
)

// orderAction is the caller and target shared by confirm and reject.
type orderAction struct {
	userID  kernel.UUID
	assetID kernel.AssetID

	guard guard.ConstructorGuard
}

func newOrderAction(userID kernel.UUID, assetID kernel.AssetID) (orderAction, error) {
	var problems []error
	if err := userID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("user", err))
	}
	if err := assetID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("asset_id", err))
	}
	if err := errors.Join(problems...); err != nil {
		return orderAction{}, err
	}
	return orderAction{userID: userID, assetID: assetID, guard: guard.NewConstructorGuard()}, nil
}

func (a orderAction) UserID() kernel.UUID { return a.userID }
func (a orderAction) AssetID() kernel.AssetID { return a.assetID }

// ConfirmOrderCommand asks to accept an order the caller received.
type ConfirmOrderCommand struct {
	orderAction
}

func NewConfirmOrderCommand(userID kernel.UUID, assetID kernel.AssetID) (ConfirmOrderCommand, error) {
	action, err := newOrderAction(userID, assetID)
	if err != nil {
		return ConfirmOrderCommand{}, err
	}
	return ConfirmOrderCommand{orderAction: action}, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

// RejectOrderCommand asks to hand an order back to the customer who placed it.
type RejectOrderCommand struct {
	orderAction
}

func NewRejectOrderCommand(userID kernel.UUID, assetID kernel.AssetID) (RejectOrderCommand, error) {
	action, err := newOrderAction(userID, assetID)
	if err != nil {
		return RejectOrderCommand{}, err
	}
	return RejectOrderCommand{orderAction: action}, nil
}

func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}
