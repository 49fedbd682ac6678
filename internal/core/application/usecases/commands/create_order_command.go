package commands

import (
	"errors"

	"ftl/internal/core/domain/model/account"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand asks to publish a new transport order to a service provider.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(userID, "carrier-co", o, "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	assetID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID          kernel.UUID
	serviceProvider string
	order           order.Order
	identity        string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. serviceProvider is an alias in the
// caller's address book and defaults to account.ServiceProviderAlias. identity
// names the ledger identity to sign with; empty selects the most recent one.
func NewCreateOrderCommand(
	userID kernel.UUID,
	serviceProvider string,
	o order.Order,
	identity string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setServiceProvider(serviceProvider),
		cmd.setOrder(o),
		cmd.setIdentity(identity),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) UserID() kernel.UUID { return c.userID }
func (c CreateOrderCommand) ServiceProvider() string { return c.serviceProvider }
func (c CreateOrderCommand) Order() order.Order { return c.order }
func (c CreateOrderCommand) Identity() string { return c.identity }

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setServiceProvider(alias string) error {
	if alias == "" {
		alias = account.ServiceProviderAlias
	}
	if err := kernel.ValidateIdentifier("service_provider", alias); err != nil {
		return err
	}
	c.serviceProvider = alias
	return nil
}

func (c *CreateOrderCommand) setOrder(o order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	c.order = o
	return nil
}

func (c *CreateOrderCommand) setIdentity(identity string) error {
	if identity == "" {
		return nil
	}
	if err := kernel.ValidateIdentifier("slp_id", identity); err != nil {
		return err
	}
	c.identity = identity
	return nil
}
