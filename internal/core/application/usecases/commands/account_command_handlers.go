package commands

import (
	"context"
	"time"

	"ftl/internal/core/domain/model/account"
	"ftl/internal/core/ports"
)

// CreateUserCommandHandler stores a new user with the digest of its token.
type CreateUserCommandHandler struct {
	uowFactory AccountUoWFactory
}

func NewCreateUserCommandHandler(uowFactory AccountUoWFactory) CreateUserCommandHandler {
	return CreateUserCommandHandler{uowFactory: uowFactory}
}

func (h *CreateUserCommandHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*account.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	user, err := account.NewUser(cmd.Username(), account.DigestToken(cmd.Token()), cmd.Admin())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, user); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateIdentityCommandHandler has the ledger mint keys for a new identity and
// keeps them for the user. The new identity becomes the user's default.
type CreateIdentityCommandHandler struct {
	uowFactory AccountUoWFactory
	issuer     ports.IdentityIssuer
}

func NewCreateIdentityCommandHandler(uowFactory AccountUoWFactory, issuer ports.IdentityIssuer) CreateIdentityCommandHandler {
	return CreateIdentityCommandHandler{uowFactory: uowFactory, issuer: issuer}
}

func (h *CreateIdentityCommandHandler) Handle(ctx context.Context, cmd CreateIdentityCommand) (*account.Identity, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	keys, err := h.issuer.CreateIdentity(ctx, cmd.Name())
	if err != nil {
		return nil, err
	}

	identity, err := account.NewIdentity(cmd.UserID(), cmd.Name(), keys, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.IdentityRepository().Add(ctx, identity); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return identity, nil
}

// AddAddressCommandHandler adds an address book entry.
type AddAddressCommandHandler struct {
	uowFactory AccountUoWFactory
}

func NewAddAddressCommandHandler(uowFactory AccountUoWFactory) AddAddressCommandHandler {
	return AddAddressCommandHandler{uowFactory: uowFactory}
}

func (h *AddAddressCommandHandler) Handle(ctx context.Context, cmd AddAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	address, err := account.NewAddress(cmd.UserID(), cmd.Alias(), cmd.PublicKey())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AddressBookRepository().Add(ctx, address); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// DeleteAddressCommandHandler removes an address book entry. Unknown aliases
// yield errs.ErrObjectNotFound.
type DeleteAddressCommandHandler struct {
	uowFactory AccountUoWFactory
}

func NewDeleteAddressCommandHandler(uowFactory AccountUoWFactory) DeleteAddressCommandHandler {
	return DeleteAddressCommandHandler{uowFactory: uowFactory}
}

func (h *DeleteAddressCommandHandler) Handle(ctx context.Context, cmd DeleteAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.AddressBookRepository().Remove(ctx, cmd.UserID(), cmd.Alias()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
