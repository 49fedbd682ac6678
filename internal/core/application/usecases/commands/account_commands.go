package commands

import (
	"errors"
	"strings"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var (
	ErrCreateUserCommandIsNotConstructed     = errors.New("CreateUserCommand must be created via NewCreateUserCommand constructor")
	ErrCreateIdentityCommandIsNotConstructed = errors.New("CreateIdentityCommand must be created via NewCreateIdentityCommand constructor")
	ErrAddAddressCommandIsNotConstructed     = errors.New("AddAddressCommand must be created via NewAddAddressCommand constructor")
	ErrDeleteAddressCommandIsNotConstructed  = errors.New("DeleteAddressCommand must be created via NewDeleteAddressCommand constructor")
)

// CreateUserCommand provisions an API user. Token is the plaintext API token;
// only its digest is stored.
type CreateUserCommand struct {
	username string
	token    string
	admin    bool

	guard guard.ConstructorGuard
}

func NewCreateUserCommand(username, token string, admin bool) (CreateUserCommand, error) {
	var problems []error
	if strings.TrimSpace(username) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("username"))
	}
	if len(token) < 16 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("token length", len(token), 16, "unbounded"))
	}
	if err := errors.Join(problems...); err != nil {
		return CreateUserCommand{}, err
	}
	return CreateUserCommand{username: username, token: token, admin: admin, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

func (c CreateUserCommand) Username() string { return c.username }
func (c CreateUserCommand) Token() string { return c.token }
func (c CreateUserCommand) Admin() bool { return c.admin }

// CreateIdentityCommand asks the ledger for a new identity named name.
type CreateIdentityCommand struct {
	userID kernel.UUID
	name   string

	guard guard.ConstructorGuard
}

func NewCreateIdentityCommand(userID kernel.UUID, name string) (CreateIdentityCommand, error) {
	var problems []error
	if err := userID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("user", err))
	}
	if err := kernel.ValidateIdentifier("slp_id", name); err != nil {
		problems = append(problems, err)
	}
	if err := errors.Join(problems...); err != nil {
		return CreateIdentityCommand{}, err
	}
	return CreateIdentityCommand{userID: userID, name: name, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateIdentityCommand) Validate() error {
	return c.guard.Validate(ErrCreateIdentityCommandIsNotConstructed)
}

func (c CreateIdentityCommand) UserID() kernel.UUID { return c.userID }
func (c CreateIdentityCommand) Name() string { return c.name }

// AddAddressCommand stores a counterpart's public key under an alias.
type AddAddressCommand struct {
	userID    kernel.UUID
	alias     string
	publicKey string

	guard guard.ConstructorGuard
}

func NewAddAddressCommand(userID kernel.UUID, alias, publicKey string) (AddAddressCommand, error) {
	var problems []error
	if err := userID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("user", err))
	}
	if err := kernel.ValidateIdentifier("alias", alias); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(publicKey) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("public_key"))
	}
	if err := errors.Join(problems...); err != nil {
		return AddAddressCommand{}, err
	}
	return AddAddressCommand{userID: userID, alias: alias, publicKey: publicKey, guard: guard.NewConstructorGuard()}, nil
}

func (c AddAddressCommand) Validate() error {
	return c.guard.Validate(ErrAddAddressCommandIsNotConstructed)
}

func (c AddAddressCommand) UserID() kernel.UUID { return c.userID }
func (c AddAddressCommand) Alias() string { return c.alias }
func (c AddAddressCommand) PublicKey() string { return c.publicKey }

// DeleteAddressCommand removes an address book entry.
type DeleteAddressCommand struct {
	userID kernel.UUID
	alias  string

	guard guard.ConstructorGuard
}

func NewDeleteAddressCommand(userID kernel.UUID, alias string) (DeleteAddressCommand, error) {
	var problems []error
	if err := userID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("user", err))
	}
	if err := kernel.ValidateIdentifier("alias", alias); err != nil {
		problems = append(problems, err)
	}
	if err := errors.Join(problems...); err != nil {
		return DeleteAddressCommand{}, err
	}
	return DeleteAddressCommand{userID: userID, alias: alias, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteAddressCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAddressCommandIsNotConstructed)
}

func (c DeleteAddressCommand) UserID() kernel.UUID { return c.userID }
func (c DeleteAddressCommand) Alias() string { return c.alias }
