package account

import (
	"errors"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress or RestoreAddress")

// ServiceProviderAlias is the address book entry orders are sent to.
const ServiceProviderAlias = "service_provider"

// Address is an address book entry: a counterpart's public key under an alias
// chosen by the owning user.
type Address struct {
	id        kernel.UUID
	userID    kernel.UUID
	alias     string
	publicKey string

	guard guard.ConstructorGuard
}

// NewAddress creates an address book entry.
func NewAddress(userID kernel.UUID, alias, publicKey string) (*Address, error) {
	return RestoreAddress(kernel.NewUUID(), userID, alias, publicKey)
}

// RestoreAddress rebuilds a persisted entry.
func RestoreAddress(id, userID kernel.UUID, alias, publicKey string) (*Address, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := userID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("user", err))
	}
	if err := kernel.ValidateIdentifier("alias", alias); err != nil {
		problems = append(problems, err)
	}
	if publicKey == "" {
		problems = append(problems, errs.NewValueIsRequiredError("public_key"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Address{
		id:        id,
		userID:    userID,
		alias:     alias,
		publicKey: publicKey,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (a *Address) ID() kernel.UUID { return a.id }
func (a *Address) UserID() kernel.UUID { return a.userID }
func (a *Address) Alias() string { return a.alias }
func (a *Address) PublicKey() string { return a.publicKey }

func (a *Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}
