package account

import (
	"errors"
	"time"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var ErrIdentityIsNotConstructed = errors.New("Identity must be created via NewIdentity or RestoreIdentity")

// Identity is a ledger identity held by a user. A user may hold several; the
// most recently created active one is used unless a request names another.
type Identity struct {
	id        kernel.UUID
	userID    kernel.UUID
	name      string
	keys      ledger.Keys
	active    bool
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewIdentity records keys the ledger issued for name.
func NewIdentity(userID kernel.UUID, name string, keys ledger.Keys, createdAt time.Time) (*Identity, error) {
	return RestoreIdentity(kernel.NewUUID(), userID, name, keys, true, createdAt)
}

// RestoreIdentity rebuilds a persisted identity.
func RestoreIdentity(
	id, userID kernel.UUID,
	name string,
	keys ledger.Keys,
	active bool,
	createdAt time.Time,
) (*Identity, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := userID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("user", err))
	}
	if err := kernel.ValidateIdentifier("identity", name); err != nil {
		problems = append(problems, err)
	}
	if keys.Signing.PublicKey == "" || keys.Signing.PrivateKey == "" {
		problems = append(problems, errs.NewValueIsRequiredError("keypair"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Identity{
		id:        id,
		userID:    userID,
		name:      name,
		keys:      keys,
		active:    active,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (i *Identity) ID() kernel.UUID { return i.id }
func (i *Identity) UserID() kernel.UUID { return i.userID }
func (i *Identity) Name() string { return i.name }
func (i *Identity) Keys() ledger.Keys { return i.keys }
func (i *Identity) PublicKey() string { return i.keys.Signing.PublicKey }
func (i *Identity) IsActive() bool { return i.active }
func (i *Identity) CreatedAt() time.Time { return i.createdAt }

// Credentials returns what the ledger needs to sign on behalf of this identity.
func (i *Identity) Credentials() ledger.Credentials {
	return ledger.Credentials{Identity: i.name, PrivateKey: i.keys.Signing.PrivateKey}
}

// Deactivate stops the identity from being picked by default.
func (i *Identity) Deactivate() {
	i.active = false
}

func (i *Identity) Validate() error {
	return i.guard.Validate(ErrIdentityIsNotConstructed)
}
