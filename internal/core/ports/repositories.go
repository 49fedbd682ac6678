// Package ports defines the contracts between the application core and its adapters:
// the external ledger, the semantic graph, local persistence and outbound messaging.
package ports

import (
	"context"

	"ftl/internal/core/domain/model/account"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/publication"
	"ftl/internal/core/domain/model/setting"
)

// UserRepository stores users and resolves API tokens.
type UserRepository interface {
	Add(ctx context.Context, user *account.User) error

	// GetByTokenDigest returns the owner of a token digest or errs.ErrObjectNotFound.
	GetByTokenDigest(ctx context.Context, digest string) (*account.User, error)

	GetByUsername(ctx context.Context, username string) (*account.User, error)
}

// IdentityRepository stores ledger identities.
type IdentityRepository interface {
	Add(ctx context.Context, identity *account.Identity) error

	// GetActive returns the user's active identity called name, or the most
	// recently created active identity when name is empty.
	GetActive(ctx context.Context, userID kernel.UUID, name string) (*account.Identity, error)

	// ListActive returns the user's active identities, newest first.
	ListActive(ctx context.Context, userID kernel.UUID) ([]*account.Identity, error)
}

// AddressBookRepository stores address book entries.
type AddressBookRepository interface {
	Add(ctx context.Context, address *account.Address) error
	GetByAlias(ctx context.Context, userID kernel.UUID, alias string) (*account.Address, error)
	Remove(ctx context.Context, userID kernel.UUID, alias string) error
}

// SettingRepository stores global settings.
type SettingRepository interface {
	// Put creates or replaces the setting with the same name.
	Put(ctx context.Context, s setting.Setting) error
	Get(ctx context.Context, name string) (setting.Setting, error)
	Remove(ctx context.Context, name string) error
}

// PublicationRepository appends to the local log of ledger writes.
type PublicationRepository interface {
	Add(ctx context.Context, record *publication.Record) error
}
