// Package commands contains the operations that change state: ledger writes
// on order assets and the local bookkeeping around them (users, identities,
// address book, settings and the publication log).
// Every command is built by a validating constructor; every handler validates
// the command again before it does any work.
package commands

import (
	"context"

	"ftl/internal/core/ports"
)

// Unit of Work interfaces narrow ports.UnitOfWork to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	IdentityRepoFactory interface {
		IdentityRepository() ports.IdentityRepository
	}

	AddressBookRepoFactory interface {
		AddressBookRepository() ports.AddressBookRepository
	}

	SettingRepoFactory interface {
		SettingRepository() ports.SettingRepository
	}

	PublicationRepoFactory interface {
		PublicationRepository() ports.PublicationRepository
	}

	// SettingUoW is used by the admin-only settings commands.
	SettingUoW interface {
		TxManager
		SettingRepoFactory
	}

	SettingUoWFactory interface {
		Create() SettingUoW
	}

	// AccountUoW covers a user's local records: the user, identities and address book.
	AccountUoW interface {
		TxManager
		UserRepoFactory
		IdentityRepoFactory
		AddressBookRepoFactory
	}

	AccountUoWFactory interface {
		Create() AccountUoW
	}

	// LedgerUoW is used by the commands that write to the ledger. The
	// publication log entry is committed only once the ledger accepted the write.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   identity, err := uow.IdentityRepository().GetActive(ctx, userID, "")
	//   txID, err := ledger.Transfer(ctx, identity.Credentials(), req)
	//   err = uow.PublicationRepository().Add(ctx, record)
	//
	//   err = uow.Commit(ctx)
	LedgerUoW interface {
		TxManager
		IdentityRepoFactory
		AddressBookRepoFactory
		SettingRepoFactory
		PublicationRepoFactory
	}

	LedgerUoWFactory interface {
		Create() LedgerUoW
	}
)
