package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a database transaction boundary. Repositories obtained
// after Begin take part in the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	UserRepository() UserRepository
	IdentityRepository() IdentityRepository
	AddressBookRepository() AddressBookRepository
	SettingRepository() SettingRepository
	PublicationRepository() PublicationRepository
}
