// Package postgres provides the GORM-based Unit of Work over the local relational store:
// users, ledger identities, address books, settings and the publication log.
//
// Repositories obtained from a unit of work after Begin share its transaction;
// before Begin (or after Commit/Rollback) they use the plain connection.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.AddressBookRepository().Add(ctx, address); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"ftl/internal/adapters/out/postgres/accountrepo"
	"ftl/internal/adapters/out/postgres/publicationrepo"
	"ftl/internal/adapters/out/postgres/settingrepo"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates a fresh UnitOfWork per command.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.create()
}

// CreateGorm is Create without the interface conversion, for callers that
// narrow the unit of work to a smaller contract.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return f.create()
}

func (f *GormUnitOfWorkFactory) create() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the
// aggregates written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is open,
// which makes a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return accountrepo.NewGormUserRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) IdentityRepository() ports.IdentityRepository {
	return accountrepo.NewGormIdentityRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AddressBookRepository() ports.AddressBookRepository {
	return accountrepo.NewGormAddressBookRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SettingRepository() ports.SettingRepository {
	return settingrepo.NewGormSettingRepository(uow.conn())
}

func (uow *GormUnitOfWork) PublicationRepository() ports.PublicationRepository {
	return publicationrepo.NewGormPublicationRepository(uow.conn(), uow)
}

// TrackAggregate is called by repositories after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedIDs lists the ids of aggregates written so far, in write order.
func (uow *GormUnitOfWork) TrackedIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(uow.trackedAggregates))
	for i, t := range uow.trackedAggregates {
		ids[i] = t.ID
	}
	return ids
}
