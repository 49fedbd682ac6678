package accountrepo

import (
	"context"
	"errors"

	"ftl/internal/core/domain/model/account"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{db: db, tracker: tracker}
}

func (r *GormUserRepository) Add(ctx context.Context, user *account.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	dto := userFromDomain(user)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("username", err)
		}
		return err
	}

	r.tracker.TrackAggregate(user.ID(), user)
	return nil
}

func (r *GormUserRepository) GetByTokenDigest(ctx context.Context, digest string) (*account.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "token_digest = ?", digest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("token", "***")
		}
		return nil, err
	}
	return userToDomain(dto)
}

func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (*account.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", username)
		}
		return nil, err
	}
	return userToDomain(dto)
}

// GormIdentityRepository implements ports.IdentityRepository using GORM.
type GormIdentityRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormIdentityRepository(db *gorm.DB, tracker aggregateTracker) *GormIdentityRepository {
	return &GormIdentityRepository{db: db, tracker: tracker}
}

func (r *GormIdentityRepository) Add(ctx context.Context, identity *account.Identity) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	dto := identityFromDomain(identity)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("identity", err)
		}
		return err
	}

	r.tracker.TrackAggregate(identity.ID(), identity)
	return nil
}

// GetActive returns the named active identity, or the newest one when name is empty.
func (r *GormIdentityRepository) GetActive(ctx context.Context, userID kernel.UUID, name string) (*account.Identity, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID.Bytes(), true).
		Order("created_at DESC")
	if name != "" {
		query = query.Where("name = ?", name)
	}

	var dto IdentityDTO
	if err := query.First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if name == "" {
				return nil, errs.NewObjectNotFoundError("identity", "active")
			}
			return nil, errs.NewObjectNotFoundError("identity", name)
		}
		return nil, err
	}

	return identityToDomain(dto)
}

func (r *GormIdentityRepository) ListActive(ctx context.Context, userID kernel.UUID) ([]*account.Identity, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []IdentityDTO
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID.Bytes(), true).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	identities := make([]*account.Identity, 0, len(dtos))
	for _, dto := range dtos {
		identity, err := identityToDomain(dto)
		if err != nil {
			return nil, err
		}
		identities = append(identities, identity)
	}

	return identities, nil
}

// GormAddressBookRepository implements ports.AddressBookRepository using GORM.
type GormAddressBookRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormAddressBookRepository(db *gorm.DB, tracker aggregateTracker) *GormAddressBookRepository {
	return &GormAddressBookRepository{db: db, tracker: tracker}
}

// Add fails with errs.ErrValueIsInvalid when the user already uses the alias.
func (r *GormAddressBookRepository) Add(ctx context.Context, address *account.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	dto := addressFromDomain(address)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("alias", err)
		}
		return err
	}

	r.tracker.TrackAggregate(address.ID(), address)
	return nil
}

func (r *GormAddressBookRepository) GetByAlias(ctx context.Context, userID kernel.UUID, alias string) (*account.Address, error) {
	var dto AddressDTO
	err := r.db.WithContext(ctx).
		First(&dto, "user_id = ? AND alias = ?", userID.Bytes(), alias).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("address", alias)
		}
		return nil, err
	}
	return addressToDomain(dto)
}

func (r *GormAddressBookRepository) Remove(ctx context.Context, userID kernel.UUID, alias string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND alias = ?", userID.Bytes(), alias).
		Delete(&AddressDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("address", alias)
	}
	return nil
}
