// Package accountrepo persists users, their ledger identities and their address books.
package accountrepo

import (
	"time"

	"ftl/internal/core/domain/model/account"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username    string    `gorm:"uniqueIndex;not null"`
	TokenDigest string    `gorm:"uniqueIndex;not null"`
	Admin       bool
}

func (UserDTO) TableName() string {
	return "users"
}

// IdentityDTO stores both keypairs the ledger issued for an identity.
type IdentityDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID `gorm:"type:uuid;index;not null"`
	Name               string    `gorm:"uniqueIndex;not null"`
	PublicKey          string    `gorm:"not null"`
	PrivateKey         string    `gorm:"not null"`
	ReceivedPublicKey  string
	ReceivedPrivateKey string
	Active             bool      `gorm:"index"`
	CreatedAt          time.Time `gorm:"not null"`
}

func (IdentityDTO) TableName() string {
	return "identities"
}

type AddressDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_addresses_user_alias;not null"`
	Alias     string    `gorm:"uniqueIndex:idx_addresses_user_alias;not null"`
	PublicKey string    `gorm:"not null"`
}

func (AddressDTO) TableName() string {
	return "addresses"
}

func userFromDomain(u *account.User) UserDTO {
	return UserDTO{
		ID:          u.ID().Bytes(),
		Username:    u.Username(),
		TokenDigest: u.TokenDigest(),
		Admin:       u.IsAdmin(),
	}
}

func userToDomain(dto UserDTO) (*account.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return account.RestoreUser(id, dto.Username, dto.TokenDigest, dto.Admin)
}

func identityFromDomain(i *account.Identity) IdentityDTO {
	keys := i.Keys()
	return IdentityDTO{
		ID:                 i.ID().Bytes(),
		UserID:             i.UserID().Bytes(),
		Name:               i.Name(),
		PublicKey:          keys.Signing.PublicKey,
		PrivateKey:         keys.Signing.PrivateKey,
		ReceivedPublicKey:  keys.Received.PublicKey,
		ReceivedPrivateKey: keys.Received.PrivateKey,
		Active:             i.IsActive(),
		CreatedAt:          i.CreatedAt(),
	}
}

func identityToDomain(dto IdentityDTO) (*account.Identity, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	keys := ledger.Keys{
		Signing:  ledger.Keypair{PublicKey: dto.PublicKey, PrivateKey: dto.PrivateKey},
		Received: ledger.Keypair{PublicKey: dto.ReceivedPublicKey, PrivateKey: dto.ReceivedPrivateKey},
	}
	return account.RestoreIdentity(id, userID, dto.Name, keys, dto.Active, dto.CreatedAt)
}

func addressFromDomain(a *account.Address) AddressDTO {
	return AddressDTO{
		ID:        a.ID().Bytes(),
		UserID:    a.UserID().Bytes(),
		Alias:     a.Alias(),
		PublicKey: a.PublicKey(),
	}
}

func addressToDomain(dto AddressDTO) (*account.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	return account.RestoreAddress(id, userID, dto.Alias, dto.PublicKey)
}
