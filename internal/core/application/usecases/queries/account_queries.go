package queries

import (
	"context"
	"errors"
	"time"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrListAddressesQueryIsNotConstructed = errors.New(
		"ListAddressesQuery must be created via NewListAddressesQuery constructor",
	)
	ErrListIdentitiesQueryIsNotConstructed = errors.New(
		"ListIdentitiesQuery must be created via NewListIdentitiesQuery constructor",
	)
)

type ListAddressesQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListAddressesQuery(userID kernel.UUID) (ListAddressesQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListAddressesQuery{}, errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	return ListAddressesQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAddressesQuery) Validate() error {
	return q.guard.Validate(ErrListAddressesQueryIsNotConstructed)
}

type ListIdentitiesQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListIdentitiesQuery(userID kernel.UUID) (ListIdentitiesQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListIdentitiesQuery{}, errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	return ListIdentitiesQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListIdentitiesQuery) Validate() error {
	return q.guard.Validate(ErrListIdentitiesQueryIsNotConstructed)
}

type AddressResponse struct {
	Alias     string `json:"alias"`
	PublicKey string `json:"public_key"`
}

// IdentityResponse never carries private keys.
type IdentityResponse struct {
	Name      string    `json:"slp_id"`
	PublicKey string    `json:"public_key"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"timestamp"`
}

// AccountQueryHandler reads a user's address book and identities.
//
// Example:
//
//	handler := NewAccountQueryHandler(db)
//	query, _ := NewListAddressesQuery(userID)
//
//	addresses, err := handler.Addresses(ctx, query)
//	if err != nil {
//	    return err
//	}
type AccountQueryHandler struct {
	db *gorm.DB
}

func NewAccountQueryHandler(db *gorm.DB) AccountQueryHandler {
	return AccountQueryHandler{db: db}
}

// Addresses returns the user's address book sorted by alias.
func (h AccountQueryHandler) Addresses(ctx context.Context, query ListAddressesQuery) ([]AddressResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	addresses := make([]AddressResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT alias, public_key
		FROM addresses
		WHERE user_id = ?
		ORDER BY alias
	`, query.userID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a AddressResponse
		if err = rows.Scan(&a.Alias, &a.PublicKey); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return addresses, nil
}

// Identities returns all of the user's identities, newest first.
func (h AccountQueryHandler) Identities(ctx context.Context, query ListIdentitiesQuery) ([]IdentityResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	identities := make([]IdentityResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT name, public_key, active, created_at
		FROM identities
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, query.userID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var i IdentityResponse
		if err = rows.Scan(&i.Name, &i.PublicKey, &i.Active, &i.CreatedAt); err != nil {
			return nil, err
		}
		identities = append(identities, i)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return identities, nil
}
