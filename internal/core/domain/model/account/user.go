package account

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// User is an authenticated caller. Only a digest of the API token is kept.
type User struct {
	id          kernel.UUID
	username    string
	tokenDigest string
	admin       bool

	guard guard.ConstructorGuard
}

// DigestToken returns the stored form of an API token.
func DigestToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// NewUser creates a user with a fresh identifier.
func NewUser(username, tokenDigest string, admin bool) (*User, error) {
	return RestoreUser(kernel.NewUUID(), username, tokenDigest, admin)
}

// RestoreUser rebuilds a persisted user.
func RestoreUser(id kernel.UUID, username, tokenDigest string, admin bool) (*User, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(username) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("username"))
	}
	if tokenDigest == "" {
		problems = append(problems, errs.NewValueIsRequiredError("token"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &User{
		id:          id,
		username:    username,
		tokenDigest: tokenDigest,
		admin:       admin,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (u *User) ID() kernel.UUID { return u.id }
func (u *User) Username() string { return u.username }
func (u *User) TokenDigest() string { return u.tokenDigest }
func (u *User) IsAdmin() bool { return u.admin }

func (u *User) Validate() error {
	return u.guard.Validate(ErrUserIsNotConstructed)
}
