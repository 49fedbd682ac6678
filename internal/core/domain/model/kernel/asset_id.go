package kernel

import (
	"errors"
	"fmt"
	"regexp"

	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var (
	assetIDPattern = regexp.MustCompile(`^[a-z0-9]{64}$`)

	ErrAssetIDIsNotConstructed = errors.New("AssetID must be created via NewAssetID")
)

// AssetID identifies a ledger asset or transaction: 64 lowercase alphanumerics.
type AssetID struct {
	value string
	guard guard.ConstructorGuard
}

// NewAssetID validates s and wraps it as an AssetID.
func NewAssetID(s string) (AssetID, error) {
	if s == "" {
		return AssetID{}, errs.NewValueIsRequiredError("asset_id")
	}
	if !assetIDPattern.MatchString(s) {
		return AssetID{}, errs.NewValueIsInvalidErrorWithCause(
			"asset_id",
			fmt.Errorf("%q must be 64 lowercase letters or digits", s),
		)
	}

	return AssetID{value: s, guard: guard.NewConstructorGuard()}, nil
}

func (a AssetID) String() string {
	return a.value
}

// Equal reports whether both identifiers carry the same value.
func (a AssetID) Equal(other AssetID) bool {
	return a.value == other.value
}

// Validate fails for zero-value identifiers.
func (a AssetID) Validate() error {
	return a.guard.Validate(ErrAssetIDIsNotConstructed)
}
