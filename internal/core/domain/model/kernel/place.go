package kernel

import (
	"errors"
	"strings"

	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var ErrPlaceIsNotConstructed = errors.New("Place must be created via NewPlace")

// Place is a named location such as a city or terminal. Places compare by
// exact string value: no case folding and no trimming.
type Place struct {
	name  string
	guard guard.ConstructorGuard
}

// NewPlace wraps name as a Place. Blank names are refused.
func NewPlace(name string) (Place, error) {
	if strings.TrimSpace(name) == "" {
		return Place{}, errs.NewValueIsRequiredError("place")
	}

	return Place{name: name, guard: guard.NewConstructorGuard()}, nil
}

func (p Place) String() string {
	return p.name
}

// Equal reports exact equality of the place names.
func (p Place) Equal(other Place) bool {
	return p.name == other.name
}

// Validate fails for zero-value places.
func (p Place) Validate() error {
	return p.guard.Validate(ErrPlaceIsNotConstructed)
}
