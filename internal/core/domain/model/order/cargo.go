package order

import (
	"errors"
	"strings"

	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var ErrCargoIsNotConstructed = errors.New("Cargo must be created via NewCargo")

// Cargo describes what is shipped.
type Cargo struct {
	cargoType    string
	packageType  string
	packageCount int

	guard guard.ConstructorGuard
}

// NewCargo validates the cargo description. At least one package is required.
func NewCargo(cargoType, packageType string, packageCount int) (Cargo, error) {
	var problems []error
	if strings.TrimSpace(cargoType) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("cargo_type"))
	}
	if strings.TrimSpace(packageType) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("package_type"))
	}
	if packageCount < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("package_count", packageCount, 1, "unbounded"))
	}
	if err := errors.Join(problems...); err != nil {
		return Cargo{}, err
	}

	return Cargo{
		cargoType:    cargoType,
		packageType:  packageType,
		packageCount: packageCount,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c Cargo) CargoType() string { return c.cargoType }
func (c Cargo) PackageType() string { return c.packageType }
func (c Cargo) PackageCount() int { return c.packageCount }

func (c Cargo) Validate() error {
	return c.guard.Validate(ErrCargoIsNotConstructed)
}
