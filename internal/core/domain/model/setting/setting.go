// Package setting models named, administrator-managed configuration values
// stored by the service, such as the ledger asset ids of the SHACL shapes that
// orders and events are validated against.
package setting

import (
	"errors"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

const (
	// OrderShape names the setting holding the shape asset for orders.
	OrderShape = "order_shape"
	// EventShape names the setting holding the shape asset for events.
	EventShape = "event_shape"
)

var ErrSettingIsNotConstructed = errors.New("Setting must be created via NewSetting")

// Setting is a name/value pair. Names are unique.
type Setting struct {
	name  string
	value string

	guard guard.ConstructorGuard
}

func NewSetting(name, value string) (Setting, error) {
	if err := kernel.ValidateIdentifier("setting", name); err != nil {
		return Setting{}, err
	}
	if value == "" {
		return Setting{}, errs.NewValueIsRequiredError("value")
	}
	return Setting{name: name, value: value, guard: guard.NewConstructorGuard()}, nil
}

func (s Setting) Name() string { return s.name }
func (s Setting) Value() string { return s.value }

// ShapeID interprets the value as the ledger asset id of a shape.
func (s Setting) ShapeID() (kernel.AssetID, error) {
	return kernel.NewAssetID(s.value)
}

func (s Setting) Validate() error {
	return s.guard.Validate(ErrSettingIsNotConstructed)
}
