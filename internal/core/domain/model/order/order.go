package order

import (
	"errors"
	"time"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder")

// Endpoint names one end of an order's route.
type Endpoint int

const (
	PlaceOfAcceptance Endpoint = iota + 1
	PlaceOfDelivery
)

// String returns the field name used in requests and error messages.
func (e Endpoint) String() string {
	switch e {
	case PlaceOfAcceptance:
		return "place_of_acceptance"
	case PlaceOfDelivery:
		return "place_of_delivery"
	default:
		return "unknown_endpoint"
	}
}

// Order is the immutable content of a freight order: the cargo, where and when
// it is accepted, and where and when it must be delivered.
//
// Example:
//
//	cargo, _ := order.NewCargo("pallets", "crate", 12)
//	from, _ := kernel.NewPlace("Soesterberg")
//	to, _ := kernel.NewPlace("Den Haag")
//	o, err := order.NewOrder("REF-1", cargo, from, pickup, to, dropoff)
type Order struct {
	referenceID       string
	cargo             Cargo
	placeOfAcceptance kernel.Place
	timeOfAcceptance  time.Time
	placeOfDelivery   kernel.Place
	timeOfDelivery    time.Time

	guard guard.ConstructorGuard
}

// NewOrder validates and assembles an order. referenceID is optional.
func NewOrder(
	referenceID string,
	cargo Cargo,
	placeOfAcceptance kernel.Place,
	timeOfAcceptance time.Time,
	placeOfDelivery kernel.Place,
	timeOfDelivery time.Time,
) (Order, error) {
	var problems []error
	if err := cargo.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("cargo", err))
	}
	if err := placeOfAcceptance.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause(PlaceOfAcceptance.String(), err))
	}
	if err := placeOfDelivery.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause(PlaceOfDelivery.String(), err))
	}
	if timeOfAcceptance.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("time_of_acceptance"))
	}
	if timeOfDelivery.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("time_of_delivery"))
	}
	if err := errors.Join(problems...); err != nil {
		return Order{}, err
	}

	return Order{
		referenceID:       referenceID,
		cargo:             cargo,
		placeOfAcceptance: placeOfAcceptance,
		timeOfAcceptance:  timeOfAcceptance,
		placeOfDelivery:   placeOfDelivery,
		timeOfDelivery:    timeOfDelivery,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (o Order) ReferenceID() string { return o.referenceID }
func (o Order) Cargo() Cargo { return o.cargo }
func (o Order) PlaceOfAcceptance() kernel.Place { return o.placeOfAcceptance }
func (o Order) TimeOfAcceptance() time.Time { return o.timeOfAcceptance }
func (o Order) PlaceOfDelivery() kernel.Place { return o.placeOfDelivery }
func (o Order) TimeOfDelivery() time.Time { return o.timeOfDelivery }

// Place returns the place declared for endpoint e.
func (o Order) Place(e Endpoint) (kernel.Place, bool) {
	switch e {
	case PlaceOfAcceptance:
		return o.placeOfAcceptance, true
	case PlaceOfDelivery:
		return o.placeOfDelivery, true
	default:
		return kernel.Place{}, false
	}
}

func (o Order) Validate() error {
	return o.guard.Validate(ErrOrderIsNotConstructed)
}
