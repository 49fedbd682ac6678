package event

import (
	"errors"
	"time"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent")

// Event is a milestone reported for an order at a time and place.
type Event struct {
	orderAssetID kernel.AssetID
	time         time.Time
	place        kernel.Place
	milestone    Milestone

	guard guard.ConstructorGuard
}

// NewEvent validates and assembles an event.
func NewEvent(orderAssetID kernel.AssetID, at time.Time, place kernel.Place, milestone Milestone) (Event, error) {
	var problems []error
	if err := orderAssetID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("order_asset_id", err))
	}
	if at.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("time"))
	}
	if err := place.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("place", err))
	}
	if err := milestone.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := errors.Join(problems...); err != nil {
		return Event{}, err
	}

	return Event{
		orderAssetID: orderAssetID,
		time:         at,
		place:        place,
		milestone:    milestone,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (e Event) OrderAssetID() kernel.AssetID { return e.orderAssetID }
func (e Event) Time() time.Time { return e.time }
func (e Event) Place() kernel.Place { return e.place }
func (e Event) Milestone() Milestone { return e.milestone }

func (e Event) Validate() error {
	return e.guard.Validate(ErrEventIsNotConstructed)
}
