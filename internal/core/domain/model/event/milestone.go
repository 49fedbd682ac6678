package event

import (
	"fmt"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"
)

// Milestone is a delivery milestone code as carried on the wire.
type Milestone int

const (
	Arrive    Milestone = 101
	Depart    Milestone = 106
	Load      Milestone = 110
	Discharge Milestone = 112
	Position  Milestone = 114
)

// Milestones is the milestone taxonomy.
var Milestones = kernel.MustNewTaxonomy(
	kernel.Member[Milestone]{Code: Arrive, Label: "ARRIVE"},
	kernel.Member[Milestone]{Code: Depart, Label: "DEPART"},
	kernel.Member[Milestone]{Code: Load, Label: "LOAD"},
	kernel.Member[Milestone]{Code: Discharge, Label: "DISCHARGE"},
	kernel.Member[Milestone]{Code: Position, Label: "POSITION"},
)

// MilestoneFromCode returns the milestone with the given code.
func MilestoneFromCode(code int) (Milestone, error) {
	if !Milestones.Contains(code) {
		return 0, errs.NewValueIsInvalidErrorWithCause("milestone", fmt.Errorf("%d is not a known milestone", code))
	}
	return Milestone(code), nil
}

func (m Milestone) String() string {
	return Milestones.Label(m)
}

func (m Milestone) Validate() error {
	if !Milestones.Contains(int(m)) {
		return errs.NewValueIsInvalidErrorWithCause("milestone", fmt.Errorf("%d is not a known milestone", m))
	}
	return nil
}
