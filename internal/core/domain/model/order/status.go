package order

import (
	"fmt"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"
)

// Status is the lifecycle state of an order as recorded on the ledger.
// Codes are part of the ledger wire format and must not be renumbered.
type Status int

const (
	// Unknown is reported when the most recent status-bearing transaction
	// carries a code outside the taxonomy.
	Unknown Status = kernel.UnknownCode

	// ToBeConfirmed is the initial status of every published order.
	ToBeConfirmed Status = 0

	// Confirmed means the service provider accepted the order.
	Confirmed Status = 1

	// Started means the cargo was loaded.
	Started Status = 2

	// Completed means the cargo was discharged at the place of delivery.
	Completed Status = 3

	// Rejected means the service provider declined the order and returned it.
	Rejected Status = 4
)

// Statuses is the order status taxonomy; its first member is the initial status.
var Statuses = kernel.MustNewTaxonomy(
	kernel.Member[Status]{Code: ToBeConfirmed, Label: "TO_BE_CONFIRMED"},
	kernel.Member[Status]{Code: Confirmed, Label: "CONFIRMED"},
	kernel.Member[Status]{Code: Started, Label: "STARTED"},
	kernel.Member[Status]{Code: Completed, Label: "COMPLETED"},
	kernel.Member[Status]{Code: Rejected, Label: "REJECTED"},
)

// String returns the wire label, e.g. "TO_BE_CONFIRMED", or "UNKNOWN".
func (s Status) String() string {
	return Statuses.Label(s)
}

// Validate fails for Unknown and any other non-member.
func (s Status) Validate() error {
	if !Statuses.Contains(int(s)) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsFinal reports whether no further transition can leave s.
func (s Status) IsFinal() bool {
	return s == Completed || s == Rejected
}

// Confirm transitions TO_BE_CONFIRMED to CONFIRMED.
func (s Status) Confirm() (Status, error) {
	if s != ToBeConfirmed {
		return Unknown, errs.NewInadmissibleErrorWithValues(
			"incorrect asset status", ToBeConfirmed.String(), s.String(),
		)
	}
	return Confirmed, nil
}

// Reject transitions TO_BE_CONFIRMED to REJECTED.
func (s Status) Reject() (Status, error) {
	if s != ToBeConfirmed {
		return Unknown, errs.NewInadmissibleErrorWithValues(
			"incorrect asset status", ToBeConfirmed.String(), s.String(),
		)
	}
	return Rejected, nil
}
