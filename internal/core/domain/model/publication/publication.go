// Package publication models the local log of ledger writes made through the
// service. The log is an audit trail only; the ledger stays authoritative and
// no lifecycle status is stored here.
package publication

import (
	"errors"
	"time"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord")

// Record describes one ledger write: which identity made it, for which asset,
// the resulting transaction, and who received it.
type Record struct {
	id            kernel.UUID
	identityID    kernel.UUID
	assetID       kernel.AssetID
	transactionID kernel.AssetID
	operation     ledger.Operation
	description   string
	recipients    []string
	createdAt     time.Time

	guard guard.ConstructorGuard
}

// NewRecord creates a log entry. For CREATE the transaction id equals the asset id.
func NewRecord(
	identityID kernel.UUID,
	assetID, transactionID kernel.AssetID,
	operation ledger.Operation,
	description string,
	recipients []string,
	createdAt time.Time,
) (*Record, error) {
	return RestoreRecord(kernel.NewUUID(), identityID, assetID, transactionID, operation, description, recipients, createdAt)
}

// RestoreRecord rebuilds a persisted entry.
func RestoreRecord(
	id, identityID kernel.UUID,
	assetID, transactionID kernel.AssetID,
	operation ledger.Operation,
	description string,
	recipients []string,
	createdAt time.Time,
) (*Record, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := identityID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("identity", err))
	}
	if err := assetID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("asset_id", err))
	}
	if err := transactionID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("transaction_id", err))
	}
	if operation != ledger.Create && operation != ledger.Transfer {
		problems = append(problems, errs.NewValueIsInvalidError("operation"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	copied := make([]string, len(recipients))
	copy(copied, recipients)

	return &Record{
		id:            id,
		identityID:    identityID,
		assetID:       assetID,
		transactionID: transactionID,
		operation:     operation,
		description:   description,
		recipients:    copied,
		createdAt:     createdAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (r *Record) ID() kernel.UUID { return r.id }
func (r *Record) IdentityID() kernel.UUID { return r.identityID }
func (r *Record) AssetID() kernel.AssetID { return r.assetID }
func (r *Record) TransactionID() kernel.AssetID { return r.transactionID }
func (r *Record) Operation() ledger.Operation { return r.operation }
func (r *Record) Description() string { return r.description }
func (r *Record) CreatedAt() time.Time { return r.createdAt }

func (r *Record) Recipients() []string {
	out := make([]string, len(r.recipients))
	copy(out, r.recipients)
	return out
}

func (r *Record) Validate() error {
	return r.guard.Validate(ErrRecordIsNotConstructed)
}
