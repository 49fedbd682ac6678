package order

import (
	"time"

	"ftl/internal/core/domain/model/kernel"
)

// StatusChanged is raised after a ledger transaction moved an order to a new status.
type StatusChanged struct {
	AssetID       kernel.AssetID
	TransactionID kernel.AssetID
	Status        Status
	OccurredAt    time.Time
}
