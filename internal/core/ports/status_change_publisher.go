package ports

import (
	"context"

	"ftl/internal/core/domain/model/order"
)

// StatusChangePublisher notifies other systems about order status changes.
// Publication is best effort: the ledger remains the source of truth.
type StatusChangePublisher interface {
	Publish(ctx context.Context, change order.StatusChanged) error
}
