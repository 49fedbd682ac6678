package services

import (
	"context"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/ports"
)

// StatusEngine derives the current status of an asset from its ledger history.
// Status is never stored: every call replays the history, so the result always
// reflects the ledger at the time of the call.
//
// The rule, applied from the newest transaction backwards:
//   - a CREATE transaction yields the taxonomy's initial status;
//   - a TRANSFER carrying a status yields that member, or Unknown for non-members;
//   - a TRANSFER without a status is skipped.
//
// Example:
//
//	engine := services.NewStatusEngine(order.Statuses, ledgerClient)
//	status, err := engine.Resolve(ctx, assetID)
type StatusEngine[T ~int] struct {
	taxonomy kernel.Taxonomy[T]
	fetcher  ports.TransactionFetcher
}

// NewStatusEngine binds a taxonomy to a source of transaction histories.
func NewStatusEngine[T ~int](taxonomy kernel.Taxonomy[T], fetcher ports.TransactionFetcher) *StatusEngine[T] {
	return &StatusEngine[T]{taxonomy: taxonomy, fetcher: fetcher}
}

// Resolve fetches the asset's history and derives its status.
// Errors from the ledger are returned unchanged.
func (e *StatusEngine[T]) Resolve(ctx context.Context, assetID kernel.AssetID) (T, error) {
	txs, err := e.fetcher.Transactions(ctx, assetID)
	if err != nil {
		return e.taxonomy.Unknown(), err
	}
	return e.FromHistory(txs), nil
}

// FromHistory derives the status from an already fetched history, oldest first.
// An empty history yields Unknown.
func (e *StatusEngine[T]) FromHistory(txs []ledger.Transaction) T {
	for i := len(txs) - 1; i >= 0; i-- {
		tx := txs[i]
		if tx.Operation == ledger.Create {
			return e.taxonomy.Initial()
		}
		if tx.Status == nil {
			continue
		}
		return e.taxonomy.Resolve(*tx.Status)
	}
	return e.taxonomy.Unknown()
}
