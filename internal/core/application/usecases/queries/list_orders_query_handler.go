package queries

import (
	"context"
	"encoding/json"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/core/domain/model/semantic"
	"ftl/internal/core/domain/services"
	"ftl/internal/core/ports"
	"ftl/internal/pkg/errs"
)

// ListOrdersQueryHandler assembles order listings from the ledger histories of
// the caller's identities. Status is recomputed from each order's transactions.
type ListOrdersQueryHandler struct {
	identities ports.IdentityRepository
	assets     ports.AssetReader
	history    ports.TransactionFetcher
	engine     *services.StatusEngine[order.Status]
	graph      ports.SemanticGraph
	vocab      semantic.Vocabulary
}

func NewListOrdersQueryHandler(
	identities ports.IdentityRepository,
	assets ports.AssetReader,
	history ports.TransactionFetcher,
	engine *services.StatusEngine[order.Status],
	graph ports.SemanticGraph,
	vocab semantic.Vocabulary,
) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{
		identities: identities,
		assets:     assets,
		history:    history,
		engine:     engine,
		graph:      graph,
		vocab:      vocab,
	}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	identities, err := h.identities.ListActive(ctx, query.UserID())
	if err != nil {
		return nil, err
	}

	keys := make(map[string]struct{}, len(identities))
	for _, identity := range identities {
		keys[identity.PublicKey()] = struct{}{}
	}

	result := make(ListOrdersQueryResponse)
	for _, identity := range identities {
		assets, err := h.assets.History(ctx, identity.Name())
		if err != nil {
			return nil, errs.NewCollaboratorErrorWithCause("ledger", "could not retrieve orders", err)
		}

		for _, asset := range assets {
			if _, seen := result[asset.ID]; seen {
				continue
			}
			if !h.isOrder(asset.Document) {
				continue
			}

			summary, keep, err := h.summarize(ctx, asset, query, keys)
			if err != nil {
				return nil, err
			}
			if keep {
				result[asset.ID] = summary
			}
		}
	}

	return result, nil
}

func (h ListOrdersQueryHandler) isOrder(doc semantic.Document) bool {
	if len(doc) == 0 {
		return false
	}
	ok, err := h.graph.TripleExists(doc, semantic.TypePattern(h.vocab.OrderType()))
	return err == nil && ok
}

func (h ListOrdersQueryHandler) summarize(
	ctx context.Context,
	asset ledger.Asset,
	query ListOrdersQuery,
	keys map[string]struct{},
) (OrderSummary, bool, error) {
	assetID, err := kernel.NewAssetID(asset.ID)
	if err != nil {
		return OrderSummary{}, false, nil
	}

	txs, err := h.history.Transactions(ctx, assetID)
	if err != nil {
		return OrderSummary{}, false, errs.NewCollaboratorErrorWithCause("ledger", "could not retrieve order history", err)
	}

	status := h.engine.FromHistory(txs)
	if want, ok := query.Completed(); ok && want != (status == order.Completed) {
		return OrderSummary{}, false, nil
	}

	metadata := newOrderMetadata(status, txs)
	switch query.Role() {
	case CustomerRole:
		if _, ok := keys[metadata.Roles.Customer]; !ok {
			return OrderSummary{}, false, nil
		}
	case ProviderRole:
		if _, ok := keys[metadata.Roles.ServiceProvider]; !ok {
			return OrderSummary{}, false, nil
		}
	}

	return OrderSummary{Asset: rawAsset(asset), Metadata: metadata}, true, nil
}

func rawAsset(asset ledger.Asset) json.RawMessage {
	if len(asset.Raw) > 0 {
		return asset.Raw
	}
	return asset.Document
}
