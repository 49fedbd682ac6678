package queries

import (
	"context"

	"ftl/internal/core/application/checks"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/core/domain/model/semantic"
	"ftl/internal/core/domain/services"
	"ftl/internal/core/ports"
	"ftl/internal/pkg/errs"
)

// GetOrderQueryHandler returns an order, its events and its derived metadata.
// Any authenticated user may read any order.
type GetOrderQueryHandler struct {
	checker *checks.Checker
	assets  ports.AssetReader
	history ports.TransactionFetcher
	engine  *services.StatusEngine[order.Status]
	graph   ports.SemanticGraph
	vocab   semantic.Vocabulary
}

func NewGetOrderQueryHandler(
	checker *checks.Checker,
	assets ports.AssetReader,
	history ports.TransactionFetcher,
	engine *services.StatusEngine[order.Status],
	graph ports.SemanticGraph,
	vocab semantic.Vocabulary,
) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		checker: checker,
		assets:  assets,
		history: history,
		engine:  engine,
		graph:   graph,
		vocab:   vocab,
	}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	assetID := query.AssetID()
	if err := checks.Run(ctx,
		h.checker.AssetExists(assetID),
		h.checker.AssetHasType(assetID, h.vocab.OrderType()),
	); err != nil {
		return GetOrderQueryResponse{}, err
	}

	asset, err := h.assets.Asset(ctx, assetID)
	if err != nil {
		return GetOrderQueryResponse{}, errs.NewCollaboratorErrorWithCause("ledger", "error while retrieving assets", err)
	}
	txs, err := h.history.Transactions(ctx, assetID)
	if err != nil {
		return GetOrderQueryResponse{}, errs.NewCollaboratorErrorWithCause("ledger", "error while retrieving assets", err)
	}

	events := make([]OrderEvent, 0, len(txs))
	for _, tx := range txs {
		if tx.Operation != ledger.Transfer || len(tx.Data) == 0 {
			continue
		}
		ok, err := h.graph.TripleExists(tx.Data, semantic.TypePattern(h.vocab.EventType()))
		if err != nil || !ok {
			continue
		}
		events = append(events, OrderEvent{TransactionID: tx.ID, RDF: tx.Data})
	}

	return GetOrderQueryResponse{
		Order:    rawAsset(asset),
		Events:   events,
		Metadata: newOrderMetadata(h.engine.FromHistory(txs), txs),
	}, nil
}
