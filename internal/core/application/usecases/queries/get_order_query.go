package queries

import (
	"encoding/json"
	"errors"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order with the events posted against it.
type GetOrderQuery struct {
	assetID kernel.AssetID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(assetID kernel.AssetID) (GetOrderQuery, error) {
	if err := assetID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("asset_id", err)
	}
	return GetOrderQuery{assetID: assetID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) AssetID() kernel.AssetID { return q.assetID }

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderEvent is an event recorded on an order, in ledger order.
type OrderEvent struct {
	TransactionID string          `json:"transaction_id"`
	RDF           json.RawMessage `json:"rdf"`
}

type GetOrderQueryResponse struct {
	Order    json.RawMessage `json:"order"`
	Events   []OrderEvent    `json:"events"`
	Metadata OrderMetadata   `json:"metadata"`
}
