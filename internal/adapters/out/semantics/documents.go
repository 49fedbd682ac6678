package semantics

import (
	"encoding/json"
	"strconv"
	"time"

	"ftl/internal/core/domain/model/event"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/core/domain/model/semantic"
)

// Documents renders orders and events as JSON-LD. The subject of every
// document is semantic.NodeID, which the ledger replaces with the asset id.
type Documents struct {
	vocab semantic.Vocabulary
}

func NewDocuments(vocab semantic.Vocabulary) *Documents {
	return &Documents{vocab: vocab}
}

func (d *Documents) OrderDocument(o order.Order) (semantic.Document, error) {
	cargo := o.Cargo()
	doc := map[string]any{
		"@context": d.vocab.Context(),
		"@id":      semantic.NodeID,
		"@type":    "scvl:Order",
		"scvl:hasCargo": map[string]any{
			"@type":                 "scvl:Cargo",
			"scvl:typeOfCargo":      cargo.CargoType(),
			"scvl:typeOfPackages":   cargo.PackageType(),
			"scvl:numberOfPackages": typed(strconv.Itoa(cargo.PackageCount()), "xsd:positiveInteger"),
		},
		"scvl:placeOfAcceptance": o.PlaceOfAcceptance().String(),
		"scvl:timeOfAcceptance":  typed(o.TimeOfAcceptance().Format(time.RFC3339), "xsd:dateTime"),
		"scvl:placeOfDelivery":   o.PlaceOfDelivery().String(),
		"scvl:timeOfDelivery":    typed(o.TimeOfDelivery().Format(time.RFC3339), "xsd:dateTime"),
	}
	if ref := o.ReferenceID(); ref != "" {
		doc["scvl:referenceID"] = ref
	}
	return json.Marshal(doc)
}

func (d *Documents) EventDocument(e event.Event) (semantic.Document, error) {
	doc := map[string]any{
		"@context":          d.vocab.Context(),
		"@id":               semantic.NodeID,
		"@type":             "scvl:Event",
		"scvl:orderAssetID": e.OrderAssetID().String(),
		"scvl:time":         e.Time().Format(time.RFC3339),
		"scvl:place":        e.Place().String(),
		"scvl:milestone":    typed(strconv.Itoa(int(e.Milestone())), "xsd:integer"),
	}
	return json.Marshal(doc)
}

func typed(value, datatype string) map[string]any {
	return map[string]any{"@value": value, "@type": datatype}
}
