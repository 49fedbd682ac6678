package ports

import (
	"ftl/internal/core/domain/model/event"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/core/domain/model/semantic"
)

// SemanticGraph answers triple queries over a JSON-LD document.
// Implementations must be safe for concurrent use.
type SemanticGraph interface {
	// TripleExists reports whether any triple of doc matches pattern.
	TripleExists(doc semantic.Document, pattern semantic.Pattern) (bool, error)

	// Literals returns the lexical values of every literal object of predicate.
	Literals(doc semantic.Document, predicate string) ([]string, error)
}

// DocumentBuilder renders domain values as JSON-LD documents for the ledger.
type DocumentBuilder interface {
	OrderDocument(o order.Order) (semantic.Document, error)
	EventDocument(e event.Event) (semantic.Document, error)
}
