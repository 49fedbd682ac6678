// Package semantic describes the vocabulary and query patterns used to read
// and write the JSON-LD documents stored on the ledger.
package semantic

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"ftl/internal/core/domain/model/order"
)

const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"

	RDFType     = RDFNamespace + "type"
	XSDString   = XSDNamespace + "string"
	XSDDateTime = XSDNamespace + "dateTime"
	XSDInteger  = XSDNamespace + "integer"
	XSDPositive = XSDNamespace + "positiveInteger"

	// DefaultNamespace is the supply-chain vocabulary used unless configured otherwise.
	DefaultNamespace = "http://ontology.tno.nl/scvl#"

	// NodeID is the placeholder subject the ledger replaces with the asset id.
	NodeID = "bdb://[id]/"
)

// Document is a JSON-LD document as stored on the ledger.
type Document = json.RawMessage

// Vocabulary is the immutable semantic configuration: the domain namespace and
// the JSON-LD context derived from it. It is built once at start-up and shared.
type Vocabulary struct {
	namespace string
}

// NewVocabulary validates namespace, which must be an absolute IRI ending in '#' or '/'.
func NewVocabulary(namespace string) (Vocabulary, error) {
	u, err := url.Parse(namespace)
	if err != nil || !u.IsAbs() {
		return Vocabulary{}, fmt.Errorf("semantic namespace %q is not an absolute IRI", namespace)
	}
	if !strings.HasSuffix(namespace, "#") && !strings.HasSuffix(namespace, "/") {
		return Vocabulary{}, fmt.Errorf("semantic namespace %q must end with '#' or '/'", namespace)
	}
	return Vocabulary{namespace: namespace}, nil
}

func (v Vocabulary) Namespace() string {
	return v.namespace
}

// Term expands a local name in the domain namespace.
func (v Vocabulary) Term(local string) string {
	return v.namespace + local
}

// Context returns a fresh JSON-LD context mapping the scvl, xsd, rdf and rdfs prefixes.
func (v Vocabulary) Context() map[string]any {
	return map[string]any{
		"scvl": v.namespace,
		"xsd":  XSDNamespace,
		"rdf":  RDFNamespace,
		"rdfs": RDFSNamespace,
	}
}

func (v Vocabulary) OrderType() string { return v.Term("Order") }
func (v Vocabulary) EventType() string { return v.Term("Event") }
func (v Vocabulary) CargoType() string { return v.Term("Cargo") }

// EndpointPredicate maps an order endpoint to the predicate that stores it.
func (v Vocabulary) EndpointPredicate(e order.Endpoint) (string, bool) {
	switch e {
	case order.PlaceOfAcceptance:
		return v.Term("placeOfAcceptance"), true
	case order.PlaceOfDelivery:
		return v.Term("placeOfDelivery"), true
	default:
		return "", false
	}
}
