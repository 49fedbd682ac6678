// Package semantics reads and writes the JSON-LD documents stored on the ledger.
// Documents are expanded to RDF triples with json-gold; no triple store is kept
// between calls.
package semantics

import (
	"encoding/json"
	"fmt"

	"ftl/internal/core/domain/model/semantic"
	"ftl/internal/pkg/errs"

	"github.com/piprate/json-gold/ld"
)

// Graph answers triple queries over a single JSON-LD document.
// It is stateless and safe for concurrent use.
type Graph struct {
	processor *ld.JsonLdProcessor
}

func NewGraph() *Graph {
	return &Graph{processor: ld.NewJsonLdProcessor()}
}

// TripleExists reports whether any triple of doc matches pattern.
func (g *Graph) TripleExists(doc semantic.Document, pattern semantic.Pattern) (bool, error) {
	quads, err := g.quads(doc)
	if err != nil {
		return false, err
	}
	for _, q := range quads {
		if matches(pattern.Subject, q.Subject) &&
			matches(pattern.Predicate, q.Predicate) &&
			matches(pattern.Object, q.Object) {
			return true, nil
		}
	}
	return false, nil
}

// Literals returns the lexical values of every literal object of predicate.
func (g *Graph) Literals(doc semantic.Document, predicate string) ([]string, error) {
	quads, err := g.quads(doc)
	if err != nil {
		return nil, err
	}
	var values []string
	for _, q := range quads {
		if !matches(semantic.IRI(predicate), q.Predicate) {
			continue
		}
		if lit, ok := q.Object.(*ld.Literal); ok {
			values = append(values, lit.Value)
		}
	}
	return values, nil
}

func (g *Graph) quads(doc semantic.Document) ([]*ld.Quad, error) {
	var input any
	if err := json.Unmarshal(doc, &input); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("json-ld document", err)
	}

	opts := ld.NewJsonLdOptions("")
	opts.DocumentLoader = offlineLoader{}

	out, err := g.processor.ToRDF(input, opts)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("json-ld document", err)
	}
	dataset, ok := out.(*ld.RDFDataset)
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause("json-ld document", fmt.Errorf("unexpected rdf result %T", out))
	}

	var quads []*ld.Quad
	for _, graph := range dataset.Graphs {
		quads = append(quads, graph...)
	}
	return quads, nil
}

func matches(term semantic.Term, node ld.Node) bool {
	switch term.Kind {
	case semantic.AnyTerm:
		return true
	case semantic.IRITerm:
		iri, ok := node.(*ld.IRI)
		return ok && iri.Value == term.Value
	case semantic.LiteralTerm:
		lit, ok := node.(*ld.Literal)
		return ok && lit.Value == term.Value && datatype(lit.Datatype) == datatype(term.Datatype)
	default:
		return false
	}
}

// datatype treats an absent datatype as xsd:string, as RDF 1.1 does.
func datatype(dt string) string {
	if dt == "" {
		return semantic.XSDString
	}
	return dt
}

// offlineLoader refuses remote contexts. Documents carry their context inline.
type offlineLoader struct{}

func (offlineLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, fmt.Sprintf("remote context %s is not allowed", u))
}
