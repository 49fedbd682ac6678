package semantics_test

import (
	"testing"
	"time"

	"ftl/internal/adapters/out/semantics"
	"ftl/internal/core/domain/model/event"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/core/domain/model/semantic"
	"ftl/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scvl = semantic.DefaultNamespace

// rdflibOrder is an order as serialised by the first generation of the service.
const rdflibOrder = `{
  "@context": {
    "scvl": "http://ontology.tno.nl/scvl#",
    "xsd": "http://www.w3.org/2001/XMLSchema#",
    "rdf": "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
    "rdfs": "http://www.w3.org/2000/01/rdf-schema#"
  },
  "@graph": [
    {
      "@id": "bdb://[id]/",
      "@type": "scvl:Order",
      "scvl:hasCargo": {"@id": "_:N1"},
      "scvl:placeOfAcceptance": "Soesterberg",
      "scvl:placeOfDelivery": "Den Haag",
      "scvl:referenceID": "ref-1"
    },
    {
      "@id": "_:N1",
      "@type": "scvl:Cargo",
      "scvl:numberOfPackages": {"@type": "xsd:positiveInteger", "@value": "3"}
    }
  ]
}`

func mustVocabulary(t *testing.T) semantic.Vocabulary {
	t.Helper()
	v, err := semantic.NewVocabulary(scvl)
	require.NoError(t, err)
	return v
}

func mustPlace(t *testing.T, name string) kernel.Place {
	t.Helper()
	p, err := kernel.NewPlace(name)
	require.NoError(t, err)
	return p
}

func newOrder(t *testing.T) order.Order {
	t.Helper()
	cargo, err := order.NewCargo("flowers", "pallet", 3)
	require.NoError(t, err)
	o, err := order.NewOrder("ref-1", cargo,
		mustPlace(t, "Soesterberg"), time.Date(2019, 5, 1, 8, 0, 0, 0, time.UTC),
		mustPlace(t, "Den Haag"), time.Date(2019, 5, 1, 16, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

func TestGraph_TripleExists(t *testing.T) {
	g := semantics.NewGraph()
	doc := semantic.Document(rdflibOrder)

	tests := []struct {
		name    string
		pattern semantic.Pattern
		want    bool
	}{
		{"order type", semantic.TypePattern(scvl + "Order"), true},
		{"cargo type on blank node", semantic.TypePattern(scvl + "Cargo"), true},
		{"not an event", semantic.TypePattern(scvl + "Event"), false},
		{
			"place of acceptance literal",
			semantic.Pattern{Predicate: semantic.IRI(scvl + "placeOfAcceptance"), Object: semantic.Literal("Soesterberg")},
			true,
		},
		{
			"place match is exact",
			semantic.Pattern{Predicate: semantic.IRI(scvl + "placeOfAcceptance"), Object: semantic.Literal("soesterberg")},
			false,
		},
		{
			"literal is not an iri",
			semantic.Pattern{Predicate: semantic.IRI(scvl + "placeOfAcceptance"), Object: semantic.IRI("Soesterberg")},
			false,
		},
		{
			"typed literal",
			semantic.Pattern{Predicate: semantic.IRI(scvl + "numberOfPackages"), Object: semantic.TypedLiteral("3", semantic.XSDPositive)},
			true,
		},
		{
			"typed literal needs its datatype",
			semantic.Pattern{Predicate: semantic.IRI(scvl + "numberOfPackages"), Object: semantic.Literal("3")},
			false,
		},
		{
			"placeholder subject",
			semantic.Pattern{Subject: semantic.IRI(semantic.NodeID), Predicate: semantic.IRI(semantic.RDFType)},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.TripleExists(doc, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGraph_Literals(t *testing.T) {
	g := semantics.NewGraph()

	values, err := g.Literals(semantic.Document(rdflibOrder), scvl+"placeOfDelivery")
	require.NoError(t, err)
	assert.Equal(t, []string{"Den Haag"}, values)

	values, err = g.Literals(semantic.Document(rdflibOrder), scvl+"hasCargo")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestGraph_InvalidDocuments(t *testing.T) {
	g := semantics.NewGraph()

	_, err := g.TripleExists(semantic.Document(`{not json`), semantic.TypePattern(scvl+"Order"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	remote := `{"@context": "http://example.org/context.jsonld", "@id": "bdb://[id]/", "@type": "Order"}`
	_, err = g.TripleExists(semantic.Document(remote), semantic.TypePattern(scvl+"Order"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestDocuments_OrderDocumentIsReadableByGraph(t *testing.T) {
	vocab := mustVocabulary(t)
	docs := semantics.NewDocuments(vocab)
	g := semantics.NewGraph()

	doc, err := docs.OrderDocument(newOrder(t))
	require.NoError(t, err)

	ok, err := g.TripleExists(doc, semantic.TypePattern(vocab.OrderType()))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.TripleExists(doc, semantic.TypePattern(vocab.CargoType()))
	require.NoError(t, err)
	assert.True(t, ok)

	acceptance, _ := vocab.EndpointPredicate(order.PlaceOfAcceptance)
	places, err := g.Literals(doc, acceptance)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soesterberg"}, places)

	ok, err = g.TripleExists(doc, semantic.Pattern{
		Predicate: semantic.IRI(vocab.Term("timeOfDelivery")),
		Object:    semantic.TypedLiteral("2019-05-01T16:00:00Z", semantic.XSDDateTime),
	})
	require.NoError(t, err)
	assert.True(t, ok)

	refs, err := g.Literals(doc, vocab.Term("referenceID"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ref-1"}, refs)
}

func TestDocuments_EventDocument(t *testing.T) {
	vocab := mustVocabulary(t)
	docs := semantics.NewDocuments(vocab)
	g := semantics.NewGraph()

	assetID, err := kernel.NewAssetID("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	e, err := event.NewEvent(assetID, time.Date(2019, 5, 1, 9, 0, 0, 0, time.UTC), mustPlace(t, "Gouda"), event.Position)
	require.NoError(t, err)

	doc, err := docs.EventDocument(e)
	require.NoError(t, err)

	ok, err := g.TripleExists(doc, semantic.TypePattern(vocab.EventType()))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.TripleExists(doc, semantic.TypePattern(vocab.OrderType()))
	require.NoError(t, err)
	assert.False(t, ok)

	milestones, err := g.Literals(doc, vocab.Term("milestone"))
	require.NoError(t, err)
	assert.Equal(t, []string{"114"}, milestones)

	orders, err := g.Literals(doc, vocab.Term("orderAssetID"))
	require.NoError(t, err)
	assert.Equal(t, []string{assetID.String()}, orders)
}
