package semantic

// TermKind distinguishes wildcards, IRIs and literals in a Pattern.
type TermKind int

const (
	AnyTerm TermKind = iota
	IRITerm
	LiteralTerm
)

// Term is one position of a triple pattern. The zero value matches anything.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
}

// Any matches every node.
func Any() Term {
	return Term{}
}

// IRI matches the named resource.
func IRI(value string) Term {
	return Term{Kind: IRITerm, Value: value}
}

// Literal matches a plain string literal with the given lexical value.
func Literal(value string) Term {
	return Term{Kind: LiteralTerm, Value: value, Datatype: XSDString}
}

// TypedLiteral matches a literal with the given lexical value and datatype.
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: LiteralTerm, Value: value, Datatype: datatype}
}

// Pattern is a (subject, predicate, object) triple pattern.
type Pattern struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// TypePattern matches any subject declared with rdf:type typeIRI.
func TypePattern(typeIRI string) Pattern {
	return Pattern{Subject: Any(), Predicate: IRI(RDFType), Object: IRI(typeIRI)}
}
