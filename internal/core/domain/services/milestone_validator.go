package services

import (
	"fmt"
	"strings"

	"ftl/internal/core/domain/model/event"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/core/domain/model/semantic"
	"ftl/internal/core/ports"
	"ftl/internal/pkg/errs"
)

// PlaceMismatchError reports an event whose place breaks its milestone's place rule.
// It matches errs.ErrInadmissible.
type PlaceMismatchError struct {
	Milestone  event.Milestone
	Place      string
	Endpoints  []order.Endpoint
	Comparison event.Comparison
	Declared   []string
}

func (e *PlaceMismatchError) Error() string {
	names := make([]string, len(e.Endpoints))
	for i, ep := range e.Endpoints {
		names[i] = ep.String()
	}

	var b strings.Builder
	switch e.Comparison {
	case event.MustAvoid:
		fmt.Fprintf(&b, "%s event place %q should not match order %s",
			e.Milestone, e.Place, strings.Join(names, " or "))
	default:
		fmt.Fprintf(&b, "%s event place %q does not match order %s",
			e.Milestone, e.Place, strings.Join(names, " or "))
	}
	if len(e.Declared) > 0 {
		quoted := make([]string, len(e.Declared))
		for i, d := range e.Declared {
			quoted[i] = fmt.Sprintf("%q", d)
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(quoted, ", "))
	}
	return fmt.Sprintf("%s: milestone logic failure: %s", errs.ErrInadmissible, b.String())
}

func (e *PlaceMismatchError) Unwrap() error {
	return errs.ErrInadmissible
}

// MilestoneValidator admits or rejects an event by comparing its place with the
// order's place of acceptance and place of delivery. The comparison for each
// milestone comes from the milestone's place rule; the validator only evaluates it.
type MilestoneValidator struct {
	graph ports.SemanticGraph
	vocab semantic.Vocabulary
}

func NewMilestoneValidator(graph ports.SemanticGraph, vocab semantic.Vocabulary) *MilestoneValidator {
	return &MilestoneValidator{graph: graph, vocab: vocab}
}

// Validate returns nil when place is admissible for milestone on the order
// described by orderDoc. Places compare by exact string equality.
func (v *MilestoneValidator) Validate(milestone event.Milestone, place kernel.Place, orderDoc semantic.Document) error {
	rule, ok := milestone.PlaceRule()
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("milestone", fmt.Errorf("no place rule for milestone %d", milestone))
	}

	matched := false
	for _, endpoint := range rule.Endpoints {
		predicate, ok := v.vocab.EndpointPredicate(endpoint)
		if !ok {
			return errs.NewValueIsInvalidErrorWithCause("endpoint", fmt.Errorf("no predicate for %s", endpoint))
		}

		exists, err := v.graph.TripleExists(orderDoc, semantic.Pattern{
			Subject:   semantic.Any(),
			Predicate: semantic.IRI(predicate),
			Object:    semantic.Literal(place.String()),
		})
		if err != nil {
			return errs.NewCollaboratorErrorWithCause("semantic graph", "cannot evaluate order document", err)
		}
		if exists {
			matched = true
			break
		}
	}

	admissible := matched
	if rule.Comparison == event.MustAvoid {
		admissible = !matched
	}
	if admissible {
		return nil
	}

	return &PlaceMismatchError{
		Milestone:  milestone,
		Place:      place.String(),
		Endpoints:  rule.Endpoints,
		Comparison: rule.Comparison,
		Declared:   v.declared(rule.Endpoints, orderDoc),
	}
}

// declared looks up the order's values for endpoints, for error messages only.
func (v *MilestoneValidator) declared(endpoints []order.Endpoint, orderDoc semantic.Document) []string {
	var out []string
	for _, endpoint := range endpoints {
		predicate, ok := v.vocab.EndpointPredicate(endpoint)
		if !ok {
			continue
		}
		values, err := v.graph.Literals(orderDoc, predicate)
		if err != nil {
			return nil
		}
		out = append(out, values...)
	}
	return out
}
