package services_test

import (
	"errors"
	"testing"

	"ftl/internal/core/domain/model/event"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/semantic"
	"ftl/internal/core/domain/services"
	"ftl/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGraph answers from a predicate to literal values table and ignores the document.
type fakeGraph struct {
	literals map[string][]string
	err      error
	queries  int
}

func (g *fakeGraph) TripleExists(_ semantic.Document, p semantic.Pattern) (bool, error) {
	g.queries++
	if g.err != nil {
		return false, g.err
	}
	for _, v := range g.literals[p.Predicate.Value] {
		if v == p.Object.Value {
			return true, nil
		}
	}
	return false, nil
}

func (g *fakeGraph) Literals(_ semantic.Document, predicate string) ([]string, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.literals[predicate], nil
}

func newValidator(t *testing.T) (*services.MilestoneValidator, *fakeGraph) {
	t.Helper()
	vocab, err := semantic.NewVocabulary(semantic.DefaultNamespace)
	require.NoError(t, err)

	graph := &fakeGraph{literals: map[string][]string{
		vocab.Term("placeOfAcceptance"): {"Soesterberg"},
		vocab.Term("placeOfDelivery"):   {"Den Haag"},
	}}
	return services.NewMilestoneValidator(graph, vocab), graph
}

func place(t *testing.T, name string) kernel.Place {
	t.Helper()
	p, err := kernel.NewPlace(name)
	require.NoError(t, err)
	return p
}

func TestMilestoneValidator_Admits(t *testing.T) {
	validator, _ := newValidator(t)
	doc := semantic.Document(`{}`)

	tests := []struct {
		milestone event.Milestone
		place     string
	}{
		{event.Load, "Soesterberg"},
		{event.Depart, "Soesterberg"},
		{event.Position, "Gouda"},
		{event.Arrive, "Den Haag"},
		{event.Discharge, "Den Haag"},
	}
	for _, tt := range tests {
		t.Run(tt.milestone.String()+" at "+tt.place, func(t *testing.T) {
			require.NoError(t, validator.Validate(tt.milestone, place(t, tt.place), doc))
		})
	}
}

func TestMilestoneValidator_Rejects(t *testing.T) {
	validator, _ := newValidator(t)
	doc := semantic.Document(`{}`)

	tests := []struct {
		milestone event.Milestone
		place     string
		mentions  []string
	}{
		{event.Load, "Gouda", []string{"LOAD", `"Gouda"`, "place_of_acceptance", `"Soesterberg"`}},
		{event.Depart, "Den Haag", []string{"DEPART", "place_of_acceptance"}},
		{event.Arrive, "Gouda", []string{"ARRIVE", "place_of_delivery", `"Den Haag"`}},
		{event.Discharge, "Soesterberg", []string{"DISCHARGE", "place_of_delivery"}},
		{event.Position, "Soesterberg", []string{"should not match", "place_of_acceptance or place_of_delivery"}},
		{event.Position, "Den Haag", []string{"should not match"}},
		{event.Load, "soesterberg", []string{"does not match"}},
	}
	for _, tt := range tests {
		t.Run(tt.milestone.String()+" at "+tt.place, func(t *testing.T) {
			err := validator.Validate(tt.milestone, place(t, tt.place), doc)
			require.ErrorIs(t, err, errs.ErrInadmissible)

			var mismatch *services.PlaceMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, tt.milestone, mismatch.Milestone)
			assert.Equal(t, tt.place, mismatch.Place)
			for _, m := range tt.mentions {
				assert.Contains(t, err.Error(), m)
			}
		})
	}
}

func TestMilestoneValidator_UnknownMilestone(t *testing.T) {
	validator, graph := newValidator(t)

	err := validator.Validate(event.Milestone(999), place(t, "Gouda"), semantic.Document(`{}`))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Zero(t, graph.queries)
}

func TestMilestoneValidator_GraphFailure(t *testing.T) {
	validator, graph := newValidator(t)
	graph.err = errors.New("malformed JSON-LD")

	err := validator.Validate(event.Load, place(t, "Soesterberg"), semantic.Document(`{`))

	require.ErrorIs(t, err, errs.ErrCollaboratorFailed)
	assert.NotErrorIs(t, err, errs.ErrInadmissible)
}
