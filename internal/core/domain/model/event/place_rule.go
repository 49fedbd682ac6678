package event

import "ftl/internal/core/domain/model/order"

// Comparison says how an event's place relates to the rule's endpoints.
type Comparison int

const (
	// MustMatch requires the place to equal at least one endpoint.
	MustMatch Comparison = iota + 1
	// MustAvoid requires the place to equal none of the endpoints.
	MustAvoid
)

func (c Comparison) String() string {
	switch c {
	case MustMatch:
		return "must match"
	case MustAvoid:
		return "must avoid"
	default:
		return "unknown comparison"
	}
}

// PlaceRule is one row of the place rule table.
type PlaceRule struct {
	Endpoints  []order.Endpoint
	Comparison Comparison
}

var placeRules = map[Milestone]PlaceRule{
	Load:      {Endpoints: []order.Endpoint{order.PlaceOfAcceptance}, Comparison: MustMatch},
	Depart:    {Endpoints: []order.Endpoint{order.PlaceOfAcceptance}, Comparison: MustMatch},
	Arrive:    {Endpoints: []order.Endpoint{order.PlaceOfDelivery}, Comparison: MustMatch},
	Discharge: {Endpoints: []order.Endpoint{order.PlaceOfDelivery}, Comparison: MustMatch},
	Position: {
		Endpoints:  []order.Endpoint{order.PlaceOfAcceptance, order.PlaceOfDelivery},
		Comparison: MustAvoid,
	},
}

// PlaceRule returns the rule governing where m may be reported.
func (m Milestone) PlaceRule() (PlaceRule, bool) {
	r, ok := placeRules[m]
	if !ok {
		return PlaceRule{}, false
	}
	endpoints := make([]order.Endpoint, len(r.Endpoints))
	copy(endpoints, r.Endpoints)
	return PlaceRule{Endpoints: endpoints, Comparison: r.Comparison}, true
}
