package event

import "ftl/internal/core/domain/model/order"

// Transition is the order status a milestone expects and the one it leaves behind.
type Transition struct {
	From order.Status
	To   order.Status
}

// Forces reports whether the transition changes the status.
func (t Transition) Forces() bool {
	return t.From != t.To
}

var transitions = map[Milestone]Transition{
	Load:      {From: order.Confirmed, To: order.Started},
	Depart:    {From: order.Started, To: order.Started},
	Position:  {From: order.Started, To: order.Started},
	Arrive:    {From: order.Started, To: order.Started},
	Discharge: {From: order.Started, To: order.Completed},
}

// Transition returns the table entry for m.
func (m Milestone) Transition() (Transition, bool) {
	t, ok := transitions[m]
	return t, ok
}

// ForcedStatus returns the status that recording m sets on the order, if any.
// It is derived from the transition table alone.
func (m Milestone) ForcedStatus() (order.Status, bool) {
	t, ok := transitions[m]
	if !ok || !t.Forces() {
		return order.Unknown, false
	}
	return t.To, true
}
