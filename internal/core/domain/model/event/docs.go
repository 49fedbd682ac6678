// Package event models delivery events: milestones reported against an order
// at a given time and place.
//
// Two tables drive the domain rules. The transition table states which order
// status each milestone expects and which status it leaves behind; a milestone
// forces a status change only where the two differ. The place rule table states
// which order endpoints the event's place is compared with and whether it must
// match or avoid them.
package event
