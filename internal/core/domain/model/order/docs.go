// Package order models freight orders and their lifecycle status.
//
// An Order is the content published to the ledger when a customer asks a
// service provider to move cargo from a place of acceptance to a place of
// delivery. The order itself is immutable once published; its Status is never
// stored but derived from the ledger's transaction history each time it is needed.
//
// Status lifecycle:
//
//	TO_BE_CONFIRMED ──confirm──> CONFIRMED ──LOAD──> STARTED ──DISCHARGE──> COMPLETED
//	       │
//	       └──reject──> REJECTED
package order
