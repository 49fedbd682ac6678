// Package services provides the domain services of the FTL service: logic that
// needs collaborators (the ledger history, the semantic graph) but no
// persistence of its own.
//
// The package includes:
//   - StatusEngine: derives an asset's lifecycle status by replaying its ledger history
//   - MilestoneValidator: checks an event's place against the order's declared route
package services
