// Package kernel provides the shared domain primitives of the FTL service.
//
// The package includes:
//   - Taxonomy: an ordered, integer-coded set of lifecycle values with an UNKNOWN sentinel
//   - AssetID: the ledger's 64-character asset and transaction identifier
//   - Place: a named location used by orders and events
//   - UUID: identifiers of locally stored records
//
// All primitives are immutable and safe for concurrent use.
package kernel
