package ports

import (
	"context"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
)

// TransactionFetcher reads an asset's history.
type TransactionFetcher interface {
	// Transactions returns every transaction of the asset, oldest first.
	Transactions(ctx context.Context, assetID kernel.AssetID) ([]ledger.Transaction, error)
}

// AssetReader reads assets and ownership from the ledger.
type AssetReader interface {
	// Asset returns the asset. Missing assets yield errs.ErrObjectNotFound.
	Asset(ctx context.Context, assetID kernel.AssetID) (ledger.Asset, error)

	// AssetsOf returns the ids of assets currently held by the identity.
	AssetsOf(ctx context.Context, identity string) ([]string, error)

	// History returns every asset the identity was ever involved with.
	History(ctx context.Context, identity string) ([]ledger.Asset, error)

	// TransactionInputs returns the inputs spent by a transaction.
	TransactionInputs(ctx context.Context, transactionID kernel.AssetID) ([]ledger.Input, error)
}

// LedgerWriter appends to the ledger.
type LedgerWriter interface {
	// Publish creates a new asset and returns its id.
	Publish(ctx context.Context, creds ledger.Credentials, pub ledger.Publication) (kernel.AssetID, error)

	// Transfer appends a TRANSFER transaction and returns its id.
	Transfer(ctx context.Context, creds ledger.Credentials, req ledger.TransferRequest) (kernel.AssetID, error)
}

// IdentityIssuer asks the ledger to mint keys for a new identity.
type IdentityIssuer interface {
	CreateIdentity(ctx context.Context, name string) (ledger.Keys, error)
}

// Ledger is the complete ledger contract.
type Ledger interface {
	TransactionFetcher
	AssetReader
	LedgerWriter
	IdentityIssuer

	// Ping checks that the ledger answers.
	Ping(ctx context.Context) error
}
