// Package ledger holds the domain view of the external semantic ledger:
// assets, their transaction histories, and the credentials used to sign
// publications and transfers. Wire formats live in the ledger adapter.
package ledger

import (
	"encoding/json"

	"ftl/internal/core/domain/model/kernel"
)

// Operation is the kind of a ledger transaction.
type Operation string

const (
	Create   Operation = "CREATE"
	Transfer Operation = "TRANSFER"
)

// Transaction is one entry of an asset's history.
//
// Status is nil when the transaction carries no status annotation; readers
// must keep scanning older transactions in that case. A non-nil Status holds
// the recorded code, which may be kernel.UnknownCode when the ledger held a
// value that is not an integer.
type Transaction struct {
	ID         string
	Operation  Operation
	Status     *int
	Data       json.RawMessage
	Signers    []string
	Recipients []string
}

// StatusCode returns a pointer to code, for building transactions.
func StatusCode(code int) *int {
	return &code
}

// Asset is a ledger asset with its semantic document (JSON-LD).
type Asset struct {
	ID       string
	Document json.RawMessage
	Raw      json.RawMessage
}

// Input is a spent output referenced by a transaction.
type Input struct {
	OwnersBefore []string
}

// Keypair is a public/private key pair issued by the ledger.
type Keypair struct {
	PublicKey  string
	PrivateKey string
}

// Keys is the pair of keypairs the ledger issues for a new identity: one for
// signing and one for receiving encrypted payloads.
type Keys struct {
	Signing  Keypair
	Received Keypair
}

// Credentials identify and authorise the signer of a ledger write.
type Credentials struct {
	Identity   string
	PrivateKey string
}

// Publication asks the ledger to create a new asset from Document, validated
// against the SHACL shape asset Shape and sent to Recipient.
type Publication struct {
	Document  json.RawMessage
	Shape     kernel.AssetID
	Recipient string
}

// TransferRequest moves an asset to Recipient, optionally annotating the
// transaction with a status and a semantic payload.
type TransferRequest struct {
	AssetID     kernel.AssetID
	Recipient   string
	Status      *int
	Data        json.RawMessage
	Constraints json.RawMessage
}
