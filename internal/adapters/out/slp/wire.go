package slp

import (
	"bytes"
	"encoding/json"
	"math"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
)

// Wire shapes of the semantic ledger platform API.

type transactionDTO struct {
	ID        string          `json:"id"`
	Operation string          `json:"operation"`
	Asset     json.RawMessage `json:"asset"`
	Metadata  json.RawMessage `json:"metadata"`
	Inputs    []inputDTO      `json:"inputs"`
	Outputs   []outputDTO     `json:"outputs"`
}

type inputDTO struct {
	OwnersBefore []string `json:"owners_before"`
}

type outputDTO struct {
	PublicKeys []string `json:"public_keys"`
}

type historyEntryDTO struct {
	Asset json.RawMessage `json:"asset"`
}

type ownedAssetDTO struct {
	AssetID string `json:"asset_id"`
}

type keypairDTO struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

type keysDTO struct {
	Keypair  keypairDTO `json:"keypair"`
	Received keypairDTO `json:"received"`
}

type recipientsDTO struct {
	Recipients []string `json:"recipients"`
	Amount     int      `json:"amount,omitempty"`
}

type shapeDTO struct {
	Shape       string `json:"shape"`
	ShapeFormat string `json:"shape_format"`
}

type publishRequestDTO struct {
	CryptoID    string          `json:"crypto_id"`
	PrivateKey  string          `json:"private_key"`
	Publication string          `json:"publication"`
	Format      string          `json:"format"`
	Recipients  []recipientsDTO `json:"recipients,omitempty"`
	Shapes      []shapeDTO      `json:"shapes,omitempty"`
}

type transferRequestDTO struct {
	AssetID    string          `json:"asset_id"`
	CryptoID   string          `json:"crypto_id"`
	PrivateKey string          `json:"private_key"`
	Recipients []recipientsDTO `json:"recipients"`
	Metadata   *transferMeta   `json:"metadata,omitempty"`
}

type transferMeta struct {
	Data     *transferData  `json:"data,omitempty"`
	Metadata map[string]any `json:"metadata"`
}

type transferData struct {
	RDF         json.RawMessage `json:"rdf"`
	Constraints json.RawMessage `json:"constraints,omitempty"`
}

func (dto transactionDTO) toDomain() ledger.Transaction {
	tx := ledger.Transaction{
		ID:        dto.ID,
		Operation: ledger.Operation(dto.Operation),
	}
	for _, in := range dto.Inputs {
		tx.Signers = append(tx.Signers, in.OwnersBefore...)
	}
	for _, out := range dto.Outputs {
		tx.Recipients = append(tx.Recipients, out.PublicKeys...)
	}

	switch tx.Operation {
	case ledger.Create:
		tx.Data = documentOf(dto.Asset)
	default:
		tx.Status = statusOf(dto.Metadata)
		tx.Data = documentOf(dto.Metadata)
	}
	return tx
}

// statusOf reads metadata.metadata.status. A missing key at any level means
// the transaction carries no status; a present value that is not an integer
// is recorded as kernel.UnknownCode.
func statusOf(metadata json.RawMessage) *int {
	var outer struct {
		Metadata json.RawMessage `json:"metadata"`
	}
	if !present(metadata) || json.Unmarshal(metadata, &outer) != nil || !present(outer.Metadata) {
		return nil
	}

	var inner map[string]json.RawMessage
	if json.Unmarshal(outer.Metadata, &inner) != nil {
		return nil
	}
	raw, ok := inner["status"]
	if !ok {
		return nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err != nil || n != math.Trunc(n) || !present(raw) {
		return ledger.StatusCode(kernel.UnknownCode)
	}
	return ledger.StatusCode(int(n))
}

// documentOf extracts data.rdf from an asset or metadata object. The ledger
// stores publications as JSON text, so a string value is unwrapped.
func documentOf(container json.RawMessage) json.RawMessage {
	var outer struct {
		Data struct {
			RDF json.RawMessage `json:"rdf"`
		} `json:"data"`
	}
	if !present(container) || json.Unmarshal(container, &outer) != nil || !present(outer.Data.RDF) {
		return nil
	}

	rdf := outer.Data.RDF
	if bytes.HasPrefix(bytes.TrimSpace(rdf), []byte(`"`)) {
		var text string
		if json.Unmarshal(rdf, &text) != nil {
			return nil
		}
		return json.RawMessage(text)
	}
	return rdf
}

// withID sets the "id" key of an asset object, which CREATE-era assets lack.
func withID(asset json.RawMessage, id string) json.RawMessage {
	var fields map[string]json.RawMessage
	if json.Unmarshal(asset, &fields) != nil {
		return asset
	}
	if _, ok := fields["id"]; ok {
		return asset
	}
	encoded, err := json.Marshal(id)
	if err != nil {
		return asset
	}
	fields["id"] = encoded
	out, err := json.Marshal(fields)
	if err != nil {
		return asset
	}
	return out
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
