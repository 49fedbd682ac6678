// Package slp is the HTTP client for the semantic ledger platform. It implements
// ports.Ledger and translates the platform's wire shapes into ledger domain values.
package slp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/pkg/errs"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const collaborator = "ledger"

// maxErrorBody bounds how much of a failed response ends up in an error message.
const maxErrorBody = 512

// Client talks to one ledger node. It is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a client whose requests are traced through otelhttp.
// A zero timeout leaves deadlines to the caller's context.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("SLP_URL")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("SLP_URL", err)
	}
	if token == "" {
		return nil, errs.NewValueIsRequiredError("SLP_TOKEN")
	}

	return &Client{
		baseURL: baseURL,
		token:   token,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// Asset fetches an asset. Document holds data.rdf and Raw the whole object.
func (c *Client) Asset(ctx context.Context, assetID kernel.AssetID) (ledger.Asset, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/asset/"+assetID.String(), nil, &raw); err != nil {
		return ledger.Asset{}, notFoundAs(err, "asset", assetID.String())
	}
	return ledger.Asset{ID: assetID.String(), Document: documentOf(raw), Raw: raw}, nil
}

// Transactions returns the asset's history in chronological order.
func (c *Client) Transactions(ctx context.Context, assetID kernel.AssetID) ([]ledger.Transaction, error) {
	var dtos []transactionDTO
	query := url.Values{"sort": {"True"}}
	if err := c.getJSON(ctx, "/asset/"+assetID.String()+"/transactions/", query, &dtos); err != nil {
		return nil, notFoundAs(err, "asset", assetID.String())
	}

	txs := make([]ledger.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		txs = append(txs, dto.toDomain())
	}
	return txs, nil
}

// AssetsOf lists the ids of assets the identity holds unspent outputs of.
func (c *Client) AssetsOf(ctx context.Context, identity string) ([]string, error) {
	var dtos []ownedAssetDTO
	if err := c.getJSON(ctx, "/assets/"+url.PathEscape(identity), nil, &dtos); err != nil {
		return nil, rejected(err)
	}

	ids := make([]string, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.AssetID)
	}
	return ids, nil
}

// History returns every asset the identity has held, sorted by id.
func (c *Client) History(ctx context.Context, identity string) ([]ledger.Asset, error) {
	var entries map[string]historyEntryDTO
	if err := c.getJSON(ctx, "/history/"+url.PathEscape(identity), nil, &entries); err != nil {
		return nil, rejected(err)
	}

	assets := make([]ledger.Asset, 0, len(entries))
	for id, entry := range entries {
		raw := withID(entry.Asset, id)
		assets = append(assets, ledger.Asset{ID: id, Document: documentOf(raw), Raw: raw})
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets, nil
}

func (c *Client) TransactionInputs(ctx context.Context, transactionID kernel.AssetID) ([]ledger.Input, error) {
	var dtos []inputDTO
	if err := c.getJSON(ctx, "/transaction/inputs/"+transactionID.String(), nil, &dtos); err != nil {
		return nil, notFoundAs(err, "transaction", transactionID.String())
	}

	inputs := make([]ledger.Input, 0, len(dtos))
	for _, dto := range dtos {
		inputs = append(inputs, ledger.Input{OwnersBefore: dto.OwnersBefore})
	}
	return inputs, nil
}

// Publish creates an asset from a JSON-LD document validated against a shape asset.
func (c *Client) Publish(ctx context.Context, creds ledger.Credentials, pub ledger.Publication) (kernel.AssetID, error) {
	req := publishRequestDTO{
		CryptoID:    creds.Identity,
		PrivateKey:  creds.PrivateKey,
		Publication: string(pub.Document),
		Format:      "json-ld",
	}
	if pub.Recipient != "" {
		req.Recipients = []recipientsDTO{{Recipients: []string{pub.Recipient}}}
	}
	if pub.Shape.Validate() == nil {
		req.Shapes = []shapeDTO{{Shape: "bdb://" + pub.Shape.String() + "/", ShapeFormat: "json-ld"}}
	}

	return c.postForID(ctx, "/publish/", req)
}

// Transfer appends a TRANSFER transaction. The status, when set, lands in
// metadata.metadata.status; data and constraints in metadata.data.
func (c *Client) Transfer(ctx context.Context, creds ledger.Credentials, tr ledger.TransferRequest) (kernel.AssetID, error) {
	req := transferRequestDTO{
		AssetID:    tr.AssetID.String(),
		CryptoID:   creds.Identity,
		PrivateKey: creds.PrivateKey,
		Recipients: []recipientsDTO{{Recipients: []string{tr.Recipient}, Amount: 1}},
	}
	if tr.Status != nil || len(tr.Data) > 0 {
		meta := &transferMeta{Metadata: map[string]any{}}
		if tr.Status != nil {
			meta.Metadata["status"] = *tr.Status
		}
		if len(tr.Data) > 0 {
			meta.Data = &transferData{RDF: tr.Data, Constraints: tr.Constraints}
		}
		req.Metadata = meta
	}

	return c.postForID(ctx, "/transfer/", req)
}

// CreateIdentity registers name with the ledger and returns the keys it issued.
func (c *Client) CreateIdentity(ctx context.Context, name string) (ledger.Keys, error) {
	form := url.Values{"alias": {name}}
	req, err := c.newRequest(ctx, http.MethodPost, "/id/", nil, strings.NewReader(form.Encode()))
	if err != nil {
		return ledger.Keys{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var dto keysDTO
	if err = c.do(req, &dto); err != nil {
		return ledger.Keys{}, rejected(err)
	}
	if dto.Keypair.PublicKey == "" || dto.Keypair.PrivateKey == "" {
		return ledger.Keys{}, errs.NewCollaboratorError(collaborator, "identity response carries no keypair")
	}

	return ledger.Keys{
		Signing:  ledger.Keypair{PublicKey: dto.Keypair.PublicKey, PrivateKey: dto.Keypair.PrivateKey},
		Received: ledger.Keypair{PublicKey: dto.Received.PublicKey, PrivateKey: dto.Received.PrivateKey},
	}, nil
}

// Ping succeeds when the node answers below 500.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errs.NewCollaboratorErrorWithCause(collaborator, "ledger is unreachable", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return errs.NewCollaboratorError(collaborator, fmt.Sprintf("ledger answered %s", resp.Status))
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postForID(ctx context.Context, path string, body any) (kernel.AssetID, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return kernel.AssetID{}, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, bytes.NewReader(payload))
	if err != nil {
		return kernel.AssetID{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var raw json.RawMessage
	if err = c.do(req, &raw); err != nil {
		return kernel.AssetID{}, rejected(err)
	}
	return transactionID(raw)
}

// transactionID accepts either a bare JSON string or an object with an "id".
func transactionID(raw json.RawMessage) (kernel.AssetID, error) {
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		var obj struct {
			ID string `json:"id"`
		}
		if err = json.Unmarshal(raw, &obj); err != nil {
			return kernel.AssetID{}, errs.NewCollaboratorErrorWithCause(collaborator, "unexpected write response", err)
		}
		id = obj.ID
	}

	assetID, err := kernel.NewAssetID(id)
	if err != nil {
		return kernel.AssetID{}, errs.NewCollaboratorErrorWithCause(collaborator, "unexpected write response", err)
	}
	return assetID, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// statusError is a non-200 answer from the ledger. Callers translate it
// with notFoundAs or rejected before it leaves the package.
type statusError struct {
	method string
	path   string
	code   int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s %s returned %d: %s", e.method, e.path, e.code, e.body)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errs.NewCollaboratorErrorWithCause(collaborator, req.Method+" "+req.URL.Path+" failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &statusError{
			method: req.Method,
			path:   req.URL.Path,
			code:   resp.StatusCode,
			body:   strings.TrimSpace(string(body)),
		}
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.NewCollaboratorErrorWithCause(collaborator, "cannot decode "+req.URL.Path, err)
	}
	return nil
}

// notFoundAs turns a 404 from the ledger into errs.ErrObjectNotFound and any
// other rejected request into a collaborator failure.
func notFoundAs(err error, what, id string) error {
	var se *statusError
	if errors.As(err, &se) && se.code == http.StatusNotFound {
		return errs.NewObjectNotFoundErrorWithCause(what, id, err)
	}
	return rejected(err)
}

func rejected(err error) error {
	var se *statusError
	if errors.As(err, &se) {
		return errs.NewCollaboratorErrorWithCause(collaborator, se.Error(), se)
	}
	return err
}
