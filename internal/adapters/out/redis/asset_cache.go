// Package redis caches ledger assets. Assets never change once published, so
// entries only expire to bound memory.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ftl:asset:"

var _ ports.AssetReader = (*CachedAssetReader)(nil)

// CachedAssetReader serves Asset from Redis and delegates everything else.
// Ownership and history change with every transfer and are never cached.
// Cache failures degrade to a direct read.
type CachedAssetReader struct {
	ports.AssetReader
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedAssetReader(next ports.AssetReader, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CachedAssetReader {
	return &CachedAssetReader{
		AssetReader: next,
		client:      client,
		ttl:         ttl,
		logger:      logger.With("component", "asset_cache"),
	}
}

type cachedAsset struct {
	Document json.RawMessage `json:"document,omitempty"`
	Raw      json.RawMessage `json:"raw,omitempty"`
}

func (c *CachedAssetReader) Asset(ctx context.Context, assetID kernel.AssetID) (ledger.Asset, error) {
	key := keyPrefix + assetID.String()

	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entry cachedAsset
		if err = json.Unmarshal(payload, &entry); err == nil {
			return ledger.Asset{ID: assetID.String(), Document: entry.Document, Raw: entry.Raw}, nil
		}
		c.logger.WarnContext(ctx, "dropping corrupt cache entry", "asset_id", assetID.String(), "error", err)
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "cache read failed", "asset_id", assetID.String(), "error", err)
	}

	asset, err := c.AssetReader.Asset(ctx, assetID)
	if err != nil {
		return ledger.Asset{}, err
	}

	payload, err = json.Marshal(cachedAsset{Document: asset.Document, Raw: asset.Raw})
	if err == nil {
		err = c.client.Set(ctx, key, payload, c.ttl).Err()
	}
	if err != nil {
		c.logger.WarnContext(ctx, "cache write failed", "asset_id", assetID.String(), "error", err)
	}
	return asset, nil
}

// NewClient connects to addr and verifies the connection.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
