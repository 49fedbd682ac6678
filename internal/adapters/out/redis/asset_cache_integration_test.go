package redis_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	redis_adapter "ftl/internal/adapters/out/redis"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type MockAssetReader struct {
	mock.Mock
}

func (m *MockAssetReader) Asset(ctx context.Context, assetID kernel.AssetID) (ledger.Asset, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).(ledger.Asset), args.Error(1)
}

func (m *MockAssetReader) AssetsOf(ctx context.Context, identity string) ([]string, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAssetReader) History(ctx context.Context, identity string) ([]ledger.Asset, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).([]ledger.Asset), args.Error(1)
}

func (m *MockAssetReader) TransactionInputs(ctx context.Context, transactionID kernel.AssetID) ([]ledger.Input, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).([]ledger.Input), args.Error(1)
}

type AssetCacheIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	next      *MockAssetReader
	cache     *redis_adapter.CachedAssetReader
}

func (suite *AssetCacheIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	client, err := redis_adapter.NewClient(ctx, endpoint)
	suite.Require().NoError(err)
	suite.client = client
}

func (suite *AssetCacheIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AssetCacheIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())
	suite.next = new(MockAssetReader)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.cache = redis_adapter.NewCachedAssetReader(suite.next, suite.client, time.Minute, logger)
}

func (suite *AssetCacheIntegrationTestSuite) assetID(fill string) kernel.AssetID {
	id, err := kernel.NewAssetID(strings.Repeat(fill, 64))
	suite.Require().NoError(err)
	return id
}

func (suite *AssetCacheIntegrationTestSuite) TestAsset_SecondReadIsServedFromCache() {
	ctx := context.Background()
	id := suite.assetID("a")
	asset := ledger.Asset{
		ID:       id.String(),
		Document: json.RawMessage(`{"@type":"Order"}`),
		Raw:      json.RawMessage(`{"data":{"rdf":{"@type":"Order"}}}`),
	}
	suite.next.On("Asset", mock.Anything, id).Return(asset, nil).Once()

	first, err := suite.cache.Asset(ctx, id)
	suite.Require().NoError(err)
	second, err := suite.cache.Asset(ctx, id)
	suite.Require().NoError(err)

	suite.next.AssertNumberOfCalls(suite.T(), "Asset", 1)
	suite.Equal(first.ID, second.ID)
	suite.JSONEq(string(asset.Document), string(second.Document))
	suite.JSONEq(string(asset.Raw), string(second.Raw))

	ttl, err := suite.client.TTL(ctx, "ftl:asset:"+id.String()).Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, time.Duration(0))
}

func (suite *AssetCacheIntegrationTestSuite) TestAsset_ErrorsAreNotCached() {
	ctx := context.Background()
	id := suite.assetID("b")
	suite.next.On("Asset", mock.Anything, id).Return(ledger.Asset{}, errs.NewObjectNotFoundError("asset", id.String())).Twice()

	_, err := suite.cache.Asset(ctx, id)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.cache.Asset(ctx, id)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	suite.next.AssertExpectations(suite.T())
}

func (suite *AssetCacheIntegrationTestSuite) TestAsset_CorruptEntryFallsBackToLedger() {
	ctx := context.Background()
	id := suite.assetID("c")
	suite.Require().NoError(suite.client.Set(ctx, "ftl:asset:"+id.String(), "{broken", time.Minute).Err())
	suite.next.On("Asset", mock.Anything, id).Return(ledger.Asset{ID: id.String(), Document: json.RawMessage(`{}`)}, nil).Once()

	asset, err := suite.cache.Asset(ctx, id)

	suite.Require().NoError(err)
	suite.Equal(id.String(), asset.ID)
	suite.next.AssertExpectations(suite.T())
}

func (suite *AssetCacheIntegrationTestSuite) TestHistory_IsNotCached() {
	ctx := context.Background()
	suite.next.On("History", mock.Anything, "alice").Return([]ledger.Asset{{ID: "x"}}, nil).Twice()

	for range 2 {
		assets, err := suite.cache.History(ctx, "alice")
		suite.Require().NoError(err)
		suite.Len(assets, 1)
	}
	suite.next.AssertExpectations(suite.T())
}

func TestAssetCacheIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AssetCacheIntegrationTestSuite))
}
