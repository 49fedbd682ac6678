package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "ftl/internal/adapters/out/postgres"
	"ftl/internal/core/application/usecases/queries"
	"ftl/internal/core/domain/model/account"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/domain/model/setting"
	"ftl/internal/core/ports"
	"ftl/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// StoreQueriesIntegrationTestSuite covers the queries that read the local database directly.
type StoreQueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	settings  queries.SettingsQueryHandler
	accounts  queries.AccountQueryHandler
}

func (suite *StoreQueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres_adapter.Open(dsn)
	suite.Require().NoError(err)
	suite.db = db
	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
	suite.settings = queries.NewSettingsQueryHandler(db)
	suite.accounts = queries.NewAccountQueryHandler(db)
}

func (suite *StoreQueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *StoreQueriesIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE settings, addresses, identities").Error
	suite.Require().NoError(err)
}

func (suite *StoreQueriesIntegrationTestSuite) TestSettings_EmptyDatabase_ReturnsEmptySlice() {
	result, err := suite.settings.List(context.Background(), queries.NewListSettingsQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *StoreQueriesIntegrationTestSuite) TestSettings_ListAndGet() {
	ctx := context.Background()
	repo := suite.factory.Create().SettingRepository()
	for name, value := range map[string]string{setting.OrderShape: "order", setting.EventShape: "event"} {
		s, err := setting.NewSetting(name, value)
		suite.Require().NoError(err)
		suite.Require().NoError(repo.Put(ctx, s))
	}

	list, err := suite.settings.List(ctx, queries.NewListSettingsQuery())
	suite.Require().NoError(err)
	suite.Equal([]queries.SettingResponse{
		{Name: setting.EventShape, Value: "event"},
		{Name: setting.OrderShape, Value: "order"},
	}, list)

	query, err := queries.NewGetSettingQuery(setting.OrderShape)
	suite.Require().NoError(err)
	got, err := suite.settings.Get(ctx, query)
	suite.Require().NoError(err)
	suite.Equal("order", got.Value)

	missing, err := queries.NewGetSettingQuery("unknown")
	suite.Require().NoError(err)
	_, err = suite.settings.Get(ctx, missing)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StoreQueriesIntegrationTestSuite) TestSettings_InvalidQuery_ReturnsError() {
	_, err := suite.settings.List(context.Background(), queries.ListSettingsQuery{})
	suite.ErrorIs(err, queries.ErrListSettingsQueryIsNotConstructed)

	_, err = queries.NewGetSettingQuery("not a name")
	suite.Error(err)
}

func (suite *StoreQueriesIntegrationTestSuite) TestAddresses_OnlyCallersSortedByAlias() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	repo := suite.factory.Create().AddressBookRepository()
	for _, entry := range []struct {
		user  kernel.UUID
		alias string
	}{
		{userID, "service_provider"},
		{userID, "carrier"},
		{kernel.NewUUID(), "stranger"},
	} {
		a, err := account.NewAddress(entry.user, entry.alias, "pk-"+entry.alias)
		suite.Require().NoError(err)
		suite.Require().NoError(repo.Add(ctx, a))
	}

	query, err := queries.NewListAddressesQuery(userID)
	suite.Require().NoError(err)

	result, err := suite.accounts.Addresses(ctx, query)

	suite.Require().NoError(err)
	suite.Equal([]queries.AddressResponse{
		{Alias: "carrier", PublicKey: "pk-carrier"},
		{Alias: "service_provider", PublicKey: "pk-service_provider"},
	}, result)
}

func (suite *StoreQueriesIntegrationTestSuite) TestIdentities_NewestFirstIncludingInactive() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	base := time.Date(2019, 5, 1, 8, 0, 0, 0, time.UTC)
	repo := suite.factory.Create().IdentityRepository()

	for i, name := range []string{"first", "second"} {
		identity, err := account.NewIdentity(userID, name, ledger.Keys{
			Signing: ledger.Keypair{PublicKey: "pk-" + name, PrivateKey: "sk-" + name},
		}, base.Add(time.Duration(i)*time.Hour))
		suite.Require().NoError(err)
		if name == "first" {
			identity.Deactivate()
		}
		suite.Require().NoError(repo.Add(ctx, identity))
	}

	query, err := queries.NewListIdentitiesQuery(userID)
	suite.Require().NoError(err)

	result, err := suite.accounts.Identities(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("second", result[0].Name)
	suite.True(result[0].Active)
	suite.Equal("first", result[1].Name)
	suite.False(result[1].Active)
	suite.True(base.Equal(result[1].CreatedAt))
}

func (suite *StoreQueriesIntegrationTestSuite) TestAccountQueries_ContextCancellation_ReturnsError() {
	query, err := queries.NewListAddressesQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.accounts.Addresses(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestStoreQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StoreQueriesIntegrationTestSuite))
}
