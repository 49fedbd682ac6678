package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpin "ftl/internal/adapters/in/http"
	"ftl/internal/adapters/out/kafka"
	"ftl/internal/adapters/out/postgres"
	"ftl/internal/adapters/out/redis"
	"ftl/internal/adapters/out/semantics"
	"ftl/internal/adapters/out/slp"
	"ftl/internal/core/application/checks"
	"ftl/internal/core/application/usecases/commands"
	"ftl/internal/core/application/usecases/queries"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/core/domain/model/semantic"
	"ftl/internal/core/domain/services"
	"ftl/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	vocab     semantic.Vocabulary
	graph     *semantics.Graph
	documents *semantics.Documents
	ledger    ports.Ledger
	assets    ports.AssetReader
	publisher ports.StatusChangePublisher
	engine    *services.StatusEngine[order.Status]

	closers []func() error
}

// NewCompositionRoot connects the outbound adapters. Redis and Kafka are
// optional: without REDIS_ADDR assets are read from the ledger directly and
// without KAFKA_HOST status changes are not published.
func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	vocab, err := semantic.NewVocabulary(config.SCVLOntology)
	if err != nil {
		return nil, err
	}

	ledger, err := slp.NewClient(config.SLPURL, config.SLPToken, config.LedgerTimeout)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		config:     config,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		vocab:      vocab,
		graph:      semantics.NewGraph(),
		documents:  semantics.NewDocuments(vocab),
		ledger:     ledger,
		assets:     ledger,
		publisher:  kafka.NoopPublisher{},
	}
	c.engine = services.NewStatusEngine(order.Statuses, ledger)

	if config.RedisAddr != "" {
		client, err := redis.NewClient(ctx, config.RedisAddr)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, client.Close)
		c.assets = c.cachedAssets(client)
		logger.InfoContext(ctx, "Asset cache enabled", "addr", config.RedisAddr, "ttl", config.AssetCacheTTL)
	}

	if brokers := config.KafkaBrokers(); len(brokers) > 0 {
		publisher := kafka.NewStatusChangePublisher(kafka.NewWriter(brokers, config.KafkaOrderChangedTopic))
		c.closers = append(c.closers, publisher.Close)
		c.publisher = publisher
		logger.InfoContext(ctx, "Publishing status changes", "topic", config.KafkaOrderChangedTopic)
	}

	return c, nil
}

func (c *CompositionRoot) cachedAssets(client goredis.Cmdable) ports.AssetReader {
	return redis.NewCachedAssetReader(c.ledger, client, c.config.AssetCacheTTL, c.logger)
}

// Ledger exposes the ledger client for the health probe.
func (c *CompositionRoot) Ledger() ports.Ledger {
	return c.ledger
}

// Close releases the optional adapters in reverse order of creation.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	return err
}

func (c *CompositionRoot) ledgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) accountUoWFactory() commands.AccountUoWFactory {
	return FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) settingUoWFactory() commands.SettingUoWFactory {
	return FuncSettingUoWFactory(func() commands.SettingUoW {
		return c.uowFactory.Create()
	})
}

// identities reads outside any unit of work.
func (c *CompositionRoot) identities() ports.IdentityRepository {
	return c.uowFactory.Create().IdentityRepository()
}

// Users resolves API tokens for the HTTP authentication middleware.
func (c *CompositionRoot) Users() ports.UserRepository {
	return c.uowFactory.Create().UserRepository()
}

func (c *CompositionRoot) checker() *checks.Checker {
	return checks.NewChecker(c.assets, c.ledger, c.graph, c.identities())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.ledgerUoWFactory(), c.ledger, c.documents)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(
		c.ledgerUoWFactory(), c.checker(), c.engine, c.vocab, c.ledger, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(
		c.ledgerUoWFactory(), c.checker(), c.engine, c.vocab, c.assets, c.ledger, c.publisher, c.logger)
}

func (c *CompositionRoot) CreatePostEventCommandHandler() commands.PostEventCommandHandler {
	return commands.NewPostEventCommandHandler(
		c.ledgerUoWFactory(),
		c.checker(),
		c.engine,
		c.vocab,
		c.assets,
		services.NewMilestoneValidator(c.graph, c.vocab),
		c.documents,
		c.ledger,
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreatePutSettingCommandHandler() commands.PutSettingCommandHandler {
	return commands.NewPutSettingCommandHandler(c.settingUoWFactory())
}

func (c *CompositionRoot) CreateDeleteSettingCommandHandler() commands.DeleteSettingCommandHandler {
	return commands.NewDeleteSettingCommandHandler(c.settingUoWFactory())
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	return commands.NewCreateUserCommandHandler(c.accountUoWFactory())
}

func (c *CompositionRoot) CreateCreateIdentityCommandHandler() commands.CreateIdentityCommandHandler {
	return commands.NewCreateIdentityCommandHandler(c.accountUoWFactory(), c.ledger)
}

func (c *CompositionRoot) CreateAddAddressCommandHandler() commands.AddAddressCommandHandler {
	return commands.NewAddAddressCommandHandler(c.accountUoWFactory())
}

func (c *CompositionRoot) CreateDeleteAddressCommandHandler() commands.DeleteAddressCommandHandler {
	return commands.NewDeleteAddressCommandHandler(c.accountUoWFactory())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.identities(), c.assets, c.ledger, c.engine, c.graph, c.vocab)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.checker(), c.assets, c.ledger, c.engine, c.graph, c.vocab)
}

func (c *CompositionRoot) CreateSettingsQueryHandler() queries.SettingsQueryHandler {
	return queries.NewSettingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAccountQueryHandler() queries.AccountQueryHandler {
	return queries.NewAccountQueryHandler(c.gormDB)
}

// HTTPHandlers collects every use case the HTTP server dispatches to.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	createOrder := c.CreateCreateOrderCommandHandler()
	confirmOrder := c.CreateConfirmOrderCommandHandler()
	rejectOrder := c.CreateRejectOrderCommandHandler()
	postEvent := c.CreatePostEventCommandHandler()
	putSetting := c.CreatePutSettingCommandHandler()
	deleteSetting := c.CreateDeleteSettingCommandHandler()
	addAddress := c.CreateAddAddressCommandHandler()
	deleteAddress := c.CreateDeleteAddressCommandHandler()
	createIdentity := c.CreateCreateIdentityCommandHandler()

	return httpin.Handlers{
		CreateOrder:    &createOrder,
		ConfirmOrder:   &confirmOrder,
		RejectOrder:    &rejectOrder,
		PostEvent:      &postEvent,
		PutSetting:     &putSetting,
		DeleteSetting:  &deleteSetting,
		AddAddress:     &addAddress,
		DeleteAddress:  &deleteAddress,
		CreateIdentity: &createIdentity,

		ListOrders: c.CreateListOrdersQueryHandler(),
		GetOrder:   c.CreateGetOrderQueryHandler(),
		Settings:   c.CreateSettingsQueryHandler(),
		Accounts:   c.CreateAccountQueryHandler(),
	}
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}

type FuncSettingUoWFactory func() commands.SettingUoW

func (f FuncSettingUoWFactory) Create() commands.SettingUoW {
	return f()
}
