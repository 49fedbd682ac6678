// Package http exposes the order lifecycle over a token-authenticated JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"ftl/internal/core/application/usecases/commands"
	"ftl/internal/core/application/usecases/queries"
	"ftl/internal/core/domain/model/account"
	"ftl/internal/core/domain/model/event"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (kernel.AssetID, error)
	}
	ConfirmOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmOrderCommand) (kernel.AssetID, error)
	}
	RejectOrderHandler interface {
		Handle(ctx context.Context, cmd commands.RejectOrderCommand) (kernel.AssetID, error)
	}
	PostEventHandler interface {
		Handle(ctx context.Context, cmd commands.PostEventCommand) (kernel.AssetID, error)
	}
	PutSettingHandler interface {
		Handle(ctx context.Context, cmd commands.PutSettingCommand) error
	}
	DeleteSettingHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteSettingCommand) error
	}
	AddAddressHandler interface {
		Handle(ctx context.Context, cmd commands.AddAddressCommand) error
	}
	DeleteAddressHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteAddressCommand) error
	}
	CreateIdentityHandler interface {
		Handle(ctx context.Context, cmd commands.CreateIdentityCommand) (*account.Identity, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	SettingsReader interface {
		List(ctx context.Context, query queries.ListSettingsQuery) ([]queries.SettingResponse, error)
		Get(ctx context.Context, query queries.GetSettingQuery) (queries.SettingResponse, error)
	}
	AccountReader interface {
		Addresses(ctx context.Context, query queries.ListAddressesQuery) ([]queries.AddressResponse, error)
		Identities(ctx context.Context, query queries.ListIdentitiesQuery) ([]queries.IdentityResponse, error)
	}

	// HealthProbe reports whether the ledger answered its last probe.
	HealthProbe interface {
		Healthy() bool
	}
)

// Handlers bundles the use cases served over HTTP.
type Handlers struct {
	CreateOrder    CreateOrderHandler
	ConfirmOrder   ConfirmOrderHandler
	RejectOrder    RejectOrderHandler
	PostEvent      PostEventHandler
	PutSetting     PutSettingHandler
	DeleteSetting  DeleteSettingHandler
	AddAddress     AddAddressHandler
	DeleteAddress  DeleteAddressHandler
	CreateIdentity CreateIdentityHandler

	ListOrders ListOrdersHandler
	GetOrder   GetOrderHandler
	Settings   SettingsReader
	Accounts   AccountReader
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements servers.ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	health   HealthProbe
	logger   *slog.Logger
}

func NewServer(handlers Handlers, health HealthProbe, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		health:   health,
		logger:   logger.With("component", "http"),
	}
}

// ListOrders handles GET /orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}

	role := queries.AnyRole
	if params.Role != nil {
		switch *params.Role {
		case servers.Customer:
			role = queries.CustomerRole
		case servers.Provider:
			role = queries.ProviderRole
		default:
			role = queries.Role(*params.Role)
		}
	}

	query, err := queries.NewListOrdersQuery(user.ID(), role, params.Completed)
	if err != nil {
		return problem(ctx, s.logger, err)
	}

	response, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var body servers.CreateOrderJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	o, err := orderFrom(body.Order)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	cmd, err := commands.NewCreateOrderCommand(user.ID(), body.ServiceProvider, o, deref(body.SlpId))
	if err != nil {
		return problem(ctx, s.logger, err)
	}

	assetID, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, servers.IdResponse{Id: assetID.String()})
}

// GetOrder handles GET /orders/{asset_id}.
func (s *Server) GetOrder(ctx echo.Context, assetID servers.AssetId) error {
	id, err := kernel.NewAssetID(assetID)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return problem(ctx, s.logger, err)
	}

	response, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ConfirmOrder handles PUT /orders/{asset_id}.
func (s *Server) ConfirmOrder(ctx echo.Context, assetID servers.AssetId) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	id, err := kernel.NewAssetID(assetID)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	cmd, err := commands.NewConfirmOrderCommand(user.ID(), id)
	if err != nil {
		return problem(ctx, s.logger, err)
	}

	txID, err := s.handlers.ConfirmOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, servers.IdResponse{Id: txID.String()})
}

// RejectOrder handles DELETE /orders/{asset_id}.
func (s *Server) RejectOrder(ctx echo.Context, assetID servers.AssetId) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	id, err := kernel.NewAssetID(assetID)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	cmd, err := commands.NewRejectOrderCommand(user.ID(), id)
	if err != nil {
		return problem(ctx, s.logger, err)
	}

	txID, err := s.handlers.RejectOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, servers.IdResponse{Id: txID.String()})
}

// PostEvent handles POST /events.
func (s *Server) PostEvent(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var body servers.PostEventJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	e, err := eventFrom(body)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	cmd, err := commands.NewPostEventCommand(user.ID(), e, deref(body.SlpId))
	if err != nil {
		return problem(ctx, s.logger, err)
	}

	txID, err := s.handlers.PostEvent.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, servers.IdResponse{Id: txID.String()})
}

// ListSettings handles GET /settings.
func (s *Server) ListSettings(ctx echo.Context) error {
	settings, err := s.handlers.Settings.List(ctx.Request().Context(), queries.NewListSettingsQuery())
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, settings)
}

// CreateSetting handles POST /settings.
func (s *Server) CreateSetting(ctx echo.Context) error {
	var body servers.CreateSettingJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}
	return s.putSetting(ctx, body.Setting, body.Value)
}

// GetSetting handles GET /settings/{setting}.
func (s *Server) GetSetting(ctx echo.Context, name servers.SettingName) error {
	query, err := queries.NewGetSettingQuery(name)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	response, err := s.handlers.Settings.Get(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// PutSetting handles PUT /settings/{setting}.
func (s *Server) PutSetting(ctx echo.Context, name servers.SettingName) error {
	var body servers.PutSettingJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}
	return s.putSetting(ctx, name, body.Value)
}

func (s *Server) putSetting(ctx echo.Context, name, value string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	cmd, err := commands.NewPutSettingCommand(name, value)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	if err = s.handlers.PutSetting.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, servers.Setting{Setting: name, Value: value})
}

// DeleteSetting handles DELETE /settings/{setting}.
func (s *Server) DeleteSetting(ctx echo.Context, name servers.SettingName) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	cmd, err := commands.NewDeleteSettingCommand(name)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	if err = s.handlers.DeleteSetting.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, s.logger, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListAddresses handles GET /addresses.
func (s *Server) ListAddresses(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewListAddressesQuery(user.ID())
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	addresses, err := s.handlers.Accounts.Addresses(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, addresses)
}

// AddAddress handles POST /addresses.
func (s *Server) AddAddress(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	var body servers.AddAddressJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	cmd, err := commands.NewAddAddressCommand(user.ID(), body.Alias, body.PublicKey)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	if err = s.handlers.AddAddress.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusCreated, body)
}

// DeleteAddress handles DELETE /addresses/{alias}.
func (s *Server) DeleteAddress(ctx echo.Context, alias string) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteAddressCommand(user.ID(), alias)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	if err = s.handlers.DeleteAddress.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, s.logger, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListIdentities handles GET /identities.
func (s *Server) ListIdentities(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewListIdentitiesQuery(user.ID())
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	identities, err := s.handlers.Accounts.Identities(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, identities)
}

// CreateIdentity handles POST /identities.
func (s *Server) CreateIdentity(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	var body servers.CreateIdentityJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	cmd, err := commands.NewCreateIdentityCommand(user.ID(), body.SlpId)
	if err != nil {
		return problem(ctx, s.logger, err)
	}
	identity, err := s.handlers.CreateIdentity.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, s.logger, err)
	}

	name, publicKey, active, createdAt := identity.Name(), identity.PublicKey(), identity.IsActive(), identity.CreatedAt()
	return ctx.JSON(http.StatusCreated, servers.Identity{
		SlpId:     &name,
		PublicKey: &publicKey,
		Active:    &active,
		Timestamp: &createdAt,
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	if s.health != nil && !s.health.Healthy() {
		return ctx.String(http.StatusServiceUnavailable, "Unhealthy")
	}
	return ctx.String(http.StatusOK, "Healthy")
}

func orderFrom(in servers.OrderInput) (order.Order, error) {
	cargo, err := order.NewCargo(in.Cargo.CargoType, in.Cargo.PackageType, in.Cargo.PackageCount)
	if err != nil {
		return order.Order{}, err
	}
	from, err := kernel.NewPlace(in.PlaceOfAcceptance)
	if err != nil {
		return order.Order{}, err
	}
	to, err := kernel.NewPlace(in.PlaceOfDelivery)
	if err != nil {
		return order.Order{}, err
	}
	return order.NewOrder(deref(in.ReferenceId), cargo, from, in.TimeOfAcceptance, to, in.TimeOfDelivery)
}

func eventFrom(in servers.NewEvent) (event.Event, error) {
	orderAssetID, err := kernel.NewAssetID(in.OrderAssetId)
	if err != nil {
		return event.Event{}, err
	}
	milestone, err := event.MilestoneFromCode(in.Event.Milestone)
	if err != nil {
		return event.Event{}, err
	}
	place, err := kernel.NewPlace(in.Event.Place)
	if err != nil {
		return event.Event{}, err
	}
	return event.NewEvent(orderAssetID, in.Event.Time, place, milestone)
}

func invalidBody(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
