package http

import (
	"log/slog"

	"ftl/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RouterConfig carries what NewRouter wires around the Server.
type RouterConfig struct {
	Server    *Server
	Users     UserLookup
	Metrics   *Metrics
	OpenAPI   []byte
	Logger    *slog.Logger
	BodyLimit string
}

// NewRouter builds the echo instance: tracing, metrics, recovery, token
// authentication and request validation in that order, then the API routes,
// /metrics and the Swagger UI under /docs.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	validate, err := requestValidator(cfg.OpenAPI)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler(cfg.Logger)

	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "1M"
	}

	e.Use(
		echo.WrapMiddleware(otelhttp.NewMiddleware("ftl")),
		middleware.RequestID(),
		cfg.Metrics.Middleware(),
		middleware.Recover(),
		middleware.BodyLimit(bodyLimit),
		tokenAuth(cfg.Users),
		validate,
	)

	servers.RegisterHandlers(e, cfg.Server)
	e.GET("/metrics", cfg.Metrics.Handler())
	e.GET("/docs/*", echoSwagger.WrapHandler)

	return e, nil
}
