package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ftl/api"
	"ftl/cmd"
	httpin "ftl/internal/adapters/in/http"
	"ftl/internal/adapters/out/postgres"
	"ftl/internal/jobs"
	"ftl/internal/platform/observability"

	_ "ftl/docs"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err == nil {
		err = configs.Validate()
	}
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, shutdownTracing, err := observability.Init(ctx, observability.Options{
		ServiceName:  "ftl",
		Environment:  os.Getenv("DEPLOYMENT_ENVIRONMENT"),
		OTLPEndpoint: configs.OTLPEndpoint,
		Insecure:     true,
		LogLevel:     observability.ParseLevel(configs.LogLevel),
	})
	if err != nil {
		log.Fatalf("Failed to initialise tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("Failed to flush traces", "error", err)
		}
	}()

	gormDB, err := postgres.Open(postgres.DSN(
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode))
	if err != nil {
		log.Fatal(err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to wire application: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Failed to release adapters", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	probe := jobs.NewLedgerProbeJob(app.Ledger(), configs.LedgerProbeSchedule, configs.LedgerTimeout, registry, logger)
	jobManager := jobs.NewJobManager(probe)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, probe, registry, logger, configs.HTTPPort)
}

func startWebServer(
	ctx context.Context,
	app *cmd.CompositionRoot,
	health httpin.HealthProbe,
	registry *prometheus.Registry,
	logger *slog.Logger,
	port string,
) {
	e, err := httpin.NewRouter(httpin.RouterConfig{
		Server:  httpin.NewServer(app.HTTPHandlers(), health, logger),
		Users:   app.Users(),
		Metrics: httpin.NewMetrics(registry),
		OpenAPI: api.OpenAPI,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
