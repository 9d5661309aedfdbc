package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/api"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/config"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/importer"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/log"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/messagebus"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/metrics"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/pipeline"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/tracing"
	"github.com/nats-io/nats.go"
)

func main() {
	cfg := config.Load()
	log := log.SetupFromEnv(cfg.Service.Name)

	log.Info("Starting urlimport service", slog.String("version", cfg.Service.Version))

	ctx := context.Background()
	shutdown, err := tracing.SetupOTelSDK(ctx, cfg.Tracing)
	if err != nil {
		log.Error("Failed to setup tracing", slog.Any("error", err))
		os.Exit(1)
	}
	defer shutdown(ctx)

	bus, client, m, cleanup, err := initializeDependencies(cfg)
	if err != nil {
		log.Error("Failed to initialize dependencies", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	p := pipeline.New(
		pipeline.WithHTTPClient(client),
		pipeline.WithMetrics(m),
		pipeline.WithLogger(log),
		pipeline.WithConfig(cfg.Pipeline),
	)

	imp := importer.New(p, bus, importer.WithLogger(log))

	sub, err := bus.SubscribeToImportRequest(imp.ProcessImportMessage)
	if err != nil {
		log.Error("Failed to subscribe to import requests", slog.Any("error", err))
		os.Exit(1)
	}
	defer sub.Unsubscribe()

	srv := api.NewAPI(p, bus, m.ServiceMetrics, log)
	go func() {
		if err := srv.Start(ctx, cfg); err != nil && err != http.ErrServerClosed {
			log.Error("API server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	log.Info("urlimport service is running")

	waitForShutdown(log)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down API server", slog.Any("error", err))
	}
}

// initializeDependencies initializes individual dependencies
func initializeDependencies(cfg *config.Config) (
	*messagebus.MessageBus,
	*http.Client,
	*metrics.ImporterMetrics,
	func(),
	error,
) {
	// Initialize metrics
	m := metrics.NewImporterMetrics()
	m.MustRegisterImporter()
	m.SetServiceInfo(cfg.Service.Version, runtime.Version())

	// Start metrics server
	srv := m.StartMetricsServer(cfg.Metrics.Port)

	// Initialize HTTP client with tracing. No client-level timeout: the
	// pipeline applies its own per-fetch deadline.
	tr := http.DefaultTransport
	tr = tracing.HTTPClientMiddleware()(tr)

	client := &http.Client{
		Transport: tr,
	}

	// Initialize NATS connection
	nc, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	bus := messagebus.New(nc, m)

	cleanup := func() {
		nc.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if srv != nil {
			srv.Shutdown(ctx)
		}
	}

	return bus, client, m, cleanup, nil
}

// waitForShutdown waits for a shutdown signal
func waitForShutdown(log *slog.Logger) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch

	log.Info("Shutting down urlimport service", slog.String("signal", sig.String()))
}
