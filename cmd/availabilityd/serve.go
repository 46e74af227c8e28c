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

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/availsys/asset-availability-go/features/command/activateasset"
	"github.com/availsys/asset-availability-go/features/command/extendassetlock"
	"github.com/availsys/asset-availability-go/features/command/lockasset"
	"github.com/availsys/asset-availability-go/features/command/registerasset"
	"github.com/availsys/asset-availability-go/features/command/unlockasset"
	"github.com/availsys/asset-availability-go/features/command/withdrawasset"
	"github.com/availsys/asset-availability-go/features/query/assetstatus"
	"github.com/availsys/asset-availability-go/httpapi"
	"github.com/availsys/asset-availability-go/oteladapters"
	"github.com/availsys/asset-availability-go/shell"
	"github.com/availsys/asset-availability-go/shell/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the availability HTTP service",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	logger, shutdownObservability, err := setupObservability()
	if err != nil {
		return err
	}
	defer shutdownObservability()

	store, err := buildStorage(ctx, logger)
	if err != nil {
		return err
	}
	defer store.cleanup()

	api := httpapi.NewAPI(buildAPIDependencies(store, logger))

	server := httpapi.NewServer(api, httpapi.ServerConfig{
		Addr:           cfg.GetString(cfgKeyHTTPAddr),
		RequestsPerSec: cfg.GetFloat64(cfgKeyHTTPRatePerSec),
		RequestsBurst:  cfg.GetInt(cfgKeyHTTPRateBurst),
	})

	serverErrs := make(chan error, 1)

	go func() {
		logger.Info("http server listening", "addr", server.Addr)

		if serveErr := server.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
			serverErrs <- serveErr
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrs:
		return fmt.Errorf("http server failed: %w", err)

	case sig := <-signals:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpapi.ServerConfig{}.ShutdownTimeout())
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// buildAPIDependencies wires the feature slices to the configured storage.
// When observability is enabled, command handlers are instrumented with
// outcome and duration metrics.
func buildAPIDependencies(store *storage, logger *oteladapters.SlogBridgeLogger) httpapi.Dependencies {
	deps := httpapi.Dependencies{
		RegisterAsset: registerasset.NewCommandHandler(store.repository, store.outbox),
		ActivateAsset: activateasset.NewCommandHandler(store.repository, store.outbox),
		WithdrawAsset: withdrawasset.NewCommandHandler(store.repository, store.outbox),
		LockAsset:     lockasset.NewCommandHandler(store.repository, store.outbox),
		ExtendLock:    extendassetlock.NewCommandHandler(store.repository, store.outbox),
		UnlockAsset:   unlockasset.NewCommandHandler(store.repository, store.outbox),
		AssetStatus:   assetstatus.NewQueryHandler(store.repository),
		Clock:         shell.SystemClock{},
		Logger:        logger,
	}

	if cfg.GetBool(cfgKeyObservabilityOn) {
		metrics := oteladapters.NewMetricsCollector(otel.Meter("availabilityd"))

		deps.RegisterAsset = shell.NewInstrumentedCommandHandler(deps.RegisterAsset, metrics)
		deps.ActivateAsset = shell.NewInstrumentedCommandHandler(deps.ActivateAsset, metrics)
		deps.WithdrawAsset = shell.NewInstrumentedCommandHandler(deps.WithdrawAsset, metrics)
		deps.LockAsset = shell.NewInstrumentedCommandHandler(deps.LockAsset, metrics)
		deps.ExtendLock = shell.NewInstrumentedCommandHandler(deps.ExtendLock, metrics)
		deps.UnlockAsset = shell.NewInstrumentedCommandHandler(deps.UnlockAsset, metrics)
	}

	return deps
}

// setupObservability returns the service logger and a shutdown func. With
// observability enabled, logs correlate with traces via the OpenTelemetry
// slog bridge and telemetry is exported over OTLP gRPC.
func setupObservability() (*oteladapters.SlogBridgeLogger, func(), error) {
	if !cfg.GetBool(cfgKeyObservabilityOn) {
		handler := slog.NewJSONHandler(os.Stdout, nil)
		return oteladapters.NewSlogBridgeLoggerWithHandler(handler), func() {}, nil
	}

	providers, err := config.NewObservabilityConfig("availabilityd", version, cfg.GetString(cfgKeyCollectorEndpoint))
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap observability: %w", err)
	}

	logger := oteladapters.NewSlogBridgeLogger("availabilityd")

	return logger, func() {
		if shutdownErr := providers.Shutdown(); shutdownErr != nil {
			fmt.Fprintln(os.Stderr, "observability shutdown failed:", shutdownErr)
		}
	}, nil
}
