package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/wage-query-service/internal/adapter/datastore"
	httpadapter "github.com/couchcryptid/wage-query-service/internal/adapter/http"
	"github.com/couchcryptid/wage-query-service/internal/config"
	"github.com/couchcryptid/wage-query-service/internal/observability"
	"github.com/couchcryptid/wage-query-service/internal/query"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	store := datastore.NewCachedStore(
		datastore.NewFileStore(cfg.DataDir, logger, metrics),
		cfg.WageCacheSize,
		metrics,
	)
	engine := query.New(store, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, engine, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if err := engine.CheckReadiness(ctx); err != nil {
		logger.Warn("dataset not fully readable at startup", "error", err)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
