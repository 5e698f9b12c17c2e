package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/catalog-api/internal/api/http"
	"github.com/spec-kit/catalog-api/internal/config"
	"github.com/spec-kit/catalog-api/internal/observability"
	"github.com/spec-kit/catalog-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger = logger.With(
		zap.String("service", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version),
	)

	registry, err := observability.NewRegistry(cfg.Metrics)
	if err != nil {
		logger.Fatal("failed to init metrics registry", zap.Error(err))
	}

	app := httptransport.NewApp(cfg, logger, registry, httptransport.Services{
		Users:    service.NewUserService(nil),
		Products: service.NewProductService(nil),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
