package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"postboard/app/config"
	"postboard/app/controllers"
	"postboard/app/routes"
	"postboard/app/services"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RunAppServer serves the posts API until ctx is cancelled or the process
// receives SIGINT or SIGTERM.
func RunAppServer(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	store, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	postController := controllers.NewPostController(services.NewPostService(store), logger)
	handler := routes.SetupRoutes(postController, logger)
	srv := routes.NewServer(cfg.Server, handler)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting postboard",
		zap.String("addr", cfg.Server.Addr),
		zap.String("store", cfg.Storage.Driver),
		zap.String("version", Version),
	)
	return routes.Run(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// newLogger builds a zap logger from the log settings.
func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
