// Package bootstrap wires configuration, storage, services and the HTTP
// server into a runnable application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"iph/api"
	"iph/config"
	"iph/service"
	"iph/storage"
)

// App represents the IPH application with all its components.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Sugar  *zap.SugaredLogger

	DB           *storage.SQLite
	EventStore   *storage.SQLiteEventStorage
	CatalogStore *storage.SQLiteCatalogStorage
	SeizureStore *storage.SQLiteSeizureStorage

	EventService *service.EventService
	APIServer    *api.API

	serverErrCh chan error
	shutdownCh  chan struct{}
}

// NewApp creates the application and initializes all components.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	app := &App{
		serverErrCh: make(chan error, 1),
		shutdownCh:  make(chan struct{}),
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	logger, sugar, err := InitLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger
	app.Sugar = sugar

	sugar.Info("IPH service starting...")

	db, err := storage.NewSQLite(cfg.Storage.SQLitePath, sugar)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.DB = db
	app.EventStore = storage.NewSQLiteEventStorage(db)
	app.CatalogStore = storage.NewSQLiteCatalogStorage(db)
	app.SeizureStore = storage.NewSQLiteSeizureStorage(db)

	if cfg.Storage.Seed {
		if err := SeedCatalogs(ctx, app.CatalogStore, sugar); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to seed catalogs: %w", err)
		}
	}

	app.EventService = service.NewEventService(db, app.EventStore, app.CatalogStore, sugar,
		service.EventServiceOptions{
			RequireOfficers: cfg.Validation.RequireOfficers,
			RequireMotives:  cfg.Validation.RequireMotives,
		})

	app.APIServer = api.NewAPI(app.EventService, app.CatalogStore, app.SeizureStore, db, cfg, sugar)

	return app, nil
}

// InitLogger builds the zap logger from logging configuration.
func InitLogger(cfg config.LoggingConfig) (*zap.Logger, *zap.SugaredLogger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, err
	}
	return logger, logger.Sugar(), nil
}

// Start launches the HTTP server in the background.
func (a *App) Start() {
	addr := a.Config.Addr()
	a.Sugar.Infof("API listening on %s", addr)
	go func() {
		if err := a.APIServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.serverErrCh <- err
		}
	}()
}

// WaitForShutdown blocks until a shutdown signal arrives or the server
// fails, and returns the server error if any.
func (a *App) WaitForShutdown() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.Sugar.Infof("Received signal %s, shutting down", sig)
		return nil
	case err := <-a.serverErrCh:
		a.Sugar.Errorw("API server failed", "error", err)
		return err
	}
}

// Shutdown stops the server and closes storage.
func (a *App) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.APIServer != nil {
		if err := a.APIServer.Stop(ctx); err != nil {
			a.Sugar.Errorw("Failed to stop API server", "error", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Sugar.Errorw("Failed to close database", "error", err)
		}
	}

	a.Sugar.Info("Shutdown complete")
	_ = a.Logger.Sync()
}
