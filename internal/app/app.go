package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/chronicle/internal/common"
	"github.com/ternarybob/chronicle/internal/handlers"
	"github.com/ternarybob/chronicle/internal/interfaces"
	"github.com/ternarybob/chronicle/internal/services/auth"
	"github.com/ternarybob/chronicle/internal/services/logs"
	"github.com/ternarybob/chronicle/internal/services/retention"
	"github.com/ternarybob/chronicle/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config    *common.Config
	Logger    arbor.ILogger
	ctx       context.Context
	cancelCtx context.CancelFunc

	StorageManager interfaces.StorageManager

	// Services
	AuthService      interfaces.KeyResolver
	LogService       interfaces.LogService
	RetentionService *retention.Service

	// HTTP handlers
	APIHandler     *handlers.APIHandler
	LogHandler     *handlers.LogHandler
	MetricsHandler *handlers.MetricsHandler
}

// New creates the application with all services wired. Construction order:
// storage first, then services over it, then handlers.
func New(parent context.Context, config *common.Config, logger arbor.ILogger) (*App, error) {
	ctx, cancel := context.WithCancel(parent)

	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	authService := auth.NewService(&config.Auth, logger)
	logService := logs.NewService(storageManager.LogStorage(), config.API, logger)

	retentionService, err := retention.NewService(storageManager.LogStorage(), config.Retention, logger)
	if err != nil {
		storageManager.Close()
		cancel()
		return nil, fmt.Errorf("failed to initialize retention: %w", err)
	}

	a := &App{
		Config:           config,
		Logger:           logger,
		ctx:              ctx,
		cancelCtx:        cancel,
		StorageManager:   storageManager,
		AuthService:      authService,
		LogService:       logService,
		RetentionService: retentionService,

		APIHandler:     handlers.NewAPIHandler(config),
		LogHandler:     handlers.NewLogHandler(logService, config, logger),
		MetricsHandler: handlers.NewMetricsHandler(logService, logger),
	}

	logger.Info().
		Int("api_keys", len(config.Auth.Keys)).
		Str("environment", config.Environment).
		Msg("Application initialized")

	if len(config.Auth.Keys) == 0 {
		logger.Warn().Msg("No API keys configured; all requests will be rejected")
	}

	return a, nil
}

// Start begins background services
func (a *App) Start() {
	a.RetentionService.Start()
}

// Close shuts down background services and storage
func (a *App) Close() error {
	a.RetentionService.Stop()
	a.cancelCtx()

	if err := a.StorageManager.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}
