// Package app wires the application together: storage backend, AI
// provider registry, and the core services. This is the central
// dependency injection point.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dlformula/assistant/config"
	"github.com/dlformula/assistant/repositories"
	"github.com/dlformula/assistant/repositories/memory"
	"github.com/dlformula/assistant/repositories/postgres"
	"github.com/dlformula/assistant/services/assistant"
	"github.com/dlformula/assistant/services/casestore"
	"github.com/dlformula/assistant/services/history"
	"github.com/dlformula/assistant/services/providers"
	"github.com/dlformula/assistant/services/providers/anthropic"
	"github.com/dlformula/assistant/services/providers/deepseek"
	"github.com/dlformula/assistant/services/providers/openai"
	"github.com/dlformula/assistant/services/retrieval"
	"github.com/dlformula/assistant/services/settings"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger

	// Storage
	Store repositories.KeyValueStore
	DB    *postgres.DB // nil for the memory backend

	// Providers
	ProviderRegistry *providers.Registry

	// Services
	Settings  *settings.Service
	History   *history.Service
	Cases     *casestore.Service
	Retrieval *retrieval.Engine
	Assistant *assistant.Service
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initStorage(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	deps.initProviders(cfg)
	deps.initServices(cfg)

	logger.Info("all dependencies initialized",
		zap.String("storage_backend", cfg.Storage.Backend),
		zap.Int("providers", deps.ProviderRegistry.Count()))
	return deps, nil
}

// initStorage selects and initializes the key-value store backend
func (d *Dependencies) initStorage(ctx context.Context, cfg *config.Config) error {
	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		db, err := postgres.NewDB(cfg.Database, d.Logger)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		store := postgres.NewStore(db, d.Logger)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
		d.DB = db
		d.Store = store

	case config.StorageMemory:
		d.Store = memory.NewStore()

	default:
		return fmt.Errorf("unsupported storage backend: %q", cfg.Storage.Backend)
	}

	return nil
}

// initProviders registers all provider adapters. Adapters are always
// registered; whether a request succeeds depends on the API key
// supplied at call time.
func (d *Dependencies) initProviders(cfg *config.Config) {
	registry := providers.NewRegistry()

	adapters := []providers.Provider{
		anthropic.NewAdapter(providerConfig(cfg.Providers.Claude)),
		deepseek.NewAdapter(providerConfig(cfg.Providers.DeepSeek)),
		openai.NewAdapter(providerConfig(cfg.Providers.OpenAI)),
	}
	for _, adapter := range adapters {
		if err := registry.Register(adapter); err != nil {
			d.Logger.Error("failed to register provider",
				zap.String("provider", string(adapter.ID())),
				zap.Error(err))
			continue
		}
		d.Logger.Info("provider registered", zap.String("provider", string(adapter.ID())))
	}

	d.ProviderRegistry = registry
}

// initServices builds the core services on top of the store and registry
func (d *Dependencies) initServices(cfg *config.Config) {
	d.Settings = settings.NewService(d.Store, d.Logger)
	d.History = history.NewService(d.Store, d.Logger)
	d.Cases = casestore.NewService(d.Store, d.Logger, casestore.Config{
		MaxApproved:       cfg.Retention.MaxApprovedCases,
		MaxRejected:       cfg.Retention.MaxRejectedCases,
		CleanupMaxAgeDays: cfg.Retention.CleanupMaxAgeDays,
	})
	d.Retrieval = retrieval.NewEngine(d.Cases, d.Logger)

	fallbackKeys := map[providers.ID]string{
		providers.IDClaude:   cfg.Providers.Claude.APIKey,
		providers.IDDeepSeek: cfg.Providers.DeepSeek.APIKey,
		providers.IDOpenAI:   cfg.Providers.OpenAI.APIKey,
	}
	d.Assistant = assistant.NewService(
		d.Settings, d.History, d.Cases, d.Retrieval,
		d.ProviderRegistry, fallbackKeys, d.Logger)
}

// providerConfig converts an env provider config to the adapter config
func providerConfig(cfg config.ProviderConfig) providers.Config {
	out := providers.DefaultConfig()
	if cfg.BaseURL != "" {
		out.BaseURL = cfg.BaseURL
	}
	if cfg.Model != "" {
		out.Model = cfg.Model
	}
	if cfg.Timeout > 0 {
		out.Timeout = cfg.Timeout
	}
	if cfg.MaxRetries > 0 {
		out.MaxRetries = cfg.MaxRetries
	}
	if cfg.RetryDelay > 0 {
		out.RetryDelay = cfg.RetryDelay
	}
	return out
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}
	return nil
}
