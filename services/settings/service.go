// Package settings persists user preferences: work mode, AI provider
// selection and API key, history and clipboard toggles.
package settings

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dlformula/assistant/models"
	"github.com/dlformula/assistant/repositories"
	"github.com/dlformula/assistant/services"
	"github.com/dlformula/assistant/services/providers"
)

// Service manages user settings on top of the key-value store
type Service struct {
	store  repositories.KeyValueStore
	logger *zap.Logger
}

// NewService creates a new settings service
func NewService(store repositories.KeyValueStore, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Get returns the stored settings, or the defaults when nothing has
// been saved yet. The defaults are not written back.
func (s *Service) Get(ctx context.Context) (*models.Settings, error) {
	var stored models.Settings
	found, err := repositories.GetJSON(ctx, s.store, repositories.KeySettings, &stored)
	if err != nil {
		return nil, services.WrapStorage("failed to load settings", err)
	}
	if !found {
		return models.DefaultSettings(), nil
	}
	return &stored, nil
}

// Update validates and persists new settings
func (s *Service) Update(ctx context.Context, settings *models.Settings) error {
	if err := validate(settings); err != nil {
		return err
	}

	if err := repositories.SetJSON(ctx, s.store, repositories.KeySettings, settings); err != nil {
		return services.WrapStorage("failed to save settings", err)
	}

	s.logger.Info("settings updated",
		zap.String("work_mode", string(settings.WorkMode)),
		zap.String("provider", settings.Provider),
		zap.Bool("has_api_key", settings.APIKey != ""))

	return nil
}

// Reset restores the default settings
func (s *Service) Reset(ctx context.Context) (*models.Settings, error) {
	defaults := models.DefaultSettings()
	if err := repositories.SetJSON(ctx, s.store, repositories.KeySettings, defaults); err != nil {
		return nil, services.WrapStorage("failed to reset settings", err)
	}

	s.logger.Info("settings reset to defaults")
	return defaults, nil
}

// validate checks work mode, provider, and the API key requirement for
// AI mode
func validate(settings *models.Settings) error {
	switch settings.WorkMode {
	case models.WorkModeLocal, models.WorkModeAI:
	default:
		return services.ErrInvalidWorkMode
	}

	if _, err := providers.ParseID(settings.Provider); err != nil {
		return services.ErrInvalidProvider
	}

	if settings.WorkMode == models.WorkModeAI && strings.TrimSpace(settings.APIKey) == "" {
		return services.ErrMissingAPIKey
	}

	return nil
}
