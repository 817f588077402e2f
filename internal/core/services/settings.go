package services

import (
	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driven"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCheckInterval   = "monitor.check_interval_minutes"
	keyAutoCheck       = "monitor.auto_check_enabled"
	keyDropThreshold   = "notifications.price_drop_threshold_percent"
	keyNotifyEnabled   = "notifications.enabled"
	keyMaxFreeProducts = "limits.max_free_products"
)

// SettingsService manages application settings on top of a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings, applying defaults for unset keys.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		CheckIntervalMinutes:      s.getInt(keyCheckInterval, defaults.CheckIntervalMinutes),
		AutoCheckEnabled:          s.getBool(keyAutoCheck, defaults.AutoCheckEnabled),
		PriceDropThresholdPercent: s.getFloat(keyDropThreshold, defaults.PriceDropThresholdPercent),
		MaxFreeProducts:           s.getInt(keyMaxFreeProducts, defaults.MaxFreeProducts),
		NotificationsEnabled:      s.getBool(keyNotifyEnabled, defaults.NotificationsEnabled),
	}

	if err := settings.Validate(); err != nil {
		// A hand-edited config can carry out-of-range values; fall
		// back to defaults rather than failing every caller.
		d := defaults
		return &d, nil
	}
	return settings, nil
}

// Update validates and persists new settings.
func (s *SettingsService) Update(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(keyCheckInterval, settings.CheckIntervalMinutes); err != nil {
		return err
	}
	if err := s.configStore.Set(keyAutoCheck, settings.AutoCheckEnabled); err != nil {
		return err
	}
	if err := s.configStore.Set(keyDropThreshold, settings.PriceDropThresholdPercent); err != nil {
		return err
	}
	if err := s.configStore.Set(keyMaxFreeProducts, settings.MaxFreeProducts); err != nil {
		return err
	}
	return s.configStore.Set(keyNotifyEnabled, settings.NotificationsEnabled)
}

// getInt reads an int key with a default for missing values.
func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}

// getFloat reads a float key with a default for missing values.
func (s *SettingsService) getFloat(key string, def float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetFloat(key)
}

// getBool reads a bool key with a default for missing values.
func (s *SettingsService) getBool(key string, def bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetBool(key)
}
