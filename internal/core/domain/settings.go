package domain

import (
	"fmt"
	"time"
)

// Settings holds operator-configurable monitoring behaviour.
type Settings struct {
	// CheckIntervalMinutes is how often scheduled checks run.
	CheckIntervalMinutes int `json:"check_interval_minutes"`

	// AutoCheckEnabled is the master switch for scheduled checks.
	// Manual checks work regardless.
	AutoCheckEnabled bool `json:"auto_check_enabled"`

	// PriceDropThresholdPercent is the minimum relative drop between
	// consecutive history entries that triggers a drop notification.
	PriceDropThresholdPercent float64 `json:"price_drop_threshold_percent"`

	// MaxFreeProducts is the ceiling on tracked-product count.
	MaxFreeProducts int `json:"max_free_products"`

	// NotificationsEnabled controls whether notifications are emitted.
	NotificationsEnabled bool `json:"notifications_enabled"`
}

// Default settings values.
const (
	DefaultCheckIntervalMinutes      = 60
	DefaultPriceDropThresholdPercent = 5.0
	DefaultMaxFreeProducts           = 10

	// MinCheckIntervalMinutes is the floor on the check interval.
	MinCheckIntervalMinutes = 1
)

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		CheckIntervalMinutes:      DefaultCheckIntervalMinutes,
		AutoCheckEnabled:          true,
		PriceDropThresholdPercent: DefaultPriceDropThresholdPercent,
		MaxFreeProducts:           DefaultMaxFreeProducts,
		NotificationsEnabled:      true,
	}
}

// Validate checks settings for out-of-range values.
func (s Settings) Validate() error {
	if s.CheckIntervalMinutes < MinCheckIntervalMinutes {
		return fmt.Errorf("%w: check interval must be at least %d minute(s)",
			ErrValidation, MinCheckIntervalMinutes)
	}
	if s.PriceDropThresholdPercent <= 0 || s.PriceDropThresholdPercent >= 100 {
		return fmt.Errorf("%w: price drop threshold must be between 0 and 100", ErrValidation)
	}
	if s.MaxFreeProducts < 1 {
		return fmt.Errorf("%w: max products must be at least 1", ErrValidation)
	}
	return nil
}

// CheckInterval returns the scheduled check interval as a duration.
func (s Settings) CheckInterval() time.Duration {
	return time.Duration(s.CheckIntervalMinutes) * time.Minute
}
