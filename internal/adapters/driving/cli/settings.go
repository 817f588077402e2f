package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure monitoring behaviour: check interval, drop
threshold, notifications and the product limit.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting. Available keys:

  interval       check interval in minutes (minimum 1)
  auto-check     enable scheduled checks (true/false)
  threshold      price drop alert threshold in percent
  notifications  enable notifications (true/false)
  max-products   maximum tracked products`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Println("[Monitoring]")
	cmd.Printf("  Check interval: %d minute(s)\n", settings.CheckIntervalMinutes)
	cmd.Printf("  Auto-check: %s\n", onOff(settings.AutoCheckEnabled))
	cmd.Println()
	cmd.Println("[Notifications]")
	cmd.Printf("  Enabled: %s\n", onOff(settings.NotificationsEnabled))
	cmd.Printf("  Drop threshold: %.1f%%\n", settings.PriceDropThresholdPercent)
	cmd.Println()
	cmd.Println("[Limits]")
	cmd.Printf("  Max products: %d\n", settings.MaxFreeProducts)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	key, value := args[0], args[1]
	if err := applySetting(settings, key, value); err != nil {
		return err
	}

	if err := settingsService.Update(*settings); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	cmd.Printf("Updated %s\n", key)
	return nil
}

// applySetting mutates one settings field from its CLI key and value.
func applySetting(settings *domain.Settings, key, value string) error {
	switch key {
	case "interval":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", value, err)
		}
		settings.CheckIntervalMinutes = n
	case "auto-check":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid auto-check %q: %w", value, err)
		}
		settings.AutoCheckEnabled = b
	case "threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid threshold %q: %w", value, err)
		}
		settings.PriceDropThresholdPercent = f
	case "notifications":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid notifications %q: %w", value, err)
		}
		settings.NotificationsEnabled = b
	case "max-products":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid max-products %q: %w", value, err)
		}
		settings.MaxFreeProducts = n
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
