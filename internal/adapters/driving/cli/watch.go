package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/meridian-labs/pricewatch-cli/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the price check scheduler",
	Long: `Checks all tracked products on the configured interval until
interrupted. Edits to the config file are picked up without a restart.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if checkerService == nil {
		return errors.New("checker service not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configPath != "" && configReload != nil {
		stopWatcher, err := watchConfig(ctx, configPath, configReload)
		if err != nil {
			logger.Warn("config watch unavailable: %v", err)
		} else {
			defer stopWatcher()
		}
	}

	cmd.Println("Watching prices. Press Ctrl+C to stop.")
	err := checkerService.Run(ctx)
	if errors.Is(err, context.Canceled) {
		cmd.Println("Stopped.")
		return nil
	}
	return err
}

// watchConfig reloads the config store whenever the config file changes.
// The parent directory is watched because editors typically replace the
// file rather than write it in place.
func watchConfig(ctx context.Context, path string, reload func() error) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := reload(); err != nil {
					logger.Warn("config reload failed: %v", err)
					continue
				}
				logger.Info("config reloaded from %s", path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watch error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
