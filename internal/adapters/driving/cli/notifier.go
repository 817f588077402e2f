package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driven"
	"github.com/meridian-labs/pricewatch-cli/internal/logger"
)

// Ensure ConsoleNotifier implements the interface.
var _ driven.Notifier = (*ConsoleNotifier)(nil)

// ConsoleNotifier renders alerts to the terminal.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier creates a notifier writing to stdout.
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{out: os.Stdout}
}

// NewConsoleNotifierWithWriter creates a notifier writing to w.
func NewConsoleNotifierWithWriter(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: w}
}

// Notify renders one alert.
func (n *ConsoleNotifier) Notify(alert domain.Notification) {
	switch alert.Kind {
	case domain.NotificationPriceDrop:
		fmt.Fprintf(n.out, "PRICE DROP: %s fell from $%.2f to $%.2f\n",
			alert.ProductName, alert.PreviousPrice, alert.CurrentPrice)
	case domain.NotificationTargetReached:
		fmt.Fprintf(n.out, "TARGET REACHED: %s is now $%.2f\n",
			alert.ProductName, alert.CurrentPrice)
	default:
		fmt.Fprintf(n.out, "ALERT: %s at $%.2f\n", alert.ProductName, alert.CurrentPrice)
	}
	if alert.URL != "" {
		fmt.Fprintf(n.out, "  %s\n", alert.URL)
	}
}

// PriceUpdated logs the per-check update in verbose mode only.
func (n *ConsoleNotifier) PriceUpdated(u domain.PriceUpdate) {
	logger.Debug("checked %s: %.2f -> %.2f (%s)", u.ProductID, u.OldPrice, u.NewPrice, u.Source)
}
