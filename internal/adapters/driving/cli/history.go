package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show a product's price history",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if trackerService == nil {
		return errors.New("tracker service not configured")
	}

	product, err := trackerService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to find product: %w", err)
	}

	cmd.Printf("Price history for %q (%s)\n", product.Name, product.ID)

	if len(product.History) == 0 {
		cmd.Println("No checks recorded yet. Run: pricewatch check", product.ID)
		return nil
	}

	stats := historyStats(product.History)
	cmd.Printf("  Checks: %d   Lowest: $%.2f   Highest: $%.2f   Average: $%.2f\n",
		len(product.History), stats.min, stats.max, stats.avg)
	cmd.Println()

	entries := product.History
	if historyLimit > 0 && len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}

	// Newest first.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		line := fmt.Sprintf("  %s  $%.2f", e.Timestamp.Format("2006-01-02 15:04"), e.Price)
		if e.Source != "" {
			line += "  " + e.Source.DisplayName()
		}
		cmd.Println(line)
	}
	return nil
}

type priceStats struct {
	min float64
	max float64
	avg float64
}

// historyStats summarises a non-empty price series.
func historyStats(history []domain.PriceHistoryEntry) priceStats {
	stats := priceStats{min: history[0].Price, max: history[0].Price}
	var sum float64
	for _, e := range history {
		if e.Price < stats.min {
			stats.min = e.Price
		}
		if e.Price > stats.max {
			stats.max = e.Price
		}
		sum += e.Price
	}
	stats.avg = sum / float64(len(history))
	return stats
}
