package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driving"
)

var (
	addName    string
	addSources []string
	addTarget  float64
)

var addCmd = &cobra.Command{
	Use:   "add [query]",
	Short: "Start tracking a product",
	Long: `Adds a product to the tracked collection. The query is searched on
every enabled source and the first quotes are acquired immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "display name (defaults to the query)")
	addCmd.Flags().StringSliceVar(&addSources, "sources", nil,
		"comma-separated sources to search (default: all)")
	addCmd.Flags().Float64Var(&addTarget, "target", 0, "target price for alerts")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if trackerService == nil {
		return errors.New("tracker service not configured")
	}

	sources := make([]domain.Source, 0, len(addSources))
	for _, s := range addSources {
		sources = append(sources, domain.Source(s))
	}
	if len(sources) == 0 {
		sources = append(sources, domain.AllSources...)
	}

	product, err := trackerService.AddProduct(context.Background(), driving.AddProductRequest{
		Query:       args[0],
		Name:        addName,
		Sources:     sources,
		TargetPrice: addTarget,
	})
	if err != nil {
		return fmt.Errorf("failed to add product: %w", err)
	}

	cmd.Printf("Tracking %q (%s)\n", product.Name, product.ID)
	for _, r := range product.Results {
		printSourceResult(cmd, r)
	}
	cmd.Printf("Best price: $%.2f\n", product.BestPrice)
	if product.TargetPrice > 0 {
		cmd.Printf("Target price: $%.2f\n", product.TargetPrice)
	}
	return nil
}

// printSourceResult renders one per-source line.
func printSourceResult(cmd *cobra.Command, r domain.SourceResult) {
	marker := ""
	if r.Estimated {
		marker = " (estimated)"
	}
	cmd.Printf("  %-8s $%.2f%s  %s\n", r.Source.DisplayName(), r.Price, marker, r.Title)
	if r.URL != "" {
		cmd.Printf("           %s\n", r.URL)
	}
}
