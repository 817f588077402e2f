package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked products",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if trackerService == nil {
		return errors.New("tracker service not configured")
	}

	products, err := trackerService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	if listJSON {
		data, err := json.MarshalIndent(products, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	if len(products) == 0 {
		cmd.Println("No products tracked. Add one with: pricewatch add \"<query>\"")
		return nil
	}

	for i, p := range products {
		printProduct(cmd, i+1, p)
	}
	return nil
}

// printProduct renders one product summary block.
func printProduct(cmd *cobra.Command, n int, p domain.TrackedProduct) {
	cmd.Printf("%d. %s (%s)\n", n, p.Name, p.ID)
	cmd.Printf("   Query: %q\n", p.Query)
	cmd.Printf("   Best:  $%.2f", p.BestPrice)
	if p.TargetPrice > 0 {
		cmd.Printf("  (target $%.2f)", p.TargetPrice)
	}
	cmd.Println()
	for _, r := range p.Results {
		cmd.Print("  ")
		printSourceResult(cmd, r)
	}
	if !p.LastCheckedAt.IsZero() {
		cmd.Printf("   Last checked: %s\n", p.LastCheckedAt.Format("2006-01-02 15:04"))
	}
}
