package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [id]",
	Short: "Check current prices",
	Long: `Re-acquires prices for tracked products. With an id, checks just
that product; without, checks the whole collection.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkerService == nil || trackerService == nil {
		return errors.New("checker service not configured")
	}

	ctx := context.Background()

	if len(args) == 1 {
		if err := checkerService.CheckProduct(ctx, args[0]); err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		product, err := trackerService.Get(ctx, args[0])
		if err != nil {
			return err
		}
		printProduct(cmd, 1, *product)
		return nil
	}

	if err := checkerService.CheckAll(ctx); err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	products, err := trackerService.List(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("Checked %d product(s)\n", len(products))
	for i, p := range products {
		printProduct(cmd, i+1, p)
	}
	return nil
}
