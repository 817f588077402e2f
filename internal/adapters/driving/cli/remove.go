package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Stop tracking a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Stop tracking all products",
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearForce, "force", false, "skip confirmation")
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(clearCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	if trackerService == nil {
		return errors.New("tracker service not configured")
	}

	id := args[0]
	product, err := trackerService.Get(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to find product: %w", err)
	}

	if err := trackerService.RemoveProduct(context.Background(), id); err != nil {
		return fmt.Errorf("failed to remove product: %w", err)
	}

	cmd.Printf("Removed %q (%s)\n", product.Name, product.ID)
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	if trackerService == nil {
		return errors.New("tracker service not configured")
	}

	if !clearForce {
		cmd.Println("This removes every tracked product and its history.")
		cmd.Println("Re-run with --force to confirm.")
		return nil
	}

	if err := trackerService.ClearAll(context.Background()); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	cmd.Println("All products removed.")
	return nil
}
