package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export tracked products and settings to JSON",
	Long: `Writes the full tracked collection plus settings to a JSON file,
or to stdout when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import tracked products and settings from JSON",
	Long: `Replaces the tracked collection and settings with the contents of
a previously exported JSON file.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if trackerService == nil {
		return errors.New("tracker service not configured")
	}

	doc, err := trackerService.Export(context.Background())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if len(args) == 0 {
		cmd.Println(string(data))
		return nil
	}

	if err := os.WriteFile(args[0], data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", args[0], err)
	}
	cmd.Printf("Exported %d product(s) to %s\n", len(doc.Products), args[0])
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	if trackerService == nil {
		return errors.New("tracker service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var doc domain.ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	if err := trackerService.Import(context.Background(), &doc); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d product(s) from %s\n", len(doc.Products), args[0])
	return nil
}
