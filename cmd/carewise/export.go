// ABOUTME: CLI commands for exporting and importing carewise data.
// ABOUTME: Supports JSON and YAML; both restore with 'carewise import'.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/carewise/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export profile and history",
	Long: `Export the health profile and every assessment.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable, also restorable)

OPTIONS:

  --output, -o   Write to file instead of stdout

EXAMPLES:

  carewise export json                  # Export all data as JSON
  carewise export json -o backup.json   # Save to file
  carewise export yaml -o backup.yaml   # Save as YAML`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(cmd.Context(), repo)
		case "yaml":
			data, err = storage.ExportYAML(cmd.Context(), repo)
		default:
			return fmt.Errorf("unknown format: %s (use json or yaml)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import profile and history from a backup",
	Long: `Import the health profile and assessments from an export file.

Files ending in .yaml or .yml are read as YAML, anything else as JSON.
Assessments keep their IDs, so importing the same file twice does not
duplicate history. The imported profile replaces the saved one.

EXAMPLES:

  carewise import backup.json
  carewise import backup.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		data, err := storage.ParseExport(filename, raw)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		if err := repo.Import(cmd.Context(), data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		profile := "no profile"
		if data.Profile != nil {
			profile = "profile"
		}
		fmt.Printf("  %s, %d assessments\n", profile, len(data.Assessments))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
