// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Moves the profile and history, e.g. from SQLite to Charm or Redis.
package main

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/carewise/internal/config"
	"github.com/harperreed/carewise/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy the health profile and assessment history from one storage backend
to another.

BACKENDS:

  ` + strings.Join(config.Backends, ", ") + `

IMPORTANT:

  - Keys that already exist in the destination are overwritten
  - The source is left untouched
  - Run with --dry-run first to see what would be copied

USAGE:

  carewise migrate --from sqlite --to badger --dry-run
  carewise migrate --from sqlite --to charm

AFTER MIGRATION:

  Point carewise at the new backend in ~/.config/carewise/config.json:
    { "backend": "charm" }`,
	Annotations: noStore(),
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		from := strings.ToLower(migrateFrom)
		to := strings.ToLower(migrateTo)
		if from == "" {
			from = cfg.GetBackend()
		}
		for _, b := range []string{from, to} {
			if !slices.Contains(config.Backends, b) {
				return fmt.Errorf("unknown backend: %q (use %s)", b, strings.Join(config.Backends, ", "))
			}
		}
		if from == to {
			return fmt.Errorf("source and destination are both %s", from)
		}
		if from == config.BackendMemory {
			return fmt.Errorf("the memory backend starts empty; nothing to migrate")
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()
		}

		src, err := cfg.OpenKV(ctx, from)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", from, err)
		}
		defer func() { _ = src.Close() }()

		if to == config.BackendBadger {
			dir := filepath.Join(cfg.GetDataDir(), "badger")
			if nonEmpty, err := storage.IsDirNonEmpty(dir); err == nil && nonEmpty {
				color.Yellow("⚠ %s already has data; matching keys will be overwritten", dir)
			}
		}

		dst, err := cfg.OpenKV(ctx, to)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", to, err)
		}
		defer func() { _ = dst.Close() }()

		summary, err := storage.Copy(ctx, dst, src, migrateDryRun)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		verb := "Copied"
		if migrateDryRun {
			verb = "Would copy"
		}
		color.Green("✓ %s %d keys from %s to %s", verb, summary.Keys, from, to)
		fmt.Printf("  Profiles:    %d\n", summary.Profiles)
		fmt.Printf("  Assessments: %d\n", summary.Assessments)
		if summary.Skipped > 0 {
			fmt.Printf("  Skipped:     %d (not carewise data)\n", summary.Skipped)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend (default: configured backend)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
