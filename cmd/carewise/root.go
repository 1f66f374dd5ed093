// ABOUTME: Root Cobra command for the carewise CLI.
// ABOUTME: Loads config and manages the store lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/carewise/internal/config"
	"github.com/harperreed/carewise/internal/logging"
	"github.com/harperreed/carewise/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// annotationNoStore marks commands that manage storage themselves.
const annotationNoStore = "carewise/no-store"

var (
	cfg    *config.Config
	logger *zap.Logger
	repo   storage.Repository

	rootBackend string
)

var rootCmd = &cobra.Command{
	Use:   "carewise",
	Short: "Personal health risk assessment",
	Long: `Carewise keeps your health profile and tells you which conditions it puts
you at risk of, with preventive measures for each.

WHAT IT LOOKS AT:

  Body           age, height, weight (BMI and category)
  Lifestyle      physical activity, sleep, smoking
  History        pre-existing conditions, family history

QUICK START:

  $ carewise profile set --age 52 --height 178 --weight 96
  $ carewise profile set --smoking current --activity sedentary
  $ carewise analysis                    # BMI, category, and risks
  $ carewise history                     # Earlier assessments

STORAGE:

  The backend is chosen in ~/.config/carewise/config.json or with
  CAREWISE_BACKEND: sqlite (default), postgres, badger, redis, charm, memory.

  $ carewise --backend badger analysis
  $ carewise migrate --from sqlite --to charm

SERVERS:

  $ carewise serve     # HTTP API on :8080
  $ carewise mcp       # MCP server on stdio

This tool is not a substitute for professional medical advice.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if rootBackend != "" {
			cfg.Backend = rootBackend
		}

		logger = logging.New(cfg.GetLogLevel(), cfg.GetLogFormat())

		if skipsStore(cmd) {
			return nil
		}

		store, err := cfg.OpenStorage(cmd.Context(), logger)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		repo = store
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			_ = logger.Sync()
		}
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// skipsStore reports whether cmd or any parent opts out of opening the store.
func skipsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoStore] == "true" {
			return true
		}
	}
	return false
}

func noStore() map[string]string {
	return map[string]string{annotationNoStore: "true"}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootBackend, "backend", "", "storage backend (sqlite, postgres, badger, redis, charm, memory)")
}
