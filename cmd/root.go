// Package cmd wires the stepdeck CLI.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raunakm/stepdeck/internal/config"
	"github.com/raunakm/stepdeck/internal/store"
	"github.com/raunakm/stepdeck/internal/subjects"
)

var rootCmd = &cobra.Command{
	Use:   "stepdeck",
	Short: "USMLE Step 1 question deck generator",
	Long: "Stepdeck generates board-style USMLE Step 1 multiple-choice questions " +
		"with an LLM and writes them as PowerPoint decks, one per subject group.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STEPDECK_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: stepdeck.yaml in CWD or XDG config dir)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(conceptsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(corpusCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STEPDECK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore opens the event/build database for this invocation.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// resolvePlan loads the subject plan: --plan flag, then the config file's
// plan_file, then the built-in table.
func resolvePlan(cmd *cobra.Command, cfg *config.Config) ([]subjects.Subject, error) {
	planPath, _ := cmd.Flags().GetString("plan")
	if planPath == "" {
		planPath = cfg.PlanFile
	}
	if planPath == "" {
		return subjects.DefaultPlan(), nil
	}
	return subjects.LoadPlan(planPath)
}
