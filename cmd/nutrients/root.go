// ABOUTME: Root Cobra command for the nutrients CLI.
// ABOUTME: Loads config, opens storage and the tracker in PersistentPreRunE, closes in PostRunE.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/harperreed/nutrients/internal/config"
	"github.com/harperreed/nutrients/internal/storage"
	"github.com/harperreed/nutrients/internal/tracker"
	"github.com/spf13/cobra"
)

// skipStorage marks commands that run without opening a repository.
const skipStorage = "skip-storage"

var (
	cfg     *config.Config
	repo    storage.Repository
	tr      *tracker.Tracker
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "nutrients",
	Short: "Micronutrient status tracker",
	Long: `Nutrients estimates your daily vitamin and mineral status from the
macros of the food you log, and tells you what you are running low on.

WHAT IT TRACKS:

  Vitamins   A, B1, B2, B3, B5, B6, B7, B9, B12, C, D, E, K
  Minerals   iron, calcium, magnesium, zinc
  Macros     protein, collagen

Each nutrient is classified as optimal, adequate, low, deficient or critical
against your RDA. Active calories and short sleep raise the targets.

QUICK START:

  $ nutrients food add "Steak" --calories 600 --protein 56 --fat 30
  $ nutrients burn add active_calories 450     # Moves targets up 10%
  $ nutrients status                           # Today's nutrient status
  $ nutrients nudge                            # What to eat next
  $ nutrients trend --nutrient iron            # Last 7 days

CONFIGURATION:

  $ nutrients config set sex female   # Female RDAs
  $ nutrients config set backend charm

  NUTRIENTS_BACKEND, NUTRIENTS_DATA_DIR and NUTRIENTS_SEX override the
  config file, and may be set in a .env file in the working directory.

MCP INTEGRATION:

  Run 'nutrients mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "nutrients": { "command": "nutrients", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  SQLite at ~/.local/share/nutrients/nutrients.db by default, or Charm KV
  with cloud sync when the backend is "charm".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(verbose)

		var err error
		cfg, err = config.LoadEffective()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if skipsStorage(cmd) {
			return nil
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		tr = tracker.New(repo, cfg.IsMale(), tracker.WithLogger(slog.Default()))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			err := repo.Close()
			repo = nil
			tr = nil
			return err
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setupLogging installs the default diagnostic logger on stderr.
func setupLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func skipsStorage(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipStorage] == "true" {
			return true
		}
		if c.Name() == "help" || c.Name() == "completion" {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
}
