// ABOUTME: CLI commands for viewing and changing configuration.
// ABOUTME: Shows the effective config (file plus env overrides) and writes single keys.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/nutrients/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "View or change configuration",
	Annotations: map[string]string{skipStorage: "true"},
	Long: `View or change configuration.

KEYS:

  backend    sqlite (default) or charm
  data_dir   directory for the SQLite database (~ expanded)
  sex        male (default) or female; selects RDAs

ENVIRONMENT:

  NUTRIENTS_BACKEND, NUTRIENTS_DATA_DIR and NUTRIENTS_SEX override the file.
  A .env file in the working directory is read first.

EXAMPLES:

  nutrients config show
  nutrients config set sex female
  nutrients config set backend charm`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%s %s\n", faint.Sprint("file:    "), config.GetConfigPath())
		fmt.Printf("%s %s\n", faint.Sprint("backend: "), cfg.GetBackend())
		fmt.Printf("%s %s\n", faint.Sprint("data_dir:"), cfg.GetDataDir())
		sex := config.SexMale
		if !cfg.IsMale() {
			sex = config.SexFemale
		}
		fmt.Printf("%s %s\n", faint.Sprint("sex:     "), sex)

		for _, env := range []string{config.EnvBackend, config.EnvDataDir, config.EnvSex} {
			if v := os.Getenv(env); v != "" {
				fmt.Printf("%s\n", faint.Sprintf("(%s=%s overrides the file)", env, v))
			}
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Write onto the file's values, not the env-overridden ones.
		fileCfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := fileCfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		color.Green("✓ Set %s = %s", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
