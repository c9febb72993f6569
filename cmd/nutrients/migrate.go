// ABOUTME: CLI command for copying tracker data between storage backends.
// ABOUTME: Moves foods, burn readings, and snapshots from sqlite to charm or back.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/nutrients/internal/config"
	"github.com/harperreed/nutrients/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy all foods, burn readings, and day snapshots from one backend to another.

BACKENDS:

  sqlite   ~/.local/share/nutrients/nutrients.db (or data_dir)
  charm    Charm KV with cloud sync

The destination should be empty. A non-empty SQLite data directory is
refused unless --force is given.

USAGE:

  nutrients migrate --from sqlite --to charm --dry-run   # Preview
  nutrients migrate --from sqlite --to charm             # Copy

AFTER MIGRATION:

  Point the CLI at the new backend:
    nutrients config set backend charm`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("--from and --to must differ")
		}

		srcCfg := *cfg
		if err := srcCfg.Set("backend", migrateFrom); err != nil {
			return err
		}
		dstCfg := *cfg
		if err := dstCfg.Set("backend", migrateTo); err != nil {
			return err
		}

		if migrateTo == config.BackendSQLite && !migrateDryRun && !migrateForce {
			nonEmpty, err := storage.IsDirNonEmpty(dstCfg.GetDataDir())
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("destination %s is not empty (use --force to copy anyway)", dstCfg.GetDataDir())
			}
		}

		src, err := srcCfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateFrom, err)
		}
		defer src.Close()

		dst, err := dstCfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateTo, err)
		}
		defer dst.Close()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()
		}

		summary, err := storage.MigrateData(src, dst, migrateDryRun)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		verb := "Migrated"
		if migrateDryRun {
			verb = "Would migrate"
		}
		color.Green("✓ %s %s → %s", verb, migrateFrom, migrateTo)
		fmt.Printf("  Foods:     %d\n", summary.Foods)
		fmt.Printf("  Burn:      %d\n", summary.Metrics)
		fmt.Printf("  Snapshots: %d\n", summary.Snapshots)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", config.BackendSQLite, "source backend (sqlite or charm)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendCharm, "destination backend (sqlite or charm)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "copy into a non-empty destination")
	rootCmd.AddCommand(migrateCmd)
}
