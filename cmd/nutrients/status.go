// ABOUTME: CLI command showing a day's nutrient status.
// ABOUTME: Reads the persisted snapshot; --recompute rebuilds it from the food log first.
package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/nutrients/internal/models"
	"github.com/spf13/cobra"
)

var (
	statusDate      string
	statusAll       bool
	statusRecompute bool
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show nutrient status for a day",
	Long: `Show each nutrient's intake against its activity-adjusted target.

By default only nutrients that need attention (low, deficient or critical)
are listed. Use --all for the full table.

TIERS:

  Optimal    80% of target or more
  Adequate   60-80%
  Low        40-60%   (!)
  Deficient  15-40%   (!)
  Critical   under 15% (!)

EXAMPLES:

  nutrients status                     # Today, flagged nutrients
  nutrients status --all               # Today, every nutrient
  nutrients status --date 2025-07-19   # Another day
  nutrients status --recompute         # Rebuild from the food log first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay(statusDate)
		if err != nil {
			return err
		}

		ctx := context.Background()
		var snap *models.DailySnapshot
		if statusRecompute {
			snap, err = tr.Recompute(ctx, day)
		} else {
			snap, err = tr.Status(ctx, day)
		}
		if err != nil {
			return fmt.Errorf("failed to load status: %w", err)
		}

		printStatus(snap, statusAll)
		return nil
	},
}

func printStatus(snap *models.DailySnapshot, all bool) {
	fmt.Printf("Nutrient status for %s\n\n", models.DateKey(snap.Date))

	shown := 0
	for _, st := range snap.Statuses {
		if !all && !st.Tier.NeedsBadge() {
			continue
		}
		shown++

		over := ""
		if st.OverLimit() {
			over = color.RedString(" over upper limit")
		}
		fmt.Printf("%s %s %s %3d%%  %s / %s%s\n",
			padRight(st.Nutrient.Name(), 12),
			tierText(st.Tier),
			percentBar(st.PercentOfTarget()),
			int(st.PercentOfTarget()*100),
			st.DisplayValue,
			faint.Sprintf("%.1f %s", st.AdjustedTarget, st.Nutrient.Unit()),
			over)
		if st.Tier.NeedsBadge() {
			fmt.Printf("%s %s\n", padRight("", 12), faint.Sprint("try "+st.Nutrient.FoodSource()))
		}
	}

	if shown == 0 {
		color.Green("✓ Every nutrient is adequate or better")
	}
}

func init() {
	statusCmd.Flags().StringVar(&statusDate, "date", "", "day to show (YYYY-MM-DD)")
	statusCmd.Flags().BoolVarP(&statusAll, "all", "a", false, "show every nutrient")
	statusCmd.Flags().BoolVar(&statusRecompute, "recompute", false, "recompute from the food log before showing")
	rootCmd.AddCommand(statusCmd)
}
