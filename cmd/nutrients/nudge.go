// ABOUTME: CLI command printing the nudge for the most at-risk nutrient.
// ABOUTME: Looks back over the last three days of snapshots.
package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/nutrients/internal/models"
	"github.com/spf13/cobra"
)

var nudgeDate string

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Suggest what to eat next",
	Long: `Rank nutrients over the last three days and suggest a food for the one
most at risk. Falling intake counts against a nutrient as well as a low average.

EXAMPLES:

  nutrients nudge
  nutrients nudge --date 2025-07-19`,
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay(nudgeDate)
		if err != nil {
			return err
		}

		n, err := tr.Nudge(context.Background(), day)
		if err != nil {
			return fmt.Errorf("failed to compute nudge: %w", err)
		}
		if n == nil {
			fmt.Println("No history yet. Log some food with 'nutrients food add'.")
			return nil
		}

		tier := models.Classify(n.RiskScore)
		fmt.Println(tierColors[tier].Sprint(n.Message))
		fmt.Printf("  %s\n", faint.Sprintf("%s predicted at %d%% of target", n.HighestRisk.Name(), n.PredictionPercent))
		if tier.NeedsBadge() {
			color.Yellow("  try %s", n.HighestRisk.FoodSource())
		}
		return nil
	},
}

func init() {
	nudgeCmd.Flags().StringVar(&nudgeDate, "date", "", "last day of the window (YYYY-MM-DD)")
	rootCmd.AddCommand(nudgeCmd)
}
