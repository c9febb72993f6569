// ABOUTME: CLI command showing per-nutrient percent-of-target history.
// ABOUTME: Days without a snapshot render as empty cells.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/nutrients/internal/models"
	"github.com/harperreed/nutrients/internal/nutrition"
	"github.com/spf13/cobra"
)

var (
	trendDays     int
	trendNutrient string
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show nutrient history",
	Long: `Show daily percent of target for each nutrient, oldest day first.

EXAMPLES:

  nutrients trend                    # Last 7 days, every nutrient
  nutrients trend --days 14
  nutrients trend --nutrient iron    # One nutrient, with daily values`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var only *models.NutrientID
		if trendNutrient != "" {
			id, err := models.ParseNutrientID(trendNutrient)
			if err != nil {
				return err
			}
			only = &id
		}

		series, err := tr.Trends(context.Background(), tr.Today(), trendDays)
		if err != nil {
			return fmt.Errorf("failed to build trends: %w", err)
		}

		for _, s := range series {
			if only != nil && s.Nutrient != *only {
				continue
			}
			fmt.Printf("%s %s %s %3d%%\n",
				padRight(s.Nutrient.Name(), 12),
				sparkline(s.Points),
				tierText(s.Tier),
				int(s.Latest()*100))

			if only != nil {
				for _, p := range s.Points {
					fmt.Printf("  %s %3d%%\n", faint.Sprint(models.DateKey(p.Date)), int(p.Percent*100))
				}
			}
		}
		return nil
	},
}

func sparkline(points []models.TrendPoint) string {
	var sb strings.Builder
	for _, p := range points {
		if p.Percent <= 0 {
			sb.WriteRune(' ')
			continue
		}
		i := int(p.Percent * float64(len(sparkLevels)-1))
		if i >= len(sparkLevels) {
			i = len(sparkLevels) - 1
		}
		sb.WriteRune(sparkLevels[i])
	}
	return sb.String()
}

func init() {
	trendCmd.Flags().IntVarP(&trendDays, "days", "d", nutrition.DefaultTrendDays, "number of days")
	trendCmd.Flags().StringVar(&trendNutrient, "nutrient", "", "only this nutrient (e.g. iron, vit_d)")
	rootCmd.AddCommand(trendCmd)
}
