// ABOUTME: CLI commands for recording activity and sleep readings.
// ABOUTME: Burn readings raise the day's nutrient targets and trigger a recompute.
package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/nutrients/internal/models"
	"github.com/spf13/cobra"
)

var (
	burnAt    string
	burnNotes string

	burnListDate  string
	burnListType  string
	burnListLimit int
)

var burnCmd = &cobra.Command{
	Use:     "burn",
	Aliases: []string{"b"},
	Short:   "Record activity and sleep",
	Long: `Record activity and sleep readings that adjust nutrient targets.

ADJUSTMENTS:

  active calories > 300    all targets +10%
  active calories > 600    all targets +20%
  sleep under 6 hours      B-vitamin targets +15%

Active calories and steps are summed per day; sleep uses the latest reading.

COMMANDS:

  add       Record a reading (recomputes the day's status)
  list      List readings
  delete    Delete a reading by ID prefix`,
}

var burnAddCmd = &cobra.Command{
	Use:   "add <active_calories|steps|sleep_hours> <value>",
	Short: "Record an activity or sleep reading",
	Long: `Record an activity or sleep reading and recompute that day's status.

EXAMPLES:

  nutrients burn add active_calories 450
  nutrients burn add steps 12000 --notes "hike"
  nutrients burn add sleep_hours 5.5 --at "2025-07-20 07:00"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		metricType := args[0]
		if !models.IsValidMetricType(metricType) {
			return fmt.Errorf("unknown metric type: %s\nValid types: active_calories, steps, sleep_hours", metricType)
		}

		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[1])
		}

		m := models.NewMetric(models.MetricType(metricType), value)

		if burnAt != "" {
			t, err := parseTime(burnAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", burnAt)
			}
			m.WithRecordedAt(t)
		}
		if burnNotes != "" {
			m.WithNotes(burnNotes)
		}

		if _, err := tr.RecordMetric(context.Background(), m); err != nil {
			return fmt.Errorf("failed to record %s: %w", metricType, err)
		}

		color.Green("✓ Recorded %s", metricType)
		fmt.Printf("  %s %s %.2f %s\n",
			faint.Sprint(shortID(m.ID)),
			faint.Sprint(models.DateKey(m.RecordedAt)),
			m.Value, m.Unit)
		return nil
	},
}

var burnListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List activity and sleep readings",
	Long: `List activity and sleep readings.

EXAMPLES:

  nutrients burn list                      # Last 20 readings
  nutrients burn list --date 2025-07-20    # One day
  nutrients burn list --type sleep_hours   # Only sleep`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			metrics []*models.Metric
			err     error
		)
		switch {
		case burnListDate != "":
			day, perr := parseDay(burnListDate)
			if perr != nil {
				return perr
			}
			metrics, err = repo.ListMetricsByDate(day)
		default:
			var metricType *models.MetricType
			if burnListType != "" {
				if !models.IsValidMetricType(burnListType) {
					return fmt.Errorf("unknown metric type: %s", burnListType)
				}
				mt := models.MetricType(burnListType)
				metricType = &mt
			}
			metrics, err = repo.ListMetrics(metricType, burnListLimit)
		}
		if err != nil {
			return fmt.Errorf("failed to list readings: %w", err)
		}

		if len(metrics) == 0 {
			fmt.Println("No readings found.")
			return nil
		}

		for _, m := range metrics {
			notes := ""
			if m.Notes != nil && *m.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(*m.Notes, 30))
			}
			fmt.Printf("%s %s %s %.2f %s%s\n",
				faint.Sprint(shortID(m.ID)),
				faint.Sprint(m.RecordedAt.Format("2006-01-02 15:04")),
				padRight(string(m.MetricType), 16),
				m.Value,
				m.Unit,
				notes)
		}
		return nil
	},
}

var burnDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a reading",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := tr.DeleteMetric(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to delete reading: %w", err)
		}

		color.Yellow("✗ Deleted %s", m.MetricType)
		fmt.Printf("  %s %.2f %s\n", faint.Sprint(shortID(m.ID)), m.Value, m.Unit)
		return nil
	},
}

func init() {
	burnAddCmd.Flags().StringVar(&burnAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	burnAddCmd.Flags().StringVar(&burnNotes, "notes", "", "notes for the reading")

	burnListCmd.Flags().StringVar(&burnListDate, "date", "", "only this day (YYYY-MM-DD)")
	burnListCmd.Flags().StringVarP(&burnListType, "type", "t", "", "filter by reading type")
	burnListCmd.Flags().IntVarP(&burnListLimit, "limit", "n", 20, "max number of results")

	burnCmd.AddCommand(burnAddCmd)
	burnCmd.AddCommand(burnListCmd)
	burnCmd.AddCommand(burnDeleteCmd)
	rootCmd.AddCommand(burnCmd)
}
