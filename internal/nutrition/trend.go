// ABOUTME: Builds per-nutrient trend series for overview charts.
// ABOUTME: Days without a snapshot count as zero percent.
package nutrition

import (
	"time"

	"github.com/harperreed/nutrients/internal/models"
)

// DefaultTrendDays is the overview chart window.
const DefaultTrendDays = 7

// BuildTrends returns one series per nutrient covering days calendar days
// ending at end, oldest first. Each series' Tier classifies its latest point.
func BuildTrends(snapshots []models.DailySnapshot, end time.Time, days int) []models.TrendSeries {
	if days <= 0 {
		days = DefaultTrendDays
	}

	byDay := make(map[string]map[models.NutrientID]float64, len(snapshots))
	for _, s := range snapshots {
		byDay[models.DateKey(s.Date)] = s.Percents()
	}

	last := models.Day(end)
	dates := make([]time.Time, days)
	for i := range dates {
		dates[i] = last.AddDate(0, 0, i-days+1)
	}

	series := make([]models.TrendSeries, 0, models.NutrientCount)
	for _, id := range models.AllNutrients {
		points := make([]models.TrendPoint, len(dates))
		for i, d := range dates {
			points[i] = models.TrendPoint{Date: d, Percent: byDay[models.DateKey(d)][id]}
		}
		s := models.TrendSeries{Nutrient: id, Points: points}
		s.Tier = models.Classify(s.Latest())
		series = append(series, s)
	}
	return series
}
