// ABOUTME: Trend types for multi-day nutrient history.
// ABOUTME: Points run oldest to newest; percents are fractions of target.
package models

import "time"

// TrendPoint is one nutrient's percent of target on one day.
type TrendPoint struct {
	Date    time.Time `json:"date"`
	Percent float64   `json:"percent"`
}

// TrendSeries is a nutrient's history over a lookback window.
type TrendSeries struct {
	Nutrient NutrientID     `json:"nutrient"`
	Tier     DeficiencyTier `json:"tier"`
	Points   []TrendPoint   `json:"points"`
}

// Latest returns the newest point's percent, or 0 for an empty series.
func (s TrendSeries) Latest() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Percent
}
