// ABOUTME: Tests for overview trend series construction.
// ABOUTME: Verifies window dates, gap filling, and latest-point tiers.
package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/nutrients/internal/models"
)

func TestBuildTrends(t *testing.T) {
	snaps := []models.DailySnapshot{
		snapshot(0, 0.9, nil),
		snapshot(2, 0.3, nil),
	}

	series := BuildTrends(snaps, nudgeToday, 3)
	require.Len(t, series, models.NutrientCount)

	iron := series[models.Iron]
	assert.Equal(t, models.Iron, iron.Nutrient)
	require.Len(t, iron.Points, 3)
	assert.Equal(t, "2025-06-08", models.DateKey(iron.Points[0].Date))
	assert.Equal(t, "2025-06-10", models.DateKey(iron.Points[2].Date))
	assert.InDelta(t, 0.3, iron.Points[0].Percent, 1e-9)
	assert.Zero(t, iron.Points[1].Percent)
	assert.InDelta(t, 0.9, iron.Points[2].Percent, 1e-9)
	assert.Equal(t, models.TierOptimal, iron.Tier)
}

func TestBuildTrendsDefaultsToWeek(t *testing.T) {
	series := BuildTrends(nil, nudgeToday, 0)
	require.Len(t, series, models.NutrientCount)
	for _, s := range series {
		assert.Len(t, s.Points, DefaultTrendDays)
		assert.Equal(t, models.TierCritical, s.Tier)
	}
}
