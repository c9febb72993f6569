// ABOUTME: Tests for the trend-based nudge generator.
// ABOUTME: Covers risk scoring, template tiers, window handling, and ties.
package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/nutrients/internal/models"
)

var nudgeToday = time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

// snapshot builds a day where every nutrient sits at base percent except
// those overridden.
func snapshot(daysAgo int, base float64, overrides map[models.NutrientID]float64) models.DailySnapshot {
	statuses := make([]models.NutrientStatus, 0, models.NutrientCount)
	for _, id := range models.AllNutrients {
		p := base
		if v, ok := overrides[id]; ok {
			p = v
		}
		statuses = append(statuses, models.NutrientStatus{
			Nutrient:        id,
			EffectiveIntake: p * 100,
			AdjustedTarget:  100,
		})
	}
	return models.DailySnapshot{Date: nudgeToday.AddDate(0, 0, -daysAgo), Statuses: statuses}
}

func TestCalculateNudgeEmpty(t *testing.T) {
	assert.Nil(t, CalculateNudge(nil))
	assert.Nil(t, CalculateNudge([]models.DailySnapshot{{Date: nudgeToday}}))
}

func TestCalculateNudgeDecliningIron(t *testing.T) {
	history := []models.DailySnapshot{
		snapshot(0, 1, map[models.NutrientID]float64{models.Iron: 0.20}),
		snapshot(1, 1, map[models.NutrientID]float64{models.Iron: 0.15}),
		snapshot(2, 1, map[models.NutrientID]float64{models.Iron: 0.10}),
	}

	n := CalculateNudge(history)
	require.NotNil(t, n)
	assert.Equal(t, models.Iron, n.HighestRisk)
	assert.InDelta(t, 0.10, n.RiskScore, 1e-9)
	assert.Equal(t, "Critical: Iron levels are very low. Focus on red meat or spinach today.", n.Message)
	assert.Equal(t, 10, n.PredictionPercent)
}

func TestCalculateNudgeOrderIndependent(t *testing.T) {
	a := snapshot(0, 1, map[models.NutrientID]float64{models.Zinc: 0.3})
	b := snapshot(1, 1, map[models.NutrientID]float64{models.Zinc: 0.2})
	c := snapshot(2, 1, map[models.NutrientID]float64{models.Zinc: 0.1})

	forward := CalculateNudge([]models.DailySnapshot{a, b, c})
	shuffled := CalculateNudge([]models.DailySnapshot{b, c, a})
	assert.Equal(t, forward, shuffled)
}

func TestCalculateNudgeUsesThreeNewestDays(t *testing.T) {
	history := []models.DailySnapshot{
		snapshot(0, 1, nil),
		snapshot(1, 1, nil),
		snapshot(2, 1, nil),
		snapshot(3, 0, nil),
	}
	n := CalculateNudge(history)
	require.NotNil(t, n)
	assert.InDelta(t, 1.0, n.RiskScore, 1e-9)
}

func TestCalculateNudgeShortHistoryIgnoresTrend(t *testing.T) {
	history := []models.DailySnapshot{
		snapshot(0, 1, map[models.NutrientID]float64{models.Calcium: 0.9}),
		snapshot(1, 1, map[models.NutrientID]float64{models.Calcium: 0.1}),
	}
	n := CalculateNudge(history)
	require.NotNil(t, n)
	assert.Equal(t, models.Calcium, n.HighestRisk)
	assert.InDelta(t, 0.5, n.RiskScore, 1e-9)
}

func TestCalculateNudgeTrendingLowTemplate(t *testing.T) {
	n := CalculateNudge([]models.DailySnapshot{
		snapshot(0, 1, map[models.NutrientID]float64{models.Iron: 0.25}),
	})
	require.NotNil(t, n)
	assert.Equal(t, "Iron is trending low (25%). Consider adding red meat or spinach to your next meal.", n.Message)
	assert.Equal(t, 25, n.PredictionPercent)
}

func TestCalculateNudgePositiveTemplateAndClamp(t *testing.T) {
	// Every nutrient drops from full to zero: avg 2/3, trend -1.
	history := []models.DailySnapshot{
		snapshot(0, 0, nil),
		snapshot(1, 1, nil),
		snapshot(2, 1, nil),
	}
	n := CalculateNudge(history)
	require.NotNil(t, n)
	assert.Equal(t, models.VitA, n.HighestRisk, "ties resolve to enumeration order")
	assert.Greater(t, n.RiskScore, 1.0)
	assert.Equal(t, 100, n.PredictionPercent)
	assert.Equal(t, "You're doing great! Keep it up with a side of carrots or spinach for optimal Vitamin A.", n.Message)
}

func TestCalculateNudgeNegativeScoreClampsToZero(t *testing.T) {
	history := []models.DailySnapshot{
		snapshot(0, 1, map[models.NutrientID]float64{models.Zinc: 1}),
		snapshot(1, 1, map[models.NutrientID]float64{models.Zinc: 0}),
		snapshot(2, 1, map[models.NutrientID]float64{models.Zinc: 0}),
	}
	n := CalculateNudge(history)
	require.NotNil(t, n)
	assert.Equal(t, models.Zinc, n.HighestRisk)
	assert.Less(t, n.RiskScore, 0.0)
	assert.Equal(t, 0, n.PredictionPercent)
}

func TestRiskScore(t *testing.T) {
	assert.Zero(t, RiskScore(nil))
	assert.InDelta(t, 0.4, RiskScore([]float64{0.4}), 1e-9)
	assert.InDelta(t, 0.10, RiskScore([]float64{0.10, 0.15, 0.20}), 1e-9)
}
