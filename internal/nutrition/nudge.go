// ABOUTME: Trend-based nudge generator over the last three days of snapshots.
// ABOUTME: Picks the nutrient with the lowest risk score and phrases a message.
package nutrition

import (
	"fmt"
	"math"
	"sort"

	"github.com/harperreed/nutrients/internal/models"
)

// NudgeWindow is the number of most recent days a nudge considers.
const NudgeWindow = 3

const (
	criticalScore = 0.2
	lowScore      = 0.5
	trendWeight   = 0.5
)

// Nudge is a single recommendation for the highest-risk nutrient.
type Nudge struct {
	HighestRisk       models.NutrientID `json:"highest_risk"`
	Message           string            `json:"message"`
	PredictionPercent int               `json:"prediction_percent"`
	RiskScore         float64           `json:"risk_score"`
}

// CalculateNudge ranks nutrients across up to NudgeWindow days of history and
// returns a nudge for the one most at risk. Snapshots may arrive in any order;
// days without statuses are skipped. Returns nil when no day has data.
func CalculateNudge(history []models.DailySnapshot) *Nudge {
	days := recentDays(history, NudgeWindow)
	if len(days) == 0 {
		return nil
	}

	// oldest first
	percents := make([]map[models.NutrientID]float64, len(days))
	for i, d := range days {
		percents[len(days)-1-i] = d.Percents()
	}

	best := models.NutrientID(-1)
	bestScore := math.Inf(1)
	for _, id := range models.AllNutrients {
		score := RiskScore(seriesFor(id, percents))
		if score < bestScore {
			best, bestScore = id, score
		}
	}

	return &Nudge{
		HighestRisk:       best,
		Message:           nudgeMessage(best, bestScore),
		PredictionPercent: predictionPercent(bestScore),
		RiskScore:         bestScore,
	}
}

// RiskScore computes mean minus half the trend for an oldest-to-newest series.
// The trend is only counted with at least three points. Lower is riskier.
func RiskScore(points []float64) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p
	}
	avg := sum / float64(len(points))

	trend := 0.0
	if len(points) >= 3 {
		trend = points[len(points)-1] - points[0]
	}
	return avg - trend*trendWeight
}

// recentDays returns up to n non-empty snapshots, newest first.
func recentDays(history []models.DailySnapshot, n int) []models.DailySnapshot {
	days := make([]models.DailySnapshot, 0, len(history))
	for _, d := range history {
		if len(d.Statuses) > 0 {
			days = append(days, d)
		}
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	if len(days) > n {
		days = days[:n]
	}
	return days
}

func seriesFor(id models.NutrientID, days []map[models.NutrientID]float64) []float64 {
	out := make([]float64, len(days))
	for i, d := range days {
		out[i] = d[id]
	}
	return out
}

func nudgeMessage(id models.NutrientID, score float64) string {
	name, source := id.Name(), id.FoodSource()
	switch {
	case score < criticalScore:
		return fmt.Sprintf("Critical: %s levels are very low. Focus on %s today.", name, source)
	case score < lowScore:
		return fmt.Sprintf("%s is trending low (%d%%). Consider adding %s to your next meal.", name, int(score*100), source)
	default:
		return fmt.Sprintf("You're doing great! Keep it up with a side of %s for optimal %s.", source, name)
	}
}

func predictionPercent(score float64) int {
	p := int(math.Round(score * 100))
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
