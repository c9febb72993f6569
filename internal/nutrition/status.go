// ABOUTME: Daily status aggregator: food log to a full 19-nutrient snapshot.
// ABOUTME: Applies per-item absorption modifiers and the day-level D/Mg synergy.
package nutrition

import (
	"fmt"
	"math"
	"strings"

	"github.com/harperreed/nutrients/internal/models"
)

// Modifier multipliers.
const (
	vitAFatBoost       = 1.20
	vitAFatMin         = 5.0
	ironVitCBoost      = 1.25
	calciumVitDBoost   = 1.10
	zincPhytateFactor  = 0.70
	zincPhytateMinCarb = 40.0
	vitDMagnesiumBoost = 1.15
)

var (
	citrusMarkers  = []string{"juice", "orange"}
	phytateMarkers = []string{"bean", "grain", "rice"}
)

// ComputeDailyStatus aggregates a day's foods into one status per nutrient,
// in enumeration order. The result always has models.NutrientCount entries.
// Tiers are classified against the sex-based RDA; a non-nil burn then rescales
// AdjustedTarget only, matching ApplyBurnAdjustment on the unadjusted result.
// DisplayValue always reflects effective intake.
func ComputeDailyStatus(foods []*models.FoodLogItem, isMale bool, burn *models.BurnAdjustment) []models.NutrientStatus {
	raw, effective := aggregate(foods)

	sourceHint := ""
	if len(foods) > 0 {
		sourceHint = fmt.Sprintf("%d item(s)", len(foods))
	}

	statuses := make([]models.NutrientStatus, 0, models.NutrientCount)
	for _, id := range models.AllNutrients {
		eff := effective[id]
		st := models.NutrientStatus{
			Nutrient:        id,
			RawIntake:       raw[id],
			EffectiveIntake: eff,
			AdjustedTarget:  id.RDA(isMale),
			DisplayValue:    FormatAmount(eff, id.Unit()),
			SourceHint:      sourceHint,
		}
		st.Tier = models.Classify(st.PercentOfTarget())
		statuses = append(statuses, st)
	}

	if burn != nil {
		statuses = ApplyBurnAdjustment(statuses, burn)
	}
	return statuses
}

// aggregate returns the unmodified and the modifier-adjusted day totals.
func aggregate(foods []*models.FoodLogItem) (raw, effective Contributions) {
	raw = make(Contributions)
	effective = make(Contributions)
	citrusDay := anyNameContains(foods, citrusMarkers)

	for _, item := range foods {
		contrib := Estimate(item)
		for id, amount := range contrib {
			raw[id] += amount
			effective[id] += amount * itemModifier(id, item, contrib, citrusDay)
		}
	}

	if effective.Has(models.VitD) && effective.Has(models.Magnesium) {
		effective[models.VitD] *= vitDMagnesiumBoost
	}
	return raw, effective
}

// itemModifier is the absorption multiplier for one nutrient of one item.
func itemModifier(id models.NutrientID, item *models.FoodLogItem, contrib Contributions, citrusDay bool) float64 {
	switch id {
	case models.VitA:
		if item.Macros.Fat > vitAFatMin {
			return vitAFatBoost
		}
	case models.Iron:
		if contrib.Has(models.VitC) || citrusDay {
			return ironVitCBoost
		}
	case models.Calcium:
		if contrib.Has(models.VitD) {
			return calciumVitDBoost
		}
	case models.Zinc:
		if item.Macros.Carbs > zincPhytateMinCarb && nameContains(item.Name, phytateMarkers) {
			return zincPhytateFactor
		}
	}
	return 1
}

func nameContains(name string, markers []string) bool {
	lower := strings.ToLower(name)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func anyNameContains(foods []*models.FoodLogItem, markers []string) bool {
	for _, f := range foods {
		if nameContains(f.Name, markers) {
			return true
		}
	}
	return false
}

// FormatAmount renders an intake with precision that shrinks as it grows:
// whole numbers from 100, one decimal from 1, two decimals above 0.
func FormatAmount(value float64, unit string) string {
	switch {
	case value >= 100:
		return fmt.Sprintf("%d %s", int64(math.Trunc(value)), unit)
	case value >= 1:
		return fmt.Sprintf("%.1f %s", value, unit)
	case value > 0:
		return fmt.Sprintf("%.2f %s", value, unit)
	default:
		return "0 " + unit
	}
}
