// ABOUTME: Activity and sleep adjuster that rescales nutrient targets.
// ABOUTME: Intake is never touched; raising targets lowers percent of target.
package nutrition

import "github.com/harperreed/nutrients/internal/models"

// Burn thresholds and multipliers.
const (
	highBurnCalories     = 600.0
	moderateBurnCalories = 300.0
	highBurnMultiplier   = 1.20
	moderateMultiplier   = 1.10
	shortSleepHours      = 6.0
	sleepDeficitFactor   = 1.15
)

// ActivityMultiplier returns the target multiplier for active calories burned.
func ActivityMultiplier(activeCalories float64) float64 {
	switch {
	case activeCalories > highBurnCalories:
		return highBurnMultiplier
	case activeCalories > moderateBurnCalories:
		return moderateMultiplier
	default:
		return 1
	}
}

// SleepMultiplier returns the B-vitamin target multiplier for a night's sleep.
func SleepMultiplier(sleepHours float64) float64 {
	if sleepHours < shortSleepHours {
		return sleepDeficitFactor
	}
	return 1
}

// ApplyBurnAdjustment returns a copy of statuses with AdjustedTarget scaled
// for activity, and additionally for sleep deficit on B vitamins. A nil burn
// means the sedentary default. Tier and display are left as they were.
func ApplyBurnAdjustment(statuses []models.NutrientStatus, burn *models.BurnAdjustment) []models.NutrientStatus {
	b := models.DefaultBurn()
	if burn != nil {
		b = *burn
	}

	activity := ActivityMultiplier(b.ActiveCalories)
	sleep := SleepMultiplier(b.SleepHours)

	out := make([]models.NutrientStatus, len(statuses))
	for i, st := range statuses {
		st.AdjustedTarget *= activity
		if st.Nutrient.IsBVitamin() {
			st.AdjustedTarget *= sleep
		}
		out[i] = st
	}
	return out
}
