// ABOUTME: Tests for the activity and sleep target adjuster.
// ABOUTME: Checks multiplier bands and the B-vitamin sleep stacking.
package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/nutrients/internal/models"
)

func TestActivityMultiplier(t *testing.T) {
	tests := []struct {
		calories float64
		want     float64
	}{
		{0, 1},
		{300, 1},
		{301, 1.1},
		{600, 1.1},
		{601, 1.2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ActivityMultiplier(tt.calories), "calories %v", tt.calories)
	}
}

func TestSleepMultiplier(t *testing.T) {
	assert.Equal(t, 1.15, SleepMultiplier(5.9))
	assert.Equal(t, 1.0, SleepMultiplier(6))
	assert.Equal(t, 1.0, SleepMultiplier(8))
}

func TestApplyBurnAdjustmentActiveShortSleep(t *testing.T) {
	base := ComputeDailyStatus(nil, true, nil)
	adjusted := ApplyBurnAdjustment(base, &models.BurnAdjustment{ActiveCalories: 700, SleepHours: 5})
	require.Len(t, adjusted, len(base))

	for i, st := range adjusted {
		want := base[i].AdjustedTarget * 1.2
		if st.Nutrient.IsBVitamin() {
			want = base[i].AdjustedTarget * 1.38
		}
		assert.InDelta(t, want, st.AdjustedTarget, 1e-9, "nutrient %s", st.Nutrient)
		assert.Equal(t, base[i].EffectiveIntake, st.EffectiveIntake)
	}
}

func TestApplyBurnAdjustmentNilIsIdentity(t *testing.T) {
	base := ComputeDailyStatus([]*models.FoodLogItem{food("Toast", models.Macros{Calories: 200, Carbs: 30})}, true, nil)
	assert.Equal(t, base, ApplyBurnAdjustment(base, nil))
}

func TestApplyBurnAdjustmentDoesNotMutateInput(t *testing.T) {
	base := ComputeDailyStatus(nil, true, nil)
	before := base[models.VitC].AdjustedTarget
	ApplyBurnAdjustment(base, &models.BurnAdjustment{ActiveCalories: 900, SleepHours: 4})
	assert.Equal(t, before, base[models.VitC].AdjustedTarget)
}
