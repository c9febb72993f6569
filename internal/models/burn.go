// ABOUTME: BurnAdjustment input for activity/sleep target scaling.
// ABOUTME: Absence of burn data means a sedentary day with a full night's sleep.
package models

// BurnAdjustment is the day's activity and sleep summary.
type BurnAdjustment struct {
	ActiveCalories float64 `json:"active_calories" yaml:"active_calories"`
	Steps          int     `json:"steps" yaml:"steps"`
	SleepHours     float64 `json:"sleep_hours" yaml:"sleep_hours"`
}

// DefaultSleepHours is assumed when no sleep reading exists.
const DefaultSleepHours = 8

// DefaultBurn is the sedentary baseline.
func DefaultBurn() BurnAdjustment {
	return BurnAdjustment{SleepHours: DefaultSleepHours}
}

// BurnFromMetrics folds one day's readings into a BurnAdjustment. Active
// calories and steps are summed; sleep takes the most recent reading.
// Returns nil when there are no burn readings.
func BurnFromMetrics(metrics []*Metric) *BurnAdjustment {
	if len(metrics) == 0 {
		return nil
	}

	burn := DefaultBurn()
	var latestSleep *Metric
	for _, m := range metrics {
		switch m.MetricType {
		case MetricActiveCalories:
			burn.ActiveCalories += m.Value
		case MetricSteps:
			burn.Steps += int(m.Value)
		case MetricSleepHours:
			if latestSleep == nil || m.RecordedAt.After(latestSleep.RecordedAt) {
				latestSleep = m
			}
		}
	}
	if latestSleep != nil {
		burn.SleepHours = latestSleep.Value
	}
	return &burn
}
