// ABOUTME: NutrientStatus and DailySnapshot: the per-day computed nutrient view.
// ABOUTME: Percent of target is the canonical, clamped fraction used everywhere.
package models

import "time"

// NutrientStatus is one nutrient's computed status for one day.
type NutrientStatus struct {
	Nutrient        NutrientID     `json:"nutrient" yaml:"nutrient"`
	RawIntake       float64        `json:"raw_intake" yaml:"raw_intake"`
	EffectiveIntake float64        `json:"effective_intake" yaml:"effective_intake"`
	AdjustedTarget  float64        `json:"adjusted_target" yaml:"adjusted_target"`
	Tier            DeficiencyTier `json:"tier" yaml:"tier"`
	DisplayValue    string         `json:"display_value" yaml:"display_value"`
	SourceHint      string         `json:"source_hint" yaml:"source_hint"`
}

// PercentOfTarget returns effective intake over adjusted target, clamped to
// [0,1]. A non-positive target yields 0.
func (s NutrientStatus) PercentOfTarget() float64 {
	if s.AdjustedTarget <= 0 {
		return 0
	}
	p := s.EffectiveIntake / s.AdjustedTarget
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// OverLimit reports whether effective intake exceeds the nutrient's upper
// safety limit, when it has one.
func (s NutrientStatus) OverLimit() bool {
	ul := s.Nutrient.Reference().UpperLimit
	return ul != nil && s.EffectiveIntake > *ul
}

// DailySnapshot is the persisted set of statuses for one calendar day.
type DailySnapshot struct {
	Date     time.Time        `json:"date" yaml:"date"`
	Statuses []NutrientStatus `json:"statuses" yaml:"statuses"`
}

// Percents maps each nutrient in the snapshot to its percent of target.
func (s DailySnapshot) Percents() map[NutrientID]float64 {
	out := make(map[NutrientID]float64, len(s.Statuses))
	for _, st := range s.Statuses {
		out[st.Nutrient] = st.PercentOfTarget()
	}
	return out
}

// Find returns the status for id, if present.
func (s DailySnapshot) Find(id NutrientID) (NutrientStatus, bool) {
	for _, st := range s.Statuses {
		if st.Nutrient == id {
			return st, true
		}
	}
	return NutrientStatus{}, false
}
