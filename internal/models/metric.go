// ABOUTME: Burn metric model: activity and sleep readings from a fitness provider.
// ABOUTME: A day's metrics fold into the BurnAdjustment that rescales targets.
package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// MetricType represents the type of burn reading being recorded.
type MetricType string

const (
	MetricActiveCalories MetricType = "active_calories"
	MetricSteps          MetricType = "steps"
	MetricSleepHours     MetricType = "sleep_hours"
)

// MetricUnits maps metric types to their display units.
var MetricUnits = map[MetricType]string{
	MetricActiveCalories: "kcal",
	MetricSteps:          "steps",
	MetricSleepHours:     "hours",
}

// AllMetricTypes returns all valid metric types.
var AllMetricTypes = []MetricType{MetricActiveCalories, MetricSteps, MetricSleepHours}

// IsValidMetricType checks if a string is a valid metric type.
func IsValidMetricType(s string) bool {
	for _, mt := range AllMetricTypes {
		if string(mt) == s {
			return true
		}
	}
	return false
}

// Metric represents a single activity or sleep reading.
type Metric struct {
	ID         uuid.UUID  `json:"id"`
	MetricType MetricType `json:"metric_type" validate:"required,oneof=active_calories steps sleep_hours"`
	Value      float64    `json:"value" validate:"gte=0"`
	Unit       string     `json:"unit"`
	RecordedAt time.Time  `json:"recorded_at"`
	Notes      *string    `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewMetric creates a new Metric with generated UUID and current timestamp.
func NewMetric(metricType MetricType, value float64) *Metric {
	now := time.Now()
	return &Metric{
		ID:         uuid.New(),
		MetricType: metricType,
		Value:      value,
		Unit:       MetricUnits[metricType],
		RecordedAt: now,
		CreatedAt:  now,
	}
}

// WithRecordedAt sets a custom recorded_at timestamp, held in local time.
func (m *Metric) WithRecordedAt(t time.Time) *Metric {
	m.RecordedAt = t.In(time.Local)
	return m
}

// WithNotes sets notes on the metric.
func (m *Metric) WithNotes(notes string) *Metric {
	m.Notes = &notes
	return m
}

// Validate rejects readings a fitness provider could not have produced.
func (m *Metric) Validate() error {
	if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
		return &ValidationError{Problems: []string{"value is not a number"}}
	}
	if m.MetricType == MetricSleepHours && m.Value > 24 {
		return &ValidationError{Problems: []string{fmt.Sprintf("sleep_hours out of range: %v", m.Value)}}
	}
	return structErrors(validate.Struct(m))
}
