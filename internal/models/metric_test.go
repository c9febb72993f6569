// ABOUTME: Tests for burn Metric model and MetricType.
// ABOUTME: Validates type constants, units mapping, constructor, and validation.
package models

import (
	"math"
	"testing"
	"time"
)

func TestMetricTypeUnit(t *testing.T) {
	tests := []struct {
		metricType MetricType
		wantUnit   string
	}{
		{MetricActiveCalories, "kcal"},
		{MetricSteps, "steps"},
		{MetricSleepHours, "hours"},
	}

	for _, tt := range tests {
		t.Run(string(tt.metricType), func(t *testing.T) {
			got := MetricUnits[tt.metricType]
			if got != tt.wantUnit {
				t.Errorf("MetricUnits[%s] = %s, want %s", tt.metricType, got, tt.wantUnit)
			}
		})
	}
}

func TestNewMetric(t *testing.T) {
	m := NewMetric(MetricActiveCalories, 420)

	if m.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if m.MetricType != MetricActiveCalories {
		t.Errorf("MetricType = %s, want active_calories", m.MetricType)
	}
	if m.Value != 420 {
		t.Errorf("Value = %f, want 420", m.Value)
	}
	if m.Unit != "kcal" {
		t.Errorf("Unit = %s, want kcal", m.Unit)
	}
	if m.RecordedAt.IsZero() {
		t.Error("expected RecordedAt to be set")
	}
}

func TestAllMetricTypesHaveUnits(t *testing.T) {
	for _, mt := range AllMetricTypes {
		if _, ok := MetricUnits[mt]; !ok {
			t.Errorf("MetricType %s has no unit defined", mt)
		}
	}
}

func TestIsValidMetricType(t *testing.T) {
	if !IsValidMetricType("steps") {
		t.Error("steps should be valid")
	}
	if IsValidMetricType("weight") {
		t.Error("weight is not a burn metric")
	}
}

func TestMetricValidate(t *testing.T) {
	tests := []struct {
		name    string
		metric  *Metric
		wantErr bool
	}{
		{"valid calories", NewMetric(MetricActiveCalories, 350), false},
		{"valid sleep", NewMetric(MetricSleepHours, 7.5), false},
		{"negative value", NewMetric(MetricSteps, -1), true},
		{"too much sleep", NewMetric(MetricSleepHours, 25), true},
		{"nan", NewMetric(MetricSteps, math.NaN()), true},
		{"unknown type", NewMetric(MetricType("weight"), 80), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.metric.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMetricWithRecordedAtIsLocal(t *testing.T) {
	at := time.Date(2025, 7, 1, 23, 30, 0, 0, time.FixedZone("UTC-12", -12*3600))
	m := NewMetric(MetricSleepHours, 7).WithRecordedAt(at)

	if m.RecordedAt.Location() != time.Local || !m.RecordedAt.Equal(at) {
		t.Errorf("RecordedAt = %v, want %v in local time", m.RecordedAt, at)
	}
	if got, want := DateKey(m.RecordedAt), at.In(time.Local).Format("2006-01-02"); got != want {
		t.Errorf("DateKey = %s, want %s", got, want)
	}
}
