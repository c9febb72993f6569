// ABOUTME: Shared CLI helpers for parsing dates and formatting rows.
// ABOUTME: Tier colours and badge markers live here so every command renders alike.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/nutrients/internal/models"
)

var faint = color.New(color.Faint)

var tierColors = map[models.DeficiencyTier]*color.Color{
	models.TierCritical:  color.New(color.FgRed, color.Bold),
	models.TierDeficient: color.New(color.FgRed),
	models.TierLow:       color.New(color.FgYellow),
	models.TierAdequate:  color.New(color.FgCyan),
	models.TierOptimal:   color.New(color.FgGreen),
}

// parseTime accepts the timestamp formats users type, in local time.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(time.Local), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

// parseDay parses a YYYY-MM-DD flag, or returns today for an empty one.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return models.Day(time.Now()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", s)
	}
	return t, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func shortID(id fmt.Stringer) string {
	return id.String()[:8]
}

// tierText renders a tier label in its colour, with a badge marker for
// tiers that need attention.
func tierText(t models.DeficiencyTier) string {
	label := padRight(t.Label(), 9)
	if t.NeedsBadge() {
		label += " !"
	}
	return tierColors[t].Sprint(label)
}

// percentBar draws a ten-cell bar for a fraction in [0,1].
func percentBar(fraction float64) string {
	filled := int(fraction * 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + faint.Sprint(strings.Repeat("░", 10-filled))
}
