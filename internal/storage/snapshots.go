// ABOUTME: Per-day nutrient snapshot persistence for SQLite storage.
// ABOUTME: A day's rows are replaced in one transaction so readers never see a mix.
package storage

import (
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/nutrients/internal/models"
)

// ReplaceSnapshot deletes the day's rows and inserts statuses in a single
// transaction.
func (d *DB) ReplaceSnapshot(date time.Time, statuses []models.NutrientStatus) error {
	day := models.DateKey(date)

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM snapshots WHERE day = ?`, day); err != nil {
		return fmt.Errorf("clear snapshot %s: %w", day, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO snapshots (day, nutrient, raw_intake, effective_intake, adjusted_target,
			percent_complete, tier, display_value, source_hint, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	computedAt := time.Now().Format(time.RFC3339)
	for _, st := range statuses {
		_, err := stmt.Exec(day,
			st.Nutrient.String(),
			st.RawIntake,
			st.EffectiveIntake,
			st.AdjustedTarget,
			st.PercentOfTarget(),
			st.Tier.String(),
			st.DisplayValue,
			st.SourceHint,
			computedAt,
		)
		if err != nil {
			return fmt.Errorf("insert %s status for %s: %w", st.Nutrient, day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot %s: %w", day, err)
	}
	return nil
}

// GetSnapshot returns the stored statuses for a day in nutrient order, or
// nil if the day has none.
func (d *DB) GetSnapshot(date time.Time) (*models.DailySnapshot, error) {
	day := models.DateKey(date)
	rows, err := d.db.Query(`
		SELECT nutrient, raw_intake, effective_intake, adjusted_target, tier, display_value, source_hint
		FROM snapshots
		WHERE day = ?
	`, day)
	if err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", day, err)
	}
	defer rows.Close()

	var statuses []models.NutrientStatus
	for rows.Next() {
		var st models.NutrientStatus
		var nutrient, tier string
		if err := rows.Scan(&nutrient, &st.RawIntake, &st.EffectiveIntake, &st.AdjustedTarget,
			&tier, &st.DisplayValue, &st.SourceHint); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		if st.Nutrient, err = models.ParseNutrientID(nutrient); err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", day, err)
		}
		if st.Tier, err = models.ParseTier(tier); err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", day, err)
		}
		statuses = append(statuses, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", day, err)
	}
	if len(statuses) == 0 {
		return nil, nil
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Nutrient < statuses[j].Nutrient
	})
	return &models.DailySnapshot{Date: models.Day(date), Statuses: statuses}, nil
}

// ListSnapshotDates returns every day with a stored snapshot, newest first.
func (d *DB) ListSnapshotDates() ([]time.Time, error) {
	rows, err := d.db.Query(`SELECT DISTINCT day FROM snapshots ORDER BY day DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshot dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan snapshot date: %w", err)
		}
		t, err := ParseDateKey(key)
		if err != nil {
			return nil, fmt.Errorf("parse snapshot date %q: %w", key, err)
		}
		dates = append(dates, t)
	}
	return dates, rows.Err()
}
