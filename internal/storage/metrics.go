// ABOUTME: Burn metric CRUD operations for SQLite storage.
// ABOUTME: Each reading is filed under the local calendar day it was recorded on.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutrients/internal/models"
)

const metricColumns = `id, metric_type, value, unit, recorded_at, notes, created_at`

// CreateMetric stores a new metric in the database.
func (d *DB) CreateMetric(m *models.Metric) error {
	query := `
		INSERT INTO metrics (id, metric_type, value, unit, day, recorded_at, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		m.ID.String(),
		string(m.MetricType),
		m.Value,
		m.Unit,
		models.DateKey(m.RecordedAt),
		m.RecordedAt.Format(time.RFC3339),
		m.Notes,
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create metric: %w", err)
	}
	return nil
}

// GetMetric retrieves a metric by ID or ID prefix.
func (d *DB) GetMetric(idOrPrefix string) (*models.Metric, error) {
	id, err := d.resolveID("metrics", idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get metric: %w", err)
	}

	m, err := scanMetric(d.db.QueryRow(`SELECT `+metricColumns+` FROM metrics WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get metric: %w: %s", ErrNotFound, idOrPrefix)
	}
	return m, err
}

// ListMetricsByDate returns one day's burn readings, oldest first.
func (d *DB) ListMetricsByDate(date time.Time) ([]*models.Metric, error) {
	rows, err := d.db.Query(`
		SELECT `+metricColumns+`
		FROM metrics
		WHERE day = ?
		ORDER BY recorded_at ASC
	`, models.DateKey(date))
	if err != nil {
		return nil, fmt.Errorf("list metrics by date: %w", err)
	}
	defer rows.Close()

	return scanMetrics(rows)
}

// ListMetrics retrieves metrics with optional filtering by type.
// Results are sorted by RecordedAt descending (most recent first).
func (d *DB) ListMetrics(metricType *models.MetricType, limit int) ([]*models.Metric, error) {
	query := `SELECT ` + metricColumns + ` FROM metrics`
	var args []any

	if metricType != nil {
		query += ` WHERE metric_type = ?`
		args = append(args, string(*metricType))
	}
	query += ` ORDER BY recorded_at DESC`

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	defer rows.Close()

	return scanMetrics(rows)
}

// DeleteMetric removes a metric by ID or prefix.
func (d *DB) DeleteMetric(idOrPrefix string) error {
	if err := d.deleteByID("metrics", idOrPrefix); err != nil {
		return fmt.Errorf("delete metric: %w", err)
	}
	return nil
}

func scanMetric(row rowScanner) (*models.Metric, error) {
	var m models.Metric
	var idStr, metricType, recordedAt, createdAt string
	var notes sql.NullString

	err := row.Scan(&idStr, &metricType, &m.Value, &m.Unit, &recordedAt, &notes, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan metric: %w", err)
	}

	m.ID, _ = uuid.Parse(idStr)
	m.MetricType = models.MetricType(metricType)
	m.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if notes.Valid {
		m.Notes = &notes.String
	}

	return &m, nil
}

func scanMetrics(rows *sql.Rows) ([]*models.Metric, error) {
	var metrics []*models.Metric
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}
