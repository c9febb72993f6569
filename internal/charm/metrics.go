// ABOUTME: Burn metric CRUD operations for Charm KV storage.
// ABOUTME: Uses type-prefixed keys and client-side filtering.
package charm

import (
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/nutrients/internal/models"
)

// CreateMetric stores a new metric in the KV store.
func (c *Client) CreateMetric(m *models.Metric) error {
	key := MetricPrefix + m.ID.String()
	data, err := marshalJSON(m)
	if err != nil {
		return fmt.Errorf("marshal metric: %w", err)
	}
	return c.set(key, data)
}

// GetMetric retrieves a metric by ID or ID prefix.
func (c *Client) GetMetric(idOrPrefix string) (*models.Metric, error) {
	data, err := c.getByIDPrefix(MetricPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get metric: %w", err)
	}

	metric, err := unmarshalJSON[models.Metric](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal metric: %w", err)
	}

	return metric, nil
}

// ListMetricsByDate returns one day's burn readings, oldest first.
func (c *Client) ListMetricsByDate(date time.Time) ([]*models.Metric, error) {
	metrics, err := c.ListMetrics(nil, 0)
	if err != nil {
		return nil, err
	}
	return metricsOnDay(metrics, date), nil
}

// ListMetrics retrieves metrics with optional filtering by type.
// Results are sorted by RecordedAt descending (most recent first).
func (c *Client) ListMetrics(metricType *models.MetricType, limit int) ([]*models.Metric, error) {
	allData, err := c.listByPrefix(MetricPrefix)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}

	var metrics []*models.Metric
	for _, m := range decodeAll[models.Metric](allData) {
		if metricType != nil && m.MetricType != *metricType {
			continue
		}
		metrics = append(metrics, m)
	}

	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].RecordedAt.After(metrics[j].RecordedAt)
	})

	if limit > 0 && len(metrics) > limit {
		metrics = metrics[:limit]
	}

	return metrics, nil
}

// DeleteMetric removes a metric by ID or prefix.
func (c *Client) DeleteMetric(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(MetricPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete metric: %w", err)
	}
	return nil
}

// metricsOnDay keeps readings recorded on date's calendar day, oldest first.
func metricsOnDay(metrics []*models.Metric, date time.Time) []*models.Metric {
	key := models.DateKey(date)
	var out []*models.Metric
	for _, m := range metrics {
		if models.DateKey(m.RecordedAt) == key {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.Before(out[j].RecordedAt)
	})
	return out
}
