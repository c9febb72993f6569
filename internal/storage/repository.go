// ABOUTME: Repository interface for nutrient tracker storage.
// ABOUTME: Defines the contract for foods, burn metrics, and day snapshots.
package storage

import (
	"errors"
	"time"

	"github.com/harperreed/nutrients/internal/models"
)

// ErrNotFound is returned when an id or prefix matches no record.
var ErrNotFound = errors.New("not found")

// ErrAmbiguousPrefix is returned when an id prefix matches several records.
var ErrAmbiguousPrefix = errors.New("ambiguous prefix")

// Repository defines the storage interface for tracker data.
// Both the SQLite and Charm backends implement it.
type Repository interface {
	// Food log operations
	CreateFood(f *models.FoodLogItem) error
	GetFood(idOrPrefix string) (*models.FoodLogItem, error)
	ListFoodsByDate(date time.Time) ([]*models.FoodLogItem, error)
	ListFoods(limit int) ([]*models.FoodLogItem, error)
	DeleteFood(idOrPrefix string) error

	// Burn metric operations
	CreateMetric(m *models.Metric) error
	GetMetric(idOrPrefix string) (*models.Metric, error)
	ListMetricsByDate(date time.Time) ([]*models.Metric, error)
	ListMetrics(metricType *models.MetricType, limit int) ([]*models.Metric, error)
	DeleteMetric(idOrPrefix string) error

	// Snapshot operations. ReplaceSnapshot swaps a whole day atomically;
	// GetSnapshot returns nil when the day was never computed.
	ReplaceSnapshot(date time.Time, statuses []models.NutrientStatus) error
	GetSnapshot(date time.Time) (*models.DailySnapshot, error)
	ListSnapshotDates() ([]time.Time, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// ParseDateKey parses a YYYY-MM-DD key as local midnight.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", key, time.Local)
}
