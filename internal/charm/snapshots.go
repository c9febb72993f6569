// ABOUTME: Day snapshot storage for Charm KV.
// ABOUTME: A whole day is one value, so replacing it is a single atomic Set.
package charm

import (
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/nutrients/internal/models"
	"github.com/harperreed/nutrients/internal/storage"
)

// ReplaceSnapshot overwrites the day's statuses.
func (c *Client) ReplaceSnapshot(date time.Time, statuses []models.NutrientStatus) error {
	snap := models.DailySnapshot{Date: models.Day(date), Statuses: statuses}
	data, err := marshalJSON(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return c.set(SnapshotPrefix+models.DateKey(date), data)
}

// GetSnapshot returns the stored statuses for a day, or nil if none.
func (c *Client) GetSnapshot(date time.Time) (*models.DailySnapshot, error) {
	data, err := c.get(SnapshotPrefix + models.DateKey(date))
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	snap, err := unmarshalJSON[models.DailySnapshot](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if len(snap.Statuses) == 0 {
		return nil, nil
	}
	return snap, nil
}

// ListSnapshotDates returns every day with a stored snapshot, newest first.
func (c *Client) ListSnapshotDates() ([]time.Time, error) {
	keys, err := c.keysWithPrefix(SnapshotPrefix)
	if err != nil {
		return nil, fmt.Errorf("list snapshot dates: %w", err)
	}
	return parseDateKeys(keys), nil
}

// parseDateKeys parses day keys, dropping malformed ones, newest first.
func parseDateKeys(keys []string) []time.Time {
	dates := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		t, err := storage.ParseDateKey(k)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates
}
