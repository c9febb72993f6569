// ABOUTME: Data migration between nutrient storage backends.
// ABOUTME: Copies foods, burn metrics, and day snapshots from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Foods     int
	Metrics   int
	Snapshots int
}

// MigrateData copies all data from src to dst storage.
// The destination should be empty before calling this function.
// With dryRun set, nothing is written and the summary reports what would be.
func MigrateData(src, dst Repository, dryRun bool) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	foods, err := src.ListFoods(0)
	if err != nil {
		return nil, fmt.Errorf("list source foods: %w", err)
	}
	for _, f := range foods {
		if !dryRun {
			if err := dst.CreateFood(f); err != nil {
				return nil, fmt.Errorf("create food %s: %w", f.ID, err)
			}
		}
		summary.Foods++
	}

	metrics, err := src.ListMetrics(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list source metrics: %w", err)
	}
	for _, m := range metrics {
		if !dryRun {
			if err := dst.CreateMetric(m); err != nil {
				return nil, fmt.Errorf("create metric %s: %w", m.ID, err)
			}
		}
		summary.Metrics++
	}

	dates, err := src.ListSnapshotDates()
	if err != nil {
		return nil, fmt.Errorf("list source snapshots: %w", err)
	}
	for _, date := range dates {
		snap, err := src.GetSnapshot(date)
		if err != nil {
			return nil, fmt.Errorf("get snapshot %s: %w", date.Format("2006-01-02"), err)
		}
		if snap == nil {
			continue
		}
		if !dryRun {
			if err := dst.ReplaceSnapshot(snap.Date, snap.Statuses); err != nil {
				return nil, fmt.Errorf("replace snapshot %s: %w", date.Format("2006-01-02"), err)
			}
		}
		summary.Snapshots++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
