// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for foods, burn metrics, and per-day nutrient snapshots.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS foods (
		id TEXT PRIMARY KEY,
		day TEXT NOT NULL,
		name TEXT NOT NULL,
		calories REAL NOT NULL DEFAULT 0,
		protein REAL NOT NULL DEFAULT 0,
		carbs REAL NOT NULL DEFAULT 0,
		fat REAL NOT NULL DEFAULT 0,
		meal TEXT NOT NULL,
		source_note TEXT,
		needs_confirmation INTEGER NOT NULL DEFAULT 0,
		logged_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS metrics (
		id TEXT PRIMARY KEY,
		metric_type TEXT NOT NULL,
		value REAL NOT NULL,
		unit TEXT NOT NULL,
		day TEXT NOT NULL,
		recorded_at DATETIME NOT NULL,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		day TEXT NOT NULL,
		nutrient TEXT NOT NULL,
		raw_intake REAL NOT NULL,
		effective_intake REAL NOT NULL,
		adjusted_target REAL NOT NULL,
		percent_complete REAL NOT NULL,
		tier TEXT NOT NULL,
		display_value TEXT NOT NULL,
		source_hint TEXT NOT NULL DEFAULT '',
		computed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (day, nutrient)
	);

	CREATE INDEX IF NOT EXISTS idx_foods_day ON foods(day, logged_at);
	CREATE INDEX IF NOT EXISTS idx_metrics_type ON metrics(metric_type);
	CREATE INDEX IF NOT EXISTS idx_metrics_day ON metrics(day);
	CREATE INDEX IF NOT EXISTS idx_metrics_type_recorded ON metrics(metric_type, recorded_at DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
