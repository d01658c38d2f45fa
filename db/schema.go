// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS plan_cache (
	plan_id TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	race_name TEXT NOT NULL,
	race_date TEXT NOT NULL,
	fetched_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_plan_cache_fetched_at ON plan_cache(fetched_at DESC);

CREATE TABLE IF NOT EXISTS activity_log (
	id TEXT PRIMARY KEY,
	plan_id TEXT NOT NULL,
	date TEXT,
	action TEXT NOT NULL CHECK(action IN ('completed', 'skipped', 'undone', 'shifted', 'note_added', 'calendar_synced', 'calendar_removed')),
	detail TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_activity_log_plan ON activity_log(plan_id);
CREATE INDEX IF NOT EXISTS idx_activity_log_created ON activity_log(created_at DESC);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
