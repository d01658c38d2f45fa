// ABOUTME: Tests for database schema creation and migrations
// ABOUTME: Uses in-memory SQLite for fast isolated tests
package db

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestInitSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	// Verify tables exist
	tables := []string{"plan_cache", "activity_log"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	// Verify indexes exist
	indexes := []string{
		"idx_plan_cache_fetched_at",
		"idx_activity_log_plan",
		"idx_activity_log_created",
	}
	for _, idx := range indexes {
		var indexName string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", idx).Scan(&indexName)
		if err != nil {
			t.Errorf("Index %s not found: %v", idx, err)
		}
	}
}

func TestInitSchemaIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := InitSchema(db); err != nil {
		t.Fatalf("First InitSchema failed: %v", err)
	}
	if err := InitSchema(db); err != nil {
		t.Fatalf("Second InitSchema failed: %v", err)
	}
}

func TestActivityActionConstraint(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	// Known actions are accepted
	_, err = db.Exec(
		`INSERT INTO activity_log (id, plan_id, date, action, detail) VALUES (?, ?, ?, ?, ?)`,
		"01TEST", "plan-1", "2026-03-02", "completed", "")
	if err != nil {
		t.Errorf("Insert with valid action failed: %v", err)
	}

	// Unknown actions are rejected by the CHECK constraint
	_, err = db.Exec(
		`INSERT INTO activity_log (id, plan_id, date, action, detail) VALUES (?, ?, ?, ?, ?)`,
		"01TEST2", "plan-1", "2026-03-02", "teleported", "")
	if err == nil {
		t.Error("Insert with unknown action should fail")
	}
}
