// ABOUTME: Migration utility for moving v1 plan caches to the current schema.
// ABOUTME: Provides dry-run and backup capabilities for safe cache migration.

package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/harperreed/stride/db"
	"github.com/harperreed/stride/models"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	dbPath := flag.String("db", db.DefaultPath(), "Path to stride database file")
	dryRun := flag.Bool("dry-run", false, "Show what would happen without making changes")
	backup := flag.Bool("backup", true, "Create backup before migration")
	force := flag.Bool("force", false, "Skip cached plans that no longer parse instead of aborting")
	flag.Parse()

	if err := migrate(*dbPath, *dryRun, *backup, *force); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed successfully")
}

func migrate(dbPath string, dryRun, createBackup, force bool) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("database file does not exist: %s", dbPath)
	}

	if createBackup && !dryRun {
		backupPath := fmt.Sprintf("%s.backup.%s", dbPath, time.Now().Format("20060102-150405"))
		log.Printf("Creating backup: %s", backupPath)

		input, err := os.ReadFile(dbPath)
		if err != nil {
			return fmt.Errorf("failed to read database: %w", err)
		}

		if err := os.WriteFile(backupPath, input, 0644); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
		log.Printf("Backup created successfully")
	}

	database, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	tables, err := getCurrentTables(database)
	if err != nil {
		return fmt.Errorf("failed to get current tables: %w", err)
	}

	log.Printf("Current tables: %v", tables)

	hasLegacy := containsTable(tables, "cached_plans")
	hasCurrent := containsTable(tables, "plan_cache")

	if !hasLegacy && hasCurrent {
		log.Printf("Database already uses the current schema, nothing to do")
		return nil
	}

	legacyCount := 0
	if hasLegacy {
		if err := database.QueryRow("SELECT COUNT(*) FROM cached_plans").Scan(&legacyCount); err != nil {
			return fmt.Errorf("failed to count legacy rows: %w", err)
		}
		log.Printf("Found legacy cached_plans table with %d plan(s)", legacyCount)
	}

	if dryRun {
		log.Printf("[DRY RUN] Would perform the following actions:")
		if !hasCurrent {
			log.Printf("[DRY RUN] - Create tables: plan_cache, activity_log")
		}
		if hasLegacy {
			log.Printf("[DRY RUN] - Copy %d plan(s) from cached_plans into plan_cache", legacyCount)
			log.Printf("[DRY RUN] - Drop legacy table: cached_plans")
		}
		return nil
	}

	if !hasCurrent {
		log.Printf("Creating current schema...")
		if err := db.InitSchema(database); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	if hasLegacy {
		migrated, skipped, err := copyLegacyPlans(database, force)
		if err != nil {
			return err
		}
		log.Printf("Migrated %d plan(s), skipped %d", migrated, skipped)
	}

	return nil
}

// copyLegacyPlans moves every row of cached_plans into plan_cache and drops
// the old table, all in one transaction so a failed parse leaves the legacy
// data untouched. The v1 layout stored only the JSON blob, so the race name
// and date columns are recovered from the decoded plan.
func copyLegacyPlans(database *sql.DB, force bool) (migrated, skipped int, err error) {
	tx, err := database.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.Query("SELECT id, data, updated_at FROM cached_plans")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read legacy rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	type legacyRow struct {
		id        string
		data      string
		updatedAt time.Time
	}
	var legacy []legacyRow
	for rows.Next() {
		var r legacyRow
		if err := rows.Scan(&r.id, &r.data, &r.updatedAt); err != nil {
			return 0, 0, fmt.Errorf("failed to scan legacy row: %w", err)
		}
		legacy = append(legacy, r)
	}
	if err := rows.Err(); err != nil {
		return 0, 0, err
	}
	_ = rows.Close()

	for _, r := range legacy {
		var plan models.Plan
		if err := json.Unmarshal([]byte(r.data), &plan); err != nil {
			if !force {
				return 0, 0, fmt.Errorf("cached plan %s no longer parses (use -force to skip it): %w", r.id, err)
			}
			log.Printf("WARNING: skipping unparseable cached plan %s: %v", r.id, err)
			skipped++
			continue
		}

		planID := plan.ID
		if planID == "" {
			planID = r.id
		}

		_, err := tx.Exec(`
			INSERT INTO plan_cache (plan_id, payload, race_name, race_date, fetched_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(plan_id) DO UPDATE SET
				payload = excluded.payload,
				race_name = excluded.race_name,
				race_date = excluded.race_date,
				fetched_at = excluded.fetched_at
		`, planID, r.data, plan.RaceName, plan.RaceDate, r.updatedAt.UTC())
		if err != nil {
			return 0, 0, fmt.Errorf("failed to migrate plan %s: %w", planID, err)
		}
		log.Printf("Migrated plan: %s (%s)", planID, plan.RaceName)
		migrated++
	}

	if _, err := tx.Exec("DROP TABLE cached_plans"); err != nil {
		return 0, 0, fmt.Errorf("failed to drop legacy table: %w", err)
	}
	log.Printf("Dropped table: cached_plans")

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit migration: %w", err)
	}
	return migrated, skipped, nil
}

func getCurrentTables(database *sql.DB) ([]string, error) {
	rows, err := database.Query("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}

	return tables, rows.Err()
}

func containsTable(tables []string, name string) bool {
	for _, table := range tables {
		if table == name {
			return true
		}
	}
	return false
}
