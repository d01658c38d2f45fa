// ABOUTME: Plan snapshot cache operations
// ABOUTME: Stores the last fetched plan as JSON for offline reads
package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/stride/models"
)

// CachedPlan is a plan snapshot together with when it was fetched. The
// cache serves offline reads only; mutations and the synced-to-calendar
// flag always work from the live aggregate.
type CachedPlan struct {
	Plan      *models.Plan
	FetchedAt time.Time
}

// SnapshotInfo is the list-view row for cached plans.
type SnapshotInfo struct {
	PlanID    string
	RaceName  string
	RaceDate  string
	FetchedAt time.Time
}

// SavePlanSnapshot upserts the JSON snapshot of a plan.
func SavePlanSnapshot(database *sql.DB, plan *models.Plan, fetchedAt time.Time) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	query := `
		INSERT INTO plan_cache (plan_id, payload, race_name, race_date, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(plan_id) DO UPDATE SET
			payload = excluded.payload,
			race_name = excluded.race_name,
			race_date = excluded.race_date,
			fetched_at = excluded.fetched_at
	`

	_, err = database.Exec(query, plan.ID, string(payload), plan.RaceName, plan.RaceDate, fetchedAt.UTC())
	return err
}

// LoadPlanSnapshot returns the cached plan, or nil when no snapshot exists.
func LoadPlanSnapshot(database *sql.DB, planID string) (*CachedPlan, error) {
	query := `
		SELECT payload, fetched_at
		FROM plan_cache
		WHERE plan_id = ?
	`

	var payload string
	var fetchedAt time.Time
	err := database.QueryRow(query, planID).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var plan models.Plan
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		return nil, fmt.Errorf("failed to decode cached plan: %w", err)
	}

	return &CachedPlan{Plan: &plan, FetchedAt: fetchedAt}, nil
}

// ListPlanSnapshots returns cached plan metadata, most recent first.
func ListPlanSnapshots(database *sql.DB) ([]SnapshotInfo, error) {
	query := `
		SELECT plan_id, race_name, race_date, fetched_at
		FROM plan_cache
		ORDER BY fetched_at DESC
	`

	rows, err := database.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var snapshots []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.PlanID, &info.RaceName, &info.RaceDate, &info.FetchedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, info)
	}

	return snapshots, rows.Err()
}

// DeletePlanSnapshot removes a cached plan. Deleting a missing snapshot is
// not an error.
func DeletePlanSnapshot(database *sql.DB, planID string) error {
	_, err := database.Exec(`DELETE FROM plan_cache WHERE plan_id = ?`, planID)
	return err
}

// ClearPlanSnapshots wipes the whole cache, used on logout.
func ClearPlanSnapshots(database *sql.DB) error {
	_, err := database.Exec(`DELETE FROM plan_cache`)
	return err
}
