// ABOUTME: Append-only activity log for local actions
// ABOUTME: Records status changes, shifts, notes, and calendar operations
package db

import (
	"database/sql"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Actions recorded in the activity log. These match the schema's CHECK
// constraint.
const (
	ActionCompleted       = "completed"
	ActionSkipped         = "skipped"
	ActionUndone          = "undone"
	ActionShifted         = "shifted"
	ActionNoteAdded       = "note_added"
	ActionCalendarSynced  = "calendar_synced"
	ActionCalendarRemoved = "calendar_removed"
)

// Activity is one logged local action. Date is the workout date the action
// touched, empty for plan-wide operations like calendar sync.
type Activity struct {
	ID        string
	PlanID    string
	Date      string
	Action    string
	Detail    string
	CreatedAt time.Time
}

// newActivityID generates a ULID so log entries sort by creation time.
func newActivityID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// LogActivity appends one entry to the activity log.
func LogActivity(database *sql.DB, planID, date, action, detail string) error {
	query := `
		INSERT INTO activity_log (id, plan_id, date, action, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := database.Exec(query, newActivityID(), planID, date, action, detail, time.Now().UTC())
	return err
}

// ListActivity returns the most recent log entries for a plan, newest
// first. A limit of 0 means no limit.
func ListActivity(database *sql.DB, planID string, limit int) ([]Activity, error) {
	query := `
		SELECT id, plan_id, date, action, detail, created_at
		FROM activity_log
		WHERE plan_id = ?
		ORDER BY created_at DESC, id DESC
	`
	args := []interface{}{planID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := database.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []Activity
	for rows.Next() {
		var entry Activity
		var date, detail sql.NullString
		if err := rows.Scan(&entry.ID, &entry.PlanID, &date, &entry.Action, &detail, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.Date = date.String
		entry.Detail = detail.String
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
