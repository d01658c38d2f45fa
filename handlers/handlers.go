// ABOUTME: MCP tool handlers over the schedule session
// ABOUTME: Shared handler state and plan-to-output conversion
package handlers

import (
	"database/sql"
	"log"
	"time"

	"github.com/harperreed/stride/db"
	"github.com/harperreed/stride/models"
	"github.com/harperreed/stride/ourpr"
	"github.com/harperreed/stride/schedule"
)

// ScheduleHandlers exposes the active plan's schedule operations as MCP
// tools. All mutations go through the session; the client is only needed
// for the account-wide plan list.
type ScheduleHandlers struct {
	sess     *schedule.Session
	client   *ourpr.Client
	database *sql.DB
}

func NewScheduleHandlers(sess *schedule.Session, client *ourpr.Client, database *sql.DB) *ScheduleHandlers {
	return &ScheduleHandlers{sess: sess, client: client, database: database}
}

// record mirrors the CLI's activity logging. A nil database (tests) or a
// write failure never fails the tool call.
func (h *ScheduleHandlers) record(date, action, detail string) {
	if h.database == nil {
		return
	}
	if err := db.LogActivity(h.database, h.sess.PlanID(), date, action, detail); err != nil {
		log.Printf("Warning: failed to record activity: %v", err)
	}
}

// resolveDate defaults to the session's today.
func (h *ScheduleHandlers) resolveDate(date string) string {
	if date == "" {
		return h.sess.Now().Format("2006-01-02")
	}
	return date
}

type DayOutput struct {
	Date        string   `json:"date"`
	DayOfWeek   string   `json:"day_of_week"`
	Type        string   `json:"workout_type"`
	Description string   `json:"description"`
	Distance    string   `json:"distance,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Intensity   string   `json:"intensity,omitempty"`
	Notes       []string `json:"notes,omitempty"`
	Status      string   `json:"status"`
	State       string   `json:"state"`
	Synced      bool     `json:"synced_to_calendar"`
}

type WeekOutput struct {
	WeekNumber int         `json:"week_number"`
	StartDate  string      `json:"start_date"`
	EndDate    string      `json:"end_date"`
	State      string      `json:"state"`
	Mileage    string      `json:"estimated_weekly_mileage,omitempty"`
	Days       []DayOutput `json:"days"`
}

func dayToOutput(day *models.Day, now time.Time) DayOutput {
	return DayOutput{
		Date:        day.Date,
		DayOfWeek:   day.DayOfWeek,
		Type:        string(day.Type),
		Description: day.Description,
		Distance:    day.Distance,
		Duration:    day.Duration,
		Intensity:   day.Intensity,
		Notes:       day.Notes,
		Status:      day.Status,
		State:       string(day.State(now)),
		Synced:      day.Synced(),
	}
}

func weekToOutput(week *models.Week, now time.Time) WeekOutput {
	out := WeekOutput{
		WeekNumber: week.WeekNumber,
		StartDate:  week.StartDate,
		EndDate:    week.EndDate,
		State:      string(week.State(now)),
		Mileage:    week.Mileage,
		Days:       make([]DayOutput, len(week.Days)),
	}
	for di := range week.Days {
		out.Days[di] = dayToOutput(&week.Days[di], now)
	}
	return out
}
