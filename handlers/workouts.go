// ABOUTME: Workout mutation MCP tools
// ABOUTME: Implements complete, skip, undo, shift, and note tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stride/db"
	"github.com/harperreed/stride/models"
	"github.com/harperreed/stride/schedule"
)

type WorkoutDateInput struct {
	Date string `json:"date,omitempty" jsonschema:"Workout date as YYYY-MM-DD (defaults to today)"`
}

type StatusChangeOutput struct {
	Date          string       `json:"date"`
	Workout       string       `json:"workout"`
	Status        string       `json:"status"`
	Celebration   string       `json:"celebration,omitempty"`
	WeekCompleted *WeekWrapped `json:"week_completed,omitempty"`
}

// WeekWrapped reports a week finished by this completion.
type WeekWrapped struct {
	WeekNumber     int  `json:"week_number"`
	CompletedCount int  `json:"completed_count"`
	PlannedCount   int  `json:"planned_count"`
	Consistency    *int `json:"consistency,omitempty"`
}

func (h *ScheduleHandlers) CompleteWorkout(ctx context.Context, request *mcp.CallToolRequest, input WorkoutDateInput) (*mcp.CallToolResult, StatusChangeOutput, error) {
	date := h.resolveDate(input.Date)

	// The before/after comparison detects a completion that wraps up its
	// week, without double-reporting when the week was already done.
	wasDone := h.weekDone(date)

	if err := h.sess.Complete(ctx, date); err != nil {
		return nil, StatusChangeOutput{}, err
	}

	plan := h.sess.Plan()
	_, _, day, ok := plan.FindDay(date)
	if !ok {
		return nil, StatusChangeOutput{}, fmt.Errorf("day %s disappeared from the plan", date)
	}

	info := day.Type.Info()
	out := StatusChangeOutput{
		Date:        date,
		Workout:     string(day.Type),
		Status:      day.Status,
		Celebration: fmt.Sprintf("%s %s complete! %s", info.Emoji, day.Type, info.Motivation),
	}

	if !wasDone {
		if wrapped := h.weekSummary(date); wrapped != nil {
			out.WeekCompleted = wrapped
		}
	}

	h.record(date, db.ActionCompleted, out.Workout)
	return nil, out, nil
}

func (h *ScheduleHandlers) SkipWorkout(ctx context.Context, request *mcp.CallToolRequest, input WorkoutDateInput) (*mcp.CallToolResult, StatusChangeOutput, error) {
	return h.statusTool(ctx, input, models.StatusSkipped, db.ActionSkipped)
}

func (h *ScheduleHandlers) UndoWorkout(ctx context.Context, request *mcp.CallToolRequest, input WorkoutDateInput) (*mcp.CallToolResult, StatusChangeOutput, error) {
	return h.statusTool(ctx, input, models.StatusPending, db.ActionUndone)
}

func (h *ScheduleHandlers) statusTool(ctx context.Context, input WorkoutDateInput, status, action string) (*mcp.CallToolResult, StatusChangeOutput, error) {
	date := h.resolveDate(input.Date)

	if err := h.sess.SetStatus(ctx, date, status); err != nil {
		return nil, StatusChangeOutput{}, err
	}

	plan := h.sess.Plan()
	_, _, day, ok := plan.FindDay(date)
	if !ok {
		return nil, StatusChangeOutput{}, fmt.Errorf("day %s disappeared from the plan", date)
	}

	out := StatusChangeOutput{
		Date:    date,
		Workout: string(day.Type),
		Status:  day.Status,
	}

	h.record(date, action, out.Workout)
	return nil, out, nil
}

// weekDone reports whether the week containing date has every non-Rest
// workout completed.
func (h *ScheduleHandlers) weekDone(date string) bool {
	plan := h.sess.Plan()
	wi, _, _, ok := plan.FindDay(date)
	if !ok {
		return false
	}
	week := &plan.Weeks[wi]
	return week.PlannedCount() > 0 && week.CompletedCount() == week.PlannedCount()
}

// weekSummary returns the wrapped-week report when the week containing
// date is now fully completed, nil otherwise.
func (h *ScheduleHandlers) weekSummary(date string) *WeekWrapped {
	plan := h.sess.Plan()
	wi, _, _, ok := plan.FindDay(date)
	if !ok {
		return nil
	}
	week := &plan.Weeks[wi]
	if week.PlannedCount() == 0 || week.CompletedCount() != week.PlannedCount() {
		return nil
	}
	return &WeekWrapped{
		WeekNumber:     week.WeekNumber,
		CompletedCount: week.CompletedCount(),
		PlannedCount:   week.PlannedCount(),
		Consistency:    models.WeeklyConsistency(week, h.sess.Now()),
	}
}

type ShiftWorkoutInput struct {
	Date      string `json:"date" jsonschema:"Date of the workout to move, YYYY-MM-DD"`
	Direction string `json:"direction" jsonschema:"Either 'up' (a day earlier) or 'down' (a day later)"`
}

type ShiftWorkoutOutput struct {
	Date      string     `json:"date"`
	Direction string     `json:"direction"`
	Workout   string     `json:"workout"`
	Week      WeekOutput `json:"week"`
}

func (h *ScheduleHandlers) ShiftWorkout(ctx context.Context, request *mcp.CallToolRequest, input ShiftWorkoutInput) (*mcp.CallToolResult, ShiftWorkoutOutput, error) {
	if input.Date == "" {
		return nil, ShiftWorkoutOutput{}, fmt.Errorf("date is required")
	}

	dir, err := schedule.ParseDirection(input.Direction)
	if err != nil {
		return nil, ShiftWorkoutOutput{}, err
	}

	// The payload that moves is the one at the date before the swap
	label := "workout"
	if _, _, day, ok := h.sess.Plan().FindDay(input.Date); ok {
		label = string(day.Type)
	}

	if err := h.sess.ShiftWorkoutByDate(ctx, input.Date, dir); err != nil {
		return nil, ShiftWorkoutOutput{}, err
	}

	plan := h.sess.Plan()
	wi, _, _, ok := plan.FindDay(input.Date)
	if !ok {
		return nil, ShiftWorkoutOutput{}, fmt.Errorf("day %s disappeared from the plan", input.Date)
	}

	out := ShiftWorkoutOutput{
		Date:      input.Date,
		Direction: dir.String(),
		Workout:   label,
		Week:      weekToOutput(&plan.Weeks[wi], h.sess.Now()),
	}

	h.record(input.Date, db.ActionShifted, fmt.Sprintf("%s moved %s", label, dir))
	return nil, out, nil
}

type AddWorkoutNoteInput struct {
	Date string `json:"date" jsonschema:"Workout date as YYYY-MM-DD"`
	Text string `json:"text" jsonschema:"Note text to attach"`
}

type AddWorkoutNoteOutput struct {
	Date  string   `json:"date"`
	Notes []string `json:"notes"`
}

func (h *ScheduleHandlers) AddWorkoutNote(ctx context.Context, request *mcp.CallToolRequest, input AddWorkoutNoteInput) (*mcp.CallToolResult, AddWorkoutNoteOutput, error) {
	if input.Date == "" {
		return nil, AddWorkoutNoteOutput{}, fmt.Errorf("date is required")
	}

	if err := h.sess.AttachNote(ctx, input.Date, input.Text); err != nil {
		return nil, AddWorkoutNoteOutput{}, err
	}

	plan := h.sess.Plan()
	_, _, day, ok := plan.FindDay(input.Date)
	if !ok {
		return nil, AddWorkoutNoteOutput{}, fmt.Errorf("day %s disappeared from the plan", input.Date)
	}

	h.record(input.Date, db.ActionNoteAdded, input.Text)
	return nil, AddWorkoutNoteOutput{Date: input.Date, Notes: day.Notes}, nil
}
