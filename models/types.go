// ABOUTME: Data models for training plans
// ABOUTME: Defines Plan, Week, Day structs plus the workout-type catalog
package models

import (
	"fmt"
)

// Workout status constants.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusSkipped   = "skipped"
)

// WorkoutType is one of the closed set of workout categories OurPR generates.
type WorkoutType string

const (
	WorkoutEasyRun       WorkoutType = "Easy Run"
	WorkoutTempoRun      WorkoutType = "Tempo Run"
	WorkoutIntervals     WorkoutType = "Intervals"
	WorkoutSpeedWork     WorkoutType = "Speed Work"
	WorkoutLongRun       WorkoutType = "Long Run"
	WorkoutRest          WorkoutType = "Rest"
	WorkoutCrossTraining WorkoutType = "Cross-Training"
	WorkoutStrength      WorkoutType = "Strength"
	WorkoutRacePace      WorkoutType = "Race Pace"
	WorkoutWarmUp        WorkoutType = "Warm-up"
	WorkoutCoolDown      WorkoutType = "Cool-down"
	WorkoutOther         WorkoutType = "Other"
)

// WorkoutInfo carries the display attributes for a workout type.
type WorkoutInfo struct {
	Emoji      string
	Motivation string
}

// workoutCatalog maps every known workout type to its display info.
// Values match what the OurPR backend writes into calendar events.
var workoutCatalog = map[WorkoutType]WorkoutInfo{
	WorkoutEasyRun:       {Emoji: "👟", Motivation: "Focus on conversational pace to build your aerobic base."},
	WorkoutTempoRun:      {Emoji: "💨", Motivation: "Push your threshold, stay comfortably hard!"},
	WorkoutIntervals:     {Emoji: "⚡", Motivation: "Boost speed and efficiency with these bursts."},
	WorkoutSpeedWork:     {Emoji: "🚀", Motivation: "Improve your top-end speed and running form."},
	WorkoutLongRun:       {Emoji: "🗺️", Motivation: "Build endurance and mental toughness for race day."},
	WorkoutRest:          {Emoji: "😴", Motivation: "Recovery is key! Let your body rebuild."},
	WorkoutCrossTraining: {Emoji: "🚴", Motivation: "Build fitness while giving your running muscles a break."},
	WorkoutStrength:      {Emoji: "🏋️", Motivation: "Strengthen supporting muscles to prevent injuries."},
	WorkoutRacePace:      {Emoji: "🏁", Motivation: "Get comfortable with your target race effort."},
	WorkoutWarmUp:        {Emoji: "🔥", Motivation: "Prepare your body for the work ahead."},
	WorkoutCoolDown:      {Emoji: "🧊", Motivation: "Help your body recover and reduce soreness."},
	WorkoutOther:         {Emoji: "🤔", Motivation: "Listen to your body and enjoy the activity!"},
}

// Info returns the catalog entry for a workout type. Unknown or legacy
// values fall back to the Other entry rather than failing.
func (t WorkoutType) Info() WorkoutInfo {
	if info, ok := workoutCatalog[t]; ok {
		return info
	}
	return workoutCatalog[WorkoutOther]
}

// IsRest reports whether the type is a rest day.
func (t WorkoutType) IsRest() bool {
	return t == WorkoutRest
}

// Day is one workout slot in a week. Date and DayOfWeek identify the slot
// and never change; everything else is payload that mutations may move
// between slots.
type Day struct {
	Date          string      `json:"date"`
	DayOfWeek     string      `json:"day_of_week"`
	Type          WorkoutType `json:"workout_type"`
	Description   string      `json:"description"`
	Distance      string      `json:"distance,omitempty"`
	Duration      string      `json:"duration,omitempty"`
	Intensity     string      `json:"intensity,omitempty"`
	Notes         []string    `json:"notes,omitempty"`
	Status        string      `json:"status"`
	GoogleEventID *string     `json:"google_event_id,omitempty"`
}

// IsRest reports whether this slot is a rest day.
func (d *Day) IsRest() bool {
	return d.Type.IsRest()
}

// Synced reports whether this slot carries a calendar event reference.
func (d *Day) Synced() bool {
	return d.GoogleEventID != nil && *d.GoogleEventID != ""
}

// Clone returns a copy of the day that shares no memory with the original.
func (d *Day) Clone() Day {
	clone := *d
	if d.Notes != nil {
		clone.Notes = append([]string(nil), d.Notes...)
	}
	if d.GoogleEventID != nil {
		id := *d.GoogleEventID
		clone.GoogleEventID = &id
	}
	return clone
}

type Week struct {
	WeekNumber int    `json:"week_number"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Mileage    string `json:"estimated_weekly_mileage,omitempty"`
	Summary    string `json:"summary,omitempty"`
	Days       []Day  `json:"days"`
}

// CompletedCount returns how many non-Rest days in the week are completed.
func (w *Week) CompletedCount() int {
	count := 0
	for i := range w.Days {
		if !w.Days[i].IsRest() && w.Days[i].Status == StatusCompleted {
			count++
		}
	}
	return count
}

// PlannedCount returns how many non-Rest days the week contains.
func (w *Week) PlannedCount() int {
	count := 0
	for i := range w.Days {
		if !w.Days[i].IsRest() {
			count++
		}
	}
	return count
}

// Plan is the full training schedule for one race. It is hydrated from the
// OurPR plan store, mutated locally, and written back either wholesale or as
// single-day status patches.
type Plan struct {
	ID              string            `json:"id"`
	RaceName        string            `json:"race_name"`
	RaceDistance    string            `json:"race_distance"`
	RaceDate        string            `json:"race_date"`
	TotalWeeks      int               `json:"total_weeks"`
	GoalTime        *string           `json:"goal_time,omitempty"`
	Personalization map[string]string `json:"personalization,omitempty"`
	Weeks           []Week            `json:"weeks"`
	Notes           []string          `json:"notes,omitempty"`
}

// PlanSummary is the list-view shape returned by the plan index endpoint.
type PlanSummary struct {
	ID           string `json:"id"`
	RaceName     string `json:"race_name"`
	RaceDistance string `json:"race_distance"`
	RaceDate     string `json:"race_date"`
	TotalWeeks   int    `json:"total_weeks"`
}

// FindDay locates the day with the given date. Returns the containing week
// index, the day index within that week, and the day itself, or ok=false
// when no slot matches.
func (p *Plan) FindDay(date string) (weekIdx, dayIdx int, day *Day, ok bool) {
	for wi := range p.Weeks {
		for di := range p.Weeks[wi].Days {
			if p.Weeks[wi].Days[di].Date == date {
				return wi, di, &p.Weeks[wi].Days[di], true
			}
		}
	}
	return 0, 0, nil, false
}

// SyncedToCalendar reports whether any day carries a calendar event
// reference. Always derived from current day data, never stored.
func (p *Plan) SyncedToCalendar() bool {
	for wi := range p.Weeks {
		for di := range p.Weeks[wi].Days {
			if p.Weeks[wi].Days[di].Synced() {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of the plan. Slices, maps, and pointer fields
// are all duplicated so the copy shares no memory with the original; this
// is what makes pre-mutation snapshots safe to restore.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}

	clone := *p

	if p.GoalTime != nil {
		goal := *p.GoalTime
		clone.GoalTime = &goal
	}

	if p.Personalization != nil {
		clone.Personalization = make(map[string]string, len(p.Personalization))
		for k, v := range p.Personalization {
			clone.Personalization[k] = v
		}
	}

	if p.Notes != nil {
		clone.Notes = append([]string(nil), p.Notes...)
	}

	clone.Weeks = make([]Week, len(p.Weeks))
	for wi := range p.Weeks {
		week := p.Weeks[wi]
		week.Days = make([]Day, len(p.Weeks[wi].Days))
		for di := range p.Weeks[wi].Days {
			week.Days[di] = p.Weeks[wi].Days[di].Clone()
		}
		clone.Weeks[wi] = week
	}

	return &clone
}

// Validate checks the structural invariants: week numbers contiguous from 1,
// exactly seven days per week, and dates unique and strictly increasing
// across the whole plan.
func (p *Plan) Validate() error {
	if len(p.Weeks) == 0 {
		return fmt.Errorf("plan has no weeks")
	}

	lastDate := ""
	for wi := range p.Weeks {
		week := &p.Weeks[wi]
		if week.WeekNumber != wi+1 {
			return fmt.Errorf("week at position %d has number %d, want %d", wi, week.WeekNumber, wi+1)
		}
		if len(week.Days) != 7 {
			return fmt.Errorf("week %d has %d days, want 7", week.WeekNumber, len(week.Days))
		}
		for di := range week.Days {
			date := week.Days[di].Date
			if date <= lastDate {
				return fmt.Errorf("week %d day %d: date %q does not increase after %q", week.WeekNumber, di, date, lastDate)
			}
			lastDate = date
		}
	}

	return nil
}
