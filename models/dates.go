// ABOUTME: Date and week classification relative to an explicit "now"
// ABOUTME: Pure helpers for past/today/future and past/current/future states
package models

import (
	"log"
	"time"
)

// DayState classifies a single date against the current date.
type DayState string

const (
	DayPast   DayState = "past"
	DayToday  DayState = "today"
	DayFuture DayState = "future"
)

// WeekState classifies a week's date range against the current moment.
type WeekState string

const (
	WeekPast    WeekState = "past"
	WeekCurrent WeekState = "current"
	WeekFuture  WeekState = "future"
)

const dateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD date string.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(dateLayout, date)
}

// dateOnly reduces a moment to its calendar date, anchored at UTC midnight
// so it compares cleanly with ParseDate results regardless of the caller's
// time zone.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClassifyDay compares a date to "now", ignoring time of day. Malformed
// dates classify as future; bad plan data should degrade to "not yet", not
// crash a render.
func ClassifyDay(date string, now time.Time) DayState {
	d, err := ParseDate(date)
	if err != nil {
		log.Printf("Warning: unparseable day date %q, treating as future", date)
		return DayFuture
	}

	today := dateOnly(now)
	switch {
	case d.Before(today):
		return DayPast
	case d.Equal(today):
		return DayToday
	default:
		return DayFuture
	}
}

// ClassifyWeek reports whether "now" falls before, inside, or after the
// inclusive [startDate, endDate] range. The comparison is at day
// granularity: any moment on the end date still counts as current.
func ClassifyWeek(startDate, endDate string, now time.Time) WeekState {
	start, err := ParseDate(startDate)
	if err != nil {
		log.Printf("Warning: unparseable week start date %q, treating week as future", startDate)
		return WeekFuture
	}
	end, err := ParseDate(endDate)
	if err != nil {
		log.Printf("Warning: unparseable week end date %q, treating week as future", endDate)
		return WeekFuture
	}

	today := dateOnly(now)
	switch {
	case today.After(end):
		return WeekPast
	case today.Before(start):
		return WeekFuture
	default:
		return WeekCurrent
	}
}

// State classifies this week against "now".
func (w *Week) State(now time.Time) WeekState {
	return ClassifyWeek(w.StartDate, w.EndDate, now)
}

// State classifies this day against "now".
func (d *Day) State(now time.Time) DayState {
	return ClassifyDay(d.Date, now)
}

// Elapsed reports whether the day's date is on or before the current date.
// Today counts as elapsed; a workout scheduled for today is already
// measurable.
func (d *Day) Elapsed(now time.Time) bool {
	state := ClassifyDay(d.Date, now)
	return state == DayPast || state == DayToday
}
