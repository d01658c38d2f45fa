// ABOUTME: Callback hooks emitted by schedule operations
// ABOUTME: Celebration, note prompts, and week-completed summaries
package schedule

import (
	"github.com/harperreed/stride/models"
)

// WeekSummary describes a fully completed training week.
type WeekSummary struct {
	WeekNumber     int
	CompletedCount int
	PlannedCount   int
	Consistency    *int
}

// Events carries optional callbacks fired during schedule operations. Nil
// callbacks are skipped. Callbacks run on the calling goroutine, outside
// the session lock, so they may call back into the session.
type Events struct {
	// OnCelebrate fires when a workout is marked completed.
	OnCelebrate func(day models.Day)

	// OnNoteRequest fires after a completion so the surface can offer a
	// free-text note prompt for that date.
	OnNoteRequest func(date string)

	// OnWeekCompleted fires when a completion finishes the last remaining
	// non-Rest workout of its week.
	OnWeekCompleted func(summary WeekSummary)
}

func (e Events) celebrate(day models.Day) {
	if e.OnCelebrate != nil {
		e.OnCelebrate(day)
	}
}

func (e Events) requestNote(date string) {
	if e.OnNoteRequest != nil {
		e.OnNoteRequest(date)
	}
}

func (e Events) weekCompleted(summary WeekSummary) {
	if e.OnWeekCompleted != nil {
		e.OnWeekCompleted(summary)
	}
}
