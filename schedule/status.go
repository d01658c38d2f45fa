// ABOUTME: Workout status engine
// ABOUTME: Optimistically applies a status change, persists a one-day patch, rolls back on failure
package schedule

import (
	"context"
	"fmt"

	"github.com/harperreed/stride/models"
)

// Complete, Skip, and Undo are the surface-level transitions. The engine
// underneath is a generic status set; surfaces decide which transitions to
// offer.
func (s *Session) Complete(ctx context.Context, date string) error {
	return s.SetStatus(ctx, date, models.StatusCompleted)
}

func (s *Session) Skip(ctx context.Context, date string) error {
	return s.SetStatus(ctx, date, models.StatusSkipped)
}

func (s *Session) Undo(ctx context.Context, date string) error {
	return s.SetStatus(ctx, date, models.StatusPending)
}

// SetStatus transitions the workout on the given date to status. The change
// is applied to the in-memory plan first and then persisted with a
// single-day patch; if persistence fails the whole aggregate is restored
// from the pre-mutation snapshot. Only one status mutation may be in flight
// per date.
func (s *Session) SetStatus(ctx context.Context, date, status string) error {
	switch status {
	case models.StatusPending, models.StatusCompleted, models.StatusSkipped:
	default:
		return fmt.Errorf("invalid workout status %q", status)
	}

	s.mu.Lock()
	if s.statusInFlight[date] {
		s.mu.Unlock()
		return ErrBusy
	}
	wi, _, day, ok := s.plan.FindDay(date)
	if !ok {
		s.mu.Unlock()
		return ErrDayNotFound
	}

	snapshot := s.plan.Clone()
	week := &s.plan.Weeks[wi]
	wasComplete := weekComplete(week)
	day.Status = status

	celebrate := status == models.StatusCompleted
	var dayCopy models.Day
	if celebrate {
		dayCopy = day.Clone()
	}
	fireWeek := celebrate && !wasComplete && weekComplete(week)
	var summary WeekSummary
	if fireWeek {
		summary = WeekSummary{
			WeekNumber:     week.WeekNumber,
			CompletedCount: week.CompletedCount(),
			PlannedCount:   week.PlannedCount(),
			Consistency:    models.WeeklyConsistency(week, s.now()),
		}
	}
	s.statusInFlight[date] = true
	planID := s.plan.ID
	s.mu.Unlock()

	// Hooks fire at apply time; a later rollback does not retract them.
	if celebrate {
		s.events.celebrate(dayCopy)
		s.events.requestNote(date)
	}
	if fireWeek {
		s.events.weekCompleted(summary)
	}

	err := s.store.UpdateDayStatus(ctx, planID, date, status)

	s.mu.Lock()
	delete(s.statusInFlight, date)
	if err != nil {
		s.plan = snapshot
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to save workout status for %s: %w", date, err)
	}
	return nil
}

// weekComplete reports whether every non-Rest day in the week is completed.
// Weeks with no planned days never count as complete.
func weekComplete(w *models.Week) bool {
	planned := w.PlannedCount()
	return planned > 0 && w.CompletedCount() == planned
}
