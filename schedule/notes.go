// ABOUTME: Note attachment flow
// ABOUTME: Appends a free-text note to a workout and persists the whole plan
package schedule

import (
	"context"
	"fmt"
	"strings"
)

// AttachNote appends a free-text note to the workout on the given date.
// Notes ride on the whole-plan patch, so this shares the reorder engine's
// in-flight guard. Blank notes are rejected before any mutation.
func (s *Session) AttachNote(ctx context.Context, date, text string) error {
	note := strings.TrimSpace(text)
	if note == "" {
		return fmt.Errorf("note text is empty")
	}

	s.mu.Lock()
	if s.planPatchInFlight {
		s.mu.Unlock()
		return ErrBusy
	}
	_, _, day, ok := s.plan.FindDay(date)
	if !ok {
		s.mu.Unlock()
		return ErrDayNotFound
	}

	snapshot := s.plan.Clone()
	day.Notes = append(day.Notes, note)
	s.planPatchInFlight = true
	planCopy := s.plan.Clone()
	s.mu.Unlock()

	err := s.store.UpdatePlan(ctx, planCopy)

	s.mu.Lock()
	s.planPatchInFlight = false
	if err != nil {
		s.plan = snapshot
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to save note for %s: %w", date, err)
	}
	return nil
}
