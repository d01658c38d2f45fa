// ABOUTME: Schedule reorder engine
// ABOUTME: Swaps adjacent workout payloads within a week and persists the whole plan
package schedule

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/stride/models"
)

// Direction is the way a workout shifts inside its week.
type Direction int

const (
	// Up moves a workout one slot earlier in the week.
	Up Direction = iota
	// Down moves a workout one slot later in the week.
	Down
)

func (d Direction) offset() int {
	if d == Up {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// ParseDirection maps the command-line spelling to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "up", "earlier":
		return Up, nil
	case "down", "later":
		return Down, nil
	}
	return Up, fmt.Errorf("invalid direction %q (want up or down)", s)
}

// ShiftWorkout exchanges the workout payload between the day at
// (weekIndex, dayIndex) and its neighbor in the given direction. Dates and
// day-of-week labels stay on their slots; only the payload moves. Shifting
// past the edge of the week fails with ErrShiftOutOfRange and leaves the
// plan untouched. The swap is applied optimistically and persisted with a
// whole-plan patch; on failure the pre-swap aggregate is restored.
func (s *Session) ShiftWorkout(ctx context.Context, weekIndex, dayIndex int, dir Direction) error {
	s.mu.Lock()
	if s.planPatchInFlight {
		s.mu.Unlock()
		return ErrBusy
	}
	if weekIndex < 0 || weekIndex >= len(s.plan.Weeks) {
		s.mu.Unlock()
		return ErrShiftOutOfRange
	}
	week := &s.plan.Weeks[weekIndex]
	target := dayIndex + dir.offset()
	if dayIndex < 0 || dayIndex >= len(week.Days) || target < 0 || target >= len(week.Days) {
		s.mu.Unlock()
		return ErrShiftOutOfRange
	}

	snapshot := s.plan.Clone()
	swapPayload(&week.Days[dayIndex], &week.Days[target])
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
		return fmt.Errorf("failed to save schedule change: %w", err)
	}
	return nil
}

// ShiftWorkoutByDate shifts the workout on the given date. Dates never move
// between slots, so the date resolves to the same indices before and after
// any swap.
func (s *Session) ShiftWorkoutByDate(ctx context.Context, date string, dir Direction) error {
	s.mu.Lock()
	wi, di, _, ok := s.plan.FindDay(date)
	s.mu.Unlock()
	if !ok {
		return ErrDayNotFound
	}
	return s.ShiftWorkout(ctx, wi, di, dir)
}

// swapPayload exchanges the mutable payload between two day slots. The
// calendar event reference belongs to the slot's date, so it stays put.
func swapPayload(a, b *models.Day) {
	a.Type, b.Type = b.Type, a.Type
	a.Description, b.Description = b.Description, a.Description
	a.Distance, b.Distance = b.Distance, a.Distance
	a.Duration, b.Duration = b.Duration, a.Duration
	a.Intensity, b.Intensity = b.Intensity, a.Intensity
	a.Notes, b.Notes = b.Notes, a.Notes
	a.Status, b.Status = b.Status, a.Status
}
