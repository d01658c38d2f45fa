// ABOUTME: Plan synchronization controller
// ABOUTME: Drives calendar push/remove and refetches the plan instead of guessing event IDs
package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/stride/models"
)

// ErrNoCalendar is returned when a session was built without a calendar
// syncer.
var ErrNoCalendar = errors.New("calendar is not configured")

// SyncedToCalendar reports whether any day currently carries a calendar
// event reference. Recomputed from the aggregate on every call, never
// cached.
func (s *Session) SyncedToCalendar() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.SyncedToCalendar()
}

// SyncToCalendar pushes the plan's workouts to the external calendar. The
// aggregate is never mutated optimistically here: event identifiers are
// owned by the plan store, so on success the authoritative plan is
// refetched and swapped in wholesale. Returns the pusher's summary message.
func (s *Session) SyncToCalendar(ctx context.Context) (string, error) {
	return s.runCalendarOp(ctx, func(ctx context.Context, plan *models.Plan) (string, error) {
		return s.cal.SyncPlan(ctx, plan)
	})
}

// RemoveFromCalendar withdraws the plan's workouts from the external
// calendar. Event references are cleared by the refetch, not locally.
func (s *Session) RemoveFromCalendar(ctx context.Context) (string, error) {
	return s.runCalendarOp(ctx, func(ctx context.Context, plan *models.Plan) (string, error) {
		return s.cal.RemovePlan(ctx, plan)
	})
}

// runCalendarOp serializes sync and removal against each other. Status and
// reorder mutations keep their own guards and proceed independently.
func (s *Session) runCalendarOp(ctx context.Context, op func(context.Context, *models.Plan) (string, error)) (string, error) {
	if s.cal == nil {
		return "", ErrNoCalendar
	}

	s.mu.Lock()
	if s.calendarInFlight {
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.calendarInFlight = true
	planCopy := s.plan.Clone()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.calendarInFlight = false
		s.mu.Unlock()
	}()

	msg, err := op(ctx, planCopy)
	if err != nil {
		return "", err
	}

	refreshed, err := s.store.GetPlan(ctx, planCopy.ID)
	if err != nil {
		return msg, fmt.Errorf("calendar updated but plan refresh failed: %w", err)
	}

	s.mu.Lock()
	s.plan = refreshed
	s.mu.Unlock()
	return msg, nil
}
