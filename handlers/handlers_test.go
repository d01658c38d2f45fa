// ABOUTME: Shared fixtures and fakes for MCP handler tests
// ABOUTME: In-memory plan store and calendar syncer doubles
package handlers

import (
	"context"
	"fmt"
	"sync"

	"github.com/harperreed/stride/models"
	"github.com/harperreed/stride/schedule"
)

type fakeStore struct {
	mu          sync.Mutex
	plan        *models.Plan
	statusCalls int
	planCalls   int
}

func (f *fakeStore) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if planID != f.plan.ID {
		return nil, fmt.Errorf("no plan %s", planID)
	}
	return f.plan.Clone(), nil
}

func (f *fakeStore) UpdateDayStatus(ctx context.Context, planID, date, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if _, _, day, ok := f.plan.FindDay(date); ok {
		day.Status = status
	}
	return nil
}

func (f *fakeStore) UpdatePlan(ctx context.Context, plan *models.Plan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.planCalls++
	f.plan = plan.Clone()
	return nil
}

// fakeSyncer stamps event IDs straight onto the store's copy, standing in
// for the pusher's insert-then-patch flow.
type fakeSyncer struct {
	store *fakeStore
}

func (f *fakeSyncer) SyncPlan(ctx context.Context, plan *models.Plan) (string, error) {
	work := plan.Clone()
	count := 0
	for wi := range work.Weeks {
		for di := range work.Weeks[wi].Days {
			day := &work.Weeks[wi].Days[di]
			if day.IsRest() || day.Synced() {
				continue
			}
			id := fmt.Sprintf("evt-%d", count)
			day.GoogleEventID = &id
			count++
		}
	}
	if err := f.store.UpdatePlan(ctx, work); err != nil {
		return "", err
	}
	return fmt.Sprintf("Plan sync process completed. %d events added to calendar.", count), nil
}

func (f *fakeSyncer) RemovePlan(ctx context.Context, plan *models.Plan) (string, error) {
	work := plan.Clone()
	count := 0
	for wi := range work.Weeks {
		for di := range work.Weeks[wi].Days {
			day := &work.Weeks[wi].Days[di]
			if day.Synced() {
				day.GoogleEventID = nil
				count++
			}
		}
	}
	if err := f.store.UpdatePlan(ctx, work); err != nil {
		return "", err
	}
	return fmt.Sprintf("Removed %d events from calendar.", count), nil
}

func handlerFixture() *models.Plan {
	return &models.Plan{
		ID:           "plan-1",
		RaceName:     "Chicago Half",
		RaceDistance: "Half Marathon",
		RaceDate:     "2026-03-15",
		TotalWeeks:   2,
		Weeks: []models.Week{
			{
				WeekNumber: 1,
				StartDate:  "2026-03-02",
				EndDate:    "2026-03-08",
				Days: []models.Day{
					{Date: "2026-03-02", DayOfWeek: "Monday", Type: models.WorkoutEasyRun, Description: "5km conversational", Status: models.StatusPending},
					{Date: "2026-03-03", DayOfWeek: "Tuesday", Type: models.WorkoutTempoRun, Description: "3km at threshold", Status: models.StatusPending},
					{Date: "2026-03-04", DayOfWeek: "Wednesday", Type: models.WorkoutRest, Description: "Rest day", Status: models.StatusPending},
					{Date: "2026-03-05", DayOfWeek: "Thursday", Type: models.WorkoutIntervals, Description: "6x800m", Status: models.StatusPending},
					{Date: "2026-03-06", DayOfWeek: "Friday", Type: models.WorkoutRest, Description: "Rest day", Status: models.StatusPending},
					{Date: "2026-03-07", DayOfWeek: "Saturday", Type: models.WorkoutStrength, Description: "Core and hips", Status: models.StatusPending},
					{Date: "2026-03-08", DayOfWeek: "Sunday", Type: models.WorkoutLongRun, Description: "14km steady", Status: models.StatusPending},
				},
			},
			{
				WeekNumber: 2,
				StartDate:  "2026-03-09",
				EndDate:    "2026-03-15",
				Days: []models.Day{
					{Date: "2026-03-09", DayOfWeek: "Monday", Type: models.WorkoutEasyRun, Description: "Shakeout", Status: models.StatusPending},
					{Date: "2026-03-10", DayOfWeek: "Tuesday", Type: models.WorkoutSpeedWork, Description: "Strides", Status: models.StatusPending},
					{Date: "2026-03-11", DayOfWeek: "Wednesday", Type: models.WorkoutRest, Description: "Rest day", Status: models.StatusPending},
					{Date: "2026-03-12", DayOfWeek: "Thursday", Type: models.WorkoutTempoRun, Description: "Last tempo", Status: models.StatusPending},
					{Date: "2026-03-13", DayOfWeek: "Friday", Type: models.WorkoutRest, Description: "Rest day", Status: models.StatusPending},
					{Date: "2026-03-14", DayOfWeek: "Saturday", Type: models.WorkoutEasyRun, Description: "Easy 3km", Status: models.StatusPending},
					{Date: "2026-03-15", DayOfWeek: "Sunday", Type: models.WorkoutRacePace, Description: "Race day!", Status: models.StatusPending},
				},
			},
		},
	}
}

// newTestHandlers builds handlers over an in-memory store, optionally with
// the fake calendar syncer.
func newTestHandlers(withCalendar bool) (*ScheduleHandlers, *fakeStore) {
	store := &fakeStore{plan: handlerFixture()}

	var cal schedule.CalendarSyncer
	if withCalendar {
		cal = &fakeSyncer{store: store}
	}

	sess := schedule.NewSession(store, cal, store.plan.Clone(), schedule.Events{})
	return NewScheduleHandlers(sess, nil, nil), store
}
