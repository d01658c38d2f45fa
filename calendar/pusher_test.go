// ABOUTME: Tests for the calendar pusher against a stubbed Google Calendar API
// ABOUTME: Covers skip rules, partial failures, ID persistence, and removal semantics
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/harperreed/stride/models"
)

// calendarStub emulates the two Google Calendar endpoints the pusher uses.
type calendarStub struct {
	mu           sync.Mutex
	inserts      []map[string]any
	deletes      []string
	nextID       int
	failDates    map[string]bool
	deleteStatus map[string]int
}

func (s *calendarStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/calendars/primary/events":
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			date := ""
			if start, ok := body["start"].(map[string]any); ok {
				date, _ = start["date"].(string)
			}

			s.mu.Lock()
			s.inserts = append(s.inserts, body)
			s.nextID++
			id := fmt.Sprintf("evt-%d", s.nextID)
			fail := s.failDates[date]
			s.mu.Unlock()

			if fail {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error": {"code": 500, "message": "backend error"}}`))
				return
			}

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"id": id})

		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/calendars/primary/events/"):
			id := strings.TrimPrefix(r.URL.Path, "/calendars/primary/events/")

			s.mu.Lock()
			s.deletes = append(s.deletes, id)
			status := s.deleteStatus[id]
			s.mu.Unlock()

			if status == 0 {
				status = http.StatusNoContent
			}
			if status >= 400 {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"error": {"code": ` + strconv.Itoa(status) + `, "message": "nope"}}`))
				return
			}
			w.WriteHeader(status)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

type fakePlanWriter struct {
	mu    sync.Mutex
	err   error
	plans []*models.Plan
}

func (f *fakePlanWriter) UpdatePlan(_ context.Context, plan *models.Plan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plans = append(f.plans, plan)
	return f.err
}

func newTestPusher(t *testing.T, stub *calendarStub, store *fakePlanWriter) *Pusher {
	t.Helper()
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	svc, err := calendar.NewService(context.Background(),
		option.WithEndpoint(server.URL),
		option.WithoutAuthentication())
	require.NoError(t, err)

	return NewPusher(svc, store)
}

// pushPlan has one week: four plannable days, two rest days, and one day
// already carrying an event ID.
func pushPlan() *models.Plan {
	newDay := func(offset int, label string, wt models.WorkoutType) models.Day {
		return models.Day{
			Date:        fmt.Sprintf("2026-03-%02d", 2+offset),
			DayOfWeek:   label,
			Type:        wt,
			Description: string(wt) + " session",
			Status:      models.StatusPending,
		}
	}

	plan := &models.Plan{
		ID:           "plan-123",
		RaceName:     "Chicago Half",
		RaceDistance: "Half Marathon",
		RaceDate:     "2026-03-15",
		TotalWeeks:   1,
		Weeks: []models.Week{{
			WeekNumber: 1,
			StartDate:  "2026-03-02",
			EndDate:    "2026-03-08",
			Days: []models.Day{
				newDay(0, "Monday", models.WorkoutEasyRun),
				newDay(1, "Tuesday", models.WorkoutTempoRun),
				newDay(2, "Wednesday", models.WorkoutRest),
				newDay(3, "Thursday", models.WorkoutIntervals),
				newDay(4, "Friday", models.WorkoutRest),
				newDay(5, "Saturday", models.WorkoutStrength),
				newDay(6, "Sunday", models.WorkoutLongRun),
			},
		}},
	}

	existing := "evt-existing"
	plan.Weeks[0].Days[3].GoogleEventID = &existing
	return plan
}

func TestSyncPlanCreatesEventsAndSavesIDs(t *testing.T) {
	stub := &calendarStub{}
	store := &fakePlanWriter{}
	pusher := newTestPusher(t, stub, store)
	plan := pushPlan()

	msg, err := pusher.SyncPlan(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, "Plan sync process completed. 4 events added to calendar.", msg)

	// Rest days and the already-synced Thursday are skipped.
	assert.Len(t, stub.inserts, 4)

	require.Len(t, store.plans, 1)
	saved := store.plans[0]
	days := saved.Weeks[0].Days
	for _, idx := range []int{0, 1, 5, 6} {
		require.NotNil(t, days[idx].GoogleEventID, "day %d should have an event ID", idx)
	}
	assert.Equal(t, "evt-existing", *days[3].GoogleEventID)
	assert.Nil(t, days[2].GoogleEventID)
	assert.Nil(t, days[4].GoogleEventID)

	// The caller's aggregate is never touched; the session refetches.
	assert.Nil(t, plan.Weeks[0].Days[0].GoogleEventID)
}

func TestSyncPlanEventWireFormat(t *testing.T) {
	stub := &calendarStub{}
	store := &fakePlanWriter{}
	pusher := newTestPusher(t, stub, store)

	plan := pushPlan()
	plan.Weeks[0].Days[1].Distance = "4 miles"
	plan.Weeks[0].Days[1].Notes = []string{"Bring gels"}

	_, err := pusher.SyncPlan(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, stub.inserts, 4)

	body := stub.inserts[1] // Tuesday tempo run
	assert.Equal(t, "OurPR: Chicago Half - Tempo Run", body["summary"])

	start, ok := body["start"].(map[string]any)
	require.True(t, ok)
	end, ok := body["end"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2026-03-03", start["date"])
	assert.Equal(t, "2026-03-03", end["date"])

	reminders, ok := body["reminders"].(map[string]any)
	require.True(t, ok)
	useDefault, present := reminders["useDefault"]
	require.True(t, present, "useDefault must be sent even though it is false")
	assert.Equal(t, false, useDefault)

	overrides, ok := reminders["overrides"].([]any)
	require.True(t, ok)
	require.Len(t, overrides, 1)
	override := overrides[0].(map[string]any)
	assert.Equal(t, "popup", override["method"])
	assert.Equal(t, float64(960), override["minutes"])

	desc, ok := body["description"].(string)
	require.True(t, ok)
	assert.Contains(t, desc, "💨 <b>Workout Type:</b> Tempo Run")
	assert.Contains(t, desc, "🗓️ <b>Plan Week:</b> 1, <b>Day:</b> Tuesday")
	assert.Contains(t, desc, "📏 <b>Distance:</b> 4 miles")
	assert.Contains(t, desc, "<br>📝 <b>Notes:</b><ul><li>Bring gels</li></ul>")
}

func TestSyncPlanPartialFailureContinues(t *testing.T) {
	stub := &calendarStub{failDates: map[string]bool{"2026-03-03": true}}
	store := &fakePlanWriter{}
	pusher := newTestPusher(t, stub, store)

	msg, err := pusher.SyncPlan(context.Background(), pushPlan())
	require.NoError(t, err)
	assert.Equal(t, "Plan sync process completed. 3 events added to calendar.", msg)

	require.Len(t, store.plans, 1)
	days := store.plans[0].Weeks[0].Days
	assert.Nil(t, days[1].GoogleEventID, "failed Tuesday keeps no ID")
	assert.NotNil(t, days[0].GoogleEventID)
	assert.NotNil(t, days[5].GoogleEventID)
	assert.NotNil(t, days[6].GoogleEventID)
}

func TestSyncPlanTotalFailure(t *testing.T) {
	stub := &calendarStub{failDates: map[string]bool{
		"2026-03-02": true, "2026-03-03": true, "2026-03-07": true, "2026-03-08": true,
	}}
	store := &fakePlanWriter{}
	pusher := newTestPusher(t, stub, store)

	_, err := pusher.SyncPlan(context.Background(), pushPlan())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add calendar events")
	assert.Empty(t, store.plans, "nothing to persist when no events were created")
}

func TestSyncPlanNothingToDo(t *testing.T) {
	stub := &calendarStub{}
	store := &fakePlanWriter{}
	pusher := newTestPusher(t, stub, store)

	plan := pushPlan()
	markAllSynced(plan)

	msg, err := pusher.SyncPlan(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, "Plan sync process completed. 0 events added to calendar.", msg)
	assert.Empty(t, stub.inserts)
	assert.Empty(t, store.plans)
}

func TestSyncPlanSaveFailureStillReportsEvents(t *testing.T) {
	stub := &calendarStub{}
	store := &fakePlanWriter{err: assert.AnError}
	pusher := newTestPusher(t, stub, store)

	msg, err := pusher.SyncPlan(context.Background(), pushPlan())
	require.NoError(t, err, "events were created; the ID save failure is logged, not fatal")
	assert.Equal(t, "Plan sync process completed. 4 events added to calendar.", msg)
}

func markAllSynced(plan *models.Plan) {
	n := 0
	for wi := range plan.Weeks {
		for di := range plan.Weeks[wi].Days {
			day := &plan.Weeks[wi].Days[di]
			if day.IsRest() || day.Synced() {
				continue
			}
			n++
			id := fmt.Sprintf("evt-%c", 'a'+rune(n-1))
			day.GoogleEventID = &id
		}
	}
}

func TestRemovePlanDeletesAndClearsIDs(t *testing.T) {
	stub := &calendarStub{}
	store := &fakePlanWriter{}
	pusher := newTestPusher(t, stub, store)

	plan := pushPlan()
	markAllSynced(plan)

	msg, err := pusher.RemovePlan(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, "Removed 5 events from calendar.", msg)

	// Four stamped by markAllSynced plus Thursday's pre-existing ID.
	assert.Len(t, stub.deletes, 5)
	assert.Contains(t, stub.deletes, "evt-existing")

	require.Len(t, store.plans, 1)
	for _, day := range store.plans[0].Weeks[0].Days {
		assert.Nil(t, day.GoogleEventID)
	}

	// Caller's aggregate untouched.
	assert.True(t, plan.SyncedToCalendar())
}

func TestRemovePlanTreatsGoneAsRemoved(t *testing.T) {
	stub := &calendarStub{deleteStatus: map[string]int{"evt-a": 404, "evt-b": 410}}
	store := &fakePlanWriter{}
	pusher := newTestPusher(t, stub, store)

	plan := pushPlan()
	markAllSynced(plan)

	msg, err := pusher.RemovePlan(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, "Removed 5 events from calendar.", msg)

	require.Len(t, store.plans, 1)
	assert.False(t, store.plans[0].SyncedToCalendar())
}

func TestRemovePlanKeepsFailedIDs(t *testing.T) {
	stub := &calendarStub{deleteStatus: map[string]int{"evt-existing": 500}}
	store := &fakePlanWriter{}
	pusher := newTestPusher(t, stub, store)

	plan := pushPlan()
	markAllSynced(plan)

	msg, err := pusher.RemovePlan(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, "Removed 4 events from calendar.", msg)

	require.Len(t, store.plans, 1)
	days := store.plans[0].Weeks[0].Days
	require.NotNil(t, days[3].GoogleEventID, "failed deletion keeps its ID for a retry")
	assert.Equal(t, "evt-existing", *days[3].GoogleEventID)
}

func TestRemovePlanTotalFailure(t *testing.T) {
	stub := &calendarStub{deleteStatus: map[string]int{
		"evt-existing": 500, "evt-a": 500, "evt-b": 500, "evt-c": 500, "evt-d": 500,
	}}
	store := &fakePlanWriter{}
	pusher := newTestPusher(t, stub, store)

	plan := pushPlan()
	markAllSynced(plan)

	_, err := pusher.RemovePlan(context.Background(), plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to remove calendar events")
	assert.Empty(t, store.plans)
}
