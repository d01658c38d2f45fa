// ABOUTME: Session owning the in-memory plan aggregate
// ABOUTME: Serializes mutations, applies optimistic updates, and rolls back on failure
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/harperreed/stride/models"
)

// Store is the slice of the plan store the session needs: hydrate, one-day
// status patch, whole-plan patch.
type Store interface {
	GetPlan(ctx context.Context, planID string) (*models.Plan, error)
	UpdateDayStatus(ctx context.Context, planID, date, status string) error
	UpdatePlan(ctx context.Context, plan *models.Plan) error
}

// CalendarSyncer pushes a plan's workouts to the external calendar and
// withdraws them again. It returns a human-readable result message and
// never reports per-day event identifiers; the session refetches the plan
// to pick those up.
type CalendarSyncer interface {
	SyncPlan(ctx context.Context, plan *models.Plan) (string, error)
	RemovePlan(ctx context.Context, plan *models.Plan) (string, error)
}

// Session holds one plan aggregate and runs every mutation against it. The
// aggregate is exclusively owned: surfaces read snapshots via Plan() and
// mutate only through session methods. The remote store stays the arbiter
// of truth; on any persistence failure the pre-mutation snapshot is
// restored wholesale.
type Session struct {
	store  Store
	cal    CalendarSyncer
	events Events
	now    func() time.Time

	mu                sync.Mutex
	plan              *models.Plan
	statusInFlight    map[string]bool
	planPatchInFlight bool
	calendarInFlight  bool
}

// NewSession wraps an already hydrated plan.
func NewSession(store Store, cal CalendarSyncer, plan *models.Plan, events Events) *Session {
	return &Session{
		store:          store,
		cal:            cal,
		events:         events,
		now:            time.Now,
		plan:           plan,
		statusInFlight: make(map[string]bool),
	}
}

// Load hydrates the plan from the store and wraps it in a session.
func Load(ctx context.Context, store Store, cal CalendarSyncer, planID string, events Events) (*Session, error) {
	plan, err := store.GetPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	return NewSession(store, cal, plan, events), nil
}

// Plan returns a deep-copy snapshot of the current aggregate. Snapshots are
// safe to render from while mutations proceed.
func (s *Session) Plan() *models.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.Clone()
}

// PlanID returns the identifier of the owned plan.
func (s *Session) PlanID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.ID
}

// Refresh refetches the authoritative plan and replaces the aggregate
// wholesale. Local state that was never persisted is discarded.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	planID := s.plan.ID
	s.mu.Unlock()

	refreshed, err := s.store.GetPlan(ctx, planID)
	if err != nil {
		return fmt.Errorf("failed to refresh plan: %w", err)
	}

	s.mu.Lock()
	s.plan = refreshed
	s.mu.Unlock()
	return nil
}

// Now returns the session clock reading. Tests swap the clock out.
func (s *Session) Now() time.Time {
	return s.now()
}
