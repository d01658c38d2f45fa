// ABOUTME: Pushes training plan workouts to Google Calendar and removes them
// ABOUTME: Persists acquired event IDs through the plan store, never through the caller
package calendar

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"github.com/harperreed/stride/models"
)

const primaryCalendar = "primary"

// PlanWriter persists a plan after event IDs change. The ourpr client
// satisfies this.
type PlanWriter interface {
	UpdatePlan(ctx context.Context, plan *models.Plan) error
}

// Pusher creates and deletes calendar events for a plan's workouts. It
// always works on a clone of the plan it is given; the owning session
// refetches the authoritative plan afterwards rather than trusting any
// locally assembled state.
type Pusher struct {
	svc     *calendar.Service
	store   PlanWriter
	planURL string
}

// NewPusher wires a calendar service and a plan store together.
func NewPusher(svc *calendar.Service, store PlanWriter) *Pusher {
	return &Pusher{
		svc:     svc,
		store:   store,
		planURL: DefaultPlanURL,
	}
}

// SyncPlan creates one all-day event per workout day. Rest days and days
// that already carry an event ID are skipped. Individual insert failures
// are logged and the rest proceed; the acquired IDs are saved through the
// plan store in a single write at the end.
func (p *Pusher) SyncPlan(ctx context.Context, plan *models.Plan) (string, error) {
	if p.svc == nil {
		return "", fmt.Errorf("calendar service not connected")
	}

	work := plan.Clone()
	added := 0
	attempted := 0
	var firstErr error

	for wi := range work.Weeks {
		week := &work.Weeks[wi]
		for di := range week.Days {
			day := &week.Days[di]
			if day.Synced() || day.IsRest() {
				continue
			}
			if _, err := models.ParseDate(day.Date); err != nil {
				log.Printf("Warning: skipping workout with invalid date %q: %v", day.Date, err)
				continue
			}

			attempted++
			event := buildEvent(work.RaceName, week.WeekNumber, day, p.planURL)
			created, err := p.svc.Events.Insert(primaryCalendar, event).Context(ctx).Do()
			if err != nil {
				log.Printf("Warning: failed to create calendar event for %s: %v", day.Date, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			if created.Id == "" {
				log.Printf("Warning: calendar returned no event ID for %s", day.Date)
				continue
			}

			id := created.Id
			day.GoogleEventID = &id
			added++
		}
	}

	if attempted > 0 && added == 0 {
		return "", fmt.Errorf("failed to add calendar events: %w", firstErr)
	}

	if added > 0 {
		if err := p.store.UpdatePlan(ctx, work); err != nil {
			// The events exist either way; the next sync will see the
			// plan without IDs and may create duplicates.
			log.Printf("Warning: calendar events created but saving event IDs failed: %v", err)
		}
	}

	return fmt.Sprintf("Plan sync process completed. %d events added to calendar.", added), nil
}

// RemovePlan deletes every synced day's event. An event that is already
// gone (404 or 410) counts as removed. Failed deletions keep their ID in
// place so a later removal can retry; cleared IDs are saved through the
// plan store in a single write at the end.
func (p *Pusher) RemovePlan(ctx context.Context, plan *models.Plan) (string, error) {
	if p.svc == nil {
		return "", fmt.Errorf("calendar service not connected")
	}

	work := plan.Clone()
	removed := 0
	failed := 0
	var firstErr error

	for wi := range work.Weeks {
		for di := range work.Weeks[wi].Days {
			day := &work.Weeks[wi].Days[di]
			if !day.Synced() {
				continue
			}

			err := p.svc.Events.Delete(primaryCalendar, *day.GoogleEventID).Context(ctx).Do()
			if err != nil && !eventGone(err) {
				log.Printf("Warning: failed to delete event %s for %s: %v", *day.GoogleEventID, day.Date, err)
				failed++
				if firstErr == nil {
					firstErr = err
				}
				continue
			}

			day.GoogleEventID = nil
			removed++
		}
	}

	if removed == 0 && failed > 0 {
		return "", fmt.Errorf("failed to remove calendar events: %w", firstErr)
	}

	if removed > 0 {
		if err := p.store.UpdatePlan(ctx, work); err != nil {
			log.Printf("Warning: calendar events removed but clearing event IDs failed: %v", err)
		}
	}

	return fmt.Sprintf("Removed %d events from calendar.", removed), nil
}

// eventGone reports whether the API said the event no longer exists.
func eventGone(err error) bool {
	if apiErr, ok := err.(*googleapi.Error); ok {
		return apiErr.Code == 404 || apiErr.Code == 410
	}
	return false
}
