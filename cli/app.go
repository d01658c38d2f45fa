// ABOUTME: Shared command plumbing for config, client, and session wiring
// ABOUTME: Builds the schedule session and standard celebration output
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/harperreed/stride/calendar"
	"github.com/harperreed/stride/db"
	"github.com/harperreed/stride/models"
	"github.com/harperreed/stride/ourpr"
	"github.com/harperreed/stride/schedule"
)

// app bundles the pieces every command needs: client config, the OurPR
// client, and the local cache database.
type app struct {
	cfg      *ourpr.Config
	client   *ourpr.Client
	database *sql.DB
}

func newApp(database *sql.DB) (*app, error) {
	cfg, err := ourpr.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &app{
		cfg:      cfg,
		client:   ourpr.NewClient(cfg.Server),
		database: database,
	}, nil
}

// activePlanID resolves the plan commands operate on.
func (a *app) activePlanID() (string, error) {
	if a.cfg.ActivePlanID == "" {
		return "", fmt.Errorf("no active plan selected. Run 'stride plans' to list your plans, then 'stride plans --use <id>'")
	}
	return a.cfg.ActivePlanID, nil
}

// loadSession hydrates the active plan into a schedule session. The fetched
// plan is also cached locally for offline 'plan --cached' reads.
func (a *app) loadSession(ctx context.Context, events schedule.Events) (*schedule.Session, error) {
	planID, err := a.activePlanID()
	if err != nil {
		return nil, err
	}

	sess, err := schedule.Load(ctx, a.client, a.calendarSyncer(ctx), planID, events)
	if err != nil {
		return nil, err
	}

	if err := db.SavePlanSnapshot(a.database, sess.Plan(), sess.Now()); err != nil {
		log.Printf("Warning: failed to cache plan locally: %v", err)
	}

	return sess, nil
}

// calendarSyncer returns a Google Calendar pusher when a token is on disk,
// nil otherwise. Calendar commands surface the nil case as "not connected".
func (a *app) calendarSyncer(ctx context.Context) schedule.CalendarSyncer {
	if !calendar.Connected() {
		return nil
	}

	svc, err := calendar.NewService(ctx)
	if err != nil {
		log.Printf("Warning: stored Google token unusable: %v", err)
		return nil
	}

	return calendar.NewPusher(svc, a.client)
}

// record appends to the local activity log. Logging failures never fail the
// command that triggered them.
func (a *app) record(planID, date, action, detail string) {
	if err := db.LogActivity(a.database, planID, date, action, detail); err != nil {
		log.Printf("Warning: failed to record activity: %v", err)
	}
}

// celebrationEvents wires the standard CLI output for completion hooks.
func celebrationEvents() schedule.Events {
	return schedule.Events{
		OnCelebrate: func(day models.Day) {
			info := day.Type.Info()
			fmt.Printf("\n🎉 %s %s complete! %s\n", info.Emoji, day.Type, info.Motivation)
		},
		OnWeekCompleted: func(summary schedule.WeekSummary) {
			fmt.Printf("🏆 Week %d is in the books! %d/%d workouts done.\n",
				summary.WeekNumber, summary.CompletedCount, summary.PlannedCount)
		},
	}
}

// resolveDate picks the target date: the first positional argument, or
// today when none is given.
func resolveDate(args []string, now func() string) (string, error) {
	if len(args) == 0 {
		return now(), nil
	}

	date := args[0]
	if _, err := models.ParseDate(date); err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return date, nil
}

// friendlyError rewrites schedule and client sentinels into actionable
// messages; everything else passes through.
func friendlyError(err error) error {
	switch {
	case errors.Is(err, ourpr.ErrUnauthenticated):
		return fmt.Errorf("not logged in. Run 'stride login' first")
	case errors.Is(err, schedule.ErrDayNotFound):
		return fmt.Errorf("no workout scheduled for that date. Run 'stride plan' to see the schedule")
	case errors.Is(err, schedule.ErrShiftOutOfRange):
		return fmt.Errorf("that workout is already at the edge of its week")
	case errors.Is(err, schedule.ErrBusy):
		return fmt.Errorf("another change is still saving, try again in a moment")
	case errors.Is(err, schedule.ErrNoCalendar):
		return fmt.Errorf("Google Calendar is not connected. Run 'stride calendar connect' first")
	default:
		var unreachable *ourpr.UnreachableError
		if errors.As(err, &unreachable) {
			return fmt.Errorf("cannot reach the OurPR server: %w", err)
		}
		return err
	}
}

// stdinIsTerminal reports whether interactive prompts make sense.
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
