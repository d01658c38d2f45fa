// ABOUTME: Plan listing, selection, and schedule rendering commands
// ABOUTME: Handles 'stride plans' and 'stride plan' including cached reads
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/harperreed/stride/db"
	"github.com/harperreed/stride/models"
	"github.com/harperreed/stride/ourpr"
	"github.com/harperreed/stride/schedule"
)

// PlansCommand lists the account's training plans, or sets the active one
// with --use.
func PlansCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("plans", flag.ExitOnError)
	use := fs.String("use", "", "Plan ID to set as the active plan")
	_ = fs.Parse(args)

	app, err := newApp(database)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if *use != "" {
		// Fetch first so a typo never becomes the active plan
		plan, err := app.client.GetPlan(ctx, *use)
		if err != nil {
			return friendlyError(err)
		}

		app.cfg.ActivePlanID = plan.ID
		if err := ourpr.SaveConfig(app.cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("✓ Active plan: %s (%s on %s)\n", plan.RaceName, plan.RaceDistance, plan.RaceDate)
		return nil
	}

	plans, err := app.client.ListPlans(ctx)
	if err != nil {
		return friendlyError(err)
	}

	if len(plans) == 0 {
		fmt.Println("No training plans yet. Generate one at https://ourpr.app first.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, " \tID\tRACE\tDISTANCE\tRACE DATE\tWEEKS")
	_, _ = fmt.Fprintln(w, " \t--\t----\t--------\t---------\t-----")

	for _, plan := range plans {
		marker := " "
		if plan.ID == app.cfg.ActivePlanID {
			marker = "→"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			marker, plan.ID, plan.RaceName, plan.RaceDistance, plan.RaceDate, plan.TotalWeeks)
	}

	_ = w.Flush()
	return nil
}

// PlanCommand renders the active plan's schedule. --cached renders the last
// fetched copy without touching the network.
func PlanCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	week := fs.Int("week", 0, "Show a single week (1-based)")
	cached := fs.Bool("cached", false, "Render the last cached copy without contacting the server")
	_ = fs.Parse(args)

	app, err := newApp(database)
	if err != nil {
		return err
	}

	if *cached {
		planID, err := app.activePlanID()
		if err != nil {
			return err
		}

		snapshot, err := db.LoadPlanSnapshot(app.database, planID)
		if err != nil {
			return fmt.Errorf("failed to read cached plan: %w", err)
		}
		if snapshot == nil {
			return fmt.Errorf("no cached copy of plan %s yet. Run 'stride plan' online once first", planID)
		}

		if err := renderPlan(os.Stdout, snapshot.Plan, time.Now(), *week); err != nil {
			return err
		}
		fmt.Printf("\n(cached %s)\n", snapshot.FetchedAt.Local().Format("2006-01-02 15:04"))
		return nil
	}

	sess, err := app.loadSession(context.Background(), schedule.Events{})
	if err != nil {
		return friendlyError(err)
	}

	return renderPlan(os.Stdout, sess.Plan(), sess.Now(), *week)
}

// renderPlan prints the schedule, optionally restricted to one week.
func renderPlan(out io.Writer, plan *models.Plan, now time.Time, weekFilter int) error {
	if weekFilter < 0 || weekFilter > len(plan.Weeks) {
		return fmt.Errorf("plan has weeks 1 to %d, not %d", len(plan.Weeks), weekFilter)
	}

	_, _ = fmt.Fprintf(out, "%s  (%s on %s)\n", plan.RaceName, plan.RaceDistance, plan.RaceDate)
	for _, note := range plan.Notes {
		_, _ = fmt.Fprintf(out, "💡 %s\n", note)
	}

	for wi := range plan.Weeks {
		week := &plan.Weeks[wi]
		if weekFilter != 0 && week.WeekNumber != weekFilter {
			continue
		}
		_, _ = fmt.Fprintln(out)
		renderWeek(out, week, now)
	}

	return nil
}

func renderWeek(out io.Writer, week *models.Week, now time.Time) {
	header := fmt.Sprintf("Week %d (%s to %s)", week.WeekNumber, week.StartDate, week.EndDate)
	switch week.State(now) {
	case models.WeekCurrent:
		header += "  ▶ this week"
	case models.WeekPast:
		header += fmt.Sprintf("  %d/%d done", week.CompletedCount(), week.PlannedCount())
	}
	if week.Mileage != "" {
		header += fmt.Sprintf("  (%s)", week.Mileage)
	}
	_, _ = fmt.Fprintln(out, header)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for di := range week.Days {
		day := &week.Days[di]

		today := " "
		if day.State(now) == models.DayToday {
			today = "→"
		}

		_, _ = fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t%s\n",
			today, dayMark(day, now), day.DayOfWeek, day.Date, day.Type, dayDetails(day))
	}
	_ = w.Flush()

	if pct := models.WeeklyConsistency(week, now); pct != nil {
		_, _ = fmt.Fprintf(out, "  consistency: %d%%\n", *pct)
	}
}

// dayMark picks the status indicator for a schedule row.
func dayMark(day *models.Day, now time.Time) string {
	switch {
	case day.IsRest():
		return "😴"
	case day.Status == models.StatusCompleted:
		return "✅"
	case day.Status == models.StatusSkipped:
		return "⏭️"
	case day.State(now) == models.DayPast:
		return "⚠️"
	default:
		return "▫️"
	}
}

// dayDetails joins the description with compact metric and note markers.
func dayDetails(day *models.Day) string {
	details := day.Description

	var metrics []string
	if day.Distance != "" {
		metrics = append(metrics, day.Distance)
	}
	if day.Duration != "" {
		metrics = append(metrics, day.Duration)
	}
	if day.Intensity != "" {
		metrics = append(metrics, day.Intensity)
	}
	if len(metrics) > 0 {
		details += fmt.Sprintf(" [%s]", strings.Join(metrics, ", "))
	}

	if len(day.Notes) > 0 {
		details += fmt.Sprintf(" 📝%d", len(day.Notes))
	}
	if day.Synced() {
		details += " 📅"
	}

	return details
}
