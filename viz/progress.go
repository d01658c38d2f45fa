// ABOUTME: Progress report assembly and ASCII rendering
// ABOUTME: Shared by the progress command, web dashboard, and MCP surface
package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/stride/models"
)

// WeekProgress is one week's row in the progress report.
type WeekProgress struct {
	WeekNumber     int
	StartDate      string
	EndDate        string
	State          models.WeekState
	CompletedCount int
	PlannedCount   int
	Consistency    *int
}

// ProgressReport is the assembled progress view for one plan. Overall is
// nil until at least one non-Rest day has elapsed.
type ProgressReport struct {
	PlanID      string
	RaceName    string
	RaceDate    string
	TotalWeeks  int
	Weeks       []WeekProgress
	Overall     *int
	CurrentWeek int // 1-based week number, 0 when no week is current
	DaysToRace  int // negative once the race date has passed
}

// BuildProgressReport computes the full report from a plan. The plan is
// read only; percentages come from the same rules the schedule session
// reports after each status change.
func BuildProgressReport(plan *models.Plan, now time.Time) *ProgressReport {
	report := &ProgressReport{
		PlanID:     plan.ID,
		RaceName:   plan.RaceName,
		RaceDate:   plan.RaceDate,
		TotalWeeks: plan.TotalWeeks,
	}

	for wi := range plan.Weeks {
		week := &plan.Weeks[wi]
		state := week.State(now)
		if state == models.WeekCurrent {
			report.CurrentWeek = week.WeekNumber
		}
		report.Weeks = append(report.Weeks, WeekProgress{
			WeekNumber:     week.WeekNumber,
			StartDate:      week.StartDate,
			EndDate:        week.EndDate,
			State:          state,
			CompletedCount: week.CompletedCount(),
			PlannedCount:   week.PlannedCount(),
			Consistency:    models.WeeklyConsistency(week, now),
		})
	}

	report.Overall = models.OverallAdherence(plan, now)

	if race, err := models.ParseDate(plan.RaceDate); err == nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		report.DaysToRace = int(race.Sub(today).Hours() / 24)
	}

	return report
}

// RenderProgress formats the report for the terminal.
func RenderProgress(report *ProgressReport) string {
	var out strings.Builder

	// Header
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString(fmt.Sprintf("  %s\n", report.RaceName))
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	switch {
	case report.DaysToRace > 1:
		out.WriteString(fmt.Sprintf("🏁 Race day: %s (%d days to go)\n\n", report.RaceDate, report.DaysToRace))
	case report.DaysToRace == 1:
		out.WriteString(fmt.Sprintf("🏁 Race day: %s (tomorrow!)\n\n", report.RaceDate))
	case report.DaysToRace == 0:
		out.WriteString("🏁 Race day is TODAY. Go get it!\n\n")
	default:
		out.WriteString(fmt.Sprintf("🏁 Race day: %s (passed)\n\n", report.RaceDate))
	}

	// Per-week consistency
	out.WriteString("WEEKLY CONSISTENCY\n")
	for _, week := range report.Weeks {
		renderWeekRow(&out, week)
	}
	out.WriteString("\n")

	// Overall adherence
	out.WriteString("OVERALL ADHERENCE\n")
	if report.Overall != nil {
		out.WriteString(fmt.Sprintf("  %s %3d%%\n", progressBar(*report.Overall), *report.Overall))
	} else {
		out.WriteString("  No workouts measurable yet. Check back after your first training day.\n")
	}

	return out.String()
}

func renderWeekRow(out *strings.Builder, week WeekProgress) {
	marker := " "
	if week.State == models.WeekCurrent {
		marker = "▶"
	}

	label := fmt.Sprintf("Week %d", week.WeekNumber)

	if week.Consistency == nil {
		out.WriteString(fmt.Sprintf("  %s %-8s ░░░░░░░░░░   --  (%d planned)\n",
			marker, label, week.PlannedCount))
		return
	}

	out.WriteString(fmt.Sprintf("  %s %-8s %s %3d%%  (%d/%d done)\n",
		marker, label, progressBar(*week.Consistency), *week.Consistency,
		week.CompletedCount, week.PlannedCount))
}

// progressBar renders a percentage as a 10-block bar.
func progressBar(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
