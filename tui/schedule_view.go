// ABOUTME: Main schedule browser view
// ABOUTME: Week-by-week workout table with status, shift, and calendar keys
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/stride/models"
	"github.com/harperreed/stride/schedule"
	"github.com/harperreed/stride/viz"
)

func (m Model) renderScheduleView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("🏃 " + m.plan.RaceName))
	s.WriteString("\n")
	s.WriteString(subtitleStyle.Render(m.raceLine()))
	s.WriteString("\n\n")

	if len(m.plan.Weeks) == 0 {
		s.WriteString("No training weeks in this plan.\n")
		s.WriteString(m.renderScheduleHelp())
		return s.String()
	}

	s.WriteString(m.renderWeekHeader())
	s.WriteString("\n\n")
	s.WriteString(m.renderWeekTable())
	s.WriteString("\n")
	s.WriteString(m.renderFeedback())
	s.WriteString(m.renderScheduleHelp())

	return s.String()
}

func (m Model) raceLine() string {
	report := viz.BuildProgressReport(m.plan, m.now)
	base := fmt.Sprintf("%s on %s", m.plan.RaceDistance, m.plan.RaceDate)
	switch {
	case report.DaysToRace > 1:
		return fmt.Sprintf("%s · %d days to go", base, report.DaysToRace)
	case report.DaysToRace == 1:
		return base + " · tomorrow!"
	case report.DaysToRace == 0:
		return base + " · race day is TODAY"
	default:
		return base
	}
}

func (m Model) renderWeekHeader() string {
	week := m.currentWeek()
	header := fmt.Sprintf("Week %d of %d · %s to %s",
		week.WeekNumber, len(m.plan.Weeks), week.StartDate, week.EndDate)
	if week.Mileage != "" {
		header += " · " + week.Mileage
	}

	switch week.State(m.now) {
	case models.WeekCurrent:
		header += " · ▶ this week"
	case models.WeekPast:
		if planned := week.PlannedCount(); planned > 0 {
			header += fmt.Sprintf(" · %d/%d done", week.CompletedCount(), planned)
		}
	}

	return weekHeaderStyle.Render(header)
}

func (m Model) renderWeekTable() string {
	week := m.currentWeek()

	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Day", Width: 10},
		{Title: "Date", Width: 11},
		{Title: "Workout", Width: 16},
		{Title: "Details", Width: 36},
		{Title: "Status", Width: 13},
	}

	var rows []table.Row
	for di := range week.Days {
		day := &week.Days[di]
		marker := ""
		if day.State(m.now) == models.DayToday {
			marker = "▶"
		}
		rows = append(rows, table.Row{
			marker,
			day.DayOfWeek,
			day.Date,
			fmt.Sprintf("%s %s", day.Type.Info().Emoji, day.Type),
			dayDetailsCell(day),
			dayStatusCell(day, m.now),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+1),
	)

	if m.selectedDay < len(rows) {
		t.SetCursor(m.selectedDay)
	}

	return t.View()
}

func dayDetailsCell(day *models.Day) string {
	cell := day.Description
	if n := len(day.Notes); n > 0 {
		cell += fmt.Sprintf(" 📝%d", n)
	}
	if day.Synced() {
		cell += " 📅"
	}
	return cell
}

func dayStatusCell(day *models.Day, now time.Time) string {
	switch {
	case day.IsRest():
		return "😴 rest"
	case day.Status == models.StatusCompleted:
		return "✅ completed"
	case day.Status == models.StatusSkipped:
		return "⏭️ skipped"
	case day.State(now) == models.DayPast:
		return "⚠️ missed"
	default:
		return "▫️ upcoming"
	}
}

// renderFeedback shows the in-flight indicator and the last few activity
// messages under the table.
func (m Model) renderFeedback() string {
	var s strings.Builder

	if m.busy {
		s.WriteString(savingStyle.Render("⟳ Saving..."))
		s.WriteString("\n")
	}

	start := 0
	if len(m.messages) > 3 {
		start = len(m.messages) - 3
	}
	for _, line := range m.messages[start:] {
		s.WriteString(messageStyle.Render(line))
		s.WriteString("\n")
	}

	return s.String()
}

func (m Model) renderScheduleHelp() string {
	actions := []string{
		"c: Complete",
		"s: Skip",
		"u: Undo",
		"K/J: Move workout",
		"n: Note",
		"g: Sync calendar",
		"G: Unsync",
	}
	nav := []string{
		"↑/↓: Day",
		"←/→: Week",
		"t: Today",
		"Enter: Details",
		"p: Progress",
		"r: Refresh",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(actions, " • ") + "\n" + strings.Join(nav, " • "))
}

func (m Model) handleScheduleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selectedDay > 0 {
			m.selectedDay--
		}
	case "down", "j":
		if week := m.currentWeek(); week != nil && m.selectedDay < len(week.Days)-1 {
			m.selectedDay++
		}
	case "left", "h":
		if m.weekIndex > 0 {
			m.weekIndex--
			m.selectedDay = 0
		}
	case "right", "l":
		if m.weekIndex < len(m.plan.Weeks)-1 {
			m.weekIndex++
			m.selectedDay = 0
		}
	case "t":
		m.weekIndex, m.selectedDay = locateToday(m.plan, m.now)
	case "enter":
		if m.selectedWorkout() != nil {
			m.viewMode = ViewDay
		}
	case "c":
		return m.dispatchStatus(models.StatusCompleted)
	case "s":
		return m.dispatchStatus(models.StatusSkipped)
	case "u":
		return m.dispatchStatus(models.StatusPending)
	case "K", "shift+up":
		return m.dispatchShift(schedule.Up)
	case "J", "shift+down":
		return m.dispatchShift(schedule.Down)
	case "n":
		if date := m.selectedDate(); date != "" {
			return m.openNoteView(date), textinput.Blink
		}
	case "p":
		m.viewMode = ViewProgress
	case "r":
		if !m.busy {
			m.busy = true
			return m, m.runRefresh()
		}
	case "g":
		if !m.busy {
			m.busy = true
			m.addMessage("📅 Syncing plan to Google Calendar...")
			return m, m.runCalendar(false)
		}
	case "G":
		if !m.plan.SyncedToCalendar() {
			m.addMessage("📅 This plan has no workouts on the calendar.")
			break
		}
		m.returnView = ViewSchedule
		m.viewMode = ViewConfirmRemove
	}

	return m, nil
}
