// ABOUTME: Single-workout detail view
// ABOUTME: Field-by-field rendering with notes and coach motivation
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/stride/models"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(14)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

func (m Model) renderDayView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("WORKOUT DETAIL"))
	s.WriteString("\n\n")

	day := m.selectedWorkout()
	if day == nil {
		s.WriteString("Nothing selected.\n")
	} else {
		s.WriteString(m.renderWorkoutFields(day))
	}

	s.WriteString("\n")
	s.WriteString(m.renderDayHelp())

	return s.String()
}

func (m Model) renderWorkoutFields(day *models.Day) string {
	var s strings.Builder

	s.WriteString(renderField("Date", fmt.Sprintf("%s (%s)", day.Date, day.DayOfWeek)))
	s.WriteString(renderField("Workout", fmt.Sprintf("%s %s", day.Type.Info().Emoji, day.Type)))
	s.WriteString(renderField("Description", day.Description))
	if day.Distance != "" {
		s.WriteString(renderField("Distance", day.Distance))
	}
	if day.Duration != "" {
		s.WriteString(renderField("Duration", day.Duration))
	}
	if day.Intensity != "" {
		s.WriteString(renderField("Intensity", day.Intensity))
	}
	s.WriteString(renderField("Status", dayStatusCell(day, m.now)))

	if !day.IsRest() {
		calendar := "not synced"
		if day.Synced() {
			calendar = "📅 synced"
		}
		s.WriteString(renderField("Calendar", calendar))
		s.WriteString(renderField("Coach says", day.Type.Info().Motivation))
	}

	if len(day.Notes) > 0 {
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Bold(true).Render("NOTES"))
		s.WriteString("\n")
		for _, note := range day.Notes {
			s.WriteString(fmt.Sprintf("  • %s\n", note))
		}
	}

	return s.String()
}

func renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render(label+":"),
		fieldValueStyle.Render(value))
}

func (m Model) renderDayHelp() string {
	help := []string{
		"c: Complete",
		"s: Skip",
		"u: Undo",
		"n: Note",
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDayKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewSchedule
	case "q":
		return m, tea.Quit
	case "c":
		return m.dispatchStatus(models.StatusCompleted)
	case "s":
		return m.dispatchStatus(models.StatusSkipped)
	case "u":
		return m.dispatchStatus(models.StatusPending)
	case "n":
		if date := m.selectedDate(); date != "" {
			return m.openNoteView(date), textinput.Blink
		}
	}

	return m, nil
}
