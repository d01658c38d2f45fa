// ABOUTME: Calendar removal confirmation view
// ABOUTME: Modal yes/no dialog before withdrawing synced events
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

func (m Model) renderConfirmRemoveView() string {
	title := warningStyle.Render("⚠  REMOVE FROM CALENDAR  ⚠")
	message := "Remove this plan's workouts from Google Calendar?"
	planInfo := fmt.Sprintf("\nPLAN: %s\n", m.plan.RaceName)
	note := "\nThe training schedule itself is not affected."

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Yes, Remove (y)"),
		cancelButtonStyle.Render("Cancel (n/esc)"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		planInfo,
		note,
		"",
		buttons,
	)

	box := confirmBoxStyle.Render(content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

func (m Model) handleConfirmRemoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.viewMode = m.returnView
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.addMessage("📅 Removing plan from Google Calendar...")
		return m, m.runCalendar(true)
	case "n", "N", "esc", "q":
		m.viewMode = m.returnView
	}

	return m, nil
}
