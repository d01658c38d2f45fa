// ABOUTME: Plan progress view
// ABOUTME: Renders the weekly consistency and adherence report inline
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/stride/viz"
)

func (m Model) renderProgressView() string {
	var s strings.Builder

	report := viz.BuildProgressReport(m.plan, m.now)
	s.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Render(viz.RenderProgress(report)))

	s.WriteString("\n")
	s.WriteString(m.renderProgressHelp())

	return s.String()
}

func (m Model) renderProgressHelp() string {
	help := []string{
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleProgressKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewSchedule
	case "q":
		return m, tea.Quit
	}

	return m, nil
}
