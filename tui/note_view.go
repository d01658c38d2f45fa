// ABOUTME: Free-text note entry view
// ABOUTME: Single textinput targeted at one workout date
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// openNoteView switches to the note prompt for the given date. The previous
// view is restored on save or cancel.
func (m Model) openNoteView(date string) Model {
	if date == "" {
		return m
	}

	input := textinput.New()
	input.Placeholder = "How did it go?"
	input.CharLimit = 500
	input.Width = 60
	input.Focus()

	if m.viewMode != ViewNote {
		m.returnView = m.viewMode
	}
	m.noteInput = input
	m.noteDate = date
	m.viewMode = ViewNote
	return m
}

func (m Model) renderNoteView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("ADD NOTE"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s on %s\n\n", workoutLabel(m.plan, m.noteDate), m.noteDate))
	s.WriteString(m.noteInput.View())
	s.WriteString("\n")
	s.WriteString(m.renderNoteHelp())

	return s.String()
}

func (m Model) renderNoteHelp() string {
	help := []string{
		"Enter: Save",
		"Esc: Skip",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleNoteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = m.returnView
		m.noteDate = ""
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.noteInput.Value())
		date := m.noteDate
		m.viewMode = m.returnView
		m.noteDate = ""
		if text == "" {
			return m, nil
		}
		m.busy = true
		return m, m.saveNote(date, text)
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}
