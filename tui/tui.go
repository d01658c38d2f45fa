// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Full-screen interactive browser for the training schedule
package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/stride/models"
	"github.com/harperreed/stride/ourpr"
	"github.com/harperreed/stride/schedule"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewSchedule ViewMode = iota
	ViewDay
	ViewNote
	ViewProgress
	ViewConfirmRemove
)

// Messages pushed into the program by the schedule session's event hooks.
// The browse command owns the hook-to-feed wiring.

// CelebrationMsg announces a workout that was just marked completed.
type CelebrationMsg struct {
	Day models.Day
}

// NoteRequestMsg asks the TUI to offer a note prompt for a date.
type NoteRequestMsg struct {
	Date string
}

// WeekCompletedMsg announces a training week whose last workout just landed.
type WeekCompletedMsg struct {
	Summary schedule.WeekSummary
}

// Model is the main bubbletea model
type Model struct {
	sess   *schedule.Session
	record func(date, action, detail string)

	plan *models.Plan
	now  time.Time

	viewMode   ViewMode
	returnView ViewMode

	// Schedule view state
	weekIndex   int
	selectedDay int

	// Note view state
	noteInput textinput.Model
	noteDate  string

	// UI state
	busy     bool
	messages []string
	width    int
	height   int
}

// NewModel creates the TUI model over a loaded schedule session. The record
// callback mirrors applied mutations into the activity log; nil disables
// recording.
func NewModel(sess *schedule.Session, record func(date, action, detail string)) Model {
	m := Model{
		sess:     sess,
		record:   record,
		plan:     sess.Plan(),
		now:      sess.Now(),
		viewMode: ViewSchedule,
		width:    80,
		height:   24,
	}
	m.weekIndex, m.selectedDay = locateToday(m.plan, m.now)
	return m
}

// Run starts the full-screen schedule browser. Messages arriving on feed
// (hooks pushed by the session during mutations) are forwarded into the
// program loop.
func Run(sess *schedule.Session, feed chan tea.Msg, record func(date, action, detail string)) error {
	p := tea.NewProgram(NewModel(sess, record), tea.WithAltScreen())

	go func() {
		for msg := range feed {
			p.Send(msg)
		}
	}()

	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case CelebrationMsg:
		// The optimistic apply has already landed in the session, so the
		// table can show it before the persistence round-trip finishes.
		m.plan = m.sess.Plan()
		info := msg.Day.Type.Info()
		m.addMessage(fmt.Sprintf("🎉 %s %s complete! %s", info.Emoji, msg.Day.Type, info.Motivation))
		return m, nil
	case NoteRequestMsg:
		return m.openNoteView(msg.Date), textinput.Blink
	case WeekCompletedMsg:
		m.addMessage(fmt.Sprintf("🏆 Week %d is in the books! %d/%d workouts done.",
			msg.Summary.WeekNumber, msg.Summary.CompletedCount, msg.Summary.PlannedCount))
		return m, nil
	case statusAppliedMsg:
		return m.handleStatusApplied(msg)
	case shiftAppliedMsg:
		return m.handleShiftApplied(msg)
	case noteSavedMsg:
		return m.handleNoteSaved(msg)
	case refreshDoneMsg:
		return m.handleRefreshDone(msg)
	case calendarDoneMsg:
		return m.handleCalendarDone(msg)
	}

	// Cursor blink ticks and other component messages belong to the note
	// input while it is open.
	if m.viewMode == ViewNote {
		var cmd tea.Cmd
		m.noteInput, cmd = m.noteInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewSchedule:
		return m.renderScheduleView()
	case ViewDay:
		return m.renderDayView()
	case ViewNote:
		return m.renderNoteView()
	case ViewProgress:
		return m.renderProgressView()
	case ViewConfirmRemove:
		return m.renderConfirmRemoveView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits. Plain q is view-specific so typing a note is
	// never swallowed by a global binding.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewSchedule:
		return m.handleScheduleKeys(msg)
	case ViewDay:
		return m.handleDayKeys(msg)
	case ViewNote:
		return m.handleNoteKeys(msg)
	case ViewProgress:
		return m.handleProgressKeys(msg)
	case ViewConfirmRemove:
		return m.handleConfirmRemoveKeys(msg)
	}

	return m, nil
}

func (m Model) currentWeek() *models.Week {
	if len(m.plan.Weeks) == 0 || m.weekIndex >= len(m.plan.Weeks) {
		return nil
	}
	return &m.plan.Weeks[m.weekIndex]
}

func (m Model) selectedWorkout() *models.Day {
	week := m.currentWeek()
	if week == nil || m.selectedDay >= len(week.Days) {
		return nil
	}
	return &week.Days[m.selectedDay]
}

func (m Model) selectedDate() string {
	if day := m.selectedWorkout(); day != nil {
		return day.Date
	}
	return ""
}

// locateToday finds the cursor position for the current training day:
// today's row in the current week, the current week's Monday when today has
// no row, or the top of the plan otherwise.
func locateToday(plan *models.Plan, now time.Time) (int, int) {
	for wi := range plan.Weeks {
		if plan.Weeks[wi].State(now) != models.WeekCurrent {
			continue
		}
		for di := range plan.Weeks[wi].Days {
			if plan.Weeks[wi].Days[di].State(now) == models.DayToday {
				return wi, di
			}
		}
		return wi, 0
	}
	return 0, 0
}

// clampSelection keeps the cursor inside the plan after a refresh changed
// its shape.
func (m *Model) clampSelection() {
	if len(m.plan.Weeks) == 0 {
		m.weekIndex, m.selectedDay = 0, 0
		return
	}
	if m.weekIndex >= len(m.plan.Weeks) {
		m.weekIndex = len(m.plan.Weeks) - 1
	}
	if n := len(m.plan.Weeks[m.weekIndex].Days); m.selectedDay >= n && n > 0 {
		m.selectedDay = n - 1
	}
}

// addMessage appends a line to the feedback log shown under the table.
func (m *Model) addMessage(text string) {
	timestamp := time.Now().Format("15:04:05")
	m.messages = append(m.messages, fmt.Sprintf("[%s] %s", timestamp, text))
}

func (m *Model) recordActivity(date, action, detail string) {
	if m.record != nil {
		m.record(date, action, detail)
	}
}

func workoutLabel(plan *models.Plan, date string) string {
	if _, _, day, ok := plan.FindDay(date); ok {
		return string(day.Type)
	}
	return date
}

// statusError rewrites engine sentinels into short feedback-line phrasings.
func statusError(err error) string {
	switch {
	case errors.Is(err, schedule.ErrBusy):
		return "A change is still saving, try again in a moment"
	case errors.Is(err, schedule.ErrShiftOutOfRange):
		return "That workout is already at the edge of its week"
	case errors.Is(err, schedule.ErrNoCalendar):
		return "Google Calendar is not connected. Run 'stride calendar connect' first"
	case errors.Is(err, schedule.ErrDayNotFound):
		return "No workout scheduled for that date"
	}

	var unreachable *ourpr.UnreachableError
	if errors.As(err, &unreachable) {
		return "Cannot reach the OurPR server, the change was rolled back"
	}

	return err.Error()
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	weekHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	savingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true)
)
