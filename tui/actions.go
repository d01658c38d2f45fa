// ABOUTME: Async schedule mutations dispatched as bubbletea commands
// ABOUTME: Each command reports back with a completion message for the update loop
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/stride/db"
	"github.com/harperreed/stride/models"
	"github.com/harperreed/stride/schedule"
)

// statusAppliedMsg is sent when a status change finishes persisting.
type statusAppliedMsg struct {
	Date   string
	Status string
	Label  string
	Error  error
}

// shiftAppliedMsg is sent when a workout swap finishes persisting.
type shiftAppliedMsg struct {
	Date  string
	Dir   schedule.Direction
	Label string
	Error error
}

// noteSavedMsg is sent when a note attachment finishes persisting.
type noteSavedMsg struct {
	Date  string
	Text  string
	Error error
}

// refreshDoneMsg is sent when a plan refetch completes.
type refreshDoneMsg struct {
	Error error
}

// calendarDoneMsg is sent when a calendar sync or removal completes. The
// message can carry both a result string and an error when the operation
// partially succeeded.
type calendarDoneMsg struct {
	Removed bool
	Message string
	Error   error
}

func (m Model) dispatchStatus(status string) (tea.Model, tea.Cmd) {
	date := m.selectedDate()
	if m.busy || date == "" {
		return m, nil
	}
	m.busy = true
	return m, m.applyStatus(date, status)
}

func (m Model) dispatchShift(dir schedule.Direction) (tea.Model, tea.Cmd) {
	date := m.selectedDate()
	if m.busy || date == "" {
		return m, nil
	}
	m.busy = true
	return m, m.applyShift(date, dir)
}

// The label is captured before the mutation runs; a shift moves the payload
// away from the date, so reading it afterwards would name the wrong workout.
func (m Model) applyStatus(date, status string) tea.Cmd {
	sess := m.sess
	label := workoutLabel(m.plan, date)
	return func() tea.Msg {
		err := sess.SetStatus(context.Background(), date, status)
		return statusAppliedMsg{Date: date, Status: status, Label: label, Error: err}
	}
}

func (m Model) applyShift(date string, dir schedule.Direction) tea.Cmd {
	sess := m.sess
	label := workoutLabel(m.plan, date)
	return func() tea.Msg {
		err := sess.ShiftWorkoutByDate(context.Background(), date, dir)
		return shiftAppliedMsg{Date: date, Dir: dir, Label: label, Error: err}
	}
}

func (m Model) saveNote(date, text string) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		err := sess.AttachNote(context.Background(), date, text)
		return noteSavedMsg{Date: date, Text: text, Error: err}
	}
}

func (m Model) runRefresh() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		return refreshDoneMsg{Error: sess.Refresh(context.Background())}
	}
}

func (m Model) runCalendar(remove bool) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		var message string
		var err error
		if remove {
			message, err = sess.RemoveFromCalendar(context.Background())
		} else {
			message, err = sess.SyncToCalendar(context.Background())
		}
		return calendarDoneMsg{Removed: remove, Message: message, Error: err}
	}
}

func (m Model) handleStatusApplied(msg statusAppliedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.plan = m.sess.Plan()
	if msg.Error != nil {
		m.addMessage("⚠ " + statusError(msg.Error))
		return m, nil
	}

	m.recordActivity(msg.Date, actionForStatus(msg.Status), msg.Label)
	switch msg.Status {
	case models.StatusSkipped:
		m.addMessage(fmt.Sprintf("⏭️ Skipped %s on %s", msg.Label, msg.Date))
	case models.StatusPending:
		m.addMessage(fmt.Sprintf("↩️ Reset %s on %s to pending", msg.Label, msg.Date))
	}
	// Completions are announced through the celebration hook instead.
	return m, nil
}

func (m Model) handleShiftApplied(msg shiftAppliedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.plan = m.sess.Plan()
	if msg.Error != nil {
		m.addMessage("⚠ " + statusError(msg.Error))
		return m, nil
	}

	m.recordActivity(msg.Date, db.ActionShifted, fmt.Sprintf("%s moved %s", msg.Label, msg.Dir))
	m.addMessage(fmt.Sprintf("↕️ Moved %s %s", msg.Label, msg.Dir))

	// Follow the payload to its new slot.
	if wi, di, _, ok := m.plan.FindDay(msg.Date); ok {
		target := di - 1
		if msg.Dir == schedule.Down {
			target = di + 1
		}
		if target >= 0 && target < len(m.plan.Weeks[wi].Days) {
			m.weekIndex = wi
			m.selectedDay = target
		}
	}
	return m, nil
}

func (m Model) handleNoteSaved(msg noteSavedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.plan = m.sess.Plan()
	if msg.Error != nil {
		m.addMessage("⚠ " + statusError(msg.Error))
		return m, nil
	}

	m.recordActivity(msg.Date, db.ActionNoteAdded, msg.Text)
	m.addMessage(fmt.Sprintf("📝 Note added to %s", msg.Date))
	return m, nil
}

func (m Model) handleRefreshDone(msg refreshDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Error != nil {
		m.addMessage("⚠ " + statusError(msg.Error))
		return m, nil
	}

	m.plan = m.sess.Plan()
	m.now = m.sess.Now()
	m.clampSelection()
	m.addMessage("🔄 Plan refreshed from OurPR")
	return m, nil
}

func (m Model) handleCalendarDone(msg calendarDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.plan = m.sess.Plan()

	// The result message still reflects events that were written even when
	// a later step failed, so it is logged before the error.
	if msg.Message != "" {
		action := db.ActionCalendarSynced
		if msg.Removed {
			action = db.ActionCalendarRemoved
		}
		m.recordActivity("", action, msg.Message)
		m.addMessage("📅 " + msg.Message)
	}
	if msg.Error != nil {
		m.addMessage("⚠ " + statusError(msg.Error))
	}
	return m, nil
}

func actionForStatus(status string) string {
	switch status {
	case models.StatusCompleted:
		return db.ActionCompleted
	case models.StatusSkipped:
		return db.ActionSkipped
	default:
		return db.ActionUndone
	}
}
