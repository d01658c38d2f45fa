// ABOUTME: Interactive schedule browser subcommand
// ABOUTME: Wires session events into the Bubble Tea program
package cli

import (
	"context"
	"database/sql"
	"flag"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/stride/models"
	"github.com/harperreed/stride/schedule"
	"github.com/harperreed/stride/tui"
)

// BrowseCommand opens the full-screen schedule browser.
func BrowseCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	_ = fs.Parse(args)

	app, err := newApp(database)
	if err != nil {
		return err
	}
	ctx := context.Background()

	// Hooks forward into the program's event feed; buffered so a slow
	// redraw never stalls persistence.
	feed := make(chan tea.Msg, 16)
	events := schedule.Events{
		OnCelebrate: func(day models.Day) {
			feed <- tui.CelebrationMsg{Day: day}
		},
		OnNoteRequest: func(date string) {
			feed <- tui.NoteRequestMsg{Date: date}
		},
		OnWeekCompleted: func(summary schedule.WeekSummary) {
			feed <- tui.WeekCompletedMsg{Summary: summary}
		},
	}

	sess, err := app.loadSession(ctx, events)
	if err != nil {
		return friendlyError(err)
	}

	record := func(date, action, detail string) {
		app.record(sess.PlanID(), date, action, detail)
	}

	return tui.Run(sess, feed, record)
}
