// ABOUTME: Progress and activity history CLI commands
// ABOUTME: Renders consistency bars and the local action log
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/stride/db"
	"github.com/harperreed/stride/schedule"
	"github.com/harperreed/stride/viz"
)

// ProgressCommand renders weekly consistency and overall adherence.
func ProgressCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("progress", flag.ExitOnError)
	_ = fs.Parse(args)

	app, err := newApp(database)
	if err != nil {
		return err
	}

	sess, err := app.loadSession(context.Background(), schedule.Events{})
	if err != nil {
		return friendlyError(err)
	}

	report := viz.BuildProgressReport(sess.Plan(), sess.Now())
	fmt.Print(viz.RenderProgress(report))
	return nil
}

// LogCommand lists the local activity history for the active plan. Works
// offline; the log never leaves this machine.
func LogCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Maximum number of entries to show")
	_ = fs.Parse(args)

	app, err := newApp(database)
	if err != nil {
		return err
	}

	planID, err := app.activePlanID()
	if err != nil {
		return err
	}

	entries, err := db.ListActivity(database, planID, *limit)
	if err != nil {
		return fmt.Errorf("failed to read activity log: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No activity recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "WHEN\tACTION\tDATE\tDETAIL")
	_, _ = fmt.Fprintln(w, "----\t------\t----\t------")

	for _, entry := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n",
			entry.CreatedAt.Local().Format("2006-01-02 15:04"),
			actionMark(entry.Action), entry.Action, entry.Date, entry.Detail)
	}

	_ = w.Flush()
	return nil
}

func actionMark(action string) string {
	switch action {
	case db.ActionCompleted:
		return "✅"
	case db.ActionSkipped:
		return "⏭️"
	case db.ActionUndone:
		return "↩️"
	case db.ActionShifted:
		return "🔀"
	case db.ActionNoteAdded:
		return "📝"
	case db.ActionCalendarSynced:
		return "📅"
	case db.ActionCalendarRemoved:
		return "🗑️"
	default:
		return "•"
	}
}
