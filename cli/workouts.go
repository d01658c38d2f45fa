// ABOUTME: Workout status, shift, and note CLI commands
// ABOUTME: Complete/skip/undo default to today and prompt for notes on completion
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/harperreed/stride/db"
	"github.com/harperreed/stride/schedule"
)

// CompleteCommand marks a workout completed. Celebration and the note
// prompt fire on the way.
func CompleteCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("complete", flag.ExitOnError)
	noNote := fs.Bool("no-note", false, "Skip the note prompt")
	_ = fs.Parse(args)

	app, err := newApp(database)
	if err != nil {
		return err
	}
	ctx := context.Background()

	var noteDate string
	events := celebrationEvents()
	events.OnNoteRequest = func(date string) { noteDate = date }

	sess, err := app.loadSession(ctx, events)
	if err != nil {
		return friendlyError(err)
	}

	date, err := resolveDate(fs.Args(), func() string {
		return sess.Now().Format("2006-01-02")
	})
	if err != nil {
		return err
	}

	if err := sess.Complete(ctx, date); err != nil {
		return friendlyError(err)
	}

	app.record(sess.PlanID(), date, db.ActionCompleted, workoutLabel(sess, date))
	fmt.Printf("✓ Logged %s as completed\n", date)

	if noteDate != "" && !*noNote && stdinIsTerminal() {
		if err := promptForNote(ctx, app, sess, noteDate); err != nil {
			return err
		}
	}

	return nil
}

// SkipCommand marks a workout skipped.
func SkipCommand(database *sql.DB, args []string) error {
	return statusCommand(database, args, "skip", db.ActionSkipped, "skipped",
		func(ctx context.Context, sess *schedule.Session, date string) error {
			return sess.Skip(ctx, date)
		})
}

// UndoCommand returns a workout to pending.
func UndoCommand(database *sql.DB, args []string) error {
	return statusCommand(database, args, "undo", db.ActionUndone, "pending again",
		func(ctx context.Context, sess *schedule.Session, date string) error {
			return sess.Undo(ctx, date)
		})
}

func statusCommand(database *sql.DB, args []string, name, action, doneWord string,
	op func(context.Context, *schedule.Session, string) error) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	_ = fs.Parse(args)

	app, err := newApp(database)
	if err != nil {
		return err
	}
	ctx := context.Background()

	sess, err := app.loadSession(ctx, schedule.Events{})
	if err != nil {
		return friendlyError(err)
	}

	date, err := resolveDate(fs.Args(), func() string {
		return sess.Now().Format("2006-01-02")
	})
	if err != nil {
		return err
	}

	if err := op(ctx, sess, date); err != nil {
		return friendlyError(err)
	}

	app.record(sess.PlanID(), date, action, workoutLabel(sess, date))
	fmt.Printf("✓ %s is %s\n", date, doneWord)
	return nil
}

// ShiftCommand swaps a workout with its neighbor a day earlier or later.
func ShiftCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("shift", flag.ExitOnError)
	_ = fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 2 {
		return fmt.Errorf("usage: stride shift <date> <up|down>")
	}

	date := rest[0]
	dir, err := schedule.ParseDirection(rest[1])
	if err != nil {
		return err
	}

	app, err := newApp(database)
	if err != nil {
		return err
	}
	ctx := context.Background()

	sess, err := app.loadSession(ctx, schedule.Events{})
	if err != nil {
		return friendlyError(err)
	}

	label := workoutLabel(sess, date)
	if err := sess.ShiftWorkoutByDate(ctx, date, dir); err != nil {
		return friendlyError(err)
	}

	app.record(sess.PlanID(), date, db.ActionShifted, fmt.Sprintf("%s moved %s", label, dir))
	fmt.Printf("✓ Moved %s %s\n", label, dir)
	return nil
}

// NoteCommand attaches a free-text note to a workout.
func NoteCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("note", flag.ExitOnError)
	_ = fs.Parse(args)

	rest := fs.Args()
	if len(rest) < 2 {
		return fmt.Errorf("usage: stride note <date> <text...>")
	}

	date := rest[0]
	text := strings.Join(rest[1:], " ")

	app, err := newApp(database)
	if err != nil {
		return err
	}
	ctx := context.Background()

	sess, err := app.loadSession(ctx, schedule.Events{})
	if err != nil {
		return friendlyError(err)
	}

	if err := sess.AttachNote(ctx, date, text); err != nil {
		return friendlyError(err)
	}

	app.record(sess.PlanID(), date, db.ActionNoteAdded, text)
	fmt.Printf("✓ Note added to %s\n", date)
	return nil
}

// promptForNote offers the post-completion note entry, Enter to skip.
func promptForNote(ctx context.Context, app *app, sess *schedule.Session, date string) error {
	fmt.Print("How did it go? Add a note, or press Enter to skip.\n> ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return nil
	}

	text := strings.TrimSpace(line)
	if text == "" {
		return nil
	}

	if err := sess.AttachNote(ctx, date, text); err != nil {
		return friendlyError(err)
	}

	app.record(sess.PlanID(), date, db.ActionNoteAdded, text)
	fmt.Println("✓ Note saved")
	return nil
}

// workoutLabel names the workout on a date for messages and the activity
// log, falling back to the bare date.
func workoutLabel(sess *schedule.Session, date string) string {
	plan := sess.Plan()
	if _, _, day, ok := plan.FindDay(date); ok {
		return string(day.Type)
	}
	return date
}
