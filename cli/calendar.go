// ABOUTME: Google Calendar CLI commands
// ABOUTME: OAuth connect flow plus plan sync, remove, and status
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"golang.org/x/oauth2"

	"github.com/harperreed/stride/calendar"
	"github.com/harperreed/stride/db"
	"github.com/harperreed/stride/schedule"
)

// CalendarConnectCommand runs the OAuth flow and stores the token.
func CalendarConnectCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("connect", flag.ExitOnError)
	_ = fs.Parse(args)

	ctx := context.Background()

	config, err := calendar.OAuthConfig()
	if err != nil {
		return fmt.Errorf("failed to get OAuth config: %w", err)
	}

	// Start local server for OAuth callback
	callbackChan := make(chan *oauth2.Token)
	errChan := make(chan error)

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			return
		}

		token, err := config.Exchange(ctx, code)
		if err != nil {
			errChan <- fmt.Errorf("failed to exchange code: %w", err)
			return
		}

		callbackChan <- token
		_, _ = fmt.Fprintf(w, "Authorization successful! You can close this window.")
	})

	server := &http.Server{Addr: ":8080", Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	authURL := config.AuthCodeURL("state", oauth2.AccessTypeOffline)

	fmt.Println("Opening browser for Google OAuth...")
	fmt.Printf("\nIf the browser doesn't open, visit this URL:\n%s\n\n", authURL)

	_ = openBrowser(authURL)

	// Wait for callback or error
	select {
	case token := <-callbackChan:
		_ = server.Shutdown(ctx)

		if err := calendar.SaveToken(token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}

		fmt.Printf("\n✓ Authenticated successfully\n")
		fmt.Printf("✓ Token saved to %s\n\n", calendar.TokenPath())
		fmt.Println("Ready! Run 'stride calendar sync' to put your workouts on the calendar.")

		return nil

	case err := <-errChan:
		_ = server.Shutdown(ctx)
		return fmt.Errorf("OAuth flow failed: %w", err)
	}
}

// CalendarSyncCommand pushes the active plan's workouts to Google Calendar.
func CalendarSyncCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
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

	fmt.Println("Syncing plan to Google Calendar...")

	msg, err := sess.SyncToCalendar(ctx)
	if msg != "" {
		app.record(sess.PlanID(), "", db.ActionCalendarSynced, msg)
		fmt.Printf("✓ %s\n", msg)
	}
	if err != nil {
		return friendlyError(err)
	}

	return nil
}

// CalendarRemoveCommand withdraws the synced events again.
func CalendarRemoveCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
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

	if !sess.SyncedToCalendar() {
		fmt.Println("This plan has no workouts on the calendar.")
		return nil
	}

	if !*yes && stdinIsTerminal() {
		fmt.Print("Remove all synced workouts from Google Calendar? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	msg, err := sess.RemoveFromCalendar(ctx)
	if msg != "" {
		app.record(sess.PlanID(), "", db.ActionCalendarRemoved, msg)
		fmt.Printf("✓ %s\n", msg)
	}
	if err != nil {
		return friendlyError(err)
	}

	return nil
}

// CalendarStatusCommand reports the connection and per-plan sync state.
func CalendarStatusCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	_ = fs.Parse(args)

	if !calendar.Connected() {
		fmt.Println("Google Calendar: not connected")
		fmt.Println("Run 'stride calendar connect' to authorize.")
		return nil
	}

	fmt.Printf("Google Calendar: ✓ connected (token at %s)\n", calendar.TokenPath())

	app, err := newApp(database)
	if err != nil {
		return err
	}

	sess, err := app.loadSession(context.Background(), schedule.Events{})
	if err != nil {
		return friendlyError(err)
	}

	plan := sess.Plan()
	synced := 0
	plannable := 0
	for wi := range plan.Weeks {
		for di := range plan.Weeks[wi].Days {
			day := &plan.Weeks[wi].Days[di]
			if day.IsRest() {
				continue
			}
			plannable++
			if day.Synced() {
				synced++
			}
		}
	}

	if synced == 0 {
		fmt.Printf("Plan %q: not synced. Run 'stride calendar sync' to push %d workouts.\n",
			plan.RaceName, plannable)
		return nil
	}

	fmt.Printf("Plan %q: %d of %d workouts on the calendar\n", plan.RaceName, synced, plannable)
	return nil
}

// openBrowser attempts to open URL in default browser
func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}

	command := exec.Command(cmd, args...)
	return command.Start()
}
