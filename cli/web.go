// ABOUTME: Web dashboard subcommand
// ABOUTME: Serves the read-only localhost dashboard over the live session
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"

	"github.com/harperreed/stride/schedule"
	"github.com/harperreed/stride/web"
)

// WebCommand starts the local dashboard server.
func WebCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("web", flag.ExitOnError)
	addr := fs.String("addr", "127.0.0.1:8787", "Listen address for the dashboard")
	_ = fs.Parse(args)

	app, err := newApp(database)
	if err != nil {
		return err
	}

	sess, err := app.loadSession(context.Background(), schedule.Events{})
	if err != nil {
		return friendlyError(err)
	}

	fmt.Printf("Serving dashboard at http://%s (Ctrl+C to stop)\n", *addr)
	return web.NewServer(sess).ListenAndServe(*addr)
}
