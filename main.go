// ABOUTME: Entry point for the stride CLI and MCP server
// ABOUTME: Routes subcommands over the shared local cache database
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/harperreed/stride/cli"
	"github.com/harperreed/stride/db"
)

const version = "0.1.0"

func main() {
	// Google credentials may live in a local .env during development
	_ = godotenv.Load()

	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Cache database path (default: ~/.local/share/stride/stride.db)")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("stride version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	if command == "version" {
		fmt.Printf("stride version %s\n", version)
		os.Exit(0)
	}

	// Every command gets the cache database; it also serves as the
	// activity log.
	finalDBPath := *dbPath
	if finalDBPath == "" {
		finalDBPath = db.DefaultPath()
	}
	database, err := db.OpenDatabase(finalDBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	switch command {
	case "login":
		run(cli.LoginCommand(database, commandArgs))
	case "logout":
		run(cli.LogoutCommand(database, commandArgs))

	case "plans":
		run(cli.PlansCommand(database, commandArgs))
	case "plan":
		run(cli.PlanCommand(database, commandArgs))

	case "complete":
		run(cli.CompleteCommand(database, commandArgs))
	case "skip":
		run(cli.SkipCommand(database, commandArgs))
	case "undo":
		run(cli.UndoCommand(database, commandArgs))
	case "shift":
		run(cli.ShiftCommand(database, commandArgs))
	case "note":
		run(cli.NoteCommand(database, commandArgs))

	case "progress":
		run(cli.ProgressCommand(database, commandArgs))
	case "log":
		run(cli.LogCommand(database, commandArgs))

	case "calendar":
		if len(commandArgs) == 0 {
			fmt.Println("Error: calendar requires a subcommand (connect, sync, remove, status)")
			printUsage()
			os.Exit(1)
		}

		calCommand := commandArgs[0]
		calArgs := commandArgs[1:]

		switch calCommand {
		case "connect":
			run(cli.CalendarConnectCommand(database, calArgs))
		case "sync":
			run(cli.CalendarSyncCommand(database, calArgs))
		case "remove":
			run(cli.CalendarRemoveCommand(database, calArgs))
		case "status":
			run(cli.CalendarStatusCommand(database, calArgs))
		default:
			fmt.Printf("Unknown calendar command: %s\n\n", calCommand)
			printUsage()
			os.Exit(1)
		}

	case "browse":
		run(cli.BrowseCommand(database, commandArgs))
	case "web":
		run(cli.WebCommand(database, commandArgs))
	case "mcp":
		run(cli.MCPCommand(database))

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func run(err error) {
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func printUsage() {
	fmt.Printf(`stride v%s - Training plan companion for OurPR

USAGE:
  stride [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Cache database path (default: ~/.local/share/stride/stride.db)

ACCOUNT:
  stride login              Log in to OurPR
    --email <email>           Account email (prompted when omitted)
  stride logout             Log out and clear cached plans

PLANS:
  stride plans              List your training plans
    --use <id>                Set the active plan
  stride plan               Show the active plan's schedule
    --week <n>                Show a single week
    --cached                  Render the last cached copy (offline)

WORKOUTS:
  stride complete [date]    Mark a workout completed (default: today)
    --no-note                 Skip the note prompt
  stride skip [date]        Mark a workout skipped
  stride undo [date]        Return a workout to pending
  stride shift <date> <up|down>  Swap a workout with the previous or next day
  stride note <date> <text...>   Attach a note to a workout

TRACKING:
  stride progress           Weekly consistency and overall adherence
  stride log                Local activity history
    --limit <n>               Max entries (default: 20)

CALENDAR:
  stride calendar connect   Authorize Google Calendar access
  stride calendar sync      Push workouts to Google Calendar
  stride calendar remove    Remove synced workouts from the calendar
    --yes                     Skip the confirmation prompt
  stride calendar status    Show connection and sync state

INTERFACES:
  stride browse             Interactive schedule browser
  stride web                Local dashboard
    --addr <host:port>        Listen address (default: 127.0.0.1:8787)
  stride mcp                Start MCP server (for assistant integration)

EXAMPLES:
  # First run
  stride login
  stride plan

  # Log today's workout
  stride complete

  # Move Thursday's intervals a day earlier
  stride shift 2026-03-05 up

  # Put the whole plan on Google Calendar
  stride calendar connect
  stride calendar sync

`, version)
}
