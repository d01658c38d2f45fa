// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server for assistant integration
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stride/handlers"
	"github.com/harperreed/stride/schedule"
)

// MCPCommand starts the MCP server on stdio, bound to the active plan.
func MCPCommand(database *sql.DB) error {
	log.Println("Starting Stride MCP Server...")

	app, err := newApp(database)
	if err != nil {
		return err
	}
	ctx := context.Background()

	sess, err := app.loadSession(ctx, schedule.Events{})
	if err != nil {
		return friendlyError(err)
	}

	h := handlers.NewScheduleHandlers(sess, app.client, database)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "stride",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_plan",
		Description: "Get the active training plan with every week, workout, and status",
	}, h.GetPlan)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_progress",
		Description: "Get weekly consistency and overall adherence for the active plan",
	}, h.GetProgress)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_plans",
		Description: "List all training plans on the account",
	}, h.ListPlans)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_workout",
		Description: "Mark a workout as completed (defaults to today)",
	}, h.CompleteWorkout)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "skip_workout",
		Description: "Mark a workout as skipped (defaults to today)",
	}, h.SkipWorkout)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "undo_workout",
		Description: "Return a workout to pending (defaults to today)",
	}, h.UndoWorkout)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "shift_workout",
		Description: "Swap a workout with the previous or next day within its week",
	}, h.ShiftWorkout)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_workout_note",
		Description: "Attach a free-text note to a workout",
	}, h.AddWorkoutNote)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync_calendar",
		Description: "Push the plan's workouts to Google Calendar as all-day events",
	}, h.SyncCalendar)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_calendar",
		Description: "Remove the plan's synced events from Google Calendar",
	}, h.RemoveCalendar)

	return server.Run(ctx, &mcp.StdioTransport{})
}
