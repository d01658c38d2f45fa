// ABOUTME: Calendar MCP tools
// ABOUTME: Implements sync_calendar and remove_calendar
package handlers

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stride/db"
)

type CalendarInput struct{}

type CalendarOutput struct {
	Message          string `json:"message"`
	SyncedToCalendar bool   `json:"synced_to_calendar"`
}

func (h *ScheduleHandlers) SyncCalendar(ctx context.Context, request *mcp.CallToolRequest, input CalendarInput) (*mcp.CallToolResult, CalendarOutput, error) {
	msg, err := h.sess.SyncToCalendar(ctx)
	if err != nil {
		return nil, CalendarOutput{}, err
	}

	h.record("", db.ActionCalendarSynced, msg)
	return nil, CalendarOutput{Message: msg, SyncedToCalendar: h.sess.SyncedToCalendar()}, nil
}

func (h *ScheduleHandlers) RemoveCalendar(ctx context.Context, request *mcp.CallToolRequest, input CalendarInput) (*mcp.CallToolResult, CalendarOutput, error) {
	msg, err := h.sess.RemoveFromCalendar(ctx)
	if err != nil {
		return nil, CalendarOutput{}, err
	}

	h.record("", db.ActionCalendarRemoved, msg)
	return nil, CalendarOutput{Message: msg, SyncedToCalendar: h.sess.SyncedToCalendar()}, nil
}
