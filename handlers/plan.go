// ABOUTME: Read-only MCP tools for plan, progress, and the plan list
// ABOUTME: Implements get_plan, get_progress, and list_plans
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stride/viz"
)

type GetPlanInput struct {
	Week int `json:"week,omitempty" jsonschema:"Restrict output to a single week (1-based)"`
}

type GetPlanOutput struct {
	ID               string       `json:"id"`
	RaceName         string       `json:"race_name"`
	RaceDistance     string       `json:"race_distance"`
	RaceDate         string       `json:"race_date"`
	TotalWeeks       int          `json:"total_weeks"`
	SyncedToCalendar bool         `json:"synced_to_calendar"`
	Weeks            []WeekOutput `json:"weeks"`
}

func (h *ScheduleHandlers) GetPlan(_ context.Context, request *mcp.CallToolRequest, input GetPlanInput) (*mcp.CallToolResult, GetPlanOutput, error) {
	plan := h.sess.Plan()
	now := h.sess.Now()

	if input.Week < 0 || input.Week > len(plan.Weeks) {
		return nil, GetPlanOutput{}, fmt.Errorf("plan has weeks 1 to %d, not %d", len(plan.Weeks), input.Week)
	}

	out := GetPlanOutput{
		ID:               plan.ID,
		RaceName:         plan.RaceName,
		RaceDistance:     plan.RaceDistance,
		RaceDate:         plan.RaceDate,
		TotalWeeks:       plan.TotalWeeks,
		SyncedToCalendar: plan.SyncedToCalendar(),
	}

	for wi := range plan.Weeks {
		week := &plan.Weeks[wi]
		if input.Week != 0 && week.WeekNumber != input.Week {
			continue
		}
		out.Weeks = append(out.Weeks, weekToOutput(week, now))
	}

	return nil, out, nil
}

type GetProgressInput struct{}

type WeekProgressOutput struct {
	WeekNumber     int    `json:"week_number"`
	State          string `json:"state"`
	CompletedCount int    `json:"completed_count"`
	PlannedCount   int    `json:"planned_count"`
	Consistency    *int   `json:"consistency,omitempty"`
}

type GetProgressOutput struct {
	RaceName    string               `json:"race_name"`
	RaceDate    string               `json:"race_date"`
	DaysToRace  int                  `json:"days_to_race"`
	CurrentWeek int                  `json:"current_week,omitempty"`
	Overall     *int                 `json:"overall_adherence,omitempty"`
	Weeks       []WeekProgressOutput `json:"weeks"`
}

func (h *ScheduleHandlers) GetProgress(_ context.Context, request *mcp.CallToolRequest, input GetProgressInput) (*mcp.CallToolResult, GetProgressOutput, error) {
	report := viz.BuildProgressReport(h.sess.Plan(), h.sess.Now())

	out := GetProgressOutput{
		RaceName:    report.RaceName,
		RaceDate:    report.RaceDate,
		DaysToRace:  report.DaysToRace,
		CurrentWeek: report.CurrentWeek,
		Overall:     report.Overall,
	}

	for _, week := range report.Weeks {
		out.Weeks = append(out.Weeks, WeekProgressOutput{
			WeekNumber:     week.WeekNumber,
			State:          string(week.State),
			CompletedCount: week.CompletedCount,
			PlannedCount:   week.PlannedCount,
			Consistency:    week.Consistency,
		})
	}

	return nil, out, nil
}

type ListPlansInput struct{}

type PlanSummaryOutput struct {
	ID           string `json:"id"`
	RaceName     string `json:"race_name"`
	RaceDistance string `json:"race_distance"`
	RaceDate     string `json:"race_date"`
	TotalWeeks   int    `json:"total_weeks"`
	Active       bool   `json:"active"`
}

type ListPlansOutput struct {
	Plans []PlanSummaryOutput `json:"plans"`
}

func (h *ScheduleHandlers) ListPlans(ctx context.Context, request *mcp.CallToolRequest, input ListPlansInput) (*mcp.CallToolResult, ListPlansOutput, error) {
	if h.client == nil {
		return nil, ListPlansOutput{}, fmt.Errorf("plan listing is unavailable without an OurPR client")
	}

	plans, err := h.client.ListPlans(ctx)
	if err != nil {
		return nil, ListPlansOutput{}, fmt.Errorf("failed to list plans: %w", err)
	}

	activeID := h.sess.PlanID()
	out := ListPlansOutput{Plans: make([]PlanSummaryOutput, len(plans))}
	for i, plan := range plans {
		out.Plans[i] = PlanSummaryOutput{
			ID:           plan.ID,
			RaceName:     plan.RaceName,
			RaceDistance: plan.RaceDistance,
			RaceDate:     plan.RaceDate,
			TotalWeeks:   plan.TotalWeeks,
			Active:       plan.ID == activeID,
		}
	}

	return nil, out, nil
}
