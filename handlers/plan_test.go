// ABOUTME: Tests for the read-only plan and progress tools
// ABOUTME: Validates schedule output shape and week filtering
package handlers

import (
	"context"
	"testing"
)

func TestGetPlanReturnsFullSchedule(t *testing.T) {
	h, _ := newTestHandlers(false)

	_, out, err := h.GetPlan(context.Background(), nil, GetPlanInput{})
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}

	if out.ID != "plan-1" || out.RaceName != "Chicago Half" || out.TotalWeeks != 2 {
		t.Errorf("Plan metadata wrong: %+v", out)
	}
	if out.SyncedToCalendar {
		t.Error("Plan should not report as synced")
	}
	if len(out.Weeks) != 2 {
		t.Fatalf("Expected 2 weeks, got %d", len(out.Weeks))
	}
	if len(out.Weeks[0].Days) != 7 || len(out.Weeks[1].Days) != 7 {
		t.Error("Each week should carry 7 days")
	}

	monday := out.Weeks[0].Days[0]
	if monday.Date != "2026-03-02" || monday.DayOfWeek != "Monday" || monday.Type != "Easy Run" {
		t.Errorf("Day output wrong: %+v", monday)
	}
	if monday.Status != "pending" {
		t.Errorf("Status = %q, want pending", monday.Status)
	}
}

func TestGetPlanSingleWeek(t *testing.T) {
	h, _ := newTestHandlers(false)

	_, out, err := h.GetPlan(context.Background(), nil, GetPlanInput{Week: 2})
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if len(out.Weeks) != 1 || out.Weeks[0].WeekNumber != 2 {
		t.Errorf("Week filter wrong: %+v", out.Weeks)
	}
}

func TestGetPlanWeekOutOfRange(t *testing.T) {
	h, _ := newTestHandlers(false)

	if _, _, err := h.GetPlan(context.Background(), nil, GetPlanInput{Week: 9}); err == nil {
		t.Error("Expected error for week 9 of a 2-week plan")
	}
}

func TestGetProgressShape(t *testing.T) {
	h, _ := newTestHandlers(false)

	_, out, err := h.GetProgress(context.Background(), nil, GetProgressInput{})
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}

	if out.RaceName != "Chicago Half" || out.RaceDate != "2026-03-15" {
		t.Errorf("Progress metadata wrong: %+v", out)
	}
	if len(out.Weeks) != 2 {
		t.Fatalf("Expected 2 week rows, got %d", len(out.Weeks))
	}
	if out.Weeks[0].PlannedCount != 5 || out.Weeks[1].PlannedCount != 5 {
		t.Errorf("Planned counts wrong: %+v", out.Weeks)
	}
	if out.Weeks[0].CompletedCount != 0 {
		t.Errorf("Completed count = %d, want 0", out.Weeks[0].CompletedCount)
	}
}

func TestListPlansWithoutClient(t *testing.T) {
	h, _ := newTestHandlers(false)

	if _, _, err := h.ListPlans(context.Background(), nil, ListPlansInput{}); err == nil {
		t.Error("Expected error when no client is configured")
	}
}
