// ABOUTME: Consistency and adherence percentages computed from workout statuses
// ABOUTME: Read-only projections, recomputed on demand, nil when nothing measurable
package models

import (
	"math"
	"time"
)

// WeeklyConsistency returns the percentage of elapsed non-Rest workouts in
// the week that are completed, rounded to the nearest integer. A day counts
// as elapsed when its date is on or before today. Returns nil when no
// non-Rest day has elapsed yet, so callers never divide by zero.
func WeeklyConsistency(week *Week, now time.Time) *int {
	considered := 0
	completed := 0
	for i := range week.Days {
		day := &week.Days[i]
		if day.IsRest() || !day.Elapsed(now) {
			continue
		}
		considered++
		if day.Status == StatusCompleted {
			completed++
		}
	}

	if considered == 0 {
		return nil
	}

	pct := int(math.Round(float64(completed) / float64(considered) * 100))
	return &pct
}

// OverallAdherence applies the weekly consistency rule across every elapsed
// non-Rest day in the whole plan. Returns nil when no such day exists.
func OverallAdherence(plan *Plan, now time.Time) *int {
	considered := 0
	completed := 0
	for wi := range plan.Weeks {
		for di := range plan.Weeks[wi].Days {
			day := &plan.Weeks[wi].Days[di]
			if day.IsRest() || !day.Elapsed(now) {
				continue
			}
			considered++
			if day.Status == StatusCompleted {
				completed++
			}
		}
	}

	if considered == 0 {
		return nil
	}

	pct := int(math.Round(float64(completed) / float64(considered) * 100))
	return &pct
}
