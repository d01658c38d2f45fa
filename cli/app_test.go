// ABOUTME: Tests for shared command plumbing
// ABOUTME: Covers date resolution and error message mapping
package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/harperreed/stride/ourpr"
	"github.com/harperreed/stride/schedule"
)

func TestResolveDateDefaultsToToday(t *testing.T) {
	date, err := resolveDate(nil, func() string { return "2026-03-10" })
	if err != nil {
		t.Fatalf("resolveDate failed: %v", err)
	}
	if date != "2026-03-10" {
		t.Errorf("date = %q, want 2026-03-10", date)
	}
}

func TestResolveDateUsesArgument(t *testing.T) {
	date, err := resolveDate([]string{"2026-03-12"}, func() string { return "2026-03-10" })
	if err != nil {
		t.Fatalf("resolveDate failed: %v", err)
	}
	if date != "2026-03-12" {
		t.Errorf("date = %q, want 2026-03-12", date)
	}
}

func TestResolveDateRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"tomorrow", "03/12/2026", "2026-3-12"} {
		if _, err := resolveDate([]string{bad}, func() string { return "2026-03-10" }); err == nil {
			t.Errorf("resolveDate(%q) should fail", bad)
		}
	}
}

func TestFriendlyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"unauthenticated", fmt.Errorf("wrap: %w", ourpr.ErrUnauthenticated), "stride login"},
		{"day not found", fmt.Errorf("wrap: %w", schedule.ErrDayNotFound), "stride plan"},
		{"out of range", fmt.Errorf("wrap: %w", schedule.ErrShiftOutOfRange), "edge of its week"},
		{"busy", fmt.Errorf("wrap: %w", schedule.ErrBusy), "still saving"},
		{"no calendar", fmt.Errorf("wrap: %w", schedule.ErrNoCalendar), "calendar connect"},
		{"unreachable", &ourpr.UnreachableError{Err: errors.New("dial tcp: refused")}, "cannot reach"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := friendlyError(tc.err)
			if got == nil || !strings.Contains(got.Error(), tc.want) {
				t.Errorf("friendlyError(%v) = %v, want it to mention %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestFriendlyErrorPassesThroughUnknown(t *testing.T) {
	plain := errors.New("some other failure")
	if got := friendlyError(plain); got != plain {
		t.Errorf("friendlyError(%v) = %v, want unchanged", plain, got)
	}
}
