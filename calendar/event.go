// ABOUTME: Calendar event construction for workout days
// ABOUTME: Builds all-day events with the OurPR summary and HTML description format
package calendar

import (
	"fmt"
	"strings"

	"google.golang.org/api/calendar/v3"

	"github.com/harperreed/stride/models"
)

// DefaultPlanURL is the OurPR plan page linked from every event.
const DefaultPlanURL = "https://ourpr.app/plan"

// reminderMinutes puts a popup at 8:00 the morning before an all-day event
// (16 hours before midnight).
const reminderMinutes = 16 * 60

// buildEvent assembles the all-day calendar event for one workout day. The
// summary and description formats match what the OurPR backend writes, so
// events created here and by the web app look identical.
func buildEvent(raceName string, weekNumber int, day *models.Day, planURL string) *calendar.Event {
	return &calendar.Event{
		Summary:     fmt.Sprintf("OurPR: %s - %s", raceName, day.Type),
		Description: buildDescription(weekNumber, day, planURL),
		Start:       &calendar.EventDateTime{Date: day.Date},
		End:         &calendar.EventDateTime{Date: day.Date},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: reminderMinutes},
			},
			// UseDefault is a zero value; force it onto the wire so the
			// API does not fall back to the user's default reminders.
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

// buildDescription renders the HTML event body: workout info, metrics,
// motivation, notes, and a log-it link, joined with <br>.
func buildDescription(weekNumber int, day *models.Day, planURL string) string {
	info := day.Type.Info()

	parts := []string{
		fmt.Sprintf("%s <b>Workout Type:</b> %s", info.Emoji, day.Type),
		fmt.Sprintf("🗓️ <b>Plan Week:</b> %d, <b>Day:</b> %s", weekNumber, day.DayOfWeek),
		fmt.Sprintf("<br><b>Details:</b> %s", day.Description),
	}

	if day.Distance != "" {
		parts = append(parts, fmt.Sprintf("📏 <b>Distance:</b> %s", day.Distance))
	}
	if day.Duration != "" {
		parts = append(parts, fmt.Sprintf("⏱️ <b>Duration:</b> %s", day.Duration))
	}
	if day.Intensity != "" {
		parts = append(parts, fmt.Sprintf("⚡ <b>Intensity:</b> %s", day.Intensity))
	}

	parts = append(parts, fmt.Sprintf("<br>💡 <i>%s</i>", info.Motivation))

	if len(day.Notes) > 0 {
		var notes strings.Builder
		notes.WriteString("<ul>")
		for _, note := range day.Notes {
			notes.WriteString("<li>")
			notes.WriteString(note)
			notes.WriteString("</li>")
		}
		notes.WriteString("</ul>")
		parts = append(parts, fmt.Sprintf("<br>📝 <b>Notes:</b>%s", notes.String()))
	}

	parts = append(parts, fmt.Sprintf("<br><br>✅ Remember to log this workout in <a href='%s'>OurPR</a>!", planURL))

	return strings.Join(parts, "<br>")
}
