// ABOUTME: Web UI server with embedded templates
// ABOUTME: Read-only localhost dashboard over the schedule session
package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/harperreed/stride/models"
	"github.com/harperreed/stride/schedule"
	"github.com/harperreed/stride/viz"
)

//go:embed templates/*
var templatesFS embed.FS

type Server struct {
	sess      *schedule.Session
	templates *template.Template
}

func NewServer(sess *schedule.Session) *Server {
	return &Server{
		sess:      sess,
		templates: template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")),
	}
}

// ListenAndServe starts the dashboard on addr. The dashboard only reads
// session snapshots; every mutation still goes through the CLI, TUI, or
// MCP surfaces.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/plan", s.handlePlan)
	mux.HandleFunc("/refresh", s.handleRefresh)

	log.Printf("Starting web server at http://%s", addr)
	return http.ListenAndServe(addr, mux)
}

// WeekBarView is one row of the progress section.
type WeekBarView struct {
	WeekNumber     int
	Consistency    *int
	BarWidth       int
	CompletedCount int
	PlannedCount   int
	Current        bool
}

// DayRowView is one schedule row.
type DayRowView struct {
	Date        string
	DayOfWeek   string
	Type        string
	Emoji       string
	Description string
	Distance    string
	Duration    string
	Intensity   string
	Notes       []string
	Status      string
	StateClass  string
	Today       bool
	Synced      bool
}

// WeekScheduleView is one rendered week of the schedule.
type WeekScheduleView struct {
	WeekNumber int
	StartDate  string
	EndDate    string
	Mileage    string
	Current    bool
	Days       []DayRowView
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	plan := s.sess.Plan()
	now := s.sess.Now()
	report := viz.BuildProgressReport(plan, now)

	var weeks []WeekBarView
	for _, week := range report.Weeks {
		bar := WeekBarView{
			WeekNumber:     week.WeekNumber,
			Consistency:    week.Consistency,
			CompletedCount: week.CompletedCount,
			PlannedCount:   week.PlannedCount,
			Current:        week.State == models.WeekCurrent,
		}
		if week.Consistency != nil {
			bar.BarWidth = *week.Consistency
		}
		weeks = append(weeks, bar)
	}

	overallWidth := 0
	if report.Overall != nil {
		overallWidth = *report.Overall
	}

	var thisWeek *WeekScheduleView
	for wi := range plan.Weeks {
		if plan.Weeks[wi].State(now) == models.WeekCurrent {
			view := weekScheduleView(&plan.Weeks[wi], now)
			thisWeek = &view
			break
		}
	}

	data := map[string]interface{}{
		"Title":            "Dashboard",
		"ContentTemplate":  "dashboard-content",
		"RaceName":         plan.RaceName,
		"RaceDistance":     plan.RaceDistance,
		"RaceDate":         plan.RaceDate,
		"DaysToRace":       report.DaysToRace,
		"Overall":          report.Overall,
		"OverallBarWidth":  overallWidth,
		"Weeks":            weeks,
		"ThisWeek":         thisWeek,
		"SyncedToCalendar": plan.SyncedToCalendar(),
		"GeneratedAt":      now.Local().Format("2006-01-02 15:04"),
	}

	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	plan := s.sess.Plan()
	now := s.sess.Now()

	var weeks []WeekScheduleView
	for wi := range plan.Weeks {
		weeks = append(weeks, weekScheduleView(&plan.Weeks[wi], now))
	}

	data := map[string]interface{}{
		"Title":           "Schedule",
		"ContentTemplate": "plan-content",
		"RaceName":        plan.RaceName,
		"RaceDistance":    plan.RaceDistance,
		"RaceDate":        plan.RaceDate,
		"Weeks":           weeks,
	}

	s.renderTemplate(w, "layout.html", data)
}

// handleRefresh refetches the plan from the store and bounces back to the
// dashboard. Still read-only; nothing local is written.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.sess.Refresh(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	err := s.templates.ExecuteTemplate(w, name, data)
	if err != nil {
		log.Printf("Template error rendering %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func weekScheduleView(week *models.Week, now time.Time) WeekScheduleView {
	view := WeekScheduleView{
		WeekNumber: week.WeekNumber,
		StartDate:  week.StartDate,
		EndDate:    week.EndDate,
		Mileage:    week.Mileage,
		Current:    week.State(now) == models.WeekCurrent,
	}

	for di := range week.Days {
		day := &week.Days[di]
		view.Days = append(view.Days, DayRowView{
			Date:        day.Date,
			DayOfWeek:   day.DayOfWeek,
			Type:        string(day.Type),
			Emoji:       day.Type.Info().Emoji,
			Description: day.Description,
			Distance:    day.Distance,
			Duration:    day.Duration,
			Intensity:   day.Intensity,
			Notes:       day.Notes,
			Status:      day.Status,
			StateClass:  dayStateClass(day, now),
			Today:       day.State(now) == models.DayToday,
			Synced:      day.Synced(),
		})
	}

	return view
}

// dayStateClass maps a day to its CSS class.
func dayStateClass(day *models.Day, now time.Time) string {
	switch {
	case day.IsRest():
		return "rest"
	case day.Status == models.StatusCompleted:
		return "completed"
	case day.Status == models.StatusSkipped:
		return "skipped"
	case day.State(now) == models.DayPast:
		return "missed"
	default:
		return "upcoming"
	}
}
