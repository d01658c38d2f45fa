// ABOUTME: Tests for the OurPR HTTP client
// ABOUTME: Verifies request shapes, auth headers, and error taxonomy mapping
package ourpr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harperreed/stride/models"
)

func newTestClient(serverURL string) *Client {
	client := NewClient(serverURL)
	client.token = func() (string, error) { return "test-token", nil }
	return client
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode login body: %v", err)
		}
		if req.Email != "runner@example.com" || req.Password != "hunter2" {
			t.Errorf("unexpected credentials: %+v", req)
		}

		_ = json.NewEncoder(w).Encode(loginResponse{AccessToken: "jwt-abc"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	session, err := client.Login(context.Background(), "runner@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.AccessToken != "jwt-abc" {
		t.Errorf("expected token jwt-abc, got %q", session.AccessToken)
	}
	if session.Email != "runner@example.com" {
		t.Errorf("expected email recorded, got %q", session.Email)
	}
}

func TestLoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Invalid login credentials"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "runner@example.com", "wrong")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestGetPlanSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer header, got %q", got)
		}
		if r.URL.Path != "/api/v1/users/me/plans/plan-123" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		_ = json.NewEncoder(w).Encode(models.Plan{
			ID:         "plan-123",
			RaceName:   "Chicago Half",
			TotalWeeks: 12,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	plan, err := client.GetPlan(context.Background(), "plan-123")
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if plan.RaceName != "Chicago Half" {
		t.Errorf("expected race name decoded, got %q", plan.RaceName)
	}
}

func TestUpdateDayStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/users/me/plans/plan-123/days/2026-03-10" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var patch dayStatusPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			t.Fatalf("failed to decode patch body: %v", err)
		}
		if patch.Status != models.StatusCompleted {
			t.Errorf("expected completed, got %q", patch.Status)
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if err := client.UpdateDayStatus(context.Background(), "plan-123", "2026-03-10", models.StatusCompleted); err != nil {
		t.Fatalf("UpdateDayStatus failed: %v", err)
	}
}

func TestUpdatePlanSendsWholeAggregate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/v1/users/me/plans/plan-123" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var plan models.Plan
		if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
			t.Fatalf("failed to decode plan body: %v", err)
		}
		if len(plan.Weeks) != 1 || len(plan.Weeks[0].Days) != 2 {
			t.Errorf("plan body not carried wholesale: %+v", plan)
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	plan := &models.Plan{
		ID: "plan-123",
		Weeks: []models.Week{{
			WeekNumber: 1,
			Days: []models.Day{
				{Date: "2026-03-02", DayOfWeek: "Monday", Type: models.WorkoutEasyRun, Status: models.StatusPending},
				{Date: "2026-03-03", DayOfWeek: "Tuesday", Type: models.WorkoutRest, Status: models.StatusPending},
			},
		}},
	}

	client := newTestClient(server.URL)
	if err := client.UpdatePlan(context.Background(), plan); err != nil {
		t.Fatalf("UpdatePlan failed: %v", err)
	}
}

func TestRemoteRejectionCarriesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail": "status must be one of pending, completed, skipped"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.UpdateDayStatus(context.Background(), "plan-123", "2026-03-10", "destroyed")

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remoteErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", remoteErr.StatusCode)
	}
	if remoteErr.Message != "status must be one of pending, completed, skipped" {
		t.Errorf("expected detail extracted, got %q", remoteErr.Message)
	}
}

func TestRemoteRejectionWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.UpdateDayStatus(context.Background(), "plan-123", "2026-03-10", models.StatusCompleted)

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remoteErr.Error() != "API error (status 500)" {
		t.Errorf("expected generic API error message, got %q", remoteErr.Error())
	}
}

func TestExpiredSessionMapsToUnauthenticated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "JWT expired"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetPlan(context.Background(), "plan-123")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestMissingTokenShortCircuits(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.token = func() (string, error) { return "", ErrUnauthenticated }

	_, err := client.GetPlan(context.Background(), "plan-123")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if requests != 0 {
		t.Errorf("expected no request without a credential, got %d", requests)
	}
}

func TestUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // shut down before the call

	client := newTestClient(server.URL)
	_, err := client.GetPlan(context.Background(), "plan-123")

	var unreachable *UnreachableError
	if !errors.As(err, &unreachable) {
		t.Fatalf("expected UnreachableError, got %v", err)
	}
}

func TestAPIMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"fastapi detail", `{"detail": "no plan found"}`, "no plan found"},
		{"message field", `{"message": "try later"}`, "try later"},
		{"error field", `{"error": "boom"}`, "boom"},
		{"empty body", ``, ""},
		{"non-json body", `<html>gateway timeout</html>`, ""},
		{"structured detail ignored", `{"detail": [{"loc": "body"}]}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apiMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("apiMessage(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
