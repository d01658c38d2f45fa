// ABOUTME: HTTP client for the OurPR plan store
// ABOUTME: Login, plan fetch, single-day status patch, and whole-plan patch
package ourpr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/stride/models"
)

// Client talks to the OurPR API. The bearer token is read at call time so a
// login or logout in another terminal takes effect immediately.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      func() (string, error)
}

// NewClient creates a client for the given server URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		token: func() (string, error) {
			session, err := LoadSession()
			if err != nil {
				return "", err
			}
			return session.AccessToken, nil
		},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a session token. The caller decides
// whether to persist the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", loginRequest{Email: email, Password: password}, &resp, false)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}

	return &Session{
		AccessToken: resp.AccessToken,
		Email:       email,
		SavedAt:     time.Now(),
	}, nil
}

// ListPlans fetches summaries of the user's generated training plans.
func (c *Client) ListPlans(ctx context.Context) ([]models.PlanSummary, error) {
	var plans []models.PlanSummary
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me/plans", nil, &plans, true); err != nil {
		return nil, err
	}
	return plans, nil
}

// GetPlan fetches the full plan aggregate. This is also the refetch path
// after calendar sync and remove operations.
func (c *Client) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	var plan models.Plan
	path := fmt.Sprintf("/api/v1/users/me/plans/%s", planID)
	if err := c.do(ctx, http.MethodGet, path, nil, &plan, true); err != nil {
		return nil, err
	}
	return &plan, nil
}

type dayStatusPatch struct {
	Status string `json:"status"`
}

// UpdateDayStatus patches a single day's status, nothing else.
func (c *Client) UpdateDayStatus(ctx context.Context, planID, date, status string) error {
	path := fmt.Sprintf("/api/v1/users/me/plans/%s/days/%s", planID, date)
	return c.do(ctx, http.MethodPatch, path, dayStatusPatch{Status: status}, nil, true)
}

// UpdatePlan patches the entire plan aggregate. Last writer wins; there is
// no version token on this endpoint.
func (c *Client) UpdatePlan(ctx context.Context, plan *models.Plan) error {
	path := fmt.Sprintf("/api/v1/users/me/plans/%s", plan.ID)
	return c.do(ctx, http.MethodPatch, path, plan, nil, true)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	// The backend logs request ids, which makes support escalations traceable.
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		token, err := c.token()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UnreachableError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &UnreachableError{Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return nil

	case resp.StatusCode == http.StatusUnauthorized:
		msg := apiMessage(respBody)
		if msg == "" {
			msg = "session expired or invalid"
		}
		return fmt.Errorf("%s: %w", msg, ErrUnauthenticated)

	default:
		return &RemoteError{StatusCode: resp.StatusCode, Message: apiMessage(respBody)}
	}
}

// apiMessage pulls a human-readable message out of an error response body.
// The OurPR backend uses FastAPI-style {"detail": ...}; "message" and
// "error" are accepted for good measure.
func apiMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var envelope struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	switch {
	case envelope.Detail != "":
		return envelope.Detail
	case envelope.Message != "":
		return envelope.Message
	default:
		return envelope.Error
	}
}
