// ABOUTME: Google Calendar API client creation
// ABOUTME: Builds an authenticated calendar service from a stored OAuth token
package calendar

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// NewService creates a Google Calendar API service from the stored OAuth
// token. The oauth2 client refreshes the token transparently.
func NewService(ctx context.Context) (*calendar.Service, error) {
	token, err := LoadToken()
	if err != nil {
		return nil, fmt.Errorf("no Google token found. Run 'stride calendar connect' first: %w", err)
	}

	config := NewOAuthConfig()
	client := config.Client(ctx, token)

	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return service, nil
}
