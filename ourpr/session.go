// ABOUTME: Session credential storage for the OurPR API
// ABOUTME: Persists the bearer token at an XDG path with restricted permissions
package ourpr

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Session holds the bearer credential obtained at login.
type Session struct {
	AccessToken string    `json:"access_token"`
	Email       string    `json:"email,omitempty"`
	SavedAt     time.Time `json:"saved_at"`
}

// SessionPath returns the XDG-compliant path for the stored session.
func SessionPath() string {
	return filepath.Join(ConfigDir(), "session.json")
}

// SaveSession writes the session token to disk, mode 0600.
func SaveSession(session *Session) error {
	path := SessionPath()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(session); err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	return nil
}

// LoadSession reads the stored session. Returns ErrUnauthenticated when no
// session file exists or it carries no token.
func LoadSession() (*Session, error) {
	f, err := os.Open(SessionPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var session Session
	if err := json.NewDecoder(f).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	if session.AccessToken == "" {
		return nil, ErrUnauthenticated
	}

	return &session, nil
}

// ClearSession deletes the stored session. Missing file is not an error.
func ClearSession() error {
	err := os.Remove(SessionPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
