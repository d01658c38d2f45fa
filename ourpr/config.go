// ABOUTME: Client configuration storage at XDG paths with env overrides
// ABOUTME: Tracks server URL, active plan selection, and device ID
package ourpr

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/oklog/ulid/v2"
)

// DefaultServer is the hosted OurPR API.
const DefaultServer = "https://api.ourpr.app"

// Config stores client settings: which server to talk to, which plan the
// commands operate on by default, and a stable device identifier.
type Config struct {
	Server       string `json:"server"`
	ActivePlanID string `json:"active_plan_id,omitempty"`
	DeviceID     string `json:"device_id"`
}

// ConfigDir returns the XDG-compliant directory for stride state.
func ConfigDir() string {
	return filepath.Join(xdg.DataHome, "stride")
}

// ConfigPath returns the XDG-compliant path for the client config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// LoadConfig loads client configuration. A missing file yields defaults.
// Environment variables override file values:
// - STRIDE_SERVER
// - STRIDE_PLAN_ID
// - STRIDE_DEVICE_ID.
func LoadConfig() (*Config, error) {
	path := ConfigPath()

	cfg := &Config{
		Server: DefaultServer,
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	applyEnvOverrides(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if server := os.Getenv("STRIDE_SERVER"); server != "" {
		cfg.Server = server
	}
	if planID := os.Getenv("STRIDE_PLAN_ID"); planID != "" {
		cfg.ActivePlanID = planID
	}
	if deviceID := os.Getenv("STRIDE_DEVICE_ID"); deviceID != "" {
		cfg.DeviceID = deviceID
	}
}

// SaveConfig writes client configuration with restricted permissions.
func SaveConfig(cfg *Config) error {
	path := ConfigPath()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// GenerateDeviceID generates a new ULID identifying this install.
func GenerateDeviceID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
