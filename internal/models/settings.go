// Package models contains data structures used throughout the application
package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Settings contains all application settings
type Settings struct {
	mu sync.RWMutex `json:"-"`

	// Data source settings
	APIURL         string `json:"apiUrl"`         // GraphQL endpoint of the substance data service
	RequestTimeout int    `json:"requestTimeout"` // Seconds (5-120)
	CatalogPath    string `json:"catalogPath"`    // Offline YAML/JSON catalog, used instead of the API when set

	// Ingestion defaults
	DefaultRoute string `json:"defaultRoute"` // e.g. "oral"
	DefaultUnit  string `json:"defaultUnit"`  // e.g. "mg"

	// Chart settings
	ChartWidth       int    `json:"chartWidth"`
	ChartHeight      int    `json:"chartHeight"`
	ChartSamples     int    `json:"chartSamples"`     // Curve samples across the timeline
	ChartColorCurve  string `json:"chartColorCurve"`  // Hex color
	ChartColorComeup string `json:"chartColorComeup"` // Hex color
	ChartColorOffset string `json:"chartColorOffset"` // Hex color
	ChartShowNow     bool   `json:"chartShowNow"`     // Show current time marker
	SparklineHeight  int    `json:"sparklineHeight"`  // Terminal rows

	// Alert settings. Alert history is kept in alerts.json beside the
	// settings file, so repeats apply across separate status runs.
	EnableNotifications bool `json:"enableNotifications"`
	RepeatAlertMinutes  int  `json:"repeatAlertMinutes"` // 0 = no repeat

	// Logging
	LogLevel string `json:"logLevel"` // "debug", "info", "warn", "error"
	LogColor bool   `json:"logColor"`
}

// DefaultSettings returns settings with default values
func DefaultSettings() *Settings {
	return &Settings{
		APIURL:         "https://api.psychonautwiki.org/",
		RequestTimeout: 30,
		CatalogPath:    "",

		DefaultRoute: "oral",
		DefaultUnit:  "mg",

		ChartWidth:       900,
		ChartHeight:      360,
		ChartSamples:     240,
		ChartColorCurve:  "#4ade80", // Green
		ChartColorComeup: "#facc15", // Yellow
		ChartColorOffset: "#f97316", // Orange
		ChartShowNow:     true,
		SparklineHeight:  6,

		EnableNotifications: true,
		RepeatAlertMinutes:  0,

		LogLevel: "info",
		LogColor: true,
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	appDir := filepath.Join(configDir, "dose-timeline")
	if err := os.MkdirAll(appDir, 0750); err != nil {
		return "", err
	}

	return appDir, nil
}

// GetConfigPath returns the full path to the config file
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}

// GetAlertStatePath returns the path of the notification history file
func GetAlertStatePath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "alerts.json"), nil
}

// Load loads settings from the default config path
func (s *Settings) Load() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return s.LoadFile(path)
}

// LoadFile loads settings from path. A missing file leaves the defaults in place.
func (s *Settings) LoadFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path) //nolint:gosec // Config path comes from the app or the user's own flag
	if err != nil {
		if os.IsNotExist(err) {
			s.copySettingsFields(DefaultSettings())
			return nil
		}
		return err
	}

	return json.Unmarshal(data, s)
}

// Save saves settings to the default config path
func (s *Settings) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return s.SaveFile(path)
}

// SaveFile saves settings to path
func (s *Settings) SaveFile(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Clone creates a copy of the settings
func (s *Settings) Clone() *Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clone := &Settings{}
	clone.copySettingsFields(s)
	return clone
}

// Update updates settings from another Settings object
func (s *Settings) Update(other *Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	other.mu.RLock()
	defer other.mu.RUnlock()

	s.copySettingsFields(other)
}

// copySettingsFields copies all fields from other to s, excluding the mutex.
// The caller must hold the necessary locks on s and other.
func (s *Settings) copySettingsFields(other *Settings) {
	s.APIURL = other.APIURL
	s.RequestTimeout = other.RequestTimeout
	s.CatalogPath = other.CatalogPath
	s.DefaultRoute = other.DefaultRoute
	s.DefaultUnit = other.DefaultUnit
	s.ChartWidth = other.ChartWidth
	s.ChartHeight = other.ChartHeight
	s.ChartSamples = other.ChartSamples
	s.ChartColorCurve = other.ChartColorCurve
	s.ChartColorComeup = other.ChartColorComeup
	s.ChartColorOffset = other.ChartColorOffset
	s.ChartShowNow = other.ChartShowNow
	s.SparklineHeight = other.SparklineHeight
	s.EnableNotifications = other.EnableNotifications
	s.RepeatAlertMinutes = other.RepeatAlertMinutes
	s.LogLevel = other.LogLevel
	s.LogColor = other.LogColor
}

// UsesCatalog returns true if an offline catalog replaces the API
func (s *Settings) UsesCatalog() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.CatalogPath != ""
}

// Validate clamps out-of-range numeric settings back to sane values
func (s *Settings) Validate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	defaults := DefaultSettings()
	if s.RequestTimeout < 5 || s.RequestTimeout > 120 {
		s.RequestTimeout = defaults.RequestTimeout
	}
	if s.ChartWidth < 200 {
		s.ChartWidth = defaults.ChartWidth
	}
	if s.ChartHeight < 100 {
		s.ChartHeight = defaults.ChartHeight
	}
	if s.ChartSamples < 2 {
		s.ChartSamples = defaults.ChartSamples
	}
	if s.SparklineHeight < 1 {
		s.SparklineHeight = defaults.SparklineHeight
	}
	if s.RepeatAlertMinutes < 0 {
		s.RepeatAlertMinutes = 0
	}
	if s.APIURL == "" {
		s.APIURL = defaults.APIURL
	}
}
