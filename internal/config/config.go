// Package config handles global TaskPilot configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the global TaskPilot configuration.
type Config struct {
	// DataDir is where the database and audit log live.
	// Defaults to ~/.local/share/taskpilot.
	DataDir string `toml:"data_dir"`

	// DefaultDuration is the estimated duration, in minutes, for tasks
	// created without one. Defaults to 30.
	DefaultDuration int `toml:"default_duration"`

	// WeekStart is the first day of the week for progress queries
	// ("monday", "sunday", ...). Defaults to monday.
	WeekStart string `toml:"week_start"`

	// Audit enables the append-only mutation log. Defaults to true.
	Audit *bool `toml:"audit"`

	// Vocabulary is an optional path to a YAML file of extra field and
	// status synonyms merged into the built-in tables at startup.
	Vocabulary string `toml:"vocabulary"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// DefaultPath returns the default config file location,
// ~/.config/taskpilot/config.toml.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(configDir, "taskpilot", "config.toml"), nil
}

// Load reads the config at path. A missing file is not an error: defaults
// apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// ResolveDataDir returns the configured data directory, expanding a leading
// "~", or the default location.
func (c *Config) ResolveDataDir() (string, error) {
	if strings.TrimSpace(c.DataDir) != "" {
		return expandHome(c.DataDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "taskpilot"), nil
}

// ResolveDefaultDuration returns the configured default task duration.
func (c *Config) ResolveDefaultDuration() int {
	if c.DefaultDuration > 0 {
		return c.DefaultDuration
	}
	return 30
}

// ResolveWeekStart parses the configured week start day.
func (c *Config) ResolveWeekStart() (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(c.WeekStart))
	if name == "" {
		return time.Monday, nil
	}
	days := map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}
	day, ok := days[name]
	if !ok {
		return time.Monday, fmt.Errorf("invalid week_start '%s'", c.WeekStart)
	}
	return day, nil
}

// AuditEnabled reports whether the audit log should be written.
func (c *Config) AuditEnabled() bool {
	if c.Audit == nil {
		return true
	}
	return *c.Audit
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand '~': %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
