// Package config handles global daterange configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/daterange/internal/dates"
)

// Config represents the global configuration file.
//
// Values are kept as written; Preferences validates and converts them.
type Config struct {
	// WeekStart is the first day of a displayed week: a weekday name or 1..7
	// (1 = Monday, 7 = Sunday).
	WeekStart WeekStartSetting `toml:"week_start"`

	// DateFormat is one of US, International, Written or ISO.
	DateFormat string `toml:"date_format"`

	// Timezone is an IANA zone name used for reference dates ("Local" or empty
	// means the machine zone).
	Timezone string `toml:"timezone"`

	// DefaultRange is the range resolved when none is given.
	DefaultRange string `toml:"default_range"`

	// StateFile overrides the state.toml location.
	StateFile string `toml:"state_file"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown code blocks.
	CodeTheme string `toml:"code_theme"`
}

// Preferences is the validated form of the user's date settings.
type Preferences struct {
	WeekStart    dates.WeekStartDay
	DateFormat   dates.DateFormatPattern
	Location     *time.Location
	DefaultRange dates.RangeKind
}

// DefaultPreferences returns the settings used when nothing is configured.
func DefaultPreferences() Preferences {
	return Preferences{
		WeekStart:    dates.DefaultWeekStart,
		DateFormat:   dates.FormatISO,
		Location:     time.Local,
		DefaultRange: dates.RangeThisWeek,
	}
}

// WeekStartSetting is the raw week_start value. It decodes from a TOML
// string or integer so `week_start = 7` and `week_start = "sunday"` both load.
type WeekStartSetting string

// UnmarshalTOML implements toml.Unmarshaler.
func (w *WeekStartSetting) UnmarshalTOML(v interface{}) error {
	switch val := v.(type) {
	case string:
		*w = WeekStartSetting(val)
	case int64:
		*w = WeekStartSetting(strconv.FormatInt(val, 10))
	default:
		return fmt.Errorf("week_start: expected a weekday name or 1..7, got %T", v)
	}
	return nil
}

// Preferences validates the configured values, filling defaults for empty ones.
func (c *Config) Preferences() (Preferences, error) {
	prefs := DefaultPreferences()
	if c == nil {
		return prefs, nil
	}

	if v := strings.TrimSpace(string(c.WeekStart)); v != "" {
		ws, err := dates.ParseWeekStartDay(v)
		if err != nil {
			return Preferences{}, fmt.Errorf("week_start: %w", err)
		}
		prefs.WeekStart = ws
	}
	if v := strings.TrimSpace(c.DateFormat); v != "" {
		format, err := dates.ParseDateFormatPreference(v)
		if err != nil {
			return Preferences{}, fmt.Errorf("date_format: %w", err)
		}
		prefs.DateFormat = format
	}
	if v := strings.TrimSpace(c.Timezone); v != "" {
		loc, err := LoadLocation(v)
		if err != nil {
			return Preferences{}, fmt.Errorf("timezone: %w", err)
		}
		prefs.Location = loc
	}
	if v := strings.TrimSpace(c.DefaultRange); v != "" {
		kind, err := dates.ParseRangeKind(v)
		if err != nil {
			return Preferences{}, fmt.Errorf("default_range: %w", err)
		}
		if kind == dates.RangeCustom {
			return Preferences{}, fmt.Errorf("default_range: custom needs explicit bounds and cannot be the default")
		}
		prefs.DefaultRange = kind
	}

	return prefs, nil
}

// LoadLocation resolves a timezone name; "" and "local" mean time.Local.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	if strings.EqualFold(name, "utc") {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

type settableKey struct {
	apply    func(c *Config, value string)
	validate func(value string) error
}

var settableKeys = map[string]settableKey{
	"week_start": {
		apply: func(c *Config, v string) { c.WeekStart = WeekStartSetting(v) },
		validate: func(v string) error {
			_, err := dates.ParseWeekStartDay(v)
			return err
		},
	},
	"date_format": {
		apply: func(c *Config, v string) { c.DateFormat = v },
		validate: func(v string) error {
			_, err := dates.ParseDateFormatPreference(v)
			return err
		},
	},
	"timezone": {
		apply: func(c *Config, v string) { c.Timezone = v },
		validate: func(v string) error {
			_, err := LoadLocation(v)
			return err
		},
	},
	"default_range": {
		apply: func(c *Config, v string) { c.DefaultRange = v },
		validate: func(v string) error {
			_, err := (&Config{DefaultRange: v}).Preferences()
			return err
		},
	},
	"state_file": {
		apply: func(c *Config, v string) { c.StateFile = v },
	},
	"ui.accent": {
		apply: func(c *Config, v string) { c.UI.Accent = v },
	},
	"ui.code_theme": {
		apply: func(c *Config, v string) { c.UI.CodeTheme = v },
	},
}

// SettableKeys returns the keys accepted by Set, sorted.
func SettableKeys() []string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set validates and assigns a single key. An empty value clears the key.
func (c *Config) Set(key, value string) error {
	entry, ok := settableKeys[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return fmt.Errorf("unknown config key %q (expected one of: %s)", key, strings.Join(SettableKeys(), ", "))
	}
	value = strings.TrimSpace(value)
	if value != "" && entry.validate != nil {
		if err := entry.validate(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	entry.apply(c, value)
	return nil
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/daterange/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "daterange", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "daterange", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

const defaultConfig = `# daterange configuration

# First day of a displayed week: a weekday name, or 1-7 (1 = Monday, 7 = Sunday)
# week_start = "monday"

# How dates are displayed: US (M/d/yyyy), International (d/M/yyyy),
# Written (MMM d, yyyy) or ISO (yyyy-MM-dd)
# date_format = "ISO"

# Timezone for reference dates (IANA name, or "Local")
# timezone = "Local"

# Range used by 'drange resolve' without an argument
# default_range = "this-week"

# Optional UI accent color for headers in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

// CreateDefault creates a default config file at path if it doesn't exist.
// An empty path means DefaultPath().
func CreateDefault(path string) (string, error) {
	configPath := strings.TrimSpace(path)
	if configPath == "" {
		configPath = DefaultPath()
	}

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil // Already exists
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
