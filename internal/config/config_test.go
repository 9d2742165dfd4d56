package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aidanlsb/daterange/internal/dates"
)

func TestPreferencesDefaults(t *testing.T) {
	prefs, err := (&Config{}).Preferences()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.WeekStart != dates.WeekStartMonday {
		t.Errorf("expected Monday week start, got %v", prefs.WeekStart)
	}
	if prefs.DateFormat != dates.FormatISO {
		t.Errorf("expected ISO format, got %v", prefs.DateFormat)
	}
	if prefs.Location != time.Local {
		t.Errorf("expected local timezone, got %v", prefs.Location)
	}
	if prefs.DefaultRange != dates.RangeThisWeek {
		t.Errorf("expected this-week default, got %v", prefs.DefaultRange)
	}

	var nilCfg *Config
	if _, err := nilCfg.Preferences(); err != nil {
		t.Fatalf("nil config should yield defaults, got %v", err)
	}
}

func TestPreferencesFromValues(t *testing.T) {
	cfg := &Config{
		WeekStart:    "sunday",
		DateFormat:   "International",
		Timezone:     "UTC",
		DefaultRange: "Last Month",
	}

	prefs, err := cfg.Preferences()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.WeekStart != dates.WeekStartSunday {
		t.Errorf("expected Sunday, got %v", prefs.WeekStart)
	}
	if prefs.DateFormat != dates.FormatInternational {
		t.Errorf("expected International, got %v", prefs.DateFormat)
	}
	if prefs.Location != time.UTC {
		t.Errorf("expected UTC, got %v", prefs.Location)
	}
	if prefs.DefaultRange != dates.RangeLastMonth {
		t.Errorf("expected last-month, got %v", prefs.DefaultRange)
	}
}

func TestPreferencesErrorsNameTheKey(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		key  string
	}{
		{name: "week start", cfg: Config{WeekStart: "someday"}, key: "week_start"},
		{name: "date format", cfg: Config{DateFormat: "klingon"}, key: "date_format"},
		{name: "timezone", cfg: Config{Timezone: "Mars/Olympus"}, key: "timezone"},
		{name: "default range", cfg: Config{DefaultRange: "fortnight"}, key: "default_range"},
		{name: "custom default", cfg: Config{DefaultRange: "custom"}, key: "default_range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Preferences()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.HasPrefix(err.Error(), tt.key+":") {
				t.Fatalf("expected error to name %q, got %v", tt.key, err)
			}
		})
	}
}

func TestConfigSet(t *testing.T) {
	cfg := &Config{}

	if err := cfg.Set("week_start", "7"); err != nil {
		t.Fatalf("Set(week_start): %v", err)
	}
	if cfg.WeekStart != "7" {
		t.Fatalf("expected week_start=7, got %q", cfg.WeekStart)
	}
	if err := cfg.Set("ui.accent", "39"); err != nil {
		t.Fatalf("Set(ui.accent): %v", err)
	}
	if cfg.UI.Accent != "39" {
		t.Fatalf("expected ui.accent=39, got %q", cfg.UI.Accent)
	}

	if err := cfg.Set("week_start", "someday"); err == nil {
		t.Fatal("expected invalid week start to be rejected")
	}
	if cfg.WeekStart != "7" {
		t.Fatalf("rejected value must not be applied, got %q", cfg.WeekStart)
	}
	if err := cfg.Set("vault", "x"); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}

	if err := cfg.Set("week_start", ""); err != nil {
		t.Fatalf("clearing should succeed: %v", err)
	}
	if cfg.WeekStart != "" {
		t.Fatalf("expected week_start cleared, got %q", cfg.WeekStart)
	}
}

func TestLoadFrom(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	content := `week_start = "sunday"
date_format = "US"
default_range = "today"

[ui]
accent = "#abc"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.WeekStart != "sunday" || cfg.DateFormat != "US" || cfg.DefaultRange != "today" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.UI.Accent != "#abc" {
		t.Fatalf("expected ui.accent, got %q", cfg.UI.Accent)
	}
}

func TestLoadFromNumericWeekStart(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    dates.WeekStartDay
	}{
		{"integer sunday", "week_start = 7\n", dates.WeekStartSunday},
		{"integer monday", "week_start = 1\n", dates.WeekStartMonday},
		{"quoted integer", "week_start = \"7\"\n", dates.WeekStartSunday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			cfg, err := LoadFrom(path)
			if err != nil {
				t.Fatalf("LoadFrom: %v", err)
			}
			prefs, err := cfg.Preferences()
			if err != nil {
				t.Fatalf("Preferences: %v", err)
			}
			if prefs.WeekStart != tt.want {
				t.Fatalf("week start = %s, want %s", prefs.WeekStart, tt.want)
			}
		})
	}
}

func TestLoadFromRejectsNonScalarWeekStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("week_start = [1, 7]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected an array week_start to be rejected")
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(path, []byte("week_start = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCreateDefault(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "config.toml")

	got, err := CreateDefault(path)
	if err != nil {
		t.Fatalf("CreateDefault: %v", err)
	}
	if got != path {
		t.Fatalf("expected %q, got %q", path, got)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("default config should parse: %v", err)
	}
	if _, err := cfg.Preferences(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	if err := os.WriteFile(path, []byte(`week_start = "sunday"`), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if _, err := CreateDefault(path); err != nil {
		t.Fatalf("CreateDefault on existing file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `week_start = "sunday"` {
		t.Fatalf("existing config was overwritten: %q", data)
	}
}
