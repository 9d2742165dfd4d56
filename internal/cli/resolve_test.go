package cli

import (
	"errors"
	"strings"
	"testing"
)

type resolveJSON struct {
	Range      string `json:"range"`
	Label      string `json:"label"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Days       int    `json:"days"`
	Unbounded  bool   `json:"unbounded"`
	Display    string `json:"display"`
	Reference  string `json:"reference"`
	WeekStart  string `json:"week_start"`
	DateFormat string `json:"date_format"`
}

func TestResolveCommandRanges(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantStart string
		wantEnd   string
		wantDays  int
	}{
		{"this week monday start", []string{"this-week"}, "2025-08-18", "2025-08-24", 7},
		{"this week sunday start", []string{"thisWeek", "--week-start", "sunday"}, "2025-08-24", "2025-08-30", 7},
		{"last week numeric start", []string{"lastWeek", "--week-start", "7"}, "2025-08-17", "2025-08-23", 7},
		{"today", []string{"today"}, "2025-08-24", "2025-08-25", 1},
		{"yesterday", []string{"yesterday"}, "2025-08-23", "2025-08-24", 1},
		{"last month across year", []string{"last-month", "--ref", "2025-01-15"}, "2024-12-01", "2024-12-31", 31},
		{"this month leap february", []string{"this-month", "--ref", "2024-02-10"}, "2024-02-01", "2024-02-29", 29},
		{"last year", []string{"last_year"}, "2024-01-01", "2024-12-31", 366},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			args := append([]string{"resolve", "--json"}, tt.args...)
			out, err := env.run(t, args...)
			if err != nil {
				t.Fatalf("resolve: %v; out=%s", err, out)
			}
			resp := decodeEnvelope(t, out)
			if !resp.OK {
				t.Fatalf("expected ok=true; out=%s", out)
			}
			var got resolveJSON
			decodeData(t, resp, &got)
			if got.Start != tt.wantStart || got.End != tt.wantEnd {
				t.Fatalf("range = %s..%s, want %s..%s", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
			if got.Days != tt.wantDays {
				t.Fatalf("days = %d, want %d", got.Days, tt.wantDays)
			}
		})
	}
}

func TestResolveAllIsUnbounded(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "resolve", "all", "--json")
	if err != nil {
		t.Fatalf("resolve all: %v", err)
	}
	var got resolveJSON
	decodeData(t, decodeEnvelope(t, out), &got)
	if !got.Unbounded || got.Start != "" || got.End != "" {
		t.Fatalf("expected unbounded range without dates, got %+v", got)
	}
	if got.Display != "All" {
		t.Fatalf("display = %q, want All", got.Display)
	}
}

func TestResolveUsesConfiguredDefaults(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, `week_start = "sunday"
date_format = "US"
default_range = "lastWeek"
`)

	out, err := env.run(t, "resolve", "--json")
	if err != nil {
		t.Fatalf("resolve: %v; out=%s", err, out)
	}
	var got resolveJSON
	decodeData(t, decodeEnvelope(t, out), &got)
	if got.Range != "last-week" {
		t.Fatalf("range = %q, want last-week", got.Range)
	}
	if got.Start != "2025-08-17" || got.End != "2025-08-23" {
		t.Fatalf("range = %s..%s, want 2025-08-17..2025-08-23", got.Start, got.End)
	}
	if got.Display != "8/17/2025 - 8/23/2025" {
		t.Fatalf("display = %q", got.Display)
	}
	if got.WeekStart != "sunday" || got.DateFormat != "US" {
		t.Fatalf("preferences = %s/%s, want sunday/US", got.WeekStart, got.DateFormat)
	}
}

func TestResolveFlagsOverrideConfig(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "week_start = \"sunday\"\n")

	out, err := env.run(t, "resolve", "this-week", "--week-start", "monday", "--date-format", "written", "--json")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	var got resolveJSON
	decodeData(t, decodeEnvelope(t, out), &got)
	if got.Start != "2025-08-18" {
		t.Fatalf("start = %s, want 2025-08-18", got.Start)
	}
	if got.Display != "Aug 18, 2025 - Aug 24, 2025" {
		t.Fatalf("display = %q", got.Display)
	}
}

func TestResolveUnknownRange(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "resolve", "fortnight", "--json")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	expectErrorCode(t, out, err, ErrRangeUnknown)
}

func TestResolveUnknownRangeTextMode(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "resolve", "fortnight")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, errReported) {
		t.Fatal("text mode errors should be returned for printing")
	}
	if !strings.Contains(err.Error(), "drange ranges") {
		t.Fatalf("expected suggestion in error, got %q", err.Error())
	}
}

func TestResolveCustomRange(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "resolve", "custom", "--json")
	expectErrorCode(t, out, err, ErrCustomRangeNotSet)

	out, err = env.run(t, "resolve", "custom", "--start", "2025-01-01", "--end", "2025-01-31", "--json")
	if err != nil {
		t.Fatalf("resolve custom: %v; out=%s", err, out)
	}
	var got resolveJSON
	decodeData(t, decodeEnvelope(t, out), &got)
	if got.Start != "2025-01-01" || got.End != "2025-01-31" || got.Days != 31 {
		t.Fatalf("unexpected custom range %+v", got)
	}

	out, err = env.run(t, "resolve", "custom", "--start", "2025-02-01", "--end", "2025-01-01", "--json")
	expectErrorCode(t, out, err, ErrInvalidInput)

	out, err = env.run(t, "resolve", "custom", "--start", "2025-02-01", "--json")
	expectErrorCode(t, out, err, ErrInvalidInput)
}

func TestResolveBoundsRejectedForNamedRange(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "resolve", "this-week", "--start", "2025-01-01", "--json")
	expectErrorCode(t, out, err, ErrInvalidInput)
}

func TestResolveInvalidConfigFails(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "week_start = \"someday\"\n")

	out, err := env.run(t, "resolve", "today", "--json")
	resp := expectErrorCode(t, out, err, ErrConfigInvalid)
	if !strings.Contains(resp.Error.Message, "week_start") {
		t.Fatalf("expected message to name the key, got %q", resp.Error.Message)
	}
}

func TestResolveInvalidReference(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "resolve", "today", "--ref", "next tuesday", "--json")
	expectErrorCode(t, out, err, ErrInvalidInput)
}

func TestResolveTextOutput(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "resolve", "this-week")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, want := range []string{"This Week", "2025-08-18 - 2025-08-24", "(7 days)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
}

func TestResolveTodayTextShowsOneDay(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "resolve", "today")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(out, "(1 day)") {
		t.Fatalf("expected a one-day count, got %q", out)
	}
}

func TestResolveOffsetReferenceUsesConfiguredZone(t *testing.T) {
	env := newTestEnv(t)
	// 20:00 UTC on the 24th is already the 25th in Tokyo.
	out, err := env.run(t, "resolve", "today", "--tz", "Asia/Tokyo", "--ref", "2025-08-24T20:00:00Z", "--json")
	if err != nil {
		t.Fatalf("resolve: %v; out=%s", err, out)
	}
	var got struct {
		Start     string `json:"start"`
		StartTime string `json:"start_time"`
	}
	decodeData(t, decodeEnvelope(t, out), &got)
	if got.Start != "2025-08-25" || got.StartTime != "2025-08-25T00:00:00+09:00" {
		t.Fatalf("today = %s (%s), want 2025-08-25 in Tokyo", got.Start, got.StartTime)
	}
}

func TestResolveNumericWeekStartInConfig(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "week_start = 7\n")

	out, err := env.run(t, "resolve", "this-week", "--json")
	if err != nil {
		t.Fatalf("resolve: %v; out=%s", err, out)
	}
	var got resolveJSON
	decodeData(t, decodeEnvelope(t, out), &got)
	if got.WeekStart != "sunday" || got.Start != "2025-08-24" || got.End != "2025-08-30" {
		t.Fatalf("unexpected week: %+v", got)
	}
}
