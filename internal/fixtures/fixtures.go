// Package fixtures loads dated test fixture entries from YAML and checks them
// against resolved date ranges.
package fixtures

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/daterange/internal/dates"
)

// Entry is a single dated fixture record.
type Entry struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
	Note string    `json:"note,omitempty"`
}

type fileFormat struct {
	Entries []rawEntry `yaml:"entries"`
}

type rawEntry struct {
	ID   string `yaml:"id"`
	Date string `yaml:"date"`
	Note string `yaml:"note"`
}

// Load reads a fixture file. Dates without an offset are read in loc.
func Load(path string, loc *time.Location) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	entries, err := Parse(data, loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Parse decodes fixture YAML of the form:
//
//	entries:
//	  - id: shift-1
//	    date: 2025-08-24
//	    note: closing
//
// Dates may be YYYY-MM-DD or datetimes accepted by dates.ParseDatetime.
func Parse(data []byte, loc *time.Location) ([]Entry, error) {
	if loc == nil {
		loc = time.UTC
	}

	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	seen := make(map[string]int, len(file.Entries))
	entries := make([]Entry, 0, len(file.Entries))
	for i, raw := range file.Entries {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			return nil, fmt.Errorf("entry %d: missing id", i)
		}
		if prev, ok := seen[id]; ok {
			return nil, fmt.Errorf("entry %d: duplicate id %q (first used by entry %d)", i, id, prev)
		}
		seen[id] = i

		when, err := parseEntryDate(raw.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, id, err)
		}
		entries = append(entries, Entry{ID: id, Date: when, Note: strings.TrimSpace(raw.Note)})
	}
	return entries, nil
}

func parseEntryDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	if dates.IsValidDate(value) {
		return dates.ParseDateIn(value, loc)
	}
	return dates.ParseDatetimeIn(value, loc)
}

// Partition splits entries into those inside iv and those outside, keeping
// input order.
func Partition(entries []Entry, iv dates.Interval) (in, out []Entry) {
	for _, e := range entries {
		if iv.Contains(e.Date) {
			in = append(in, e)
		} else {
			out = append(out, e)
		}
	}
	return in, out
}
