package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aidanlsb/daterange/internal/slugs"
)

// DateFormatPattern is one of the date formats a UI may display.
type DateFormatPattern string

const (
	FormatUS            DateFormatPattern = "M/d/yyyy"
	FormatInternational DateFormatPattern = "d/M/yyyy"
	FormatWritten       DateFormatPattern = "MMM d, yyyy"
	FormatISO           DateFormatPattern = "yyyy-MM-dd"
)

// AllDateFormats returns the supported patterns in settings order.
func AllDateFormats() []DateFormatPattern {
	return []DateFormatPattern{FormatUS, FormatInternational, FormatWritten, FormatISO}
}

var formatInfo = map[DateFormatPattern]struct {
	name   string
	layout string
}{
	FormatUS:            {name: "US", layout: "1/2/2006"},
	FormatInternational: {name: "International", layout: "2/1/2006"},
	FormatWritten:       {name: "Written", layout: "Jan 2, 2006"},
	FormatISO:           {name: "ISO", layout: DateLayout},
}

// Valid reports whether p is a supported pattern.
func (p DateFormatPattern) Valid() bool {
	_, ok := formatInfo[p]
	return ok
}

// Name returns the settings option name: US, International, Written or ISO.
func (p DateFormatPattern) Name() string {
	if info, ok := formatInfo[p]; ok {
		return info.name
	}
	return string(p)
}

// Layout returns the Go time layout for p, defaulting to ISO.
func (p DateFormatPattern) Layout() string {
	if info, ok := formatInfo[p]; ok {
		return info.layout
	}
	return DateLayout
}

// Format renders t's calendar date using p.
func (p DateFormatPattern) Format(t time.Time) string {
	return t.Format(p.Layout())
}

// Parse reads a displayed date as midnight in loc.
func (p DateFormatPattern) Parse(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(p.Layout(), strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q as %s: %w", s, p, err)
	}
	return t, nil
}

// ParseDateFormatPreference maps a settings option (US, International,
// Written, ISO) or a raw pattern to a DateFormatPattern.
func ParseDateFormatPreference(s string) (DateFormatPattern, error) {
	trimmed := strings.TrimSpace(s)
	if p := DateFormatPattern(trimmed); p.Valid() {
		return p, nil
	}
	key := slugs.Keyword(trimmed)
	for p, info := range formatInfo {
		if key == slugs.Keyword(info.name) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown date format %q (expected US, International, Written or ISO)", s)
}

// MarshalText implements encoding.TextMarshaler using the option name.
func (p DateFormatPattern) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid date format %q", string(p))
	}
	return []byte(p.Name()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *DateFormatPattern) UnmarshalText(text []byte) error {
	parsed, err := ParseDateFormatPreference(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// String returns the raw pattern, e.g. "M/d/yyyy".
func (p DateFormatPattern) String() string {
	return string(p)
}

// Set implements pflag.Value.
func (p *DateFormatPattern) Set(s string) error {
	return p.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (p *DateFormatPattern) Type() string {
	return "format"
}

// InferDateFormat guesses which pattern produced sample.
//
// Punctuation decides first: "-" means ISO and "," means Written. Slashed
// samples are disambiguated by comparing their first two components with the
// current month. When the month does not decide, the current day is compared
// the same way (first == day means International, second == day means US);
// this day step extends the month rule and only runs when neither component
// is the month. Otherwise FormatUS is returned. A sample whose components
// both equal the current month resolves to FormatUS.
func InferDateFormat(sample string, todayMonth, todayDay int) DateFormatPattern {
	switch {
	case strings.Contains(sample, "-"):
		return FormatISO
	case strings.Contains(sample, ","):
		return FormatWritten
	case strings.Contains(sample, "/"):
		first, second, ok := slashComponents(sample)
		if !ok {
			return FormatUS
		}
		switch {
		case first == todayMonth:
			return FormatUS
		case second == todayMonth:
			return FormatInternational
		case first == todayDay:
			return FormatInternational
		case second == todayDay:
			return FormatUS
		}
	}
	return FormatUS
}

// InferDateFormatAt is InferDateFormat with month and day taken from today.
func InferDateFormatAt(sample string, today time.Time) DateFormatPattern {
	return InferDateFormat(sample, int(today.Month()), today.Day())
}

func slashComponents(sample string) (int, int, bool) {
	parts := strings.Split(strings.TrimSpace(sample), "/")
	if len(parts) < 2 {
		return 0, 0, false
	}
	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	second, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return first, second, true
}
