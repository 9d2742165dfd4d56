package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aidanlsb/daterange/internal/slugs"
)

// WeekStartDay is the weekday a displayed week begins on, in the locale-like
// encoding 1 = Monday ... 7 = Sunday.
type WeekStartDay int

const (
	WeekStartMonday    WeekStartDay = 1
	WeekStartTuesday   WeekStartDay = 2
	WeekStartWednesday WeekStartDay = 3
	WeekStartThursday  WeekStartDay = 4
	WeekStartFriday    WeekStartDay = 5
	WeekStartSaturday  WeekStartDay = 6
	WeekStartSunday    WeekStartDay = 7
)

// DefaultWeekStart is used when no preference is configured.
const DefaultWeekStart = WeekStartMonday

// WeekStartFromWeekday converts a time.Weekday to the 1..7 encoding.
func WeekStartFromWeekday(wd time.Weekday) WeekStartDay {
	if wd == time.Sunday {
		return WeekStartSunday
	}
	return WeekStartDay(wd)
}

// Valid reports whether d is in 1..7.
func (d WeekStartDay) Valid() bool {
	return d >= WeekStartMonday && d <= WeekStartSunday
}

// Weekday converts d to a time.Weekday.
func (d WeekStartDay) Weekday() time.Weekday {
	if d == WeekStartSunday {
		return time.Sunday
	}
	return time.Weekday(d)
}

// String returns the lowercase weekday name, or "" when d is not set.
func (d WeekStartDay) String() string {
	if !d.Valid() {
		return ""
	}
	return strings.ToLower(d.Weekday().String())
}

// ParseWeekStartDay accepts weekday names ("monday"), three-letter
// abbreviations ("sun") and the numeric encoding 1..7.
func ParseWeekStartDay(s string) (WeekStartDay, error) {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.Atoi(trimmed); err == nil {
		d := WeekStartDay(n)
		if !d.Valid() {
			return 0, fmt.Errorf("week start %d out of range (1 = Monday ... 7 = Sunday)", n)
		}
		return d, nil
	}

	key := slugs.Keyword(trimmed)
	if key != "" {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			name := strings.ToLower(wd.String())
			if key == name || key == name[:3] {
				return WeekStartFromWeekday(wd), nil
			}
		}
	}
	return 0, fmt.Errorf("unknown week start %q (expected a weekday name or 1-7)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d WeekStartDay) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid week start %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *WeekStartDay) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekStartDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Set implements pflag.Value so the type can back a command-line flag.
func (d *WeekStartDay) Set(s string) error {
	return d.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (d *WeekStartDay) Type() string {
	return "weekday"
}
