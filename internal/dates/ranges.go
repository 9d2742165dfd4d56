package dates

import (
	"fmt"
	"math"
	"time"
)

// Unix seconds between year 1 and 1970; time.Time counts from year 1.
const secondsBeforeUnixEpoch = 62135596800

var (
	// MinTime is the earliest representable instant: time.Time's internal
	// seconds-since-year-1 counter at math.MinInt64.
	MinTime = time.Unix(math.MinInt64+secondsBeforeUnixEpoch, 0).UTC()
	// MaxTime is the latest representable instant.
	MaxTime = time.Unix(math.MaxInt64-secondsBeforeUnixEpoch, 999999999).UTC()
)

// Interval is a resolved date range. Both bounds are inclusive.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Unbounded returns the sentinel interval meaning "no filtering".
func Unbounded() Interval {
	return Interval{Start: MinTime, End: MaxTime}
}

// IsUnbounded reports whether iv is the "all" sentinel.
func (iv Interval) IsUnbounded() bool {
	return iv.Start.Equal(MinTime) && iv.End.Equal(MaxTime)
}

// IsZero reports whether neither bound is set.
func (iv Interval) IsZero() bool {
	return iv.Start.IsZero() && iv.End.IsZero()
}

// Contains reports whether Start <= t <= End.
//
// For today and yesterday End is the following midnight, so an instant exactly
// at that midnight is still contained.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && !t.After(iv.End)
}

// Days returns the number of calendar days from Start to End inclusive,
// or 0 for the unbounded sentinel and inverted intervals.
func (iv Interval) Days() int {
	if iv.IsUnbounded() || iv.End.Before(iv.Start) {
		return 0
	}
	// Count in UTC so DST transitions don't shorten or lengthen a day.
	end := iv.End.In(iv.Start.Location())
	s := time.Date(iv.Start.Year(), iv.Start.Month(), iv.Start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s)/(24*time.Hour)) + 1
}

// Format renders the interval for display using pattern.
func (iv Interval) Format(pattern DateFormatPattern) string {
	if iv.IsUnbounded() {
		return RangeAll.Label()
	}
	return fmt.Sprintf("%s - %s", pattern.Format(iv.Start), pattern.Format(iv.End))
}

// RangeQuery describes a range to resolve.
type RangeQuery struct {
	Kind      RangeKind
	WeekStart WeekStartDay
	// Reference is the anchor for relative kinds; zero means time.Now().
	Reference time.Time
	// Custom is returned unchanged for RangeCustom.
	Custom Interval
}

// Resolve computes the interval for q.
//
// Bounds are midnights in the reference date's location. Week ranges start on
// the most recent WeekStart on or before the reference date and span seven
// calendar days. An invalid WeekStart falls back to DefaultWeekStart; an
// unknown Kind panics.
func Resolve(q RangeQuery) Interval {
	ref := q.Reference
	if ref.IsZero() {
		ref = time.Now()
	}
	weekStart := q.WeekStart
	if !weekStart.Valid() {
		weekStart = DefaultWeekStart
	}

	day := StartOfDay(ref)
	switch q.Kind {
	case RangeToday:
		return Interval{Start: day, End: day.AddDate(0, 0, 1)}
	case RangeYesterday:
		prev := day.AddDate(0, 0, -1)
		return Interval{Start: prev, End: day}
	case RangeThisWeek:
		start := WeekStartFor(ref, weekStart)
		return Interval{Start: start, End: start.AddDate(0, 0, 6)}
	case RangeLastWeek:
		start := WeekStartFor(ref, weekStart).AddDate(0, 0, -7)
		return Interval{Start: start, End: start.AddDate(0, 0, 6)}
	case RangeThisMonth:
		return monthInterval(day.Year(), day.Month(), day.Location())
	case RangeLastMonth:
		return monthInterval(day.Year(), day.Month()-1, day.Location())
	case RangeThisYear:
		return yearInterval(day.Year(), day.Location())
	case RangeLastYear:
		return yearInterval(day.Year()-1, day.Location())
	case RangeAll:
		return Unbounded()
	case RangeCustom:
		return q.Custom
	default:
		panic(fmt.Sprintf("dates: unhandled range kind %s", q.Kind))
	}
}

// WeekStartFor returns midnight of the most recent weekStart day on or before ref.
func WeekStartFor(ref time.Time, weekStart WeekStartDay) time.Time {
	day := StartOfDay(ref)
	back := (int(day.Weekday()) - int(weekStart.Weekday()) + 7) % 7
	return day.AddDate(0, 0, -back)
}

// WeekDays returns the seven midnights of the week containing ref.
func WeekDays(ref time.Time, weekStart WeekStartDay) []time.Time {
	start := WeekStartFor(ref, weekStart)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// month may be out of range; time.Date normalizes it across year boundaries.
func monthInterval(year int, month time.Month, loc *time.Location) Interval {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, loc)
	return Interval{Start: start, End: end}
}

func yearInterval(year int, loc *time.Location) Interval {
	return Interval{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, loc),
	}
}
