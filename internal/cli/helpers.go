package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/aidanlsb/daterange/internal/dates"
	"github.com/aidanlsb/daterange/internal/ui"
)

// intervalView is the JSON shape of a resolved range.
type intervalView struct {
	Range     string `json:"range"`
	Label     string `json:"label"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Days      int    `json:"days,omitempty"`
	Unbounded bool   `json:"unbounded,omitempty"`
	Display   string `json:"display"`
}

func newIntervalView(kind dates.RangeKind, iv dates.Interval) intervalView {
	view := intervalView{
		Range:   kind.String(),
		Label:   kind.Label(),
		Display: iv.Format(prefs.DateFormat),
	}
	if iv.IsUnbounded() {
		view.Unbounded = true
		return view
	}
	view.Start = iv.Start.Format(dates.DateLayout)
	view.End = iv.End.Format(dates.DateLayout)
	view.StartTime = iv.Start.Format(time.RFC3339)
	view.EndTime = iv.End.Format(time.RFC3339)
	view.Days = dayCount(kind, iv)
	return view
}

// dayCount is the number of days a user reads for a range. The day kinds
// end at the following midnight, which Days would count as a second day.
func dayCount(kind dates.RangeKind, iv dates.Interval) int {
	switch kind {
	case dates.RangeToday, dates.RangeYesterday:
		return 1
	}
	return iv.Days()
}

// referenceDate resolves --ref against the clock in the preferred timezone.
func referenceDate() (time.Time, error) {
	now := nowFunc().In(prefs.Location)
	ref, err := dates.ParseDateArg(referenceFlag, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --ref: %w", err)
	}
	return ref, nil
}

// parseKindArg parses an optional range argument, defaulting to the
// configured default range.
func parseKindArg(args []string, index int) (dates.RangeKind, error) {
	if len(args) <= index || strings.TrimSpace(args[index]) == "" {
		return prefs.DefaultRange, nil
	}
	return dates.ParseRangeKind(args[index])
}

// customBounds holds --start/--end for commands that accept a custom range.
type customBounds struct {
	start string
	end   string
}

func (b customBounds) set() bool {
	return strings.TrimSpace(b.start) != "" || strings.TrimSpace(b.end) != ""
}

// interval parses the flags as inclusive calendar days relative to ref.
func (b customBounds) interval(ref time.Time) (dates.Interval, error) {
	if strings.TrimSpace(b.start) == "" || strings.TrimSpace(b.end) == "" {
		return dates.Interval{}, fmt.Errorf("custom ranges need both --start and --end")
	}
	start, err := dates.ParseDateArg(b.start, ref)
	if err != nil {
		return dates.Interval{}, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := dates.ParseDateArg(b.end, ref)
	if err != nil {
		return dates.Interval{}, fmt.Errorf("invalid --end: %w", err)
	}
	iv := dates.Interval{Start: dates.StartOfDay(start), End: dates.StartOfDay(end)}
	if iv.End.Before(iv.Start) {
		return dates.Interval{}, fmt.Errorf("--end %s is before --start %s",
			iv.End.Format(dates.DateLayout), iv.Start.Format(dates.DateLayout))
	}
	return iv, nil
}

// resolveRange resolves kind at ref. Custom ranges come from the flags, or
// from the range saved in state when no flags are given. The returned error
// is already routed through handleError.
func resolveRange(kind dates.RangeKind, ref time.Time, bounds customBounds) (dates.Interval, error) {
	q := dates.RangeQuery{Kind: kind, WeekStart: prefs.WeekStart, Reference: ref}
	if kind != dates.RangeCustom {
		if bounds.set() {
			return dates.Interval{}, handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("--start/--end only apply to the custom range, not %s", kind), "")
		}
		return dates.Resolve(q), nil
	}

	if bounds.set() {
		iv, err := bounds.interval(ref)
		if err != nil {
			return dates.Interval{}, handleError(ErrInvalidInput, err, "Use YYYY-MM-DD or today/yesterday/tomorrow")
		}
		q.Custom = iv
		return dates.Resolve(q), nil
	}

	iv, ok, err := savedCustomRange()
	if err != nil {
		return dates.Interval{}, handleError(ErrStateInvalid, err, "Run 'drange custom clear' and set it again")
	}
	if !ok {
		return dates.Interval{}, handleErrorMsg(ErrCustomRangeNotSet, "no custom range given",
			"Pass --start and --end, or save one with 'drange custom set --start <date> --end <date>'")
	}
	q.Custom = iv
	return dates.Resolve(q), nil
}

// printInterval prints a one-line text summary of a resolved range.
func printInterval(kind dates.RangeKind, iv dates.Interval) {
	if iv.IsUnbounded() {
		fmt.Printf("%s  %s\n", ui.Header(kind.Label()), ui.Hint("no date filtering"))
		return
	}
	fmt.Printf("%s  %s  %s\n",
		ui.Header(kind.Label()),
		ui.Label(iv.Format(prefs.DateFormat)),
		ui.Hint(ui.Count(dayCount(kind, iv), "day", "days")))
}
