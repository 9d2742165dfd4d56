package dates

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/daterange/internal/slugs"
)

// RangeKind is a named date range selectable by the user.
type RangeKind int

const (
	RangeToday RangeKind = iota
	RangeYesterday
	RangeThisWeek
	RangeLastWeek
	RangeThisMonth
	RangeLastMonth
	RangeThisYear
	RangeLastYear
	RangeAll
	RangeCustom
)

type rangeKindInfo struct {
	keyword string
	label   string
}

var rangeKinds = [...]rangeKindInfo{
	RangeToday:     {keyword: "today", label: "Today"},
	RangeYesterday: {keyword: "yesterday", label: "Yesterday"},
	RangeThisWeek:  {keyword: "this-week", label: "This Week"},
	RangeLastWeek:  {keyword: "last-week", label: "Last Week"},
	RangeThisMonth: {keyword: "this-month", label: "This Month"},
	RangeLastMonth: {keyword: "last-month", label: "Last Month"},
	RangeThisYear:  {keyword: "this-year", label: "This Year"},
	RangeLastYear:  {keyword: "last-year", label: "Last Year"},
	RangeAll:       {keyword: "all", label: "All"},
	RangeCustom:    {keyword: "custom", label: "Custom"},
}

// AllRangeKinds returns every range kind in display order.
func AllRangeKinds() []RangeKind {
	kinds := make([]RangeKind, len(rangeKinds))
	for i := range rangeKinds {
		kinds[i] = RangeKind(i)
	}
	return kinds
}

// Valid reports whether k is one of the declared kinds.
func (k RangeKind) Valid() bool {
	return k >= 0 && int(k) < len(rangeKinds)
}

// String returns the canonical keyword, e.g. "this-week".
func (k RangeKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("RangeKind(%d)", int(k))
	}
	return rangeKinds[k].keyword
}

// Label returns the display label, e.g. "This Week".
func (k RangeKind) Label() string {
	if !k.Valid() {
		return k.String()
	}
	return rangeKinds[k].label
}

// Relative reports whether the kind is computed from the reference date.
func (k RangeKind) Relative() bool {
	return k.Valid() && k != RangeAll && k != RangeCustom
}

// ParseRangeKind parses a keyword ("this-week"), identifier ("thisWeek") or
// label ("This Week").
func ParseRangeKind(s string) (RangeKind, error) {
	normalized := slugs.Keyword(s)
	for i, info := range rangeKinds {
		if info.keyword == normalized {
			return RangeKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown range %q (expected one of: %s)", s, rangeKeywordList())
}

func rangeKeywordList() string {
	keywords := make([]string, len(rangeKinds))
	for i, info := range rangeKinds {
		keywords[i] = info.keyword
	}
	return strings.Join(keywords, ", ")
}

// MarshalText implements encoding.TextMarshaler.
func (k RangeKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid range kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *RangeKind) UnmarshalText(text []byte) error {
	parsed, err := ParseRangeKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
