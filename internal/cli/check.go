package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/daterange/internal/dates"
	"github.com/aidanlsb/daterange/internal/fixtures"
	"github.com/aidanlsb/daterange/internal/ui"
)

var (
	checkBounds customBounds
	checkExpect int
	checkAll    bool
)

type fixtureView struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Note string `json:"note,omitempty"`
}

type checkResult struct {
	File     string        `json:"file"`
	Range    intervalView  `json:"range"`
	Total    int           `json:"total"`
	Matched  []fixtureView `json:"matched"`
	Excluded []fixtureView `json:"excluded,omitempty"`
	Expected *int          `json:"expected,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check <fixtures.yaml> [range]",
	Short: "Check which fixture entries fall inside a range",
	Long: `Load dated entries from a YAML fixture file and report which fall
inside the resolved range. Bounds are inclusive.

Fixture format:
  entries:
    - id: shift-1
      date: 2025-08-24
      note: closing

Use --expect to fail when the number of matching entries differs, which is
handy in scripts and CI.

Examples:
  drange check shifts.yaml last-week
  drange check shifts.yaml this-month --expect 12
  drange check shifts.yaml custom --start 2025-01-01 --end 2025-01-15 --all`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKindArg(args, 1)
		if err != nil {
			return handleError(ErrRangeUnknown, err, "Run 'drange ranges' to see every range")
		}
		ref, err := referenceDate()
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		entries, err := fixtures.Load(args[0], prefs.Location)
		if err != nil {
			return handleError(ErrFixtureInvalid, err, "Each entry needs a unique id and a YYYY-MM-DD date")
		}

		iv, err := resolveRange(kind, ref, checkBounds)
		if err != nil {
			return err
		}

		in, out := fixtures.Partition(entries, iv)
		result := checkResult{
			File:     args[0],
			Range:    newIntervalView(kind, iv),
			Total:    len(entries),
			Matched:  fixtureViews(in),
			Excluded: fixtureViews(out),
		}
		if cmd.Flags().Changed("expect") {
			expected := checkExpect
			result.Expected = &expected
		}

		mismatch := result.Expected != nil && *result.Expected != len(in)
		if isJSONOutput() {
			if mismatch {
				return handleErrorWithDetails(ErrValidationFailed,
					fmt.Sprintf("expected %d entries in %s, got %d", checkExpect, kind, len(in)),
					"", result)
			}
			outputSuccess(result, &Meta{Count: len(in)})
			return nil
		}

		printInterval(kind, iv)
		fmt.Println()
		table := ui.NewTable(4)
		for _, e := range entries {
			if !checkAll && !iv.Contains(e.Date) {
				continue
			}
			status := ui.Hint("out")
			if iv.Contains(e.Date) {
				status = ui.Label("in")
			}
			table.AddRow(status, e.ID, prefs.DateFormat.Format(e.Date), e.Note)
		}
		if table.Len() > 0 {
			fmt.Print(table.String())
			fmt.Println()
		}
		fmt.Printf("%d of %d entries in range\n", len(in), len(entries))

		if mismatch {
			return handleErrorMsg(ErrValidationFailed,
				fmt.Sprintf("expected %d entries in %s, got %d", checkExpect, kind, len(in)), "")
		}
		return nil
	},
}

func fixtureViews(entries []fixtures.Entry) []fixtureView {
	views := make([]fixtureView, 0, len(entries))
	for _, e := range entries {
		date := e.Date.Format(dates.DateLayout)
		if !e.Date.Equal(dates.StartOfDay(e.Date)) {
			date = e.Date.Format(time.RFC3339)
		}
		views = append(views, fixtureView{ID: e.ID, Date: date, Note: e.Note})
	}
	return views
}

func init() {
	checkCmd.Flags().StringVar(&checkBounds.start, "start", "", "First day of a custom range")
	checkCmd.Flags().StringVar(&checkBounds.end, "end", "", "Last day of a custom range")
	checkCmd.Flags().IntVar(&checkExpect, "expect", 0, "Fail unless exactly this many entries match")
	checkCmd.Flags().BoolVar(&checkAll, "all", false, "Also list entries outside the range")
	rootCmd.AddCommand(checkCmd)
}
