package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/daterange/internal/config"
	"github.com/aidanlsb/daterange/internal/dates"
	"github.com/aidanlsb/daterange/internal/ui"
)

var rangesCmd = &cobra.Command{
	Use:   "ranges",
	Short: "List every named range resolved at the reference date",
	Long: `List every named range resolved at the reference date.

The custom range is included when one has been saved with 'drange custom set'.

Examples:
  drange ranges
  drange ranges --ref 2025-01-01 --week-start sunday
  drange ranges --date-format written`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := referenceDate()
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		var views []intervalView
		var warnings []Warning
		for _, kind := range dates.AllRangeKinds() {
			q := dates.RangeQuery{Kind: kind, WeekStart: prefs.WeekStart, Reference: ref}
			if kind == dates.RangeCustom {
				iv, ok, err := savedCustomRange()
				if err != nil {
					warnings = append(warnings, Warning{Code: ErrStateInvalid, Message: err.Error()})
					continue
				}
				if !ok {
					continue
				}
				q.Custom = iv
			}
			views = append(views, newIntervalView(kind, dates.Resolve(q)))
		}

		if isJSONOutput() {
			data := map[string]interface{}{
				"reference":  ref.Format(dates.DateLayout),
				"week_start": prefs.WeekStart.String(),
				"ranges":     views,
			}
			outputSuccessWithWarnings(data, warnings, &Meta{Count: len(views)})
			return nil
		}

		for _, w := range warnings {
			fmt.Println(ui.Warning(w.Message))
		}
		fmt.Printf("%s %s\n\n", ui.Header("Reference"), ui.Label(prefs.DateFormat.Format(ref)))
		table := ui.NewTable(4)
		table.SetHeader("RANGE", "LABEL", "DATES", "DAYS")
		for _, v := range views {
			days := ""
			if !v.Unbounded {
				days = fmt.Sprintf("%d", v.Days)
			}
			table.AddRow(v.Range, v.Label, v.Display, days)
		}
		fmt.Print(table.String())
		return nil
	},
}

// savedCustomRange returns the custom range remembered in state, if any.
func savedCustomRange() (dates.Interval, bool, error) {
	state, err := config.LoadState(getStatePath())
	if err != nil {
		return dates.Interval{}, false, err
	}
	return state.CustomRange(prefs.Location)
}

func init() {
	rootCmd.AddCommand(rangesCmd)
}
