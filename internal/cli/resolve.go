package cli

import (
	"github.com/spf13/cobra"

	"github.com/aidanlsb/daterange/internal/dates"
)

var resolveBounds customBounds

type resolveResult struct {
	intervalView
	Reference  string `json:"reference"`
	WeekStart  string `json:"week_start"`
	DateFormat string `json:"date_format"`
	Timezone   string `json:"timezone"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [range]",
	Short: "Resolve a named range to concrete dates",
	Long: `Resolve a named date range into its first and last calendar day.

Ranges: today, yesterday, this-week, last-week, this-month, last-month,
this-year, last-year, all, custom. camelCase names (lastWeek) also work.
Without an argument the configured default_range is used.

Week ranges begin on the configured week start day. The custom range uses
--start/--end, or the range saved with 'drange custom set'.

Examples:
  drange resolve this-week
  drange resolve lastMonth --ref 2025-03-15
  drange resolve this-week --week-start sunday
  drange resolve custom --start 2025-01-01 --end 2025-01-31
  drange resolve last-week --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKindArg(args, 0)
		if err != nil {
			return handleError(ErrRangeUnknown, err, "Run 'drange ranges' to see every range")
		}
		ref, err := referenceDate()
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		iv, err := resolveRange(kind, ref, resolveBounds)
		if err != nil {
			return err
		}

		if isJSONOutput() {
			outputSuccess(resolveResult{
				intervalView: newIntervalView(kind, iv),
				Reference:    ref.Format(dates.DateLayout),
				WeekStart:    prefs.WeekStart.String(),
				DateFormat:   prefs.DateFormat.Name(),
				Timezone:     prefs.Location.String(),
			}, nil)
			return nil
		}

		printInterval(kind, iv)
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveBounds.start, "start", "", "First day of a custom range (YYYY-MM-DD or today/yesterday/tomorrow)")
	resolveCmd.Flags().StringVar(&resolveBounds.end, "end", "", "Last day of a custom range")
	rootCmd.AddCommand(resolveCmd)
}
