package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/daterange/internal/dates"
	"github.com/aidanlsb/daterange/internal/ui"
)

var weekOffset int

type weekDayView struct {
	Date      string `json:"date"`
	Weekday   string `json:"weekday"`
	Display   string `json:"display"`
	Reference bool   `json:"reference,omitempty"`
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the days of the week containing the reference date",
	Long: `Show the seven days of the week containing the reference date,
laid out from the configured week start day.

Examples:
  drange week
  drange week --week-start 7
  drange week --offset -1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := referenceDate()
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		anchor := ref.AddDate(0, 0, 7*weekOffset)
		refDay := dates.StartOfDay(ref)
		days := dates.WeekDays(anchor, prefs.WeekStart)

		views := make([]weekDayView, 0, len(days))
		for _, d := range days {
			views = append(views, weekDayView{
				Date:      d.Format(dates.DateLayout),
				Weekday:   d.Weekday().String(),
				Display:   prefs.DateFormat.Format(d),
				Reference: d.Equal(refDay),
			})
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"reference":  ref.Format(dates.DateLayout),
				"week_start": prefs.WeekStart.String(),
				"offset":     weekOffset,
				"days":       views,
			}, &Meta{Count: len(views)})
			return nil
		}

		fmt.Printf("%s %s\n\n", ui.Header("Week of"), ui.Label(views[0].Display))
		table := ui.NewTable(3)
		for _, v := range views {
			marker := " "
			day := v.Weekday
			if v.Reference {
				marker = ui.SymbolMarker
				day = ui.AccentBold.Render(day)
			}
			table.AddRow(marker, day, v.Display)
		}
		fmt.Print(table.String())
		return nil
	},
}

func init() {
	weekCmd.Flags().IntVar(&weekOffset, "offset", 0, "Shift by whole weeks (-1 = last week)")
	rootCmd.AddCommand(weekCmd)
}
