package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/daterange/internal/dates"
	"github.com/aidanlsb/daterange/internal/ui"
)

var inferToday string

type inferResult struct {
	Sample  string `json:"sample"`
	Format  string `json:"format"`
	Pattern string `json:"pattern"`
	Today   string `json:"today"`
	Parsed  string `json:"parsed,omitempty"`
}

var inferCmd = &cobra.Command{
	Use:   "infer <sample>",
	Short: "Guess which display format produced a date string",
	Long: `Guess which display format produced a date string.

Samples containing "-" are ISO and samples containing "," are Written.
For slashed samples the first two numbers are compared with today's month,
then today's day, to tell US from International. Anything undecided is
reported as US.

Examples:
  drange infer 2025-08-24
  drange infer "Aug 24, 2025"
  drange infer 24/8/2025 --today 2025-08-24`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sample := strings.TrimSpace(args[0])
		if sample == "" {
			return handleErrorMsg(ErrMissingArgument, "specify a date sample", "Usage: drange infer <sample>")
		}

		now := nowFunc().In(prefs.Location)
		today, err := dates.ParseDateArg(inferToday, now)
		if err != nil {
			return handleError(ErrInvalidInput, fmt.Errorf("invalid --today: %w", err), "")
		}

		format := dates.InferDateFormatAt(sample, today)
		result := inferResult{
			Sample:  sample,
			Format:  format.Name(),
			Pattern: string(format),
			Today:   today.Format(dates.DateLayout),
		}
		parsed, parseErr := format.Parse(sample, prefs.Location)
		if parseErr == nil {
			result.Parsed = parsed.Format(dates.DateLayout)
		}

		if isJSONOutput() {
			if parseErr != nil {
				outputSuccessWithWarnings(result, []Warning{{
					Code:    ErrInvalidValue,
					Message: fmt.Sprintf("sample does not parse as %s: %v", format.Name(), parseErr),
				}}, nil)
				return nil
			}
			outputSuccess(result, nil)
			return nil
		}

		fmt.Printf("%s  %s\n", ui.Label(format.Name()), ui.Hint(string(format)))
		if parseErr != nil {
			fmt.Println(ui.Warningf("%q does not parse as %s", sample, format.Name()))
			return nil
		}
		fmt.Printf("%s %s\n", ui.Hint("parsed:"), parsed.Format(dates.DateLayout))
		return nil
	},
}

func init() {
	inferCmd.Flags().StringVar(&inferToday, "today", "", "Date whose month and day break ties (default: now)")
	rootCmd.AddCommand(inferCmd)
}
