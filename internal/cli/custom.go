package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/daterange/internal/config"
	"github.com/aidanlsb/daterange/internal/dates"
	"github.com/aidanlsb/daterange/internal/ui"
)

var customSetBounds customBounds

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Manage the saved custom range",
	Long: `Manage the custom range remembered in state.toml.

'drange resolve custom' and 'drange check <file> custom' use the saved range
when --start/--end are not given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCustomShow(cmd, args)
	},
}

var customSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save a custom range",
	Long: `Save a custom range. Both days are inclusive.

Examples:
  drange custom set --start 2025-01-01 --end 2025-01-31
  drange custom set --start yesterday --end today`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !customSetBounds.set() {
			return handleErrorMsg(ErrMissingArgument, "specify --start and --end", "Usage: drange custom set --start <date> --end <date>")
		}
		ref, err := referenceDate()
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		iv, err := customSetBounds.interval(ref)
		if err != nil {
			return handleError(ErrInvalidInput, err, "Use YYYY-MM-DD or today/yesterday/tomorrow")
		}

		statePath := getStatePath()
		state, err := config.LoadState(statePath)
		if err != nil {
			return handleError(ErrStateInvalid, err, "")
		}
		if err := state.SetCustomRange(iv); err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if err := config.SaveState(statePath, state); err != nil {
			return handleError(ErrStateWrite, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"state_path": statePath,
				"range":      newIntervalView(dates.RangeCustom, iv),
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Saved custom range %s", iv.Format(prefs.DateFormat)))
		return nil
	},
}

var customShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved custom range",
	Args:  cobra.NoArgs,
	RunE:  runCustomShow,
}

var customClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the saved custom range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		statePath := getStatePath()
		state, err := config.LoadState(statePath)
		if err != nil {
			return handleError(ErrStateInvalid, err, "")
		}
		hadRange := state.CustomStart != "" || state.CustomEnd != ""
		state.ClearCustomRange()
		if hadRange {
			if err := config.SaveState(statePath, state); err != nil {
				return handleError(ErrStateWrite, err, "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"state_path": statePath,
				"cleared":    hadRange,
			}, nil)
			return nil
		}
		if !hadRange {
			fmt.Println(ui.Info("No custom range saved"))
			return nil
		}
		fmt.Println(ui.Success("Cleared custom range"))
		return nil
	},
}

func runCustomShow(cmd *cobra.Command, args []string) error {
	iv, ok, err := savedCustomRange()
	if err != nil {
		return handleError(ErrStateInvalid, err, "Run 'drange custom clear' and set it again")
	}

	if isJSONOutput() {
		data := map[string]interface{}{
			"state_path": getStatePath(),
			"set":        ok,
		}
		if ok {
			data["range"] = newIntervalView(dates.RangeCustom, iv)
		}
		outputSuccess(data, nil)
		return nil
	}

	if !ok {
		fmt.Println(ui.Info("No custom range saved"))
		fmt.Println(ui.Hint("Save one with 'drange custom set --start <date> --end <date>'"))
		return nil
	}
	printInterval(dates.RangeCustom, iv)
	return nil
}

func init() {
	customSetCmd.Flags().StringVar(&customSetBounds.start, "start", "", "First day of the range")
	customSetCmd.Flags().StringVar(&customSetBounds.end, "end", "", "Last day of the range")
	customCmd.AddCommand(customSetCmd)
	customCmd.AddCommand(customShowCmd)
	customCmd.AddCommand(customClearCmd)
	rootCmd.AddCommand(customCmd)
}
