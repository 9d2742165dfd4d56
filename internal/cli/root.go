package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/daterange/internal/config"
	"github.com/aidanlsb/daterange/internal/dates"
	"github.com/aidanlsb/daterange/internal/ui"
)

var (
	// Global flags
	configPath     string
	statePathFlag  string
	weekStartFlag  dates.WeekStartDay
	dateFormatFlag dates.DateFormatPattern
	timezoneFlag   string
	referenceFlag  string

	// Resolved values
	resolvedConfigPath string
	resolvedStatePath  string
	cfg                *config.Config
	prefs              = config.DefaultPreferences()

	// nowFunc is the wall clock, replaced in tests.
	nowFunc = time.Now
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "drange",
	Short: "drange - resolve named date ranges",
	Long: `drange resolves named date ranges (today, this week, last month, ...)
into concrete calendar dates using your week start day, and infers which
date format a UI is displaying.

Preferences come from ~/.config/daterange/config.toml and can be
overridden per command with --week-start, --date-format and --tz.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return handleError(ErrConfigInvalid, fmt.Errorf("failed to load config: %w", err), "Fix the file, or move it aside and run 'drange config init'")
		}
		resolvedStatePath = config.ResolveStatePath(statePathFlag, resolvedConfigPath, cfg)
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		loaded, err := cfg.Preferences()
		if err != nil {
			// The config commands must keep working so a bad value can be fixed.
			if isConfigCommand(cmd) {
				if !jsonOutput {
					fmt.Fprintln(os.Stderr, ui.Warningf("invalid config %s: %v", resolvedConfigPath, err))
				}
				loaded = config.DefaultPreferences()
			} else {
				return handleError(ErrConfigInvalid, fmt.Errorf("invalid config %s: %w", resolvedConfigPath, err), "Run 'drange config set <key> <value>' to fix it")
			}
		}

		return applyPreferenceFlags(loaded)
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&statePathFlag, "state", "", "Path to state file (overrides state_file in config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for harness/script use)")
	rootCmd.PersistentFlags().Var(&weekStartFlag, "week-start", "First day of the week: weekday name or 1-7 (1 = Monday, 7 = Sunday)")
	rootCmd.PersistentFlags().Var(&dateFormatFlag, "date-format", "Display format: US, International, Written or ISO")
	rootCmd.PersistentFlags().StringVar(&timezoneFlag, "tz", "", "Timezone for the reference date (IANA name or Local)")
	rootCmd.PersistentFlags().StringVar(&referenceFlag, "ref", "", "Reference date: YYYY-MM-DD, a datetime, or today/yesterday/tomorrow")
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

// applyPreferenceFlags layers command-line overrides on the configured preferences.
func applyPreferenceFlags(loaded config.Preferences) error {
	if weekStartFlag.Valid() {
		loaded.WeekStart = weekStartFlag
	}
	if dateFormatFlag.Valid() {
		loaded.DateFormat = dateFormatFlag
	}
	if strings.TrimSpace(timezoneFlag) != "" {
		loc, err := config.LoadLocation(timezoneFlag)
		if err != nil {
			return handleError(ErrInvalidInput, fmt.Errorf("invalid --tz %q: %w", timezoneFlag, err), "Use an IANA name such as Europe/Paris, or Local")
		}
		loaded.Location = loc
	}
	prefs = loaded
	return nil
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// getConfigPath returns the resolved global config path.
func getConfigPath() string {
	return resolvedConfigPath
}

// getStatePath returns the resolved global state path.
func getStatePath() string {
	return resolvedStatePath
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	if _, err := os.Stat(resolvedPath); os.IsNotExist(err) {
		return &config.Config{}, resolvedPath, nil
	}

	loadedCfg, err := config.LoadFrom(resolvedPath)
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}
