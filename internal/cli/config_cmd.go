package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/daterange/internal/config"
)

type globalConfigContext struct {
	cfg          *config.Config
	configPath   string
	statePath    string
	configExists bool
}

func loadGlobalConfigContext() *globalConfigContext {
	_, err := os.Stat(getConfigPath())
	return &globalConfigContext{
		cfg:          getConfig(),
		configPath:   getConfigPath(),
		statePath:    getStatePath(),
		configExists: err == nil,
	}
}

func configData(ctx *globalConfigContext) map[string]interface{} {
	return map[string]interface{}{
		"config_path":   ctx.configPath,
		"state_path":    ctx.statePath,
		"exists":        ctx.configExists,
		"week_start":    strings.TrimSpace(string(ctx.cfg.WeekStart)),
		"date_format":   strings.TrimSpace(ctx.cfg.DateFormat),
		"timezone":      strings.TrimSpace(ctx.cfg.Timezone),
		"default_range": strings.TrimSpace(ctx.cfg.DefaultRange),
		"state_file":    strings.TrimSpace(ctx.cfg.StateFile),
		"ui": map[string]interface{}{
			"accent":     strings.TrimSpace(ctx.cfg.UI.Accent),
			"code_theme": strings.TrimSpace(ctx.cfg.UI.CodeTheme),
		},
		"effective": map[string]interface{}{
			"week_start":    prefs.WeekStart.String(),
			"date_format":   prefs.DateFormat.Name(),
			"timezone":      prefs.Location.String(),
			"default_range": prefs.DefaultRange.String(),
		},
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ctx := loadGlobalConfigContext()

	if isJSONOutput() {
		outputSuccess(configData(ctx), nil)
		return nil
	}

	fmt.Printf("config: %s\n", ctx.configPath)
	if !ctx.configExists {
		fmt.Println("  (not created; run 'drange config init')")
	}
	fmt.Printf("state:  %s\n", ctx.statePath)
	fmt.Println()

	fmt.Printf("week_start:    %s\n", prefs.WeekStart)
	fmt.Printf("date_format:   %s (%s)\n", prefs.DateFormat.Name(), prefs.DateFormat)
	fmt.Printf("timezone:      %s\n", prefs.Location)
	fmt.Printf("default_range: %s\n", prefs.DefaultRange)
	if v := strings.TrimSpace(ctx.cfg.StateFile); v != "" {
		fmt.Printf("state_file:    %s\n", v)
	}
	if v := strings.TrimSpace(ctx.cfg.UI.Accent); v != "" {
		fmt.Printf("ui.accent:     %s\n", v)
	}
	if v := strings.TrimSpace(ctx.cfg.UI.CodeTheme); v != "" {
		fmt.Printf("ui.code_theme: %s\n", v)
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage config.toml settings",
	Long: `Manage config.toml settings.

Use this to initialize, inspect, and edit the week start day, display
format, timezone and default range.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetPath := getConfigPath()
		_, statErr := os.Stat(targetPath)
		existed := statErr == nil
		if statErr != nil && !os.IsNotExist(statErr) {
			return handleError(ErrConfigInvalid, statErr, "")
		}

		createdPath, err := config.CreateDefault(targetPath)
		if err != nil {
			return handleError(ErrConfigWrite, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": createdPath,
				"created":     !existed,
			}, nil)
			return nil
		}

		if existed {
			fmt.Printf("Config already exists: %s\n", createdPath)
		} else {
			fmt.Printf("Created config: %s\n", createdPath)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config.toml field",
	Long: `Set a config.toml field. Values are validated before saving.

Keys: default_range, date_format, state_file, timezone, ui.accent,
ui.code_theme, week_start.

Examples:
  drange config set week_start sunday
  drange config set week_start 7
  drange config set date_format International
  drange config set timezone Europe/Paris`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(args[1]) == "" {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("%s cannot be empty; use 'drange config unset %s' to clear it", args[0], args[0]), "")
		}
		return updateConfigKey(args[0], args[1], "changed")
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Clear a config.toml field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(getConfigPath()); os.IsNotExist(err) {
			return handleErrorMsg(ErrConfigInvalid, fmt.Sprintf("config file not found: %s", getConfigPath()), "Run 'drange config init' first")
		}
		return updateConfigKey(args[0], "", "cleared")
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config and state file paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": getConfigPath(),
				"state_path":  getStatePath(),
			}, nil)
			return nil
		}
		fmt.Println(getConfigPath())
		fmt.Println(getStatePath())
		return nil
	},
}

func updateConfigKey(key, value, verb string) error {
	ctx := loadGlobalConfigContext()
	if err := ctx.cfg.Set(key, value); err != nil {
		return handleError(ErrInvalidValue, err, fmt.Sprintf("Valid keys: %s", strings.Join(config.SettableKeys(), ", ")))
	}
	if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
		return handleError(ErrConfigWrite, err, "")
	}
	ctx.configExists = true

	// Re-derive effective values so the output reflects the change.
	if updated, err := ctx.cfg.Preferences(); err == nil {
		if err := applyPreferenceFlags(updated); err != nil {
			return err
		}
	}

	if isJSONOutput() {
		data := configData(ctx)
		data[verb] = []string{strings.ToLower(strings.TrimSpace(key))}
		outputSuccess(data, nil)
		return nil
	}

	fmt.Printf("Updated config: %s\n", ctx.configPath)
	fmt.Printf("%s: %s\n", verb, strings.ToLower(strings.TrimSpace(key)))
	return nil
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current config.toml values",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})
	rootCmd.AddCommand(configCmd)
}
