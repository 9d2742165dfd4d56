package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/daterange/internal/buildinfo"
	"github.com/aidanlsb/daterange/internal/ui"
)

const (
	defaultModulePath = "github.com/aidanlsb/daterange"
	develVersion      = "devel"
)

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show drange version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()
		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		fmt.Printf("%s %s\n", ui.Header("drange"), ui.Label(info.Version))
		table := ui.NewTable(2)
		table.AddRow("module", info.ModulePath)
		if info.Commit != "" {
			table.AddRow("commit", info.Commit)
		}
		if info.CommitTime != "" {
			table.AddRow("commit_time", info.CommitTime)
		}
		table.AddRow("go", info.GoVersion)
		table.AddRow("platform", info.GOOS+"/"+info.GOARCH)
		table.AddRow("modified", fmt.Sprintf("%t", info.Modified))
		fmt.Print(table.String())
		return nil
	},
}

// currentVersionInfo prefers module build info, then ldflags values.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    develVersion,
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}
		set := func(dst *string, value string) {
			if value != "" {
				*dst = value
			}
		}

		set(&info.ModulePath, bi.Main.Path)
		set(&info.GoVersion, bi.GoVersion)
		set(&info.GOOS, settings["GOOS"])
		set(&info.GOARCH, settings["GOARCH"])
		info.Version = normalizeVersion(bi.Main.Version)
		info.Commit = settings["vcs.revision"]
		info.CommitTime = settings["vcs.time"]
		info.Modified = strings.EqualFold(settings["vcs.modified"], "true")
	}

	if info.Version == develVersion && buildinfo.Version != "" {
		info.Version = normalizeVersion(buildinfo.Version)
	}
	if info.Commit == "" {
		info.Commit = buildinfo.Commit
	}
	if info.CommitTime == "" {
		info.CommitTime = buildinfo.Date
	}
	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return develVersion
	}
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
