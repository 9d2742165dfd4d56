package cli

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/aidanlsb/daterange/internal/buildinfo"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	prevRead := readBuildInfo
	prevVersion, prevCommit, prevDate := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	t.Cleanup(func() {
		readBuildInfo = prevRead
		buildinfo.Version, buildinfo.Commit, buildinfo.Date = prevVersion, prevCommit, prevDate
	})
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	buildinfo.Version, buildinfo.Commit, buildinfo.Date = "", "", ""
}

func releaseBuild() *debug.BuildInfo {
	return &debug.BuildInfo{
		GoVersion: "go1.23.4",
		Main:      debug.Module{Path: "github.com/aidanlsb/daterange", Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "5f1c2e9"},
			{Key: "vcs.time", Value: "2025-08-24T09:00:00Z"},
			{Key: "vcs.modified", Value: "TRUE"},
			{Key: "GOOS", Value: "linux"},
			{Key: "GOARCH", Value: "arm64"},
		},
	}
}

func TestVersionCommandTextOutput(t *testing.T) {
	stubBuildInfo(t, releaseBuild())
	env := newTestEnv(t)

	out, err := env.run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.Contains(lines[0], "drange") || !strings.Contains(lines[0], "v0.4.0") {
		t.Fatalf("unexpected heading %q", lines[0])
	}
	for _, want := range []string{"github.com/aidanlsb/daterange", "5f1c2e9", "linux/arm64", "true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
}

func TestVersionCommandJSON(t *testing.T) {
	stubBuildInfo(t, releaseBuild())
	env := newTestEnv(t)

	out, err := env.run(t, "version", "--json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var got versionInfo
	decodeData(t, decodeEnvelope(t, out), &got)
	if got.Version != "v0.4.0" || got.Commit != "5f1c2e9" || !got.Modified {
		t.Fatalf("unexpected version info: %+v", got)
	}
	if got.GOOS != "linux" || got.GOARCH != "arm64" || got.GoVersion != "go1.23.4" {
		t.Fatalf("unexpected platform: %+v", got)
	}
}

func TestVersionFallsBackToLdflags(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	buildinfo.Version = "v0.5.0-rc1"
	buildinfo.Commit = "abc1234"
	buildinfo.Date = "2025-09-01"

	info := currentVersionInfo()
	if info.Version != "v0.5.0-rc1" || info.Commit != "abc1234" || info.CommitTime != "2025-09-01" {
		t.Fatalf("expected ldflags values, got %+v", info)
	}
	if info.ModulePath != defaultModulePath {
		t.Fatalf("ModulePath = %q, want %q", info.ModulePath, defaultModulePath)
	}
}

func TestVersionWithoutBuildInfo(t *testing.T) {
	stubBuildInfo(t, nil)

	info := currentVersionInfo()
	if info.Version != develVersion || info.Commit != "" || info.Modified {
		t.Fatalf("expected a bare devel build, got %+v", info)
	}
	if info.GoVersion != runtime.Version() || info.GOOS != runtime.GOOS || info.GOARCH != runtime.GOARCH {
		t.Fatalf("expected runtime values, got %+v", info)
	}
}
