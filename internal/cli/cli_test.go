package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/daterange/internal/config"
)

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	os.Stdout = w

	outputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		_, copyErr := io.Copy(&buf, r)
		_ = r.Close()
		if copyErr != nil {
			errCh <- copyErr
			return
		}
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	select {
	case err := <-errCh:
		t.Fatalf("io.Copy: %v", err)
		return ""
	case output := <-outputCh:
		return output
	}
}

// testNow is Sunday 2025-08-24 15:30 UTC.
var testNow = time.Date(2025, time.August, 24, 15, 30, 0, 0, time.UTC)

type testEnv struct {
	configPath string
	statePath  string
}

// newTestEnv points the CLI at temp config/state files and a fixed clock,
// restoring every global on cleanup.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		configPath: filepath.Join(dir, "config.toml"),
		statePath:  filepath.Join(dir, "state.toml"),
	}

	prevNow := nowFunc
	nowFunc = func() time.Time { return testNow }
	resetCLIState()
	t.Cleanup(func() {
		nowFunc = prevNow
		resetCLIState()
	})
	return env
}

func resetCLIState() {
	configPath = ""
	statePathFlag = ""
	weekStartFlag = 0
	dateFormatFlag = ""
	timezoneFlag = ""
	referenceFlag = ""
	jsonOutput = false
	resolvedConfigPath = ""
	resolvedStatePath = ""
	cfg = nil
	prefs = config.DefaultPreferences()

	resolveBounds = customBounds{}
	checkBounds = customBounds{}
	checkExpect = 0
	checkAll = false
	customSetBounds = customBounds{}
	weekOffset = 0
	inferToday = ""
	docsSearchLimit = 20

	resetChanged(rootCmd)
}

func resetChanged(cmd *cobra.Command) {
	unchange := func(f *pflag.Flag) { f.Changed = false }
	cmd.Flags().VisitAll(unchange)
	cmd.PersistentFlags().VisitAll(unchange)
	for _, c := range cmd.Commands() {
		resetChanged(c)
	}
}

// run executes drange with the env's config and state paths and UTC.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	full := append([]string{"--config", e.configPath, "--state", e.statePath, "--tz", "UTC"}, args...)
	resetCLIState()
	rootCmd.SetArgs(full)
	var err error
	out := captureStdout(t, func() {
		err = rootCmd.Execute()
	})
	return out, err
}

func (e *testEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(e.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

type envelope struct {
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data"`
	Error    *ErrorInfo      `json:"error"`
	Warnings []Warning       `json:"warnings"`
	Meta     *Meta           `json:"meta"`
}

func decodeEnvelope(t *testing.T, out string) envelope {
	t.Helper()
	var resp envelope
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	return resp
}

func decodeData(t *testing.T, resp envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, v); err != nil {
		t.Fatalf("decode data: %v; data=%s", err, resp.Data)
	}
}

func expectErrorCode(t *testing.T, out string, err error, code string) envelope {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got none; out=%s", code, out)
	}
	resp := decodeEnvelope(t, out)
	if resp.OK || resp.Error == nil {
		t.Fatalf("expected ok=false with error; out=%s", out)
	}
	if resp.Error.Code != code {
		t.Fatalf("error code = %q, want %q; out=%s", resp.Error.Code, code, out)
	}
	return resp
}
