// Package testutil provides reusable test utilities for drange end-to-end tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestHome is a temporary directory holding config.toml, state.toml and
// fixture files for one test.
type TestHome struct {
	Path   string
	t      *testing.T
	config string
	files  map[string]string
}

// NewTestHome creates a test home builder. Call Build() to write it.
func NewTestHome(t *testing.T) *TestHome {
	t.Helper()
	return &TestHome{
		t:     t,
		files: make(map[string]string),
	}
}

// WithConfig sets the config.toml content.
func (h *TestHome) WithConfig(toml string) *TestHome {
	h.config = toml
	return h
}

// WithFile adds a file relative to the home root.
func (h *TestHome) WithFile(path, content string) *TestHome {
	h.files[path] = content
	return h
}

// Build creates the directory and all configured files.
func (h *TestHome) Build() *TestHome {
	h.t.Helper()
	h.Path = h.t.TempDir()
	if h.config != "" {
		h.writeFile("config.toml", h.config)
	}
	for path, content := range h.files {
		h.writeFile(path, content)
	}
	return h
}

// ConfigPath returns the config.toml path passed to every command.
func (h *TestHome) ConfigPath() string {
	return filepath.Join(h.Path, "config.toml")
}

// StatePath returns the state.toml path passed to every command.
func (h *TestHome) StatePath() string {
	return filepath.Join(h.Path, "state.toml")
}

// File returns the absolute path of a file relative to the home root.
func (h *TestHome) File(relPath string) string {
	return filepath.Join(h.Path, filepath.FromSlash(relPath))
}

func (h *TestHome) writeFile(relPath, content string) {
	h.t.Helper()
	fullPath := h.File(relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		h.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		h.t.Fatalf("failed to write %s: %v", relPath, err)
	}
}

// ReadFile returns a file's content, failing the test if it is missing.
func (h *TestHome) ReadFile(relPath string) string {
	h.t.Helper()
	data, err := os.ReadFile(h.File(relPath))
	if err != nil {
		h.t.Fatalf("failed to read %s: %v", relPath, err)
	}
	return string(data)
}

// AssertFileContains fails the test if the file does not contain substr.
func (h *TestHome) AssertFileContains(relPath, substr string) {
	h.t.Helper()
	if content := h.ReadFile(relPath); !strings.Contains(content, substr) {
		h.t.Errorf("expected %s to contain %q, got:\n%s", relPath, substr, content)
	}
}
