//go:build integration

package integration_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/overlook-labs/overlook/internal/config"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, holds .overlook/config.yaml
	ProjectDir string // A project directory with overlook.yaml
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them so user settings are sandboxed.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	config.LoadUser()
	return env
}

// setupSite writes a routes tree of width^depth directories under
// <projectDir>/routes, each holding an index route and a view, and returns
// the number of routes written.
func setupSite(t *testing.T, projectDir string, width, depth int) int {
	t.Helper()
	routes := filepath.Join(projectDir, "routes")
	writeFile(t, filepath.Join(routes, "index.js"), "")
	writeFile(t, filepath.Join(routes, "_partials", "nav.js"), "")
	writeFile(t, filepath.Join(routes, ".cache", "index.js"), "")
	return 1 + writeLevel(t, routes, width, depth)
}

func writeLevel(t *testing.T, dir string, width, depth int) int {
	if depth == 0 {
		return 0
	}
	n := 0
	for i := range width {
		sub := filepath.Join(dir, fmt.Sprintf("section-%d", i))
		writeFile(t, filepath.Join(sub, "index.js"), "")
		writeFile(t, filepath.Join(sub, "index.html"), "")
		n += 1 + writeLevel(t, sub, width, depth-1)
	}
	return n
}

// writeFile creates a file with the given content, creating parent dirs.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists checks that a file exists at the given path.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

// assertFileContains checks that a file contains the given substring.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q", path, substr)
	}
}
