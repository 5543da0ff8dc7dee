// Package testutil provides utilities for testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree creates a file tree under root from a map of relative path to
// content, creating parent directories as needed.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

// SourceTree creates a hierarchy source directory containing an agent
// subdirectory with the given files. Returns the source root.
func SourceTree(t *testing.T, name, agentDir string, files map[string]string) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), name)
	prefixed := make(map[string]string, len(files))
	for rel, content := range files {
		prefixed[filepath.Join(agentDir, rel)] = content
	}
	WriteTree(t, root, prefixed)
	return root
}

// ReadFile reads a file, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// FakeRunner records commands instead of executing them. Responses are
// keyed by the command's subcommand (first argument); unmatched commands
// succeed with empty output.
type FakeRunner struct {
	// Calls records every invocation as dir + command line.
	Calls [][]string

	// Outputs maps a subcommand (e.g. "rev-parse") to canned output.
	Outputs map[string]string

	// Errs maps a subcommand to an error to return.
	Errs map[string]error
}

// Run implements the CommandRunner contract used by the repo package.
func (f *FakeRunner) Run(dir, name string, args ...string) (string, error) {
	call := append([]string{dir, name}, args...)
	f.Calls = append(f.Calls, call)

	if len(args) == 0 {
		return "", nil
	}
	sub := args[0]
	if err, ok := f.Errs[sub]; ok && err != nil {
		return f.Outputs[sub], err
	}
	return f.Outputs[sub], nil
}

// CalledWith reports whether any recorded call includes the given
// subcommand as its first git argument.
func (f *FakeRunner) CalledWith(sub string) bool {
	for _, call := range f.Calls {
		if len(call) > 2 && call[2] == sub {
			return true
		}
	}
	return false
}
