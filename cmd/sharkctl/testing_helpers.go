package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lemonshark/sharkkit/pkg/sharkfs"
)

// makeTestImage creates a freshly formatted 1 MiB image under a temp dir
func makeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vol.img")
	if err := sharkfs.Mkfs(path, 1<<20); err != nil {
		t.Fatalf("mkfs: %v", err)
	}
	return path
}

// seedTestImage fills a fresh image with a small directory tree
func seedTestImage(t *testing.T) string {
	t.Helper()
	path := makeTestImage(t)
	if err := sharkfs.Mkdir(path, "/docs"); err != nil {
		t.Fatalf("mkdir /docs: %v", err)
	}
	if _, err := sharkfs.WriteFile(path, "/docs/readme", []byte("hello shark\n")); err != nil {
		t.Fatalf("write /docs/readme: %v", err)
	}
	if _, err := sharkfs.WriteFile(path, "/notes", []byte("top\n")); err != nil {
		t.Fatalf("write /notes: %v", err)
	}
	return path
}

// resetFlags puts the global output flags back to their defaults
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	noColor = false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
