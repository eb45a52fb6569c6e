package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetFlags restores global flag state between tests.
func resetFlags(t *testing.T) {
	t.Helper()
	verbose, quiet, jsonOut, noColor = false, false, false, true
	lang, logDir, logFormat = "en", "", "text"
	simulateSteps = true
	layoutFlags = allocFlags{kind: "multipool", depth: 1, backing: "heap"}
	infoFlags = allocFlags{kind: "multipool", depth: 1, backing: "heap"}
}

// testdataPath returns the path to a file under testdata/.
func testdataPath(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join("testdata", name)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("test file not found: %s", path)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.String()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return <-done, fnErr
}

// captureStderr captures stderr while running a function
func captureStderr(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stderr = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.String()
	}()

	fnErr := fn()

	w.Close()
	os.Stderr = origStderr
	return <-done, fnErr
}

// decodeJSON unmarshals output into v, failing the test on invalid JSON.
func decodeJSON(t *testing.T, output string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Fatalf("invalid JSON output: %v\nOutput: %s", err, output)
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
