package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/internal/logger"
)

// executeRoot runs the root command with args, returning stdout and stderr.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() {
		resetFlags(t)
		alloc.SetLogging(false)
		_ = logger.Init(logger.Options{})
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs(args)
	var stdout string
	stderr, err := captureStderr(t, func() error {
		out, err := captureOutput(t, func() error {
			return rootCmd.ExecuteContext(context.Background())
		})
		stdout = out
		return err
	})
	return stdout, stderr, err
}

func TestRootCommand_JSONLogs(t *testing.T) {
	resetFlags(t)

	_, stderr, err := executeRoot(t, "--verbose", "--log-format", "json",
		"simulate", testdataPath(t, "multipool.yaml"))
	require.NoError(t, err)

	var msgs []string
	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec), "not a JSON record: %q", line)
		assert.Contains(t, rec, "level")
		msg, _ := rec["msg"].(string)
		msgs = append(msgs, msg)
	}
	assert.Contains(t, msgs, "alloc: created multipool")
}

func TestRootCommand_TextLogs(t *testing.T) {
	resetFlags(t)

	_, stderr, err := executeRoot(t, "--verbose", "simulate", testdataPath(t, "multipool.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stderr, `msg="alloc: created multipool"`)
}

func TestRootCommand_BadLogFormat(t *testing.T) {
	resetFlags(t)

	_, _, err := executeRoot(t, "--log-format", "xml", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--log-format")
}
