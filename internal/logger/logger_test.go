package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_DisabledDiscards(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Init(Options{Enabled: false, Writer: &out}))
	Info("hidden", "k", 1)
	assert.Zero(t, out.Len())
}

func TestInit_TextWriter(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Writer: &out, Level: slog.LevelDebug}))
	t.Cleanup(func() { _ = Init(Options{}) })

	Debug("pool exhausted", "tier", 2)
	assert.Contains(t, out.String(), "pool exhausted")
	assert.Contains(t, out.String(), "tier=2")
}

func TestInit_JSONLevelFilter(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, JSON: true, Writer: &out, Level: slog.LevelWarn}))
	t.Cleanup(func() { _ = Init(Options{}) })

	Info("dropped")
	Warn("kept", "bytes", 1024)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.EqualValues(t, 1024, rec["bytes"])
}

func TestInit_LogDirCreatesFileAndPrunes(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, logPrefix+time.Now().AddDate(0, 0, -(retentionDays+5)).Format("2006-01-02")+logSuffix)
	require.NoError(t, os.WriteFile(stale, []byte("old\n"), 0o644))

	require.NoError(t, Init(Options{Enabled: true, LogDir: dir}))
	t.Cleanup(func() { _ = Init(Options{}) })
	Error("boom")

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale log should be removed")

	today := filepath.Join(dir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
	data, err := os.ReadFile(today)
	require.NoError(t, err)
	assert.Contains(t, string(data), "boom")
}
