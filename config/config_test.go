package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/crossrate/internal/storage/journal"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvLogLevel, EnvJournalDir, EnvJournal, EnvMetricsFile} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGet_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Get("crossrate", Convert, []string{"-env", "missing.env", "a.txt", "b.txt"}, io.Discard, "")
	require.NoError(t, err)

	assert.Equal(t, journal.DefaultDir, cfg.JournalDir)

	want := Default()
	want.Files = []string{"a.txt", "b.txt"}
	assert.Equal(t, want, cfg)
}

func TestGet_Precedence(t *testing.T) {
	clearEnv(t)

	yamlPath := writeFile(t, "crossrate.yaml", `
log_level: info
journal_dir: /from/yaml
journal: true
concurrency: 8
read_retries: 5
read_retry_interval: 10ms
metrics_file: /from/yaml.prom
`)
	envPath := writeFile(t, ".env", "CROSSRATE_JOURNAL_DIR=/from/env\nCROSSRATE_METRICS_FILE=/from/env.prom\n")

	cfg, err := Get("crossrate", Convert, []string{
		"-config", yamlPath,
		"-env", envPath,
		"-metrics-file", "/from/flag.prom",
		"-concurrency", "2",
		"rates.txt",
	}, io.Discard, "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel, "yaml over default")
	assert.True(t, cfg.Journal, "yaml over default")
	assert.Equal(t, 5, cfg.ReadRetries)
	assert.Equal(t, 10*time.Millisecond, cfg.ReadRetryInterval)
	assert.Equal(t, "/from/env", cfg.JournalDir, "env over yaml")
	assert.Equal(t, "/from/flag.prom", cfg.MetricsFile, "flag over env")
	assert.Equal(t, 2, cfg.Concurrency, "flag over yaml")
	assert.Equal(t, []string{"rates.txt"}, cfg.Files)
}

func TestGet_EnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvJournal, "true")

	cfg, err := Get("crossrate", Convert, []string{"-env", "missing.env", "a.txt"}, io.Discard, "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Journal)

	cfg, err = Get("crossrate", Convert, []string{"-env", "missing.env", "-log-level", "error", "a.txt"}, io.Discard, "")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestGet_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "No files", args: []string{}},
		{name: "Zero concurrency", args: []string{"-concurrency", "0", "a.txt"}},
		{name: "Negative retries", args: []string{"-read-retries", "-1", "a.txt"}},
		{name: "Unknown log level", args: []string{"-log-level", "loud", "a.txt"}},
		{name: "Bad journal env", args: []string{"a.txt"}, env: map[string]string{EnvJournal: "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Get("crossrate", Convert, append([]string{"-env", "missing.env"}, tt.args...), io.Discard, "")
			assert.True(t, errors.Is(err, ErrUsage), "got %v", err)
		})
	}
}

func TestGet_BadYaml(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "bad.yaml", "concurrency: lots\n")

	_, err := Get("crossrate", Convert, []string{"-env", "missing.env", "-config", path, "a.txt"}, io.Discard, "")
	assert.True(t, errors.Is(err, ErrUsage), "got %v", err)
}

func TestGet_UnknownFlag(t *testing.T) {
	clearEnv(t)

	_, err := Get("crossrate", Convert, []string{"-bogus", "a.txt"}, io.Discard, "")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrUsage))
}

func TestGet_History(t *testing.T) {
	clearEnv(t)

	cfg, err := Get("history", History, []string{"-env", "missing.env", "-n", "5", "-journal-dir", "/tmp/j"}, io.Discard, "")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Limit)
	assert.Equal(t, "/tmp/j", cfg.JournalDir)

	_, err = Get("history", History, []string{"-env", "missing.env", "extra"}, io.Discard, "")
	assert.True(t, errors.Is(err, ErrUsage))

	_, err = Get("history", History, []string{"-env", "missing.env", "-explain"}, io.Discard, "")
	assert.Error(t, err, "convert-only flag")
}

func TestTmp_RoundTrip(t *testing.T) {
	clearEnv(t)

	cfg := Default()
	cfg.Journal = true
	cfg.Concurrency = 3
	cfg.ReadRetryInterval = 75 * time.Millisecond

	data, err := yaml.Marshal(cfg.Tmp())
	require.NoError(t, err)
	path := writeFile(t, "gen.yaml", string(data))

	got, err := Get("crossrate", Convert, []string{"-env", "missing.env", "-config", path, "a.txt"}, io.Discard, "")
	require.NoError(t, err)
	cfg.Files = []string{"a.txt"}
	assert.Equal(t, cfg, got)
}
