package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "portfolio_data.json", s.DataFile)
	assert.Equal(t, "generated_cards.html", s.ReportFile)
	assert.Equal(t, 1200*time.Millisecond, s.PacingInterval)
	assert.Equal(t, 3, s.MaxAttempts)
	assert.Equal(t, 5*time.Second, s.BusyBackoffBase)
	assert.Equal(t, 5*time.Second, s.BusyBackoffStep)
	assert.Equal(t, 2*time.Second, s.TransportRetryDelay)
	assert.NoError(t, s.Validate())
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.toml")
	content := "data_file = \"cards.json\"\npacing_interval = \"3s\"\nmax_attempts = 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "cards.json", s.DataFile)
	assert.Equal(t, 3*time.Second, s.PacingInterval)
	assert.Equal(t, 5, s.MaxAttempts)
	assert.Equal(t, "generated_cards.html", s.ReportFile, "unset keys keep defaults")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TCG_REPORT_FILE", "cards.html")
	t.Setenv("TCG_TRANSPORT_RETRY_DELAY", "500ms")
	t.Setenv("TCG_HISTORY_ENABLED", "false")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "cards.html", s.ReportFile)
	assert.Equal(t, 500*time.Millisecond, s.TransportRetryDelay)
	assert.False(t, s.HistoryEnabled)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TCG_MAX_ATTEMPTS", "0")

	_, err := Load("")
	assert.ErrorContains(t, err, "max_attempts")
}

func TestSaveThenLoad(t *testing.T) {
	t.Chdir(t.TempDir())

	want := DefaultSettings()
	want.DataFile = "elsewhere/data.json"
	want.PacingInterval = 2500 * time.Millisecond
	want.QueriesFile = "queries.txt"

	path := filepath.Join(t.TempDir(), "nested", "tcg-portfolio.toml")
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"empty data file", func(s *Settings) { s.DataFile = "" }},
		{"empty report file", func(s *Settings) { s.ReportFile = "" }},
		{"no attempts", func(s *Settings) { s.MaxAttempts = 0 }},
		{"negative pacing", func(s *Settings) { s.PacingInterval = -time.Second }},
		{"zero concurrency", func(s *Settings) { s.ThumbnailConcurrency = 0 }},
		{"bad log format", func(s *Settings) { s.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestConversions(t *testing.T) {
	s := DefaultSettings()
	s.MaxAttempts = 4
	s.APIBaseURL = "http://localhost:8080/v2/cards"

	policy := s.ToRetryPolicy()
	assert.Equal(t, 4, policy.MaxAttempts)
	assert.Equal(t, 10*time.Second, policy.BusyWait(1))

	opts := s.ToClientOptions()
	assert.Equal(t, "http://localhost:8080/v2/cards", opts.BaseURL)
	assert.Equal(t, 30*time.Second, opts.Timeout)
}
