package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
backend_url: https://backend.example.com
backend_token: secret
connection_test_timeout: 3s
github:
  client_id: gh-id
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://backend.example.com", cfg.BackendURL)
	assert.Equal(t, "secret", cfg.BackendToken)
	assert.Equal(t, 3*time.Second, cfg.TestTimeout)
	assert.True(t, cfg.GitHub.Enabled())
	assert.False(t, cfg.Google.Enabled())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	// untouched keys keep their defaults
	assert.Equal(t, "stderr", cfg.Log.Output)
	assert.Equal(t, Defaults().RedirectURL, cfg.RedirectURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "backend_url: https://from-file.example.com\n")
	t.Setenv("DEWEY_BACKEND_URL", "https://from-env.example.com")
	t.Setenv("DEWEY_GOOGLE_CLIENT_ID", "g-id")
	t.Setenv("DEWEY_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://from-env.example.com", cfg.BackendURL)
	assert.Equal(t, "g-id", cfg.Google.ClientID)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_DefaultsWhenNoFileFound(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed yaml": "backend_url: [",
		"bad log level":  "log:\n  level: loud\n",
		"bad url":        "backend_url: not a url\n",
		"zero timeout":   "connection_test_timeout: 0s\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
