package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
env: "dev"
api:
  base_url: "http://127.0.0.1:9999"
  timeout: 3s
scanner:
  reset_delay: 250ms
  stdin_event_id: 7
session_file: "/tmp/cookies.json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Scanner.ResetDelay)
	assert.Equal(t, int64(7), cfg.Scanner.StdinEventID)
	assert.Equal(t, "/tmp/cookies.json", cfg.SessionFile)
	assert.Equal(t, "localhost:8082", cfg.HTTPServer.Address)
	assert.False(t, cfg.Database.Enabled())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadDefaultsSessionFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("MA_CENTRAL_SESSION_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/xdg", "ma-central", "cookies.json"), cfg.SessionFile)
	assert.Equal(t, time.Second, cfg.Scanner.ResetDelay)
	assert.Equal(t, "https://macsvc.jayagra.com", cfg.API.BaseURL)
}
