package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("TODOUI_CONFIG", "")
	t.Setenv("TODOAPI_CONFIG", "")
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadClientDefaults(t *testing.T) {
	isolate(t)

	c, err := LoadClient("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.API.BaseURL)
	assert.Equal(t, 30*time.Second, c.API.Timeout)
	assert.Equal(t, 5*time.Minute, c.Cache.TTL)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_STATE_HOME"), "todoui", "todoui.log"), c.Log.File)
	assert.False(t, c.UI.DesktopNotifications)
}

func TestLoadClientFileAndEnv(t *testing.T) {
	isolate(t)
	path := writeFile(t, `
[api]
base_url = "http://todo.internal:9000"
timeout = "5s"

[ui]
desktop_notifications = true
`)
	t.Setenv("TODOUI_LOG_LEVEL", "debug")
	t.Setenv("TODOUI_CACHE_TTL", "1m")

	c, err := LoadClient(path)
	require.NoError(t, err)
	assert.Equal(t, "http://todo.internal:9000", c.API.BaseURL)
	assert.Equal(t, 5*time.Second, c.API.Timeout)
	assert.Equal(t, time.Minute, c.Cache.TTL)
	assert.Equal(t, "debug", c.Log.Level)
	assert.True(t, c.UI.DesktopNotifications)
}

func TestLoadClientConfigEnvPath(t *testing.T) {
	isolate(t)
	path := writeFile(t, "[api]\nbase_url = \"https://todos.example.com\"\n")
	t.Setenv("TODOUI_CONFIG", path)

	c, err := LoadClient("")
	require.NoError(t, err)
	assert.Equal(t, "https://todos.example.com", c.API.BaseURL)
}

func TestLoadClientMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := LoadClient(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadClientRejectsRelativeBaseURL(t *testing.T) {
	isolate(t)
	t.Setenv("TODOUI_API_BASE_URL", "localhost")

	_, err := LoadClient("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")
}

func TestLoadServerDefaultsAndEnv(t *testing.T) {
	isolate(t)

	s, err := LoadServer("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, "todoapi.db", s.Database.Path)
	assert.Equal(t, 10*time.Second, s.Server.ShutdownTimeout)

	t.Setenv("TODOAPI_SERVER_ADDR", "127.0.0.1:0")
	t.Setenv("TODOAPI_DATABASE_PATH", "/tmp/x.db")
	s, err = LoadServer("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", s.Server.Addr)
	assert.Equal(t, "/tmp/x.db", s.Database.Path)
}
