package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "/nonexistent/config.yaml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, 10, cfg.Database.Attempts)
	assert.False(t, cfg.Report.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9000
logging:
  level: debug
  pretty: true
database:
  url: postgres://localhost/menu
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Pretty)
	assert.Equal(t, "postgres://localhost/menu", cfg.Database.URL)
	// Untouched keys keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("MENU_SERVER_PORT", "9090")
	t.Setenv("MENU_LOGGING_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "/nonexistent/config.yaml")

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("MENU_LOGGING_LEVEL", "verbose")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown log level")
	})

	t.Run("port out of range", func(t *testing.T) {
		t.Setenv("MENU_SERVER_PORT", "70000")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})

	t.Run("report without token", func(t *testing.T) {
		t.Setenv("MENU_REPORT_ENABLED", "true")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telegram token")
	})
}

func TestValidateReportNeedsChat(t *testing.T) {
	cfg := defaultConfig()
	cfg.Report.Enabled = true
	cfg.Report.Token = "123:abc"
	require.Error(t, cfg.Validate())

	cfg.Report.Chat = 42
	require.NoError(t, cfg.Validate())
}
