package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/home/ana")
	assert.Equal(t, "/home/ana/.tempo/tempo.db", cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:8765", cfg.ListenAddr)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.False(t, cfg.LogUseCases)
}

func TestLoad_MissingFilesUseDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir, filepath.Join(dir, "nope.toml"), filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(dir), cfg)
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path = "/data/tempo.db"
log_level = "debug"
log_use_cases = true
tick_interval = "500ms"
`), 0o600))

	cfg, err := Load(dir, path, "")
	require.NoError(t, err)
	assert.Equal(t, "/data/tempo.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, "127.0.0.1:8765", cfg.ListenAddr, "unset keys keep defaults")
}

func TestLoad_MalformedTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("db_path = "), 0o600))

	_, err := Load(dir, path, "")
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`listen_addr = "127.0.0.1:9000"`), 0o600))

	t.Setenv("TEMPO_LISTEN_ADDR", "127.0.0.1:9999")
	t.Setenv("TEMPO_DB", ":memory:")
	t.Setenv("TEMPO_TICK_INTERVAL", "not-a-duration")

	cfg, err := Load(dir, path, "")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.ListenAddr)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, time.Second, cfg.TickInterval, "invalid override ignored")
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TEMPO_LOG_LEVEL=error\n"), 0o600))

	// godotenv does not override variables that are already set, and it sets
	// them process-wide; register cleanup through t.Setenv first.
	t.Setenv("TEMPO_LOG_LEVEL", "")
	os.Unsetenv("TEMPO_LOG_LEVEL")

	cfg, err := Load(dir, "", envFile)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())
}

func TestSlogLevel_UnknownDefaultsToWarn(t *testing.T) {
	cfg := Config{LogLevel: "chatty"}
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}
