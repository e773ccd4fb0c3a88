// Package config resolves runtime settings from defaults, an optional TOML
// file, an optional .env file and TEMPO_* environment variables, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	DBPath       string        `toml:"db_path"`
	LogLevel     string        `toml:"log_level"`
	LogUseCases  bool          `toml:"log_use_cases"`
	ListenAddr   string        `toml:"listen_addr"`
	TickInterval time.Duration `toml:"tick_interval"`
}

// DefaultConfig returns a Config rooted at home (normally the user's home
// directory).
func DefaultConfig(home string) Config {
	return Config{
		DBPath:       filepath.Join(home, ".tempo", "tempo.db"),
		LogLevel:     "warn",
		LogUseCases:  false,
		ListenAddr:   "127.0.0.1:8765",
		TickInterval: time.Second,
	}
}

// DefaultPath returns the config file location under home.
func DefaultPath(home string) string {
	return filepath.Join(home, ".tempo", "config.toml")
}

// Load builds the effective configuration. A missing config file or .env
// file is not an error; a malformed one is.
func Load(home, path, envFile string) (Config, error) {
	cfg := DefaultConfig(home)

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("reading env file %s: %w", envFile, err)
		}
	}

	applyEnv(&cfg)

	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TEMPO_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TEMPO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TEMPO_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TEMPO_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("TEMPO_TICK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TickInterval = d
		}
	}
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to warn.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
