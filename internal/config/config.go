// Package config loads tandem settings from defaults, an optional TOML file
// and TANDEM_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/alexanderramin/tandem/internal/logging"
	"github.com/alexanderramin/tandem/internal/remote"
)

// Config is the resolved process configuration.
type Config struct {
	DBPath           string `toml:"db_path" env:"TANDEM_DB"`
	APIURL           string `toml:"api_url" env:"TANDEM_API_URL"`
	RemoteTimeoutMs  int    `toml:"remote_timeout_ms" env:"TANDEM_REMOTE_TIMEOUT_MS"`
	RemoteMaxRetries int    `toml:"remote_max_retries" env:"TANDEM_REMOTE_MAX_RETRIES"`
	RemoteBackoffMs  int    `toml:"remote_backoff_ms" env:"TANDEM_REMOTE_BACKOFF_MS"`
	LogLevel         string `toml:"log_level" env:"TANDEM_LOG_LEVEL"`
	LogCalls         bool   `toml:"log_calls" env:"TANDEM_LOG_CALLS"`
	DevServerAddr    string `toml:"devserver_addr" env:"TANDEM_DEVSERVER_ADDR"`
}

// LoaderOptions controls Load.
type LoaderOptions struct {
	// ConfigPath is an explicit config file. When empty the default path is
	// used if it exists.
	ConfigPath string
	// HomeDir overrides the user's home directory.
	HomeDir string
	Logger  *slog.Logger
}

// Default returns the built-in settings rooted at home.
func Default(home string) *Config {
	rc := remote.DefaultConfig()
	return &Config{
		DBPath:           filepath.Join(home, ".tandem", "tandem.db"),
		APIURL:           rc.BaseURL,
		RemoteTimeoutMs:  rc.TimeoutMs,
		RemoteMaxRetries: rc.MaxRetries,
		RemoteBackoffMs:  rc.BackoffMs,
		LogLevel:         "warn",
		DevServerAddr:    "127.0.0.1:8080",
	}
}

// DefaultPath is the config file read when no explicit path is given.
func DefaultPath(home string) string {
	return filepath.Join(home, ".tandem", "config.toml")
}

// Load resolves the configuration. A missing explicit config file is an
// error; a missing default file is not. Unknown TOML keys are logged and
// otherwise ignored.
func Load(opts LoaderOptions) (*Config, error) {
	logger := logging.NoopIfNil(opts.Logger)

	home := opts.HomeDir
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		home = h
	}

	cfg := Default(home)

	path := opts.ConfigPath
	explicit := path != ""
	if !explicit {
		path = DefaultPath(home)
	}
	if err := overlayFile(cfg, path, explicit, logger); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.DBPath = expandHome(cfg.DBPath, home)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string, explicit bool, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		logger.Warn("config file contains undecoded keys", "path", path, "keys", keys)
	}
	return nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("api_url must not be empty")
	}
	if c.RemoteTimeoutMs <= 0 {
		return fmt.Errorf("remote_timeout_ms must be positive, got %d", c.RemoteTimeoutMs)
	}
	if c.RemoteMaxRetries < 0 {
		return fmt.Errorf("remote_max_retries must not be negative, got %d", c.RemoteMaxRetries)
	}
	if c.RemoteBackoffMs < 0 {
		return fmt.Errorf("remote_backoff_ms must not be negative, got %d", c.RemoteBackoffMs)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Remote returns the backend client settings.
func (c *Config) Remote() remote.Config {
	return remote.Config{
		BaseURL:    c.APIURL,
		TimeoutMs:  c.RemoteTimeoutMs,
		MaxRetries: c.RemoteMaxRetries,
		BackoffMs:  c.RemoteBackoffMs,
	}
}
