// Package config loads and saves lifeclock preferences.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v10"

	"github.com/theirongolddev/lifeclock/internal/model"
)

// Config holds all lifeclock configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig holds the values the input form starts from.
type GeneralConfig struct {
	DefaultAge int              `toml:"default_age"`
	Defaults   model.Allocation `toml:"defaults"`
}

// AppearanceConfig holds theme settings and per-activity color overrides.
type AppearanceConfig struct {
	Theme string `toml:"theme" env:"LIFECLOCK_THEME"`
	// Palette maps an activity key ("sleep", "work", ...) to a hex color.
	Palette map[string]string `toml:"palette,omitempty"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Addr   string `toml:"addr" env:"LIFECLOCK_ADDR"`
	DevLog bool   `toml:"dev_log" env:"LIFECLOCK_DEV_LOG"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultAge: 25,
			Defaults:   model.NewAllocation(7, 8, 3, 1, 5),
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8790",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lifeclock")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lifeclock")
}

// RuntimeDir returns the directory for server pid, state and log files.
func RuntimeDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "lifeclock")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "lifeclock")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment variables override file values.
func Load() (Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load for callers that must keep running: on any error it
// returns the built-in defaults alongside the error.
func LoadOrDefault() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// generalEnv holds the env-settable part of [general]. The default
// allocation stays out of the env walk: its *float64 fields are not structs.
type generalEnv struct {
	DefaultAge int `env:"LIFECLOCK_AGE"`
}

func applyEnv(cfg *Config) error {
	general := generalEnv{DefaultAge: cfg.General.DefaultAge}
	if err := env.Parse(&general); err != nil {
		return err
	}
	cfg.General.DefaultAge = general.DefaultAge

	if err := env.Parse(&cfg.Appearance); err != nil {
		return err
	}
	return env.Parse(&cfg.Server)
}

func loadFile() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	// A saved defaults table is authoritative: cleared fields are omitted on
	// save and must not fall back to the built-in values.
	if md.IsDefined("general", "defaults") {
		var saved struct {
			General struct {
				Defaults model.Allocation `toml:"defaults"`
			} `toml:"general"`
		}
		if _, err := toml.Decode(string(data), &saved); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
		cfg.General.Defaults = saved.General.Defaults
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Age returns the configured default age, clamped into the valid range.
func (c Config) Age() int {
	switch {
	case c.General.DefaultAge < model.MinAge:
		return model.MinAge
	case c.General.DefaultAge > model.MaxAge:
		return model.MaxAge
	}
	return c.General.DefaultAge
}
