// Package config loads the jmmc configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/you-not-fish/jmm/internal/diag"
)

// Config holds the driver settings. Command-line flags override them.
type Config struct {
	MaxErrors    int    `toml:"max_errors"`    // 0 means no limit
	StrictPhases bool   `toml:"strict_phases"` // stop a unit at the first phase order violation
	Color        string `toml:"color"`         // auto, always or never
	Emit         string `toml:"emit"`          // text, json or yaml
	LogLevel     string `toml:"log_level"`     // debug, info, warn or error
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Color:    "auto",
		Emit:     "text",
		LogLevel: "warn",
	}
}

// Load reads a TOML file. Unset keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if c.MaxErrors < 0 {
		return fmt.Errorf("max_errors must not be negative, got %d", c.MaxErrors)
	}
	if _, err := c.ColorMode(); err != nil {
		return err
	}
	switch c.Emit {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid emit format %q (want text, json or yaml)", c.Emit)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// ColorMode returns the parsed color setting.
func (c *Config) ColorMode() (diag.ColorMode, error) {
	return diag.ParseColorMode(c.Color)
}

// Level returns the parsed log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return l, nil
}
