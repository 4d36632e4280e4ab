// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File location (in order of precedence):
//   - path passed on the command line
//   - ~/.researchtui/config.toml
//   - built-in defaults
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Export  ExportConfig  `toml:"export"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig describes the backend event channel endpoint.
type ServerConfig struct {
	// URL is the websocket endpoint of the research backend.
	URL string `toml:"url"`
	// RedialSeconds is the delay between reconnection attempts.
	RedialSeconds int `toml:"redial_seconds"`
}

// ExportConfig controls where and how results are exported.
type ExportConfig struct {
	// OutputDir is the directory exported files are written to.
	OutputDir string `toml:"output_dir"`
	// PageWidth is the fixed text width for paginated summary exports.
	PageWidth int `toml:"page_width"`
	// PageLines is the number of text lines per page.
	PageLines int `toml:"page_lines"`
}

// UIConfig contains display preferences. These are hot-reloadable.
type UIConfig struct {
	// Theme selects the markdown rendering style: "auto", "dark", "light".
	Theme string `toml:"theme"`
	// SuccessToastSeconds is how long success notifications stay visible.
	SuccessToastSeconds int `toml:"success_toast_seconds"`
	// ErrorToastSeconds is how long error notifications stay visible.
	ErrorToastSeconds int `toml:"error_toast_seconds"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:           "ws://127.0.0.1:8000/socket",
			RedialSeconds: 3,
		},
		Export: ExportConfig{
			OutputDir: ".",
			PageWidth: 80,
			PageLines: 56,
		},
		UI: UIConfig{
			Theme:               "auto",
			SuccessToastSeconds: 4,
			ErrorToastSeconds:   8,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.researchtui/config.toml, or "" if the home
// directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".researchtui", "config.toml")
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from path, falling back to defaults when the
// file does not exist. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies RESEARCHTUI_* environment variables over cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RESEARCHTUI_SERVER_URL"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("RESEARCHTUI_EXPORT_DIR"); v != "" {
		cfg.Export.OutputDir = v
	}
	if v := os.Getenv("RESEARCHTUI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("RESEARCHTUI_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("RESEARCHTUI_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv("RESEARCHTUI_REDIAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.RedialSeconds = n
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that cannot work at runtime.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("invalid server url %q: %w", c.Server.URL, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("server url %q must use ws:// or wss://", c.Server.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("server url %q has no host", c.Server.URL)
	}

	if c.Server.RedialSeconds <= 0 {
		return fmt.Errorf("server.redial_seconds must be positive, got %d", c.Server.RedialSeconds)
	}

	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("ui.theme must be auto, dark, or light, got %q", c.UI.Theme)
	}

	if c.UI.SuccessToastSeconds <= 0 || c.UI.ErrorToastSeconds <= 0 {
		return errors.New("toast durations must be positive")
	}

	if c.Export.PageWidth < 40 {
		return fmt.Errorf("export.page_width must be at least 40, got %d", c.Export.PageWidth)
	}
	if c.Export.PageLines < 10 {
		return fmt.Errorf("export.page_lines must be at least 10, got %d", c.Export.PageLines)
	}

	return nil
}

// Save writes the configuration to path as TOML, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return errors.New("no config path available")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
