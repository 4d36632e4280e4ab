// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.URL != "ws://127.0.0.1:8000/socket" {
		t.Errorf("default server url = %q", cfg.Server.URL)
	}
	if cfg.Export.PageWidth != 80 {
		t.Errorf("default page width = %d, want 80", cfg.Export.PageWidth)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
url = "wss://research.example.com/socket"
redial_seconds = 5

[ui]
theme = "dark"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.URL != "wss://research.example.com/socket" {
		t.Errorf("server url = %q", cfg.Server.URL)
	}
	if cfg.Server.RedialSeconds != 5 {
		t.Errorf("redial seconds = %d, want 5", cfg.Server.RedialSeconds)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("theme = %q, want dark", cfg.UI.Theme)
	}
	// Unset sections keep defaults.
	if cfg.UI.ErrorToastSeconds != 8 {
		t.Errorf("error toast seconds = %d, want 8", cfg.UI.ErrorToastSeconds)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RESEARCHTUI_SERVER_URL", "ws://10.0.0.1:9000/socket")
	t.Setenv("RESEARCHTUI_THEME", "light")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.URL != "ws://10.0.0.1:9000/socket" {
		t.Errorf("server url = %q", cfg.Server.URL)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q, want light", cfg.UI.Theme)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"http scheme", func(c *Config) { c.Server.URL = "http://example.com" }},
		{"empty host", func(c *Config) { c.Server.URL = "ws://" }},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }},
		{"zero toast duration", func(c *Config) { c.UI.ErrorToastSeconds = 0 }},
		{"narrow page", func(c *Config) { c.Export.PageWidth = 10 }},
		{"zero redial", func(c *Config) { c.Server.RedialSeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.UI.Theme = "dark"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.UI.Theme != "dark" {
		t.Errorf("round-tripped theme = %q, want dark", loaded.UI.Theme)
	}
}
