// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.log")

	logger, err := New(Options{Path: path, Level: "debug"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Info("session started", zap.String("query", "golang"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "session started") {
		t.Errorf("log file missing entry, got: %s", data)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Path: filepath.Join(t.TempDir(), "x.log"), Level: "loud"})
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestParseLevelDefaults(t *testing.T) {
	level, err := parseLevel("")
	if err != nil {
		t.Fatalf("parseLevel(\"\") error: %v", err)
	}
	if level.String() != "info" {
		t.Errorf("default level = %s, want info", level)
	}
}
