// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions shared across the application.
//
// This package contains string helpers used by the display layers:
// UTF-8 safe truncation (rune- and column-based), whitespace collapsing,
// and first-line extraction for single-line status output.
package util
