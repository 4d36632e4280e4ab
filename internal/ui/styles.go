// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// COLORS
// =============================================================================

// All colors use AdaptiveColor for automatic light/dark detection.
var (
	// Cyan - brand color, header, active tab
	colorCyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

	// Emerald - success, connected indicator
	colorEmerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

	// Rose - errors, disconnected indicator
	colorRose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

	// Amber - in-flight / unknown states
	colorAmber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

	colorTextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
	colorTextMuted     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
	colorOverlay       = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}
	colorTextInverse   = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
)

// =============================================================================
// STYLES
// =============================================================================

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorTextSecondary).
			Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTextInverse).
			Background(colorCyan).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorTextSecondary).
				Padding(0, 2)

	progressStyle = lipgloss.NewStyle().
			Foreground(colorAmber).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(0, 1)

	viewportStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorOverlay).
			Padding(0, 1)

	toastSuccessStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorTextInverse).
				Background(colorEmerald).
				Padding(0, 1)

	toastErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTextInverse).
			Background(colorRose).
			Padding(0, 1)

	dotConnected    = lipgloss.NewStyle().Foreground(colorEmerald).Render("●")
	dotDisconnected = lipgloss.NewStyle().Foreground(colorRose).Render("●")
	dotUnknown      = lipgloss.NewStyle().Foreground(colorAmber).Render("●")
)
