// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the Bubble Tea front end: a query input, four result
// tabs, status indicators, and toast notifications. All state mutation
// happens inside Update; channel events are pumped in as messages.
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"researchtui/internal/channel"
	"researchtui/internal/config"
	"researchtui/internal/export"
	"researchtui/internal/monitor"
	"researchtui/internal/notify"
	"researchtui/internal/render"
	"researchtui/internal/research"
)

// =============================================================================
// TABS
// =============================================================================

// Tab selects one of the four display surfaces.
type Tab int

const (
	TabSummary Tab = iota
	TabReport
	TabSources
	TabInsights
)

var tabTitles = [...]string{"Summary", "Report", "Sources", "Insights"}

func (t Tab) Title() string { return tabTitles[t] }

func (t Tab) next() Tab { return (t + 1) % Tab(len(tabTitles)) }

func (t Tab) prev() Tab {
	if t == 0 {
		return Tab(len(tabTitles) - 1)
	}
	return t - 1
}

// exportTarget maps a tab to its export encoding. The insights surface is
// derived, so it exports the full data instead.
func (t Tab) exportTarget() export.Target {
	switch t {
	case TabSummary:
		return export.TargetSummary
	case TabReport:
		return export.TargetReport
	case TabSources:
		return export.TargetSources
	default:
		return export.TargetData
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the root Bubble Tea model.
type Model struct {
	cfg    *config.Config
	logger *zap.Logger

	ch         channel.Channel
	controller *research.Controller
	mon        *monitor.Monitor
	exporter   *export.Service
	notifier   *notify.Notifier
	disp       *Display

	input     textinput.Model
	inputMode bool
	spin      spinner.Model
	viewport  viewport.Model
	activeTab Tab

	width  int
	height int
	ready  bool
}

// Deps bundles the collaborators the model needs. Everything is injected;
// the UI constructs nothing it does not own.
type Deps struct {
	Config     *config.Config
	Logger     *zap.Logger
	Channel    channel.Channel
	Controller *research.Controller
	Monitor    *monitor.Monitor
	Exporter   *export.Service
	Notifier   *notify.Notifier
	// Display is the session sink created with NewDisplay and already
	// registered on the controller.
	Display *Display
}

// New creates the root model.
func New(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	input := textinput.New()
	input.Placeholder = "Enter a research query..."
	input.CharLimit = 500
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	disp := deps.Display
	if disp == nil {
		disp = NewDisplay(render.New(nil, logger), logger)
	}

	return Model{
		cfg:        deps.Config,
		logger:     logger,
		ch:         deps.Channel,
		controller: deps.Controller,
		mon:        deps.Monitor,
		exporter:   deps.Exporter,
		notifier:   deps.Notifier,
		disp:       disp,
		input:      input,
		inputMode:  true,
		spin:       spin,
		activeTab:  TabSummary,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spin.Tick,
		waitForNotification(m.ch.Notifications()),
	)
}

// activeContent returns the text of the currently selected tab.
func (m Model) activeContent() string {
	switch m.activeTab {
	case TabSummary:
		return m.disp.surfaces.Summary
	case TabReport:
		return m.disp.surfaces.Report
	case TabSources:
		return m.disp.surfaces.Sources
	default:
		return m.disp.surfaces.Insights
	}
}
