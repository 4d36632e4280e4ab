// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"researchtui/internal/notify"
	"researchtui/internal/research"
	"researchtui/internal/util"
)

// chromeHeight is the number of terminal rows used by everything that is
// not the viewport: header, tab bar, viewport border (2), input, progress,
// status bar, help line.
const chromeHeight = 8

// layoutViewport sizes the viewport to the space left after the fixed
// chrome. Called on every terminal resize.
func (m *Model) layoutViewport() {
	w := m.width - viewportStyle.GetHorizontalFrameSize()
	h := m.height - chromeHeight
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if !m.ready {
		m.viewport = viewport.New(w, h)
	} else {
		m.viewport.Width = w
		m.viewport.Height = h
	}
	m.input.Width = m.width - 4
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}

	sections := []string{
		m.viewHeader(),
		m.viewTabs(),
		viewportStyle.Render(m.viewport.View()),
		m.viewInput(),
		m.viewProgress(),
		m.viewStatusBar(),
		m.viewHelp(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	title := headerStyle.Render("Research Console")
	toasts := m.viewToasts()
	if toasts == "" {
		return title
	}
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(toasts)
	if gap < 1 {
		return title + " " + toasts
	}
	return title + strings.Repeat(" ", gap) + toasts
}

func (m Model) viewToasts() string {
	visible := m.notifier.Visible(time.Now())
	if len(visible) == 0 {
		return ""
	}
	parts := make([]string, 0, len(visible))
	for _, t := range visible {
		msg := util.TruncateWidth(t.Message, m.width/2)
		if t.Kind == notify.KindSuccess {
			parts = append(parts, toastSuccessStyle.Render(msg))
		} else {
			parts = append(parts, toastErrorStyle.Render(msg))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) viewTabs() string {
	parts := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		label := fmt.Sprintf("%d %s", i+1, title)
		if Tab(i) == m.activeTab {
			parts = append(parts, tabActiveStyle.Render(label))
		} else {
			parts = append(parts, tabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewInput() string {
	return " " + m.input.View()
}

// viewProgress shows the spinner and progress line while a request is in
// flight, otherwise an empty row so the layout never jumps. Progress text
// is server-supplied and may span lines; only the first one fits here.
func (m Model) viewProgress() string {
	if m.controller.State() != research.StateRequesting {
		return ""
	}
	line := m.spin.View() + " " + util.FirstLine(m.disp.progress)
	return progressStyle.Render(util.TruncateWidth(line, m.width-2))
}

func (m Model) viewStatusBar() string {
	var b strings.Builder

	if m.mon.Connected() {
		b.WriteString(dotConnected + " connected")
	} else {
		b.WriteString(dotDisconnected + " disconnected")
	}

	healthy, known := m.mon.Health()
	switch {
	case !known:
		b.WriteString("  " + dotUnknown + " backend unknown")
	case healthy:
		b.WriteString("  " + dotConnected + " backend healthy")
	default:
		b.WriteString("  " + dotDisconnected + " backend unhealthy")
	}

	if n := m.mon.AgentCount(); n > 0 {
		fmt.Fprintf(&b, "  agents: %d", n)
	}
	if stats := m.disp.surfaces.Stats; stats != "" {
		b.WriteString("  " + stats)
	}
	fmt.Fprintf(&b, "  state: %s", m.controller.State())

	return statusBarStyle.Render(util.TruncateWidth(b.String(), m.width-2))
}

func (m Model) viewHelp() string {
	var help string
	if m.inputMode {
		help = "enter submit • esc browse • tab next • ctrl+c quit"
	} else {
		help = "i edit • enter submit • 1-4/tab tabs • c copy • e export • s share • q quit"
	}
	if m.controller.Busy() {
		help = "esc cancel • " + help
	}
	return helpStyle.Render(util.TruncateWidth(help, m.width-2))
}
