// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"researchtui/internal/channel"
	"researchtui/internal/config"
	"researchtui/internal/notify"
	"researchtui/internal/render"
	"researchtui/internal/util"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutViewport()
		m.ready = true
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case channelMsg:
		cmds := m.handleNotification(msg.n)
		cmds = append(cmds, waitForNotification(m.ch.Notifications()))
		return m, tea.Batch(cmds...)

	case channelClosedMsg:
		m.logger.Info("channel closed, shutting down")
		return m, tea.Quit

	case toastExpireMsg:
		m.notifier.Expire(msg.kind, msg.token)
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			return m, m.showToast(notify.KindError, msg.err.Error())
		}
		return m, m.showToast(notify.KindSuccess, fmt.Sprintf("Exported to %s", msg.path))

	case copyDoneMsg:
		if msg.err != nil {
			return m, m.showToast(notify.KindError, fmt.Sprintf("Clipboard unavailable: %v", msg.err))
		}
		return m, m.showToast(notify.KindSuccess, fmt.Sprintf("Copied %s to clipboard.", msg.what))

	case ConfigReloadedMsg:
		return m.applyConfig(msg.Config)
	}

	// Everything else (cursor blink, mouse) goes to the focused widgets.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Always available regardless of mode.
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.controller.Busy() {
			m.controller.Cancel()
			return m, tea.Batch(m.drainDisplay()...)
		}
		if m.inputMode {
			m.inputMode = false
			m.input.Blur()
		}
		return m, nil
	case "tab":
		m.activeTab = m.activeTab.next()
		m.refreshViewport()
		return m, nil
	case "shift+tab":
		m.activeTab = m.activeTab.prev()
		m.refreshViewport()
		return m, nil
	}

	if m.inputMode {
		return m.handleInputKey(msg)
	}
	return m.handleNormalKey(msg)
}

// handleInputKey runs while the query field has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		return m.submit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleNormalKey runs with the query field blurred, vim-style.
func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "i", "a":
		m.inputMode = true
		m.input.Focus()
		if msg.String() == "a" {
			m.input.CursorEnd()
		}
		return m, textinput.Blink

	case "enter":
		return m.submit()

	case "1", "2", "3", "4":
		m.activeTab = Tab(msg.String()[0] - '1')
		m.refreshViewport()
		return m, nil

	case "c":
		content := strings.TrimSpace(m.activeContent())
		if content == "" {
			return m, m.showToast(notify.KindError, "Nothing to copy.")
		}
		return m, copyText(m.activeTab.Title(), content)

	case "e":
		if m.controller.LastResult() == nil {
			return m, m.showToast(notify.KindError, "No research result to export yet.")
		}
		return m, exportResult(m.exporter, m.activeTab.exportTarget())

	case "s":
		blurb := m.shareBlurb()
		if blurb == "" {
			return m, m.showToast(notify.KindError, "Nothing to share yet.")
		}
		return m, copyText("share text", blurb)

	case "q":
		return m, tea.Quit

	case "up", "k":
		m.viewport.LineUp(1)
		return m, nil
	case "down", "j":
		m.viewport.LineDown(1)
		return m, nil
	case "pgup", "ctrl+u":
		m.viewport.HalfViewUp()
		return m, nil
	case "pgdown", "ctrl+d":
		m.viewport.HalfViewDown()
		return m, nil
	case "home", "g":
		m.viewport.GotoTop()
		return m, nil
	case "end", "G":
		m.viewport.GotoBottom()
		return m, nil
	}
	return m, nil
}

// submit sends the current query through the controller. Controller errors
// come back as toasts; a duplicate submit while busy is a silent no-op.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.controller.Busy() {
		return m, nil
	}
	query := m.input.Value()
	if err := m.controller.Submit(query); err != nil {
		cmds := m.drainDisplay()
		cmds = append(cmds, m.showToast(notify.KindError, err.Error()))
		return m, tea.Batch(cmds...)
	}
	m.refreshViewport()
	return m, tea.Batch(m.drainDisplay()...)
}

// shareBlurb builds the one-paragraph clipboard summary of the last result.
func (m Model) shareBlurb() string {
	rs := m.controller.LastResult()
	if rs == nil {
		return ""
	}
	summary := util.CollapseSpace(rs.Summary)
	if summary == "" {
		summary = render.SummaryPlaceholder
	}
	return fmt.Sprintf("Research: %s\n\n%s\n\n(%d sources)",
		m.controller.Query(), util.TruncateRunes(summary, 500), rs.SourceCount())
}

// =============================================================================
// CHANNEL DISPATCH
// =============================================================================

// handleNotification routes one inbound channel notification to the session
// controller or the backend monitor, then drains any display notices the
// handlers queued.
func (m *Model) handleNotification(n channel.Notification) []tea.Cmd {
	switch n.Kind {
	case channel.KindConnected:
		m.mon.HandleConnect()
	case channel.KindDisconnected:
		m.mon.HandleDisconnect()
	case channel.KindEvent:
		switch n.Event {
		case channel.EventResearchResponse:
			m.controller.HandleResponse(n.Payload)
		case channel.EventResearchProgress:
			m.controller.HandleProgress(n.Payload)
		case channel.EventAgentsResponse:
			m.mon.HandleAgents(n.Payload)
		case channel.EventHealthResponse:
			m.mon.HandleHealth(n.Payload)
		default:
			m.logger.Debug("unhandled event", zap.String("event", n.Event))
		}
	}
	m.refreshViewport()
	return m.drainDisplay()
}

// =============================================================================
// TOASTS AND SURFACES
// =============================================================================

// showToast records a toast and schedules its token-guarded expiry.
func (m *Model) showToast(kind notify.Kind, message string) tea.Cmd {
	toast := m.notifier.Show(kind, message, time.Now())
	return expireToast(toast, m.notifier.Duration(kind))
}

// drainDisplay converts queued sink notices into toasts.
func (m *Model) drainDisplay() []tea.Cmd {
	var cmds []tea.Cmd
	for _, nt := range m.disp.drainNotices() {
		cmds = append(cmds, m.showToast(nt.kind, nt.message))
	}
	return cmds
}

// refreshViewport pushes the active tab's text into the viewport.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.activeContent())
	if atBottom {
		m.viewport.GotoTop()
	}
}

// applyConfig absorbs a hot-reloaded configuration. Only the settings that
// can change mid-session are applied; transport settings need a restart.
func (m Model) applyConfig(cfg *config.Config) (tea.Model, tea.Cmd) {
	if cfg == nil {
		return m, nil
	}
	m.cfg = cfg
	m.notifier.SetDurations(
		time.Duration(cfg.UI.SuccessToastSeconds)*time.Second,
		time.Duration(cfg.UI.ErrorToastSeconds)*time.Second,
	)
	m.logger.Info("configuration reloaded")
	return m, m.showToast(notify.KindSuccess, "Configuration reloaded.")
}
