// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"researchtui/internal/channel"
	"researchtui/internal/config"
	"researchtui/internal/export"
	"researchtui/internal/notify"
)

// =============================================================================
// MESSAGES
// =============================================================================

// channelMsg carries one inbound channel notification into the update loop.
type channelMsg struct {
	n channel.Notification
}

// channelClosedMsg signals the transport shut down for good.
type channelClosedMsg struct{}

// toastExpireMsg dismisses a toast. The token guards against dismissing a
// newer toast that replaced the one this timer was scheduled for.
type toastExpireMsg struct {
	kind  notify.Kind
	token int
}

// exportDoneMsg reports the outcome of an export command.
type exportDoneMsg struct {
	target export.Target
	path   string
	err    error
}

// copyDoneMsg reports the outcome of a clipboard write.
type copyDoneMsg struct {
	what string
	err  error
}

// ConfigReloadedMsg delivers a hot-reloaded configuration. Sent from the
// config watcher via Program.Send.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// =============================================================================
// COMMANDS
// =============================================================================

// waitForNotification blocks on the channel's inbound stream and delivers
// the next notification as a message. The update loop re-issues it after
// every received message, the canonical Bubble Tea listen loop.
func waitForNotification(notifs <-chan channel.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-notifs
		if !ok {
			return channelClosedMsg{}
		}
		return channelMsg{n: n}
	}
}

// expireToast schedules the auto-dismiss tick for a shown toast.
func expireToast(toast notify.Toast, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return toastExpireMsg{kind: toast.Kind, token: toast.Token}
	})
}

// exportResult runs an export off the event loop and reports back.
func exportResult(svc *export.Service, target export.Target) tea.Cmd {
	return func() tea.Msg {
		path, err := svc.Export(target)
		return exportDoneMsg{target: target, path: path, err: err}
	}
}

// copyText writes text to the system clipboard.
func copyText(what, text string) tea.Cmd {
	return func() tea.Msg {
		return copyDoneMsg{what: what, err: clipboard.WriteAll(text)}
	}
}
