// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"go.uber.org/zap"

	"researchtui/internal/notify"
	"researchtui/internal/render"
	"researchtui/internal/research"
)

// =============================================================================
// DISPLAY STATE (SESSION SINK)
// =============================================================================

// notice is a queued notification. Sink callbacks cannot schedule Bubble Tea
// commands, so they queue notices here and the update loop drains them into
// the notifier right after each controller call.
type notice struct {
	kind    notify.Kind
	message string
}

// Display holds everything the session mutates on screen. It lives behind a
// pointer inside the model so controller callbacks observe the same state
// the next View call reads, regardless of Bubble Tea copying the model
// value.
type Display struct {
	renderer *render.Renderer
	logger   *zap.Logger

	surfaces render.Surfaces
	progress string
	notices  []notice
}

func NewDisplay(renderer *render.Renderer, logger *zap.Logger) *Display {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Display{
		renderer: renderer,
		logger:   logger,
		surfaces: render.Welcome(),
	}
}

// drainNotices returns and clears the queued notifications.
func (d *Display) drainNotices() []notice {
	out := d.notices
	d.notices = nil
	return out
}

// SessionStarted implements research.Sink: all surfaces reset to the
// welcome placeholders while the request is in flight.
func (d *Display) SessionStarted(query string) {
	d.surfaces = render.Welcome()
	d.progress = "Submitting research request..."
}

// SessionProgress implements research.Sink.
func (d *Display) SessionProgress(message string) {
	d.progress = message
}

// SessionCompleted implements research.Sink. A render failure keeps the
// prior surfaces untouched and surfaces exactly one error notification.
func (d *Display) SessionCompleted(rs *research.ResultSet, insights []research.Insight) {
	d.progress = ""
	surfaces, err := d.renderer.Render(rs, insights)
	if err != nil {
		d.logger.Warn("render failed", zap.Error(err))
		d.notices = append(d.notices, notice{notify.KindError, err.Error()})
		return
	}
	d.surfaces = surfaces
	d.notices = append(d.notices, notice{notify.KindSuccess, "Research completed."})
}

// SessionFailed implements research.Sink.
func (d *Display) SessionFailed(message string) {
	d.progress = ""
	d.surfaces = render.Failure(message)
	d.notices = append(d.notices, notice{notify.KindError, message})
}

// SessionCancelled implements research.Sink. Surfaces keep whatever they
// showed; only the notification changes.
func (d *Display) SessionCancelled() {
	d.progress = ""
	d.notices = append(d.notices, notice{notify.KindError, "Research cancelled."})
}
