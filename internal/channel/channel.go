// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package channel provides the asynchronous event channel to the research
// backend.
//
// The rest of the application only sees the Channel interface: fire-and-forget
// Emit plus a stream of inbound notifications. Framing, reconnection, and
// keepalive live entirely inside the transport implementation.
package channel

import (
	"encoding/json"
	"errors"
)

// =============================================================================
// EVENT NAMES
// =============================================================================

// Outbound events.
const (
	EventResearchRequest = "research_request"
	EventGetAgents       = "get_agents"
	EventHealthCheck     = "health_check"
)

// Inbound events.
const (
	EventResearchResponse = "research_response"
	EventResearchProgress = "research_progress"
	EventAgentsResponse   = "agents_response"
	EventHealthResponse   = "health_response"
)

// =============================================================================
// CONTRACT
// =============================================================================

// ErrNotConnected is returned by Emit when no link to the backend exists.
var ErrNotConnected = errors.New("channel: not connected")

// NotificationKind discriminates the variants delivered on Notifications().
type NotificationKind int

const (
	// KindConnected signals the link to the backend came up.
	KindConnected NotificationKind = iota
	// KindDisconnected signals the link went down.
	KindDisconnected
	// KindEvent carries a named server event with its raw payload.
	KindEvent
)

// Notification is one item on the inbound stream. For KindEvent, Event names
// the server event and Payload holds its undecoded body; consumers decode
// defensively since the backend is not under our control.
type Notification struct {
	Kind    NotificationKind
	Event   string
	Payload json.RawMessage
}

// Channel is the bidirectional asynchronous event transport.
type Channel interface {
	// Emit sends a named event with a JSON payload. It never blocks on a
	// response; replies arrive later on Notifications.
	Emit(event string, payload any) error

	// Notifications returns the inbound stream. The channel is closed when
	// the transport shuts down for good.
	Notifications() <-chan Notification
}

// envelope is the wire framing: one JSON object per websocket text message.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}
