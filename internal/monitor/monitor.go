// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package monitor tracks the state of the backend link and the display-only
// backend status indicators (agent roster, health).
//
// Nothing in this package ever touches session state: probes and their
// responses only feed status indicators.
package monitor

import (
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"researchtui/internal/channel"
)

// =============================================================================
// PAYLOADS
// =============================================================================

// AgentsPayload is the body of an inbound agents_response event.
type AgentsPayload struct {
	Success bool `json:"success"`
	Data    *struct {
		Agents map[string]struct {
			Type string `json:"type"`
		} `json:"agents"`
	} `json:"data"`
}

// HealthPayload is the body of an inbound health_response event.
type HealthPayload struct {
	Success bool `json:"success"`
}

// =============================================================================
// MONITOR
// =============================================================================

// Emitter is the outbound half of the channel used for probes.
type Emitter interface {
	Emit(event string, payload any) error
}

// Monitor owns the binary connection state and the backend status
// indicators. It implements the gate the session controller checks before
// submitting.
type Monitor struct {
	emitter Emitter
	logger  *zap.Logger

	// limiter throttles the probe pair so reconnect flapping cannot flood
	// the backend with roster/health queries.
	limiter *rate.Limiter

	// pending holds a deferred probe pair waiting out the limiter, with its
	// reservation so superseding it returns the tokens.
	pending    *time.Timer
	pendingRes *rate.Reservation

	connected bool

	agents      map[string]string // id -> type
	healthy     bool
	healthKnown bool
}

// New creates a monitor. logger may be nil.
func New(emitter Emitter, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		emitter: emitter,
		logger:  logger,
		// One probe pair immediately, then at most one pair per 10s.
		limiter: rate.NewLimiter(rate.Every(10*time.Second/2), 2),
		agents:  make(map[string]string),
	}
}

// Connected reports whether the backend link is up.
func (m *Monitor) Connected() bool { return m.connected }

// HandleConnect records the link coming up and fires the idempotent health
// probes. Probe responses only update display indicators.
func (m *Monitor) HandleConnect() {
	m.connected = true
	m.probe()
}

// HandleDisconnect records the link going down. Only the indicator changes.
// TODO: a request in flight when the link drops stays in Requesting until
// the server answers on reconnect or the user cancels; decide whether the
// session should fail fast here instead.
func (m *Monitor) HandleDisconnect() {
	m.connected = false
	m.healthKnown = false
	m.stopPending()
}

// probe emits the agent-roster and health queries. Flapping is throttled,
// never starved: when the limiter has no burst left the pair is deferred
// until it does, so a link that comes up and stays up always gets probed.
func (m *Monitor) probe() {
	m.stopPending()
	res := m.limiter.ReserveN(time.Now(), 2)
	if !res.OK() {
		m.emitProbes()
		return
	}
	if delay := res.Delay(); delay > 0 {
		m.logger.Debug("probe deferred by rate limit", zap.Duration("delay", delay))
		m.pendingRes = res
		m.pending = time.AfterFunc(delay, m.emitProbes)
		return
	}
	m.emitProbes()
}

// stopPending cancels a deferred probe pair and returns its tokens.
func (m *Monitor) stopPending() {
	if m.pending == nil {
		return
	}
	if m.pending.Stop() {
		m.pendingRes.Cancel()
	}
	m.pending = nil
	m.pendingRes = nil
}

// emitProbes may run on a deferred timer goroutine; it touches only the
// emitter and the logger, both safe for concurrent use.
func (m *Monitor) emitProbes() {
	for _, event := range []string{channel.EventGetAgents, channel.EventHealthCheck} {
		if err := m.emitter.Emit(event, struct{}{}); err != nil {
			m.logger.Warn("probe failed", zap.String("event", event), zap.Error(err))
		}
	}
}

// =============================================================================
// PROBE RESPONSES (DISPLAY ONLY)
// =============================================================================

// HandleAgents applies an inbound agents_response. Malformed payloads are
// dropped.
func (m *Monitor) HandleAgents(payload json.RawMessage) {
	var p AgentsPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		m.logger.Warn("malformed agents_response", zap.Error(err))
		return
	}
	if !p.Success || p.Data == nil {
		return
	}
	agents := make(map[string]string, len(p.Data.Agents))
	for id, a := range p.Data.Agents {
		agents[id] = a.Type
	}
	m.agents = agents
}

// HandleHealth applies an inbound health_response.
func (m *Monitor) HandleHealth(payload json.RawMessage) {
	var p HealthPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		m.logger.Warn("malformed health_response", zap.Error(err))
		return
	}
	m.healthy = p.Success
	m.healthKnown = true
}

// AgentCount returns the size of the last seen agent roster.
func (m *Monitor) AgentCount() int { return len(m.agents) }

// AgentTypes returns the roster's agent types, sorted for stable display.
func (m *Monitor) AgentTypes() []string {
	types := make([]string, 0, len(m.agents))
	for _, t := range m.agents {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Health returns the last known backend health and whether one was seen
// since the link came up.
func (m *Monitor) Health() (healthy, known bool) {
	return m.healthy, m.healthKnown
}
