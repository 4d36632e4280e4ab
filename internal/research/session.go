// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package research owns the session lifecycle: one query at a time, driven
// entirely by user actions and asynchronous server events.
package research

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"researchtui/internal/channel"
)

// =============================================================================
// SESSION STATE
// =============================================================================

// SessionState is the lifecycle state of the single research session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRequesting
	StateCompleted
	StateFailed
	StateCancelled
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// genericFailureMessage is shown when the backend reports failure without
// an error string, or when its payload cannot be used.
const genericFailureMessage = "The research request failed."

// =============================================================================
// COLLABORATORS
// =============================================================================

// Emitter is the outbound half of the channel the controller needs.
type Emitter interface {
	Emit(event string, payload any) error
}

// Gate reports whether the backend link is up. Implemented by the
// connection monitor.
type Gate interface {
	Connected() bool
}

// Sink receives session lifecycle callbacks. The UI registers itself here;
// the controller never imports a rendering toolkit.
type Sink interface {
	// SessionStarted fires after a submission is accepted. All display
	// surfaces reset to their placeholder state.
	SessionStarted(query string)

	// SessionProgress updates the single progress-message field. No state
	// change.
	SessionProgress(message string)

	// SessionCompleted delivers the immutable result and its derived
	// insights for rendering plus a success notification.
	SessionCompleted(rs *ResultSet, insights []Insight)

	// SessionFailed resets surfaces to an error placeholder and shows an
	// error notification with message.
	SessionFailed(message string)

	// SessionCancelled announces a local cancellation.
	SessionCancelled()
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller is the single owner of session state. All methods must be
// called from the event loop; the cooperative single-threaded model means
// no locking, and correctness under interleaved events comes from the
// awaiting guard flag: the wire protocol has no request identifiers, so a
// response is only ever applied when one is outstanding.
type Controller struct {
	emitter Emitter
	gate    Gate
	sink    Sink
	logger  *zap.Logger

	state    SessionState
	query    string
	awaiting bool

	// sessionID correlates log lines of one submission. It never goes on
	// the wire.
	sessionID string

	// last is the most recent completed result, retained for export after
	// the session re-arms. It is replaced only by the next completion.
	last *ResultSet

	progress string
}

// NewController wires the controller to its collaborators. logger may be
// nil.
func NewController(emitter Emitter, gate Gate, sink Sink, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		emitter: emitter,
		gate:    gate,
		sink:    sink,
		logger:  logger,
		state:   StateIdle,
	}
}

// State returns the current session state.
func (c *Controller) State() SessionState { return c.state }

// Query returns the query of the current or most recent session.
func (c *Controller) Query() string { return c.query }

// Progress returns the latest progress message, empty outside Requesting.
func (c *Controller) Progress() string { return c.progress }

// LastResult returns the most recent completed ResultSet, or nil. The
// previous result stays available here until a newer session completes, so
// exports keep working while a new request is in flight.
func (c *Controller) LastResult() *ResultSet { return c.last }

// Busy reports whether a request is outstanding.
func (c *Controller) Busy() bool { return c.state == StateRequesting }

// =============================================================================
// OPERATIONS
// =============================================================================

// Submit starts a new session for query. It returns ErrEmptyQuery for a
// blank query and ErrNotConnected while the link is down. Submitting while
// a request is outstanding is a silent no-op. Completed, Failed and
// Cancelled re-arm automatically: they accept a new submission like Idle.
func (c *Controller) Submit(query string) error {
	if c.state == StateRequesting {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyQuery
	}
	if c.gate != nil && !c.gate.Connected() {
		return ErrNotConnected
	}

	c.query = query
	c.sessionID = uuid.NewString()
	c.state = StateRequesting
	c.awaiting = true
	c.progress = ""

	c.sink.SessionStarted(query)
	c.logger.Info("session started",
		zap.String("session_id", c.sessionID),
		zap.String("query", query))

	if err := c.emitter.Emit(channel.EventResearchRequest, RequestPayload{Query: query}); err != nil {
		// The link dropped between the gate check and the emit. Resolve
		// the session immediately instead of waiting for a response that
		// can never come.
		c.awaiting = false
		c.fail(genericFailureMessage)
		return &ClientError{Type: ErrTypeChannel, Message: "could not send the research request", Cause: err}
	}
	return nil
}

// HandleProgress applies an inbound research_progress event. Progress
// outside an outstanding request is ignored.
func (c *Controller) HandleProgress(payload json.RawMessage) {
	if !c.awaiting {
		return
	}
	var p ProgressPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.Message == "" {
		return
	}
	c.progress = p.Message
	c.sink.SessionProgress(p.Message)
}

// HandleResponse resolves the outstanding request with an inbound
// research_response event. A response with no request outstanding — late
// arrival after a cancel, or a duplicate — is dropped without touching any
// state: there are no request IDs on the wire, so the guard flag is the
// only defense against acting on a stale response.
func (c *Controller) HandleResponse(payload json.RawMessage) {
	if !c.awaiting {
		c.logger.Debug("dropping response with no request outstanding")
		return
	}
	c.awaiting = false
	c.progress = ""

	var resp ResponsePayload
	if err := json.Unmarshal(payload, &resp); err != nil {
		c.logger.Warn("malformed response payload",
			zap.String("session_id", c.sessionID), zap.Error(err))
		c.fail(genericFailureMessage)
		return
	}

	if !resp.Success {
		msg := strings.TrimSpace(resp.Error)
		if msg == "" {
			msg = genericFailureMessage
		}
		c.fail(msg)
		return
	}

	if resp.Data == nil {
		c.fail(genericFailureMessage)
		return
	}
	rs, err := ParseResultSet(resp.Data.Results)
	if err != nil {
		// A success flag on an unusable body is still a failure.
		c.logger.Warn("unusable results payload",
			zap.String("session_id", c.sessionID), zap.Error(err))
		c.fail(genericFailureMessage)
		return
	}

	c.last = rs
	c.state = StateCompleted
	c.logger.Info("session completed",
		zap.String("session_id", c.sessionID),
		zap.Int("sources", rs.SourceCount()))
	c.sink.SessionCompleted(rs, DeriveInsights(rs, c.query))
}

// Cancel abandons the outstanding request locally. The backend is not told
// to stop; when its response eventually arrives, the cleared guard flag
// makes HandleResponse drop it.
func (c *Controller) Cancel() {
	if c.state != StateRequesting {
		return
	}
	c.awaiting = false
	c.progress = ""
	c.state = StateCancelled
	c.logger.Info("session cancelled", zap.String("session_id", c.sessionID))
	c.sink.SessionCancelled()
}

func (c *Controller) fail(message string) {
	c.state = StateFailed
	c.logger.Info("session failed",
		zap.String("session_id", c.sessionID),
		zap.String("message", message))
	c.sink.SessionFailed(message)
}
