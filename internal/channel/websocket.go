// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package channel

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// =============================================================================
// WEBSOCKET TRANSPORT
// =============================================================================

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 20 * time.Second

	// notificationBuffer absorbs bursts so the read pump never stalls on a
	// slow consumer.
	notificationBuffer = 64
)

// WebSocketConfig holds transport options.
type WebSocketConfig struct {
	// URL is the ws:// or wss:// endpoint.
	URL string

	// RedialDelay is the pause between reconnection attempts.
	RedialDelay time.Duration

	// HandshakeTimeout bounds the websocket dial.
	HandshakeTimeout time.Duration

	// Logger is optional; a nop logger is used when nil.
	Logger *zap.Logger
}

// WebSocket is the gorilla/websocket backed Channel. It owns a dial loop
// with a fixed redial delay: reconnection policy is a transport concern,
// never visible to the session layer beyond connect/disconnect
// notifications.
type WebSocket struct {
	cfg    WebSocketConfig
	logger *zap.Logger

	notifs chan Notification

	mu   sync.Mutex // guards conn for concurrent writes
	conn *websocket.Conn
}

// NewWebSocket creates the transport. Call Start to begin dialing.
func NewWebSocket(cfg WebSocketConfig) *WebSocket {
	if cfg.RedialDelay <= 0 {
		cfg.RedialDelay = 3 * time.Second
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocket{
		cfg:    cfg,
		logger: logger,
		notifs: make(chan Notification, notificationBuffer),
	}
}

// Notifications implements Channel.
func (w *WebSocket) Notifications() <-chan Notification {
	return w.notifs
}

// Emit implements Channel. It fails fast with ErrNotConnected when the link
// is down; the caller surfaces that to the user instead of queueing.
func (w *WebSocket) Emit(event string, payload any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return ErrNotConnected
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	w.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := w.conn.WriteJSON(envelope{Event: event, Data: data}); err != nil {
		w.logger.Warn("emit failed", zap.String("event", event), zap.Error(err))
		return err
	}
	return nil
}

// Start runs the dial loop until ctx is cancelled, then closes the
// notification stream.
func (w *WebSocket) Start(ctx context.Context) {
	go func() {
		defer close(w.notifs)
		for {
			if err := w.runOnce(ctx); err != nil {
				w.logger.Info("connection attempt failed", zap.Error(err))
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.cfg.RedialDelay):
			}
		}
	}()
}

// runOnce dials, pumps until the connection dies, and reports the outage.
func (w *WebSocket) runOnce(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: w.cfg.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, w.cfg.URL, nil)
	if err != nil {
		return err
	}

	w.setConn(conn)
	w.notify(ctx, Notification{Kind: KindConnected})
	w.logger.Info("connected", zap.String("url", w.cfg.URL))

	pumpDone := make(chan struct{})
	go w.pingLoop(ctx, conn, pumpDone)

	w.readPump(ctx, conn)
	close(pumpDone)

	w.setConn(nil)
	conn.Close()
	w.notify(ctx, Notification{Kind: KindDisconnected})
	w.logger.Info("disconnected", zap.String("url", w.cfg.URL))
	return nil
}

// readPump delivers inbound envelopes until the connection errors.
// Malformed frames are logged and dropped; a hostile or buggy peer must
// never crash the client.
func (w *WebSocket) readPump(ctx context.Context, conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongTimeout))

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil || env.Event == "" {
			w.logger.Warn("dropping malformed frame", zap.ByteString("frame", data))
			continue
		}
		w.notify(ctx, Notification{Kind: KindEvent, Event: env.Event, Payload: env.Data})
	}
}

// pingLoop keeps the connection alive until the read pump exits.
func (w *WebSocket) pingLoop(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			conn.Close()
			return
		case <-ticker.C:
			w.mu.Lock()
			err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeTimeout))
			w.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (w *WebSocket) setConn(conn *websocket.Conn) {
	w.mu.Lock()
	w.conn = conn
	w.mu.Unlock()
}

// notify delivers without blocking forever on shutdown.
func (w *WebSocket) notify(ctx context.Context, n Notification) {
	select {
	case w.notifs <- n:
	case <-ctx.Done():
	}
}
