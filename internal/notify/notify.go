// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notify provides queued, auto-dismissing user-facing notifications.
//
// There are two independent kinds, success and error, each with its own
// timer: a new message of one kind replaces the visible one of that kind
// and restarts only that kind's timer, never the other's. Expiry is token
// guarded so a timer scheduled for a replaced toast cannot dismiss its
// successor.
package notify

import "time"

// =============================================================================
// TOASTS
// =============================================================================

// Kind is the notification channel: success or error.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "success"
}

// Default auto-dismiss durations. Errors stay longer to be read.
const (
	DefaultSuccessDuration = 4 * time.Second
	DefaultErrorDuration   = 8 * time.Second
)

// Toast is one visible notification. Token identifies the showing that
// created it; an expiry carrying a stale token is ignored.
type Toast struct {
	Kind         Kind
	Message      string
	VisibleUntil time.Time
	Token        int
}

// =============================================================================
// NOTIFIER
// =============================================================================

type slot struct {
	toast   Toast
	visible bool
	token   int
}

// Notifier owns the two notification slots. It carries no timers itself;
// the event loop schedules one cancellable expiry per Show using the
// returned toast's token.
type Notifier struct {
	successDur time.Duration
	errorDur   time.Duration
	slots      [2]slot
}

// New creates a notifier. Non-positive durations fall back to defaults.
func New(successDur, errorDur time.Duration) *Notifier {
	n := &Notifier{}
	n.SetDurations(successDur, errorDur)
	return n
}

// SetDurations updates the per-kind display durations (config hot reload).
// Already-visible toasts keep their original deadline.
func (n *Notifier) SetDurations(successDur, errorDur time.Duration) {
	if successDur <= 0 {
		successDur = DefaultSuccessDuration
	}
	if errorDur <= 0 {
		errorDur = DefaultErrorDuration
	}
	n.successDur = successDur
	n.errorDur = errorDur
}

// Duration returns the display duration for kind.
func (n *Notifier) Duration(kind Kind) time.Duration {
	if kind == KindError {
		return n.errorDur
	}
	return n.successDur
}

// Show displays message on the kind's slot, replacing any prior toast of
// that kind and restarting that slot's timer. The returned toast carries
// the token the caller must attach to the scheduled expiry.
func (n *Notifier) Show(kind Kind, message string, now time.Time) Toast {
	s := &n.slots[kind]
	s.token++
	s.toast = Toast{
		Kind:         kind,
		Message:      message,
		VisibleUntil: now.Add(n.Duration(kind)),
		Token:        s.token,
	}
	s.visible = true
	return s.toast
}

// Expire dismisses the kind's toast, but only when token still identifies
// the visible showing. A stale expiry from a replaced toast is a no-op.
func (n *Notifier) Expire(kind Kind, token int) {
	s := &n.slots[kind]
	if s.visible && s.token == token {
		s.visible = false
	}
}

// Visible returns the currently visible toasts, success first, at most one
// per kind.
func (n *Notifier) Visible(now time.Time) []Toast {
	var out []Toast
	for kind := KindSuccess; kind <= KindError; kind++ {
		s := &n.slots[kind]
		if s.visible && now.Before(s.toast.VisibleUntil) {
			out = append(out, s.toast)
		}
	}
	return out
}
