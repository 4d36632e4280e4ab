// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package notify

import (
	"testing"
	"time"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestShowAndExpire(t *testing.T) {
	n := New(0, 0)

	toast := n.Show(KindSuccess, "exported", base)
	if got := n.Visible(base); len(got) != 1 || got[0].Message != "exported" {
		t.Fatalf("visible = %v", got)
	}

	n.Expire(KindSuccess, toast.Token)
	if got := n.Visible(base); len(got) != 0 {
		t.Errorf("toast still visible after expiry: %v", got)
	}
}

func TestReplacementRestartsTimer(t *testing.T) {
	n := New(0, 0)

	first := n.Show(KindError, "first", base)
	later := base.Add(2 * time.Second)
	second := n.Show(KindError, "second", later)

	if second.VisibleUntil != later.Add(DefaultErrorDuration) {
		t.Errorf("replacement deadline = %v", second.VisibleUntil)
	}

	// The stale timer of the replaced toast must not dismiss the new one.
	n.Expire(KindError, first.Token)
	got := n.Visible(later)
	if len(got) != 1 || got[0].Message != "second" {
		t.Errorf("visible after stale expiry = %v", got)
	}

	n.Expire(KindError, second.Token)
	if got := n.Visible(later); len(got) != 0 {
		t.Errorf("current expiry ignored: %v", got)
	}
}

func TestKindsAreIndependent(t *testing.T) {
	n := New(0, 0)

	n.Show(KindSuccess, "done", base)
	errToast := n.Show(KindError, "broke", base)

	got := n.Visible(base)
	if len(got) != 2 {
		t.Fatalf("visible = %v, want both kinds", got)
	}
	if got[0].Kind != KindSuccess || got[1].Kind != KindError {
		t.Errorf("order = %v, want success first", got)
	}

	// Expiring the error toast leaves the success toast alone.
	n.Expire(KindError, errToast.Token)
	got = n.Visible(base)
	if len(got) != 1 || got[0].Kind != KindSuccess {
		t.Errorf("visible = %v, want success only", got)
	}
}

func TestVisibleHonorsDeadline(t *testing.T) {
	n := New(1*time.Second, 1*time.Second)

	n.Show(KindSuccess, "quick", base)
	if got := n.Visible(base.Add(2 * time.Second)); len(got) != 0 {
		t.Errorf("toast visible past its deadline: %v", got)
	}
}

func TestSetDurations(t *testing.T) {
	n := New(0, 0)
	n.SetDurations(2*time.Second, 3*time.Second)

	if n.Duration(KindSuccess) != 2*time.Second || n.Duration(KindError) != 3*time.Second {
		t.Errorf("durations = %v / %v", n.Duration(KindSuccess), n.Duration(KindError))
	}

	// Non-positive values fall back to defaults.
	n.SetDurations(0, -1)
	if n.Duration(KindSuccess) != DefaultSuccessDuration || n.Duration(KindError) != DefaultErrorDuration {
		t.Errorf("fallback durations = %v / %v", n.Duration(KindSuccess), n.Duration(KindError))
	}
}
