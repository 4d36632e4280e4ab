// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package research

import (
	"strings"
	"testing"
)

func TestDeriveInsightsNilResult(t *testing.T) {
	if got := DeriveInsights(nil, "anything"); len(got) != 0 {
		t.Errorf("nil result produced %d insights, want 0", len(got))
	}
}

func TestDeriveInsightsSuccessAlwaysFirst(t *testing.T) {
	rs := &ResultSet{Sources: []Source{{Title: "A"}}}
	insights := DeriveInsights(rs, "quantum computing")

	if len(insights) == 0 || insights[0].Kind != InsightSuccess {
		t.Fatalf("insights = %+v, want success first", insights)
	}
}

func TestDeriveInsightsSourceCount(t *testing.T) {
	rs := &ResultSet{Sources: []Source{{Title: "A"}, {Title: "B"}, {Title: "C"}}}
	insights := DeriveInsights(rs, "plain query")

	if len(insights) != 2 {
		t.Fatalf("got %d insights, want 2", len(insights))
	}
	if insights[1].Kind != InsightTrends {
		t.Errorf("second insight kind = %q, want trends", insights[1].Kind)
	}
	if !strings.Contains(insights[1].Description, "3") {
		t.Errorf("description %q does not embed the count", insights[1].Description)
	}
}

func TestDeriveInsightsNoSources(t *testing.T) {
	insights := DeriveInsights(&ResultSet{}, "plain query")

	if len(insights) != 2 {
		t.Fatalf("got %d insights, want 2", len(insights))
	}
	if insights[1].Kind != InsightChallenges {
		t.Errorf("second insight kind = %q, want challenges", insights[1].Kind)
	}
	if !strings.Contains(insights[1].Description, "0") {
		t.Errorf("description %q does not contain \"0\"", insights[1].Description)
	}
}

func TestDeriveInsightsLatestQuery(t *testing.T) {
	rs := &ResultSet{Sources: []Source{{Title: "A"}}}

	for _, query := range []string{"Latest news", "the LATEST trends", "latest"} {
		insights := DeriveInsights(rs, query)
		if len(insights) != 3 {
			t.Fatalf("query %q: got %d insights, want 3", query, len(insights))
		}
		if insights[2].Kind != InsightOpportunities {
			t.Errorf("query %q: third insight kind = %q, want opportunities", query, insights[2].Kind)
		}
	}

	// Without the substring there is no recency insight.
	if got := DeriveInsights(rs, "old history"); len(got) != 2 {
		t.Errorf("non-latest query produced %d insights, want 2", len(got))
	}
}
