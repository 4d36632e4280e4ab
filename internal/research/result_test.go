// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package research

import (
	"encoding/json"
	"testing"
)

func TestParseResultSetFullPayload(t *testing.T) {
	raw := json.RawMessage(`{
		"summary": "  S  ",
		"report": "R",
		"search_results": [
			{"title": "First", "content": "snippet", "url": "https://a.example"},
			{"title": "Second"}
		],
		"unknown_field": 42
	}`)

	rs, err := ParseResultSet(raw)
	if err != nil {
		t.Fatalf("ParseResultSet error: %v", err)
	}
	if rs.Summary != "S" {
		t.Errorf("summary = %q, want trimmed", rs.Summary)
	}
	if rs.Report != "R" {
		t.Errorf("report = %q", rs.Report)
	}
	if len(rs.Sources) != 2 {
		t.Fatalf("sources = %d, want 2 (order preserved)", len(rs.Sources))
	}
	if rs.Sources[0].URL != "https://a.example" {
		t.Errorf("source url = %q", rs.Sources[0].URL)
	}
	if rs.Sources[1].Title != "Second" || rs.Sources[1].URL != "" {
		t.Errorf("partial source = %+v", rs.Sources[1])
	}
	if len(rs.Raw) == 0 {
		t.Error("raw payload not retained")
	}
}

func TestParseResultSetMissingFields(t *testing.T) {
	rs, err := ParseResultSet(json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("empty object should parse, got %v", err)
	}
	if rs.Summary != "" || rs.Report != "" || rs.SourceCount() != 0 {
		t.Errorf("unexpected defaults: %+v", rs)
	}
}

func TestParseResultSetStructuralFailures(t *testing.T) {
	for _, raw := range []string{"", "null", `"a string"`, `[1,2,3]`, `{bad json`} {
		if _, err := ParseResultSet(json.RawMessage(raw)); err == nil {
			t.Errorf("ParseResultSet(%q) succeeded, want error", raw)
		}
	}
}

func TestSourceCountNilReceiver(t *testing.T) {
	var rs *ResultSet
	if rs.SourceCount() != 0 {
		t.Error("nil ResultSet should count 0 sources")
	}
}
