// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"researchtui/internal/research"
)

func fixedResult() *research.ResultSet {
	return &research.ResultSet{
		Summary: "the summary",
		Report:  "the full report",
		Sources: []research.Source{
			{Title: "First Source", URL: "https://a.example"},
			{Title: "Second Source", URL: ""},
		},
		Raw: json.RawMessage(`{"summary":"the summary","extra":true}`),
	}
}

func newTestService(rs *research.ResultSet, dir string) *Service {
	return NewService(func() *research.ResultSet { return rs }, NewPagedTextFormatter(80, 56), dir, nil)
}

func TestExportWithoutResult(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(nil, dir)

	for _, target := range []Target{TargetSummary, TargetReport, TargetSources, TargetData} {
		_, err := svc.Export(target)
		if research.TypeOf(err) != research.ErrTypeNoResult {
			t.Errorf("Export(%q) error = %v, want no-result error", target, err)
		}
	}

	// No file side effect on failure.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("export dir not empty after failed exports: %v", entries)
	}
}

func TestExportSummaryWithoutFormatter(t *testing.T) {
	svc := NewService(func() *research.ResultSet { return fixedResult() }, nil, t.TempDir(), nil)

	_, err := svc.Export(TargetSummary)
	if research.TypeOf(err) != research.ErrTypeFormatterUnavailable {
		t.Errorf("error = %v, want formatter-unavailable", err)
	}
}

func TestEncodeReportPassthrough(t *testing.T) {
	data, err := newTestService(fixedResult(), t.TempDir()).Encode(TargetReport)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if string(data) != "the full report" {
		t.Errorf("report bytes = %q", data)
	}
}

func TestEncodeSourcesLayout(t *testing.T) {
	data, err := newTestService(fixedResult(), t.TempDir()).Encode(TargetSources)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	want := "First Source\nhttps://a.example\n\nSecond Source\n"
	if string(data) != want {
		t.Errorf("sources bytes = %q, want %q", data, want)
	}
}

func TestEncodeDataPrefersRawPayload(t *testing.T) {
	data, err := newTestService(fixedResult(), t.TempDir()).Encode(TargetData)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if !strings.Contains(string(data), `"extra": true`) {
		t.Errorf("indented raw payload missing backend-only field:\n%s", data)
	}
}

func TestEncodeDataWithoutRawFallsBack(t *testing.T) {
	rs := fixedResult()
	rs.Raw = nil

	data, err := newTestService(rs, t.TempDir()).Encode(TargetData)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("fallback encoding not valid JSON: %v", err)
	}
	if decoded["summary"] != "the summary" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestExportWritesFixedFilenames(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(fixedResult(), dir)

	wantNames := map[Target]string{
		TargetSummary: "research_summary.txt",
		TargetReport:  "research_report.txt",
		TargetSources: "research_sources.txt",
		TargetData:    "research_data.json",
	}
	for target, name := range wantNames {
		path, err := svc.Export(target)
		if err != nil {
			t.Fatalf("Export(%q) error: %v", target, err)
		}
		if filepath.Base(path) != name {
			t.Errorf("Export(%q) path = %q, want filename %q", target, path, name)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("exported file missing: %v", err)
		}
	}
}

func TestUnknownTargetUsesDataEncoding(t *testing.T) {
	svc := newTestService(fixedResult(), t.TempDir())

	path, err := svc.Export(Target("insights"))
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if filepath.Base(path) != "research_data.json" {
		t.Errorf("unknown target path = %q", path)
	}
}

func TestPagedTextFormatterGeometry(t *testing.T) {
	f := NewPagedTextFormatter(40, 10)

	// Enough text to force multiple pages.
	text := strings.Repeat("alpha beta gamma delta epsilon zeta. ", 40)
	doc, err := f.Layout("Research Summary", text)
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}

	out := string(doc)
	pages := strings.Split(out, "\f")
	if len(pages) < 2 {
		t.Fatalf("expected multiple pages, got %d", len(pages))
	}
	if !strings.HasPrefix(out, "Research Summary\n") {
		t.Errorf("missing title header:\n%s", out[:80])
	}
	if !strings.Contains(out, "- 1 / ") {
		t.Error("missing page footer")
	}

	// Fixed width: no content line exceeds the configured width.
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 40 {
			t.Errorf("line exceeds width 40: %q", line)
		}
	}
}

func TestPagedTextFormatterClampsGeometry(t *testing.T) {
	f := NewPagedTextFormatter(0, 0)
	if f.Width != 80 || f.Lines != 56 {
		t.Errorf("clamped geometry = %dx%d, want 80x56", f.Width, f.Lines)
	}
}
