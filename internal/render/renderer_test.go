// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"errors"
	"strings"
	"testing"

	"researchtui/internal/research"
)

// upperFormatter is a trivial Formatter for observing pass-through.
type upperFormatter struct{}

func (upperFormatter) Format(text string) (string, error) {
	return strings.ToUpper(text), nil
}

// failingFormatter always errors.
type failingFormatter struct{}

func (failingFormatter) Format(string) (string, error) {
	return "", errors.New("formatter exploded")
}

// panickyFormatter panics, exercising the recovery boundary.
type panickyFormatter struct{}

func (panickyFormatter) Format(string) (string, error) {
	panic("formatter bug")
}

func TestRenderFullResult(t *testing.T) {
	rs := &research.ResultSet{
		Summary: "short summary",
		Report:  "long report",
		Sources: []research.Source{
			{Title: "A", Content: "snippet a", URL: "https://a.example"},
			{Content: "snippet only"},
			{Title: "C"},
		},
	}
	insights := research.DeriveInsights(rs, "anything")

	surfaces, err := New(upperFormatter{}, nil).Render(rs, insights)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if surfaces.Summary != "SHORT SUMMARY" {
		t.Errorf("summary = %q, want formatter output", surfaces.Summary)
	}
	if surfaces.Report != "LONG REPORT" {
		t.Errorf("report = %q", surfaces.Report)
	}
	if surfaces.Stats != "Sources: 3" {
		t.Errorf("stats = %q, want exact count", surfaces.Stats)
	}

	// 1-indexed ordered list with fallbacks.
	if !strings.Contains(surfaces.Sources, "1. A") {
		t.Errorf("sources missing first entry:\n%s", surfaces.Sources)
	}
	if !strings.Contains(surfaces.Sources, "2. Untitled") {
		t.Errorf("missing title fallback:\n%s", surfaces.Sources)
	}
	if !strings.Contains(surfaces.Sources, "No snippet.") {
		t.Errorf("missing snippet fallback:\n%s", surfaces.Sources)
	}
	if !strings.Contains(surfaces.Sources, "https://a.example") {
		t.Errorf("missing url line:\n%s", surfaces.Sources)
	}
	if strings.Count(surfaces.Sources, "http") != 1 {
		t.Errorf("url lines rendered for sources without a url:\n%s", surfaces.Sources)
	}
}

func TestRenderMissingFieldsFallBack(t *testing.T) {
	surfaces, err := New(upperFormatter{}, nil).Render(&research.ResultSet{Summary: "  "}, nil)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if surfaces.Summary != SummaryPlaceholder {
		t.Errorf("summary = %q, want placeholder", surfaces.Summary)
	}
	if surfaces.Report != ReportPlaceholder {
		t.Errorf("report = %q, want placeholder", surfaces.Report)
	}
	if surfaces.Sources != SourcesPlaceholder {
		t.Errorf("sources = %q, want placeholder", surfaces.Sources)
	}
	if surfaces.Insights != InsightsPlaceholder {
		t.Errorf("insights = %q, want placeholder", surfaces.Insights)
	}
	if surfaces.Stats != "Sources: 0" {
		t.Errorf("stats = %q, want zero count", surfaces.Stats)
	}
}

func TestRenderWithoutFormatterNormalizes(t *testing.T) {
	rs := &research.ResultSet{Summary: "para one\r\n\n\n\npara two  \n"}

	surfaces, err := New(nil, nil).Render(rs, nil)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if surfaces.Summary != "para one\n\npara two" {
		t.Errorf("normalized summary = %q", surfaces.Summary)
	}
}

func TestRenderFormatterFailure(t *testing.T) {
	rs := &research.ResultSet{Summary: "text"}

	_, err := New(failingFormatter{}, nil).Render(rs, nil)
	if research.TypeOf(err) != research.ErrTypeRender {
		t.Errorf("error = %v, want render error", err)
	}
}

func TestRenderPanicIsContained(t *testing.T) {
	rs := &research.ResultSet{Summary: "text"}

	_, err := New(panickyFormatter{}, nil).Render(rs, nil)
	if research.TypeOf(err) != research.ErrTypeRender {
		t.Errorf("error = %v, want render error from recovered panic", err)
	}
}

func TestRenderInsightsOrdering(t *testing.T) {
	insights := []research.Insight{
		{Kind: research.InsightSuccess, Title: "Done", Description: "finished"},
		{Kind: research.InsightTrends, Title: "Coverage", Description: "5 sources"},
	}

	out := RenderInsights(insights)
	if strings.Index(out, "Done") > strings.Index(out, "Coverage") {
		t.Errorf("insight order not preserved:\n%s", out)
	}
}

func TestWelcomeAndFailureSurfaces(t *testing.T) {
	w := Welcome()
	if w.Summary == "" || w.Report == "" || w.Sources == "" || w.Insights == "" {
		t.Errorf("welcome surfaces incomplete: %+v", w)
	}

	f := Failure("X")
	if !strings.Contains(f.Summary, "X") {
		t.Errorf("failure surface missing message: %q", f.Summary)
	}
}
