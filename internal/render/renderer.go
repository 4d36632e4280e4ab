// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render maps a completed result onto the four display surfaces:
// summary, report, sources, and insights.
//
// Rendering is a pure mapping and tolerant of missing fields. Failures never
// escape: a formatting error or panic is reported as a single error value so
// the caller can keep the previous surface content instead of partially
// overwriting it.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"researchtui/internal/research"
)

// =============================================================================
// PLACEHOLDERS
// =============================================================================

const (
	SummaryPlaceholder  = "No summary available."
	ReportPlaceholder   = "No report available."
	SourcesPlaceholder  = "No sources were found."
	InsightsPlaceholder = "No insights available."
)

// Welcome returns the empty-state surfaces shown before a session starts
// and immediately after a new submission clears the display.
func Welcome() Surfaces {
	return Surfaces{
		Summary:  "Submit a research query to see a summary of the findings.",
		Report:   "Submit a research query to see the full report.",
		Sources:  "Submit a research query to see the sources consulted.",
		Insights: "Submit a research query to see derived insights.",
		Stats:    "Sources: 0",
	}
}

// Failure returns the error-state surfaces shown after a failed session.
func Failure(message string) Surfaces {
	text := "Research failed: " + message
	return Surfaces{
		Summary:  text,
		Report:   text,
		Sources:  text,
		Insights: text,
		Stats:    "Sources: 0",
	}
}

// =============================================================================
// RENDERER
// =============================================================================

// Formatter renders rich text (markdown) for display. glamour backs the
// production implementation; the renderer falls back to plain paragraph
// normalization when no formatter is configured.
type Formatter interface {
	Format(text string) (string, error)
}

// Surfaces holds the rendered content of the four display tabs plus the
// source-count statistic.
type Surfaces struct {
	Summary  string
	Report   string
	Sources  string
	Insights string
	Stats    string
}

// Renderer converts result sets into display surfaces.
type Renderer struct {
	formatter Formatter
	logger    *zap.Logger
}

// New creates a renderer. Both arguments may be nil.
func New(formatter Formatter, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{formatter: formatter, logger: logger}
}

// Render produces all surfaces for rs. On error the returned surfaces must
// be discarded and the previous content kept; the error is already suitable
// for a user-facing notification.
func (r *Renderer) Render(rs *research.ResultSet, insights []research.Insight) (surfaces Surfaces, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("renderer panic", zap.Any("panic", rec))
			err = &research.ClientError{
				Type:    research.ErrTypeRender,
				Message: "could not render the result",
			}
		}
	}()

	summary, err := r.richText(textOrEmpty(rs, func(v *research.ResultSet) string { return v.Summary }), SummaryPlaceholder)
	if err != nil {
		return Surfaces{}, err
	}
	report, err := r.richText(textOrEmpty(rs, func(v *research.ResultSet) string { return v.Report }), ReportPlaceholder)
	if err != nil {
		return Surfaces{}, err
	}

	return Surfaces{
		Summary:  summary,
		Report:   report,
		Sources:  RenderSources(sourcesOf(rs)),
		Insights: RenderInsights(insights),
		Stats:    fmt.Sprintf("Sources: %d", rs.SourceCount()),
	}, nil
}

// richText formats text through the pluggable formatter, with placeholder
// substitution for blank input and paragraph normalization as the fallback
// when no formatter is configured.
func (r *Renderer) richText(text, placeholder string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return placeholder, nil
	}
	if r.formatter == nil {
		return normalizeParagraphs(text), nil
	}
	formatted, err := r.formatter.Format(text)
	if err != nil {
		r.logger.Warn("formatter failed", zap.Error(err))
		return "", &research.ClientError{
			Type:    research.ErrTypeRender,
			Message: "could not format the result text",
			Cause:   err,
		}
	}
	return formatted, nil
}

// =============================================================================
// SOURCES
// =============================================================================

// RenderSources renders the ordered, 1-indexed source list. Entries without
// a title or snippet get fixed fallbacks; the URL line appears only when a
// URL is present.
func RenderSources(sources []research.Source) string {
	if len(sources) == 0 {
		return SourcesPlaceholder
	}

	var b strings.Builder
	for i, s := range sources {
		if i > 0 {
			b.WriteString("\n\n")
		}
		title := s.Title
		if strings.TrimSpace(title) == "" {
			title = "Untitled"
		}
		snippet := s.Content
		if strings.TrimSpace(snippet) == "" {
			snippet = "No snippet."
		}
		fmt.Fprintf(&b, "%d. %s\n   %s", i+1, title, snippet)
		if strings.TrimSpace(s.URL) != "" {
			fmt.Fprintf(&b, "\n   %s", s.URL)
		}
	}
	return b.String()
}

// =============================================================================
// INSIGHTS
// =============================================================================

var insightMarkers = map[research.InsightKind]string{
	research.InsightSuccess:       "✔",
	research.InsightTrends:        "▲",
	research.InsightOpportunities: "◆",
	research.InsightChallenges:    "!",
}

// RenderInsights renders the derived insight list in order, or the
// placeholder when there are none.
func RenderInsights(insights []research.Insight) string {
	if len(insights) == 0 {
		return InsightsPlaceholder
	}

	var b strings.Builder
	for i, in := range insights {
		if i > 0 {
			b.WriteString("\n\n")
		}
		marker, ok := insightMarkers[in.Kind]
		if !ok {
			marker = "•"
		}
		fmt.Fprintf(&b, "%s %s\n  %s", marker, in.Title, in.Description)
	}
	return b.String()
}

// =============================================================================
// HELPERS
// =============================================================================

var blankRuns = regexp.MustCompile(`\n{3,}`)

// normalizeParagraphs is the minimum fallback formatting: normalize line
// endings, trim trailing space per line, and collapse runs of blank lines
// into paragraph breaks.
func normalizeParagraphs(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func textOrEmpty(rs *research.ResultSet, get func(*research.ResultSet) string) string {
	if rs == nil {
		return ""
	}
	return get(rs)
}

func sourcesOf(rs *research.ResultSet) []research.Source {
	if rs == nil {
		return nil
	}
	return rs.Sources
}
