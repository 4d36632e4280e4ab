// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export serializes the last completed research result to files.
//
// Each target has a fixed output encoding and filename. Byte production is
// the testable core; the file write at the end is a thin collaborator
// boundary.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"researchtui/internal/research"
)

// =============================================================================
// TARGETS
// =============================================================================

// Target identifies an export encoding.
type Target string

const (
	TargetSummary Target = "summary"
	TargetReport  Target = "report"
	TargetSources Target = "sources"
	// TargetData is the catch-all: the entire result as indented JSON.
	TargetData Target = "data"
)

// Filename returns the fixed output filename for a target. Unknown targets
// fall through to the full-data encoding.
func Filename(target Target) string {
	switch target {
	case TargetSummary:
		return "research_summary.txt"
	case TargetReport:
		return "research_report.txt"
	case TargetSources:
		return "research_sources.txt"
	default:
		return "research_data.json"
	}
}

// =============================================================================
// SERVICE
// =============================================================================

// DocumentFormatter lays plain text out as a paginated fixed-width document.
// It is a pluggable collaborator: the summary export fails cleanly when no
// implementation is configured.
type DocumentFormatter interface {
	Layout(title, text string) ([]byte, error)
}

// Service exports the most recent completed result. The result is read
// through a getter so the service always sees the session controller's
// retained last-known-good result, never a stale copy.
type Service struct {
	lastResult func() *research.ResultSet
	formatter  DocumentFormatter
	outputDir  string
	logger     *zap.Logger
}

// NewService wires the export service. formatter may be nil, in which case
// summary exports fail with ErrFormatterUnavailable.
func NewService(lastResult func() *research.ResultSet, formatter DocumentFormatter, outputDir string, logger *zap.Logger) *Service {
	if outputDir == "" {
		outputDir = "."
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		lastResult: lastResult,
		formatter:  formatter,
		outputDir:  outputDir,
		logger:     logger,
	}
}

// Encode produces the export bytes for target without touching the
// filesystem. It fails with ErrNoResult when no session has completed yet.
func (s *Service) Encode(target Target) ([]byte, error) {
	rs := s.lastResult()
	if rs == nil {
		return nil, research.ErrNoResult
	}

	switch target {
	case TargetSummary:
		if s.formatter == nil {
			return nil, research.ErrFormatterUnavailable
		}
		doc, err := s.formatter.Layout("Research Summary", rs.Summary)
		if err != nil {
			return nil, &research.ClientError{
				Type:    research.ErrTypeFormatterUnavailable,
				Message: "could not lay out the summary document",
				Cause:   err,
			}
		}
		return doc, nil

	case TargetReport:
		return []byte(rs.Report), nil

	case TargetSources:
		return encodeSources(rs.Sources), nil

	default:
		return encodeData(rs)
	}
}

// Export encodes target and writes it under the configured output
// directory, returning the written path. No file is touched when encoding
// fails.
func (s *Service) Export(target Target) (string, error) {
	data, err := s.Encode(target)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(s.outputDir, Filename(target))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}

	s.logger.Info("exported result",
		zap.String("target", string(target)),
		zap.String("path", path),
		zap.Int("bytes", len(data)))
	return path, nil
}

// =============================================================================
// ENCODINGS
// =============================================================================

// encodeSources serializes each source as "{title}\n{url}" joined by blank
// lines, in list order.
func encodeSources(sources []research.Source) []byte {
	entries := make([]string, 0, len(sources))
	for _, s := range sources {
		entries = append(entries, s.Title+"\n"+s.URL)
	}
	return []byte(strings.Join(entries, "\n\n"))
}

// encodeData renders the full result as indented JSON, preferring the raw
// backend payload so nothing the client did not understand is lost.
func encodeData(rs *research.ResultSet) ([]byte, error) {
	if len(rs.Raw) > 0 {
		var out bytes.Buffer
		if err := json.Indent(&out, rs.Raw, "", "  "); err == nil {
			return out.Bytes(), nil
		}
		// Raw payload no longer valid JSON; fall through to the struct.
	}
	return json.MarshalIndent(struct {
		Summary string            `json:"summary"`
		Report  string            `json:"report"`
		Sources []research.Source `json:"sources"`
	}{rs.Summary, rs.Report, rs.Sources}, "", "  ")
}
