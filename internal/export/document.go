// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// =============================================================================
// PAGED TEXT DOCUMENT
// =============================================================================

// PagedTextFormatter lays text out as fixed-width pages separated by form
// feeds, with a title header and a centered page footer. It is the default
// DocumentFormatter implementation.
type PagedTextFormatter struct {
	// Width is the fixed text width in columns.
	Width int
	// Lines is the number of content lines per page, footer excluded.
	Lines int
}

// NewPagedTextFormatter returns a formatter with the given geometry,
// clamping unusable values to the defaults (80x56).
func NewPagedTextFormatter(width, lines int) *PagedTextFormatter {
	if width < 40 {
		width = 80
	}
	if lines < 10 {
		lines = 56
	}
	return &PagedTextFormatter{Width: width, Lines: lines}
}

// Layout implements DocumentFormatter.
func (f *PagedTextFormatter) Layout(title, text string) ([]byte, error) {
	wrapped := wordwrap.String(strings.ReplaceAll(text, "\r\n", "\n"), f.Width)
	lines := strings.Split(wrapped, "\n")

	// Header occupies the first page's top: title plus an underline and a
	// separating blank line.
	header := []string{title, strings.Repeat("=", min(len(title), f.Width)), ""}
	lines = append(header, lines...)

	perPage := f.Lines
	pageCount := (len(lines) + perPage - 1) / perPage
	if pageCount == 0 {
		pageCount = 1
	}

	var out bytes.Buffer
	for page := 0; page < pageCount; page++ {
		if page > 0 {
			out.WriteString("\f\n")
		}
		start := page * perPage
		end := min(start+perPage, len(lines))
		for _, line := range lines[start:end] {
			out.WriteString(line)
			out.WriteByte('\n')
		}
		out.WriteByte('\n')
		out.WriteString(centerLine(fmt.Sprintf("- %d / %d -", page+1, pageCount), f.Width))
		out.WriteByte('\n')
	}
	return out.Bytes(), nil
}

func centerLine(s string, width int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
