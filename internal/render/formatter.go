// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"github.com/charmbracelet/glamour"
)

// GlamourFormatter renders markdown to styled terminal output.
type GlamourFormatter struct {
	renderer *glamour.TermRenderer
}

// NewGlamourFormatter builds the production formatter. theme is "auto",
// "dark", or "light"; width is the wrap column.
func NewGlamourFormatter(theme string, width int) (*GlamourFormatter, error) {
	if width <= 0 {
		width = 80
	}

	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	}
	if theme == "dark" || theme == "light" {
		opts = append(opts, glamour.WithStandardStyle(theme))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &GlamourFormatter{renderer: renderer}, nil
}

// Format implements Formatter.
func (f *GlamourFormatter) Format(text string) (string, error) {
	return f.renderer.Render(text)
}
