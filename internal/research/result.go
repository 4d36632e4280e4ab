// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package research

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// =============================================================================
// RESULT MODEL
// =============================================================================

// Source is one web source cited by the research workflow. All fields are
// optional; order is server-determined and preserved.
type Source struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// ResultSet is the immutable outcome of a completed session. Raw retains
// the undecoded payload so exports reproduce exactly what the backend sent,
// including fields this client does not understand.
type ResultSet struct {
	Summary string
	Report  string
	Sources []Source
	Raw     json.RawMessage
}

// SourceCount returns the number of sources, zero for a nil receiver.
func (rs *ResultSet) SourceCount() int {
	if rs == nil {
		return 0
	}
	return len(rs.Sources)
}

// =============================================================================
// WIRE PAYLOADS
// =============================================================================

// RequestPayload is the body of an outbound research_request event.
type RequestPayload struct {
	Query string `json:"query"`
}

// ProgressPayload is the body of an inbound research_progress event.
type ProgressPayload struct {
	Message string `json:"message"`
}

// ResponsePayload is the body of an inbound research_response event. Data
// and Error are both optional; decoding is defensive throughout because the
// payload shape is not under this client's control.
type ResponsePayload struct {
	Success bool          `json:"success"`
	Data    *ResponseData `json:"data"`
	Error   string        `json:"error"`
}

// ResponseData wraps the results object.
type ResponseData struct {
	Results json.RawMessage `json:"results"`
}

// resultPayload mirrors the backend's results object.
type resultPayload struct {
	Summary       string `json:"summary"`
	Report        string `json:"report"`
	SearchResults []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		URL     string `json:"url"`
	} `json:"search_results"`
}

// errNoResults marks a structurally unusable response body.
var errNoResults = errors.New("response carries no results object")

// ParseResultSet decodes the `results` object of a successful response.
// Missing fields are tolerated and default to empty; only a missing or
// non-object results value is a structural failure, which the caller treats
// as a failed response.
func ParseResultSet(raw json.RawMessage) (*ResultSet, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, errNoResults
	}

	var payload resultPayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, err
	}

	rs := &ResultSet{
		Summary: strings.TrimSpace(payload.Summary),
		Report:  strings.TrimSpace(payload.Report),
		Raw:     append(json.RawMessage(nil), trimmed...),
	}
	for _, s := range payload.SearchResults {
		rs.Sources = append(rs.Sources, Source{
			Title:   strings.TrimSpace(s.Title),
			Content: strings.TrimSpace(s.Content),
			URL:     strings.TrimSpace(s.URL),
		})
	}
	return rs, nil
}
