// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package research

import (
	"fmt"
	"strings"
)

// =============================================================================
// INSIGHTS
// =============================================================================

// InsightKind classifies a derived annotation.
type InsightKind string

const (
	InsightSuccess       InsightKind = "success"
	InsightTrends        InsightKind = "trends"
	InsightOpportunities InsightKind = "opportunities"
	InsightChallenges    InsightKind = "challenges"
)

// Insight is a derived, non-authoritative annotation over a completed
// result. Insights are recomputed per render and never persisted.
type Insight struct {
	Kind        InsightKind
	Title       string
	Description string
}

// DeriveInsights computes the ordered insight list for a completed result
// and its originating query. The order is a display contract:
//
//  1. a success insight announcing workflow completion, always first;
//  2. exactly one source-count insight — trends when sources were found,
//     challenges when none were;
//  3. a trailing opportunities insight when the query asks about "latest"
//     developments (case-insensitive substring match).
//
// A nil result yields no insights.
func DeriveInsights(rs *ResultSet, query string) []Insight {
	if rs == nil {
		return nil
	}

	insights := []Insight{{
		Kind:        InsightSuccess,
		Title:       "Research Complete",
		Description: "The multi-agent research workflow finished successfully.",
	}}

	count := rs.SourceCount()
	if count > 0 {
		insights = append(insights, Insight{
			Kind:        InsightTrends,
			Title:       "Source Coverage",
			Description: fmt.Sprintf("Findings were compiled from %d sources.", count),
		})
	} else {
		insights = append(insights, Insight{
			Kind:        InsightChallenges,
			Title:       "Limited Sources",
			Description: fmt.Sprintf("Only %d sources were found; consider broadening the query.", count),
		})
	}

	if strings.Contains(strings.ToLower(query), "latest") {
		insights = append(insights, Insight{
			Kind:        InsightOpportunities,
			Title:       "Recency Focus",
			Description: "This query targets recent developments; re-running it later may surface new information.",
		})
	}

	return insights
}
