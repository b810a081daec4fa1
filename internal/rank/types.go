// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

// Package rank holds the catalog ranking strategies behind the experiment
// split. Every strategy answers the same contract over the same shared
// catalog; only the scoring model differs, so observed engagement deltas
// between variants are attributable to the model alone.
package rank

import (
	"context"
	"sort"

	"github.com/tomtom215/discoverus/internal/catalog"
	"github.com/tomtom215/discoverus/internal/query"
)

// DefaultTopK is the result list length when the caller does not override it.
const DefaultTopK = 10

// ScoredItem is one entry in a ranked result list. Position is 1-based and
// assigned after the final ordering.
type ScoredItem struct {
	Item     catalog.Item `json:"item"`
	Position int          `json:"position"`
	Score    float64      `json:"score"`
}

// Strategy ranks catalog items against an interpreted intent. Rank returns
// at most k items; fewer when the gates exclude the rest, and an empty
// (non-nil-error-free) list when nothing passes. Implementations must be
// deterministic and safe for concurrent use.
type Strategy interface {
	// Name identifies the strategy in logs, events, and responses.
	Name() string

	// Rank returns the top-k admitted items, ordered by score descending
	// with item ID ascending as the tiebreak.
	Rank(ctx context.Context, intent *query.Intent, k int) ([]ScoredItem, error)
}

// admitted applies the hard gates. Runtime and year constraints exclude
// items outright; they never participate in scoring.
func admitted(items []*catalog.Item, intent *query.Intent) []*catalog.Item {
	out := make([]*catalog.Item, 0, len(items))
	for _, item := range items {
		if !intent.AdmitsRuntime(item.RuntimeMinutes) {
			continue
		}
		if !intent.AdmitsYear(item.ReleaseYear) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// finalize orders scored items (score descending, ID ascending on ties),
// truncates to k, and assigns 1-based positions.
func finalize(scored []ScoredItem, k int) []ScoredItem {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Item.ID < scored[j].Item.ID
	})
	if k <= 0 {
		k = DefaultTopK
	}
	if len(scored) > k {
		scored = scored[:k]
	}
	for i := range scored {
		scored[i].Position = i + 1
	}
	return scored
}
