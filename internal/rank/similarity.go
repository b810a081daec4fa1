// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package rank

import (
	"context"

	"github.com/tomtom215/discoverus/internal/catalog"
	"github.com/tomtom215/discoverus/internal/query"
)

// SimilarityConfig tunes the structured-match boosts layered on top of the
// cosine score.
type SimilarityConfig struct {
	// GenreBoost is added per matched genre.
	GenreBoost float64

	// CastBoost is added per matched cast member.
	CastBoost float64
}

// DefaultSimilarityConfig returns the standard similarity boost weights.
func DefaultSimilarityConfig() SimilarityConfig {
	return SimilarityConfig{
		GenreBoost: 0.3,
		CastBoost:  0.2,
	}
}

// Similarity is the content-similarity ranking strategy. Items are indexed
// as TF-IDF documents over title, overview, genres, and vibes; the query
// document is assembled from the intent's soft constraints and residual
// keywords. Cosine similarity plus small structured-match boosts gives the
// score. A query with no usable terms falls back to popularity order so
// the strategy never returns an empty list for a non-empty catalog.
type Similarity struct {
	cat   *catalog.Catalog
	cfg   SimilarityConfig
	model *tfidfModel
	index map[int]int // item ID -> model document index
}

// NewSimilarity builds the strategy and its TF-IDF index over the catalog.
func NewSimilarity(cat *catalog.Catalog, cfg SimilarityConfig) *Similarity {
	items := cat.Items()
	docTerms := make([][]string, len(items))
	index := make(map[int]int, len(items))
	for i, item := range items {
		docTerms[i] = itemTerms(&items[i])
		index[item.ID] = i
	}
	return &Similarity{
		cat:   cat,
		cfg:   cfg,
		model: newTFIDFModel(docTerms),
		index: index,
	}
}

// Name implements Strategy.
func (s *Similarity) Name() string { return "tfidf_similarity" }

// Rank implements Strategy.
func (s *Similarity) Rank(ctx context.Context, intent *query.Intent, k int) ([]ScoredItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := admitted(s.cat.ByPopularity(), intent)
	qv := s.model.queryVector(queryTerms(intent))

	// No corpus-known query terms and nothing to boost on: every score
	// would be zero, so rank the admitted items by popularity instead.
	if len(qv) == 0 && len(intent.Genres) == 0 && len(intent.Cast) == 0 {
		scored := make([]ScoredItem, 0, len(candidates))
		for _, item := range candidates {
			scored = append(scored, ScoredItem{Item: *item, Score: item.Popularity})
		}
		return finalize(scored, k), nil
	}

	scored := make([]ScoredItem, 0, len(candidates))
	for _, item := range candidates {
		score := s.model.cosine(qv, s.index[item.ID])
		score += s.boost(item, intent)
		scored = append(scored, ScoredItem{Item: *item, Score: score})
	}
	return finalize(scored, k), nil
}

// boost adds the structured-match weights on top of the cosine score.
func (s *Similarity) boost(item *catalog.Item, intent *query.Intent) float64 {
	var total float64
	for _, genre := range intent.Genres {
		if item.HasGenre(genre) {
			total += s.cfg.GenreBoost
		}
	}
	for _, name := range intent.Cast {
		if item.HasCastMember(name) {
			total += s.cfg.CastBoost
		}
	}
	return total
}

// itemTerms extracts the index terms for one catalog item.
func itemTerms(item *catalog.Item) []string {
	var parts []string
	parts = append(parts, tokenize(item.Title)...)
	parts = append(parts, tokenize(item.Overview)...)
	for _, genre := range item.Genres {
		parts = append(parts, tokenize(genre)...)
	}
	for _, vibe := range item.Vibes {
		parts = append(parts, tokenize(vibe)...)
	}
	return parts
}

// queryTerms assembles the query document from the intent.
func queryTerms(intent *query.Intent) []string {
	var parts []string
	for _, genre := range intent.Genres {
		parts = append(parts, tokenize(genre)...)
	}
	for _, name := range intent.Cast {
		parts = append(parts, tokenize(name)...)
	}
	for _, vibe := range intent.Vibes {
		parts = append(parts, tokenize(vibe)...)
	}
	for _, kw := range intent.Keywords {
		parts = append(parts, tokenize(kw)...)
	}
	return parts
}
