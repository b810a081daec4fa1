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

// PopularityConfig tunes the rule-boost weights of the popularity strategy.
type PopularityConfig struct {
	// GenreBoost is added per matched genre, up to MaxGenreMatches.
	GenreBoost float64

	// CastBoost is added per matched cast member.
	CastBoost float64

	// VibeBoost is added per matched vibe, up to VibeBoostCap in total.
	VibeBoost float64

	// MaxGenreMatches caps how many genre matches count toward the boost.
	MaxGenreMatches int

	// VibeBoostCap caps the total vibe contribution.
	VibeBoostCap float64
}

// DefaultPopularityConfig returns the standard boost weights.
func DefaultPopularityConfig() PopularityConfig {
	return PopularityConfig{
		GenreBoost:      0.5,
		CastBoost:       0.3,
		VibeBoost:       0.4,
		MaxGenreMatches: 3,
		VibeBoostCap:    1.0,
	}
}

// Popularity is the rule-boost ranking strategy. Each admitted item starts
// from its catalog popularity and accrues additive boosts for matched soft
// constraints. With an empty intent the result is plain popularity order.
type Popularity struct {
	cat *catalog.Catalog
	cfg PopularityConfig
}

// NewPopularity creates the popularity strategy over a shared catalog.
func NewPopularity(cat *catalog.Catalog, cfg PopularityConfig) *Popularity {
	return &Popularity{cat: cat, cfg: cfg}
}

// Name implements Strategy.
func (s *Popularity) Name() string { return "popularity_boost" }

// Rank implements Strategy.
func (s *Popularity) Rank(ctx context.Context, intent *query.Intent, k int) ([]ScoredItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := admitted(s.cat.ByPopularity(), intent)
	scored := make([]ScoredItem, 0, len(candidates))
	for _, item := range candidates {
		scored = append(scored, ScoredItem{
			Item:  *item,
			Score: item.Popularity + s.boost(item, intent),
		})
	}
	return finalize(scored, k), nil
}

// boost computes the additive rule boost for one item.
func (s *Popularity) boost(item *catalog.Item, intent *query.Intent) float64 {
	var total float64

	genreMatches := 0
	for _, genre := range intent.Genres {
		if item.HasGenre(genre) {
			genreMatches++
		}
	}
	if genreMatches > s.cfg.MaxGenreMatches {
		genreMatches = s.cfg.MaxGenreMatches
	}
	total += float64(genreMatches) * s.cfg.GenreBoost

	for _, name := range intent.Cast {
		if item.HasCastMember(name) {
			total += s.cfg.CastBoost
		}
	}

	var vibeTotal float64
	for _, vibe := range intent.Vibes {
		if item.HasVibe(vibe) {
			vibeTotal += s.cfg.VibeBoost
		}
	}
	if vibeTotal > s.cfg.VibeBoostCap {
		vibeTotal = s.cfg.VibeBoostCap
	}
	total += vibeTotal

	return total
}
