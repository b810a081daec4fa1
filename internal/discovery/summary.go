// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package discovery

import (
	"sort"
	"time"

	"github.com/tomtom215/discoverus/internal/events"
)

// summaryTopN bounds the genre and item leaderboards in the summary.
const summaryTopN = 5

// GenreClicks counts clicks attributed to one genre.
type GenreClicks struct {
	Genre  string `json:"genre"`
	Clicks int    `json:"clicks"`
}

// ItemClicks counts clicks on one catalog item.
type ItemClicks struct {
	ItemID int    `json:"item_id"`
	Title  string `json:"title"`
	Clicks int    `json:"clicks"`
}

// Summary is the overall engagement picture across both experiment arms.
type Summary struct {
	Sessions     int     `json:"sessions"`
	Impressions  int     `json:"impressions"`
	Clicks       int     `json:"clicks"`
	OrphanClicks int     `json:"orphan_clicks"`
	Failures     int     `json:"failures"`
	CTR          float64 `json:"ctr"`

	// TopGenres ranks genres by clicks on items carrying them; a click on
	// a multi-genre item counts once per genre.
	TopGenres []GenreClicks `json:"top_genres"`

	// TopItems ranks catalog items by clicks.
	TopItems []ItemClicks `json:"top_items"`
}

// AnalyticsSummary aggregates engagement across variants over events at or
// after the cutoff. A zero cutoff covers the whole log.
func (e *Engine) AnalyticsSummary(since time.Time) Summary {
	var s Summary
	sessions := make(map[string]struct{})
	genreClicks := make(map[string]int)
	itemClicks := make(map[int]int)

	for _, ev := range e.log.Snapshot(since) {
		sessions[ev.SessionID] = struct{}{}
		switch ev.Type {
		case events.TypeImpression:
			s.Impressions++
		case events.TypeClick:
			s.Clicks++
			if ev.Orphan {
				s.OrphanClicks++
			}
			itemClicks[ev.ItemID]++
			if item, ok := e.cat.ByID(ev.ItemID); ok {
				for _, genre := range item.Genres {
					genreClicks[genre]++
				}
			}
		case events.TypeFailure:
			s.Failures++
		}
	}

	s.Sessions = len(sessions)
	if s.Impressions > 0 {
		s.CTR = float64(s.Clicks) / float64(s.Impressions)
	}
	s.TopGenres = rankGenres(genreClicks)
	s.TopItems = e.rankItems(itemClicks)
	return s
}

func rankGenres(counts map[string]int) []GenreClicks {
	out := make([]GenreClicks, 0, len(counts))
	for genre, clicks := range counts {
		out = append(out, GenreClicks{Genre: genre, Clicks: clicks})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Clicks != out[j].Clicks {
			return out[i].Clicks > out[j].Clicks
		}
		return out[i].Genre < out[j].Genre
	})
	if len(out) > summaryTopN {
		out = out[:summaryTopN]
	}
	return out
}

func (e *Engine) rankItems(counts map[int]int) []ItemClicks {
	out := make([]ItemClicks, 0, len(counts))
	for id, clicks := range counts {
		entry := ItemClicks{ItemID: id, Clicks: clicks}
		if item, ok := e.cat.ByID(id); ok {
			entry.Title = item.Title
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Clicks != out[j].Clicks {
			return out[i].Clicks > out[j].Clicks
		}
		return out[i].ItemID < out[j].ItemID
	})
	if len(out) > summaryTopN {
		out = out[:summaryTopN]
	}
	return out
}
