// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

// Package catalog holds the immutable in-memory content catalog.
//
// Items are loaded once at process start and never mutated afterwards, so
// any number of concurrent readers may use a Catalog without
// synchronization. All other components treat item IDs as stable,
// never-reused identifiers.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Item is a single catalog entry with normalized metadata.
type Item struct {
	// ID is the unique, immutable content identifier. Never reused.
	ID int `json:"id"`

	// Title is the content title.
	Title string `json:"title"`

	// Genres is the set of genre names (canonical casing, e.g. "Comedy").
	Genres []string `json:"genres"`

	// Cast is the ordered list of cast member names (billing order).
	Cast []string `json:"cast"`

	// Overview is the free-text synopsis used for content similarity.
	Overview string `json:"overview"`

	// RuntimeMinutes is the runtime in minutes.
	RuntimeMinutes int `json:"runtime_minutes"`

	// ReleaseYear is the release year.
	ReleaseYear int `json:"release_year"`

	// Popularity is a static business popularity signal; higher is more popular.
	Popularity float64 `json:"popularity"`

	// Vibes is the set of content mood tags (e.g. "feel-good", "dark").
	Vibes []string `json:"vibes,omitempty"`

	// Director is the director name.
	Director string `json:"director,omitempty"`

	// Rating is the critic rating (0-10).
	Rating float64 `json:"rating,omitempty"`
}

// HasGenre reports whether the item carries the given genre,
// case-insensitively.
func (it *Item) HasGenre(genre string) bool {
	for _, g := range it.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// HasCastMember reports whether the given name appears in the item's cast,
// case-insensitively.
func (it *Item) HasCastMember(name string) bool {
	for _, c := range it.Cast {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// HasVibe reports whether the item carries the given vibe tag,
// case-insensitively.
func (it *Item) HasVibe(vibe string) bool {
	for _, v := range it.Vibes {
		if strings.EqualFold(v, vibe) {
			return true
		}
	}
	return false
}

// Catalog is an immutable collection of items indexed by ID.
type Catalog struct {
	items []Item      // sorted by ID ascending
	byID  map[int]int // item ID -> index into items
}

// New builds a Catalog from the given items. Items are copied and sorted by
// ID so later mutation of the input slice cannot affect the catalog.
// Duplicate IDs are a load-time error.
func New(items []Item) (*Catalog, error) {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[int]int, len(sorted))
	for i := range sorted {
		if _, dup := byID[sorted[i].ID]; dup {
			return nil, fmt.Errorf("duplicate item id %d", sorted[i].ID)
		}
		byID[sorted[i].ID] = i
	}

	return &Catalog{items: sorted, byID: byID}, nil
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns the catalog contents sorted by ID ascending.
// The returned slice is shared and must be treated as read-only.
func (c *Catalog) Items() []Item {
	return c.items
}

// ByID returns the item with the given ID, or false if absent.
func (c *Catalog) ByID(id int) (*Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.items[i], true
}

// ByPopularity returns item indices ordered by popularity descending,
// ties broken by ID ascending. The catalog items themselves are not moved.
func (c *Catalog) ByPopularity() []*Item {
	ordered := make([]*Item, len(c.items))
	for i := range c.items {
		ordered[i] = &c.items[i]
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Popularity != ordered[j].Popularity {
			return ordered[i].Popularity > ordered[j].Popularity
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}
