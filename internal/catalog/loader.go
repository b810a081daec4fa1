// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSV column layout for catalog files. Header row is required.
//
//	id,title,genres,cast,overview,runtime,popularity,release_year,director,rating,vibes
//
// Multi-valued fields (genres, cast, vibes) are comma-separated within the
// cell. Missing optional fields are treated as empty, not as errors.
const (
	colID = iota
	colTitle
	colGenres
	colCast
	colOverview
	colRuntime
	colPopularity
	colReleaseYear
	colDirector
	colRating
	colVibes

	minColumns = colReleaseYear + 1
)

// LoadFile loads a catalog from a CSV file at the given path.
// When path is empty, the built-in sample catalog is returned so the
// service can run without external data.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return New(SampleItems())
	}

	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return Load(f)
}

// Load parses a catalog from CSV data.
func Load(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // trailing optional columns may be absent

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse catalog csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("catalog csv has no data rows")
	}

	items := make([]Item, 0, len(records)-1)
	for line, rec := range records[1:] { // skip header
		item, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("catalog row %d: %w", line+2, err)
		}
		items = append(items, item)
	}

	return New(items)
}

// parseRecord converts one CSV row into an Item.
func parseRecord(rec []string) (Item, error) {
	if len(rec) < minColumns {
		return Item{}, fmt.Errorf("want at least %d columns, got %d", minColumns, len(rec))
	}

	id, err := strconv.Atoi(strings.TrimSpace(rec[colID]))
	if err != nil {
		return Item{}, fmt.Errorf("invalid id %q: %w", rec[colID], err)
	}

	runtime, err := strconv.Atoi(strings.TrimSpace(rec[colRuntime]))
	if err != nil {
		return Item{}, fmt.Errorf("invalid runtime %q: %w", rec[colRuntime], err)
	}

	popularity, err := strconv.ParseFloat(strings.TrimSpace(rec[colPopularity]), 64)
	if err != nil {
		return Item{}, fmt.Errorf("invalid popularity %q: %w", rec[colPopularity], err)
	}

	year, err := strconv.Atoi(strings.TrimSpace(rec[colReleaseYear]))
	if err != nil {
		return Item{}, fmt.Errorf("invalid release year %q: %w", rec[colReleaseYear], err)
	}

	item := Item{
		ID:             id,
		Title:          strings.TrimSpace(rec[colTitle]),
		Genres:         splitList(rec[colGenres]),
		Cast:           splitList(rec[colCast]),
		Overview:       strings.TrimSpace(rec[colOverview]),
		RuntimeMinutes: runtime,
		Popularity:     popularity,
		ReleaseYear:    year,
	}

	if len(rec) > colDirector {
		item.Director = strings.TrimSpace(rec[colDirector])
	}
	if len(rec) > colRating && strings.TrimSpace(rec[colRating]) != "" {
		rating, err := strconv.ParseFloat(strings.TrimSpace(rec[colRating]), 64)
		if err != nil {
			return Item{}, fmt.Errorf("invalid rating %q: %w", rec[colRating], err)
		}
		item.Rating = rating
	}
	if len(rec) > colVibes {
		item.Vibes = splitList(rec[colVibes])
	}

	return item, nil
}

// splitList splits a comma-separated cell into trimmed values.
func splitList(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
