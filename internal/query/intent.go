// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

// Package query turns free-text and voice-transcribed content requests into
// structured intents.
//
// The pipeline has two stages: Normalize repairs voice-transcription
// artifacts, and Interpret maps the cleaned text onto static vocabulary
// tables. Both stages are pure functions over immutable package data:
// identical input always produces an identical Intent, and unmatched text
// is discarded rather than rejected, so interpretation never fails.
package query

import "time"

// Origin identifies how the raw query text was produced.
type Origin string

const (
	// OriginText is a typed query; normalization passes it through unchanged.
	OriginText Origin = "text"

	// OriginVoice is a voice-transcribed query; normalization repairs
	// common transcription artifacts before interpretation.
	OriginVoice Origin = "voice"
)

// CompareOp is a runtime-constraint comparator.
type CompareOp string

const (
	// OpLess gates items to runtime strictly below the threshold.
	OpLess CompareOp = "<"

	// OpLessEq gates items to runtime at or below the threshold. Produced
	// for bare durations ("90 minutes"), which read as a maximum.
	OpLessEq CompareOp = "<="

	// OpGreater gates items to runtime strictly above the threshold.
	OpGreater CompareOp = ">"
)

// RuntimeConstraint is a hard gate on item runtime.
type RuntimeConstraint struct {
	Op      CompareOp `json:"op"`
	Minutes int       `json:"minutes"`
}

// YearRange is a hard gate on release year. A zero bound means unbounded
// on that side.
type YearRange struct {
	Min int `json:"min,omitempty"`
	Max int `json:"max,omitempty"`
}

// Intent is the structured interpretation of one query. Absent constraints
// mean "no filter", never "filter on empty value". An Intent is owned by a
// single request and discarded after logging.
type Intent struct {
	// Genres are canonical genre names (e.g. "Comedy"), sorted.
	Genres []string `json:"genres,omitempty"`

	// Cast are canonical cast member names, sorted.
	Cast []string `json:"cast,omitempty"`

	// Runtime is the optional runtime gate.
	Runtime *RuntimeConstraint `json:"runtime,omitempty"`

	// Years is the optional release-year gate.
	Years *YearRange `json:"years,omitempty"`

	// Vibes are matched mood keywords, sorted.
	Vibes []string `json:"vibes,omitempty"`

	// Keywords are residual stopword-filtered query terms, in query order.
	// Used by the similarity strategy's query document.
	Keywords []string `json:"keywords,omitempty"`

	// Raw is the original query text, retained for debugging and logging.
	Raw string `json:"raw"`
}

// IsEmpty reports whether the intent carries no constraints at all.
// An empty intent still flows through ranking and yields the full
// popularity-ordered catalog.
func (in *Intent) IsEmpty() bool {
	return len(in.Genres) == 0 &&
		len(in.Cast) == 0 &&
		in.Runtime == nil &&
		in.Years == nil &&
		len(in.Vibes) == 0 &&
		len(in.Keywords) == 0
}

// AdmitsRuntime reports whether an item runtime passes the runtime gate.
// No constraint admits everything.
func (in *Intent) AdmitsRuntime(minutes int) bool {
	if in.Runtime == nil {
		return true
	}
	switch in.Runtime.Op {
	case OpLess:
		return minutes < in.Runtime.Minutes
	case OpLessEq:
		return minutes <= in.Runtime.Minutes
	case OpGreater:
		return minutes > in.Runtime.Minutes
	default:
		return true
	}
}

// AdmitsYear reports whether a release year passes the year gate.
func (in *Intent) AdmitsYear(year int) bool {
	if in.Years == nil {
		return true
	}
	if in.Years.Min != 0 && year < in.Years.Min {
		return false
	}
	if in.Years.Max != 0 && year > in.Years.Max {
		return false
	}
	return true
}

// currentYear is overridable for deterministic interpreter construction in
// tests.
var currentYear = func() int { return time.Now().Year() }
