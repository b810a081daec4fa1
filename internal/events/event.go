// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

// Package events is the append-only engagement record and its aggregations.
//
// The in-memory log is the source of truth and serves all reads with
// read-your-writes consistency. Appends are additionally published to an
// in-process message bus, where an asynchronous consumer persists them to
// BadgerDB for replay across restarts. Events are never mutated or deleted.
package events

import "time"

// Type classifies an engagement event.
type Type string

const (
	// TypeImpression records one item shown at one position in a result
	// list. A search that returns n items appends n impressions.
	TypeImpression Type = "impression"

	// TypeClick records a user selecting a previously shown item.
	TypeClick Type = "click"

	// TypeFailure records a search request that raised an error after
	// interpretation. Failures never count as impressions.
	TypeFailure Type = "failure"
)

// Event is one immutable engagement record.
type Event struct {
	// Sequence is the log-assigned append order, starting at 1.
	Sequence uint64 `json:"sequence"`

	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// RequestID ties the event to the search request that produced it.
	RequestID string `json:"request_id"`

	SessionID string `json:"session_id"`

	// Variant is the experiment arm the session was assigned to.
	Variant string `json:"variant"`

	// ItemID and Position are set on impressions and clicks; Position is
	// the 1-based rank the item was shown at.
	ItemID   int `json:"item_id,omitempty"`
	Position int `json:"position,omitempty"`

	// Orphan marks a click whose request ID has no recorded impression.
	// Orphan clicks are stored and flagged, not rejected.
	Orphan bool `json:"orphan,omitempty"`

	// Error holds the failure reason on failure events.
	Error string `json:"error,omitempty"`
}

// VariantStats aggregates engagement for one experiment arm.
type VariantStats struct {
	Variant     string `json:"variant"`
	Impressions int    `json:"impressions"`

	// Clicks counts all click events, orphans included. OrphanClicks
	// breaks out the subset with no matching impression.
	Clicks       int `json:"clicks"`
	OrphanClicks int `json:"orphan_clicks"`
	Failures     int `json:"failures"`

	// CTR is clicks divided by impressions, in [0, 1]. Zero when there
	// are no impressions, regardless of clicks.
	CTR float64 `json:"ctr"`
}
