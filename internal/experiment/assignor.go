// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

// Package experiment assigns sessions to ranking variants.
//
// Assignment is a pure function of the session ID and the configured split:
// the same session always lands in the same variant, with no stored state
// and no coordination between server instances sharing a salt.
package experiment

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Variant identifies one arm of the experiment.
type Variant string

const (
	// VariantA is the popularity-plus-rule-boost arm.
	VariantA Variant = "A"

	// VariantB is the TF-IDF similarity arm.
	VariantB Variant = "B"
)

// Split is one arm's share of the hash space. Weights are relative; they
// do not need to sum to any particular value.
type Split struct {
	Variant Variant
	Weight  uint64
}

// DefaultSplits returns the standard 50/50 A/B split.
func DefaultSplits() []Split {
	return []Split{
		{Variant: VariantA, Weight: 1},
		{Variant: VariantB, Weight: 1},
	}
}

// Assignor deterministically maps session IDs to variants. The salt
// namespaces the hash so separate experiments over the same sessions get
// independent assignments.
type Assignor struct {
	salt   string
	splits []Split
	total  uint64
}

// NewAssignor validates the split table and builds an assignor.
func NewAssignor(salt string, splits []Split) (*Assignor, error) {
	if len(splits) == 0 {
		return nil, fmt.Errorf("experiment: empty split table")
	}
	var total uint64
	for _, s := range splits {
		if s.Weight == 0 {
			return nil, fmt.Errorf("experiment: zero weight for variant %q", s.Variant)
		}
		total += s.Weight
	}
	out := make([]Split, len(splits))
	copy(out, splits)
	return &Assignor{salt: salt, splits: out, total: total}, nil
}

// Assign returns the variant for a session. Safe for concurrent use.
func (a *Assignor) Assign(sessionID string) Variant {
	bucket := xxhash.Sum64String(a.salt+":"+sessionID) % a.total
	for _, s := range a.splits {
		if bucket < s.Weight {
			return s.Variant
		}
		bucket -= s.Weight
	}
	// Unreachable: bucket is always below the summed weights.
	return a.splits[len(a.splits)-1].Variant
}

// Variants lists the arms in split-table order.
func (a *Assignor) Variants() []Variant {
	out := make([]Variant, len(a.splits))
	for i, s := range a.splits {
		out[i] = s.Variant
	}
	return out
}
