// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package query

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Interpreter maps normalized query text onto the static vocabulary tables.
//
// Interpretation is categorical, not fuzzy: a token either hits a table
// entry or is discarded. The only state an Interpreter carries is its
// reference year, used to resolve relative phrases like "recent"; with a
// fixed reference year, Interpret is a pure function.
type Interpreter struct {
	referenceYear int
}

// NewInterpreter creates an interpreter anchored at the current year.
func NewInterpreter() *Interpreter {
	return NewInterpreterAt(currentYear())
}

// NewInterpreterAt creates an interpreter with a fixed reference year,
// which makes relative-year parsing fully deterministic.
func NewInterpreterAt(year int) *Interpreter {
	return &Interpreter{referenceYear: year}
}

// recentWindowYears is how far back "recent" reaches from the reference year.
const recentWindowYears = 5

var (
	runtimeLessRe    = regexp.MustCompile(`\b(?:under|below|within|less than|shorter than|at most|no longer than)\s+(\d+(?:\.\d+)?)\s*(minutes?|mins?|hours?|hrs?)?`)
	runtimeGreaterRe = regexp.MustCompile(`\b(?:over|above|more than|longer than|at least)\s+(\d+(?:\.\d+)?)\s*(minutes?|mins?|hours?|hrs?)?`)
	runtimeBareRe    = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(minutes?|mins?|hours?|hrs?)\b`)

	decadeRe   = regexp.MustCompile(`\b((?:19|20)\d)0s\b`)
	yearFromRe = regexp.MustCompile(`\b(?:from|after|since)\s+((?:19|20)\d{2})\b`)
	yearToRe   = regexp.MustCompile(`\b(?:before|until)\s+((?:19|20)\d{2})\b`)
	yearBareRe = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	recentRe   = regexp.MustCompile(`\b(?:recent|latest|new releases?)\b`)

	tokenRe = regexp.MustCompile(`[a-z0-9][a-z0-9'-]*`)
)

// Interpret parses normalized text into a structured Intent. Identical
// input always yields an identical Intent; empty or fully-unmatched text
// yields an unconstrained Intent, never an error.
func (p *Interpreter) Interpret(text string) Intent {
	lower := strings.ToLower(strings.TrimSpace(text))

	intent := Intent{Raw: text}
	if lower == "" {
		return intent
	}

	intent.Genres = matchPhrases(lower, genrePhrases)
	intent.Cast = matchPhrases(lower, castPhrases)
	intent.Runtime = extractRuntime(lower)
	intent.Years = p.extractYears(lower)
	intent.Vibes = matchPhrases(lower, vibePhrases)
	intent.Keywords = extractKeywords(lower)

	return intent
}

// matchPhrases scans a phrase table and returns the sorted set of canonical
// values whose phrase occurs in the text on word boundaries.
func matchPhrases(text string, phrases []phraseEntry) []string {
	seen := make(map[string]struct{})
	for _, entry := range phrases {
		if containsPhrase(text, entry.phrase) {
			seen[entry.canonical] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for canonical := range seen {
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}

// containsPhrase reports whether phrase occurs in text bounded by
// non-alphanumeric characters on both sides.
func containsPhrase(text, phrase string) bool {
	for start := 0; ; {
		i := strings.Index(text[start:], phrase)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(phrase)
		leftOK := i == 0 || !isWordByte(text[i-1])
		rightOK := end == len(text) || !isWordByte(text[end])
		if leftOK && rightOK {
			return true
		}
		start = i + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

// extractRuntime pulls the first duration out of the text. Comparator
// phrases pick the direction; a bare unit-qualified duration ("90 minutes",
// "two hours" after voice normalization) reads as an inclusive maximum.
// Hours are converted to minutes; a number after a comparator defaults to
// minutes.
func extractRuntime(text string) *RuntimeConstraint {
	if m := runtimeLessRe.FindStringSubmatch(text); m != nil {
		return &RuntimeConstraint{Op: OpLess, Minutes: toMinutes(m[1], m[2])}
	}
	if m := runtimeGreaterRe.FindStringSubmatch(text); m != nil {
		return &RuntimeConstraint{Op: OpGreater, Minutes: toMinutes(m[1], m[2])}
	}
	if m := runtimeBareRe.FindStringSubmatch(text); m != nil {
		return &RuntimeConstraint{Op: OpLessEq, Minutes: toMinutes(m[1], m[2])}
	}
	return nil
}

func toMinutes(amount, unit string) int {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}
	if strings.HasPrefix(unit, "h") {
		v *= 60
	}
	return int(v)
}

// extractYears resolves decade, relative, bounded, and exact year phrases,
// in that precedence order.
func (p *Interpreter) extractYears(text string) *YearRange {
	if m := decadeRe.FindStringSubmatch(text); m != nil {
		start, _ := strconv.Atoi(m[1] + "0")
		return &YearRange{Min: start, Max: start + 9}
	}
	if recentRe.MatchString(text) {
		return &YearRange{Min: p.referenceYear - recentWindowYears}
	}

	var r YearRange
	if m := yearFromRe.FindStringSubmatch(text); m != nil {
		r.Min, _ = strconv.Atoi(m[1])
	}
	if m := yearToRe.FindStringSubmatch(text); m != nil {
		r.Max, _ = strconv.Atoi(m[1])
	}
	if r.Min != 0 || r.Max != 0 {
		return &r
	}

	// A bare year with no qualifier means that exact year.
	if m := yearBareRe.FindStringSubmatch(text); m != nil {
		y, _ := strconv.Atoi(m[1])
		return &YearRange{Min: y, Max: y}
	}
	return nil
}

// extractKeywords returns the stopword-filtered residual tokens in query
// order, deduplicated. Tokens of one or two characters carry no signal and
// are dropped. Numeric tokens are dropped too; numbers are handled by the
// runtime and year extractors.
func extractKeywords(text string) []string {
	tokens := tokenRe.FindAllString(text, -1)
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tokens))
	var out []string
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if tok[0] >= '0' && tok[0] <= '9' {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
