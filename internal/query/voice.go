// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Normalize prepares raw query text for interpretation. Text-origin input
// passes through unchanged. Voice-origin input gets best-effort repair of
// transcription artifacts; unmatched patterns are left as-is, so
// normalization never fails.
func Normalize(raw string, origin Origin) string {
	if origin != OriginVoice {
		return raw
	}
	text := strings.ToLower(strings.TrimSpace(raw))
	text = stripFillers(text)
	text = applyHomophones(text)
	text = normalizeSpokenDurations(text)
	text = stripCommandPrefix(text)
	return collapseSpaces(text)
}

var (
	fillerRe   = regexp.MustCompile(`\b(um+|uh+|er+|ah+|like|you know|i mean)\b`)
	spacesRe   = regexp.MustCompile(`\s+`)
	durationRe = regexp.MustCompile(`\b(a|an|one|two|three|four|five|six|seven|eight|nine|ten|half an?|\d+(?:\.\d+)?)\s*(hours?|hrs?)\b`)
)

// commandPrefixes are spoken lead-ins that carry no query content.
// Ordered longest-first so greedier prefixes win.
var commandPrefixes = []string{
	"can you help me find",
	"i am looking for",
	"i'm looking for",
	"are there any",
	"can you find",
	"help me find",
	"do you have",
	"search for",
	"recommend",
	"look for",
	"show me",
	"give me",
	"suggest",
	"i want",
	"i need",
	"find",
}

// homophones maps common transcription mistakes to the intended term.
// Keys are matched on word boundaries, longest key first.
var homophones = map[string]string{
	"sigh fi":          "sci-fi",
	"psy fi":           "sci-fi",
	"sci fi":           "sci-fi",
	"rahm com":         "rom-com",
	"ram com":          "rom-com",
	"tom hank":         "tom hanks",
	"tom anks":         "tom hanks",
	"leo dicaprio":     "leonardo dicaprio",
	"robert deniro":    "robert de niro",
	"brad pit":         "brad pitt",
	"jody foster":      "jodie foster",
	"mark hammill":     "mark hamill",
	"carrie anne moss": "carrie-anne moss",
	"merrill streep":   "meryl streep",
	"julie roberts":    "julia roberts",
	"ed norton":        "edward norton",
	"comity":           "comedy",
	"commedy":          "comedy",
	"thriler":          "thriller",
	"horor":            "horror",
}

// spokenNumbers maps number words used in durations to their value.
var spokenNumbers = map[string]float64{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"half a": 0.5, "half an": 0.5,
}

// homophoneRule is one precompiled word-boundary correction.
type homophoneRule struct {
	re          *regexp.Regexp
	replacement string
}

// homophoneRules holds the corrections longest-key-first for deterministic
// replacement (multi-word corrections before their substrings), compiled
// once at init.
var homophoneRules = buildHomophoneRules()

func buildHomophoneRules() []homophoneRule {
	keys := make([]string, 0, len(homophones))
	for k := range homophones {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0; j-- {
			a, b := keys[j], keys[j-1]
			if len(a) > len(b) || (len(a) == len(b) && a < b) {
				keys[j], keys[j-1] = b, a
			} else {
				break
			}
		}
	}
	rules := make([]homophoneRule, 0, len(keys))
	for _, k := range keys {
		rules = append(rules, homophoneRule{
			re:          regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`),
			replacement: homophones[k],
		})
	}
	return rules
}

func stripFillers(text string) string {
	return fillerRe.ReplaceAllString(text, " ")
}

func applyHomophones(text string) string {
	for _, rule := range homophoneRules {
		text = rule.re.ReplaceAllString(text, rule.replacement)
	}
	return text
}

// normalizeSpokenDurations rewrites spoken hour amounts as minutes, so the
// interpreter only has to understand one unit ("two hours" -> "120 minutes").
func normalizeSpokenDurations(text string) string {
	return durationRe.ReplaceAllStringFunc(text, func(match string) string {
		sub := durationRe.FindStringSubmatch(match)
		amount, ok := spokenNumbers[sub[1]]
		if !ok {
			parsed, err := strconv.ParseFloat(sub[1], 64)
			if err != nil {
				return match // best effort, leave as-is
			}
			amount = parsed
		}
		return fmt.Sprintf("%d minutes", int(amount*60))
	})
}

func stripCommandPrefix(text string) string {
	trimmed := strings.TrimSpace(text)
	for _, prefix := range commandPrefixes {
		if rest, ok := strings.CutPrefix(trimmed, prefix+" "); ok {
			return rest
		}
	}
	return trimmed
}

func collapseSpaces(text string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(text, " "))
}

// voiceSuggestions are example spoken queries that exercise every vocabulary
// table, surfaced to clients building a voice prompt.
var voiceSuggestions = []string{
	"show me a funny movie",
	"find sci-fi under two hours",
	"something with tom hanks",
	"recent thrillers",
	"a feel-good movie from the 1990s",
	"dark crime dramas longer than two hours",
}

// VoiceSuggestions returns example spoken queries. The returned slice is a
// copy; callers may not mutate package data.
func VoiceSuggestions() []string {
	out := make([]string, len(voiceSuggestions))
	copy(out, voiceSuggestions)
	return out
}
