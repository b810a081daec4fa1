// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package rank

import (
	"math"
	"regexp"
	"strings"
)

// tfidfModel is an immutable TF-IDF index over the catalog, built once at
// strategy construction. Document vectors are L2-normalized so cosine
// similarity reduces to a dot product.
type tfidfModel struct {
	idf  map[string]float64
	docs []map[string]float64 // parallel to the item slice used at build time
}

var termRe = regexp.MustCompile(`[a-z0-9][a-z0-9'-]*`)

// tokenize lowercases and splits text into index terms. Single-character
// tokens are noise and dropped.
func tokenize(text string) []string {
	raw := termRe.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if len(tok) > 1 {
			out = append(out, tok)
		}
	}
	return out
}

// newTFIDFModel indexes the given documents. Each document is the term
// slice already extracted from one item.
func newTFIDFModel(docTerms [][]string) *tfidfModel {
	n := len(docTerms)
	df := make(map[string]int)
	counts := make([]map[string]int, n)

	for i, terms := range docTerms {
		tf := make(map[string]int, len(terms))
		for _, term := range terms {
			tf[term]++
		}
		counts[i] = tf
		for term := range tf {
			df[term]++
		}
	}

	// Smoothed IDF keeps terms present in every document at nonzero weight.
	idf := make(map[string]float64, len(df))
	for term, freq := range df {
		idf[term] = math.Log(float64(1+n)/float64(1+freq)) + 1
	}

	docs := make([]map[string]float64, n)
	for i, tf := range counts {
		docs[i] = normalize(weigh(tf, idf))
	}
	return &tfidfModel{idf: idf, docs: docs}
}

// queryVector builds the normalized vector for a query document. Terms
// unseen in the corpus carry no weight and are skipped.
func (m *tfidfModel) queryVector(terms []string) map[string]float64 {
	tf := make(map[string]int, len(terms))
	for _, term := range terms {
		if _, known := m.idf[term]; known {
			tf[term]++
		}
	}
	return normalize(weigh(tf, m.idf))
}

// cosine returns the similarity between a query vector and document i.
// Both sides are pre-normalized.
func (m *tfidfModel) cosine(qv map[string]float64, i int) float64 {
	doc := m.docs[i]
	if len(qv) > len(doc) {
		qv, doc = doc, qv
	}
	var dot float64
	for term, w := range qv {
		dot += w * doc[term]
	}
	return dot
}

func weigh(tf map[string]int, idf map[string]float64) map[string]float64 {
	v := make(map[string]float64, len(tf))
	for term, count := range tf {
		v[term] = float64(count) * idf[term]
	}
	return v
}

func normalize(v map[string]float64) map[string]float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for term, w := range v {
		v[term] = w / norm
	}
	return v
}
