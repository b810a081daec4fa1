// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

// Package metrics exposes the Prometheus instrumentation for the discovery
// pipeline. All collectors are registered on the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "discoverus"

var (
	// SearchesTotal counts search requests by variant and outcome.
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Search requests by experiment variant and outcome.",
	}, []string{"variant", "outcome"})

	// SearchDuration observes end-to-end search latency.
	SearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "End-to-end search latency by variant.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"variant"})

	// ImpressionsTotal counts recorded impression events by variant.
	ImpressionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "impressions_total",
		Help:      "Impression events recorded by variant.",
	}, []string{"variant"})

	// ClicksTotal counts recorded click events by variant and orphan flag.
	ClicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clicks_total",
		Help:      "Click events recorded by variant; orphan marks clicks without a matching impression.",
	}, []string{"variant", "orphan"})

	// EventLogSize tracks the number of events held in memory.
	EventLogSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "event_log_size",
		Help:      "Events currently held in the in-memory log.",
	})

	// RankedItems observes result list lengths by strategy.
	RankedItems = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ranked_items",
		Help:      "Result list length by ranking strategy.",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
	}, []string{"strategy"})
)
