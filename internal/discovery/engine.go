// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

// Package discovery orchestrates one search request end to end: normalize,
// interpret, assign a variant, rank, and record engagement. The engine owns
// no ranking or storage logic itself; it sequences the stages and keeps
// their failure semantics straight.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/discoverus/internal/catalog"
	"github.com/tomtom215/discoverus/internal/events"
	"github.com/tomtom215/discoverus/internal/experiment"
	"github.com/tomtom215/discoverus/internal/logging"
	"github.com/tomtom215/discoverus/internal/metrics"
	"github.com/tomtom215/discoverus/internal/query"
	"github.com/tomtom215/discoverus/internal/rank"
)

var (
	// ErrInjectedFailure is returned when a request asks for a simulated
	// post-interpretation failure. The failure is recorded as an event and
	// no impressions are logged.
	ErrInjectedFailure = errors.New("injected failure")

	// ErrUnknownItem is returned for a click on an item ID not in the catalog.
	ErrUnknownItem = errors.New("unknown item")

	// ErrUninterpretable is reserved for input the interpreter cannot reduce
	// to an intent. Unmatched text falls back to an unconstrained intent, so
	// callers should not currently observe this error.
	ErrUninterpretable = errors.New("query could not be interpreted")

	// ErrNoStrategy is returned when the assigned variant has no ranking
	// strategy registered. This is a wiring bug, not a user error.
	ErrNoStrategy = errors.New("no strategy for variant")
)

// SearchRequest is one discovery query.
type SearchRequest struct {
	SessionID string
	Query     string
	Origin    query.Origin
	Limit     int

	// Fail requests a simulated failure after interpretation.
	Fail bool
}

// Result is the assembled response for one search.
type Result struct {
	RequestID  string            `json:"request_id"`
	SessionID  string            `json:"session_id"`
	Variant    string            `json:"variant"`
	Strategy   string            `json:"strategy"`
	Normalized string            `json:"normalized_query"`
	Intent     query.Intent      `json:"intent"`
	Items      []rank.ScoredItem `json:"items"`
}

// ClickRequest records engagement with a previously shown item.
type ClickRequest struct {
	SessionID string
	RequestID string
	ItemID    int
	Position  int
}

// DebugInfo is the retained interpretation trace of the most recent search.
type DebugInfo struct {
	RequestID  string       `json:"request_id"`
	SessionID  string       `json:"session_id"`
	Raw        string       `json:"raw_query"`
	Origin     query.Origin `json:"origin"`
	Normalized string       `json:"normalized_query"`
	Intent     query.Intent `json:"intent"`
	Variant    string       `json:"variant"`
	Timestamp  time.Time    `json:"timestamp"`
}

// Engine wires the discovery pipeline together.
type Engine struct {
	cat         *catalog.Catalog
	interpreter *query.Interpreter
	assignor    *experiment.Assignor
	strategies  map[experiment.Variant]rank.Strategy
	log         *events.Log
	topK        int
	logger      zerolog.Logger

	mu        sync.RWMutex
	lastQuery *DebugInfo
}

// New creates an engine. The strategies map must cover every variant the
// assignor can produce.
func New(cat *catalog.Catalog, interp *query.Interpreter, assignor *experiment.Assignor,
	strategies map[experiment.Variant]rank.Strategy, log *events.Log, topK int) (*Engine, error) {

	names := make([]string, 0, len(assignor.Variants()))
	for _, variant := range assignor.Variants() {
		if _, ok := strategies[variant]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoStrategy, variant)
		}
		names = append(names, string(variant))
	}
	// Registered arms always show up in analytics, even before any traffic.
	log.RegisterVariants(names...)
	if topK <= 0 {
		topK = rank.DefaultTopK
	}
	return &Engine{
		cat:         cat,
		interpreter: interp,
		assignor:    assignor,
		strategies:  strategies,
		log:         log,
		topK:        topK,
		logger:      logging.With().Str("component", "discovery").Logger(),
	}, nil
}

// Search runs the full pipeline for one request. On success the returned
// result's items have already been recorded as impressions.
func (e *Engine) Search(ctx context.Context, req SearchRequest) (*Result, error) {
	requestID := uuid.NewString()
	logger := e.logger.With().Str("request_id", requestID).Str("session_id", req.SessionID).Logger()

	normalized := query.Normalize(req.Query, req.Origin)
	intent := e.interpreter.Interpret(normalized)
	variant := e.assignor.Assign(req.SessionID)

	e.setLastQuery(&DebugInfo{
		RequestID:  requestID,
		SessionID:  req.SessionID,
		Raw:        req.Query,
		Origin:     req.Origin,
		Normalized: normalized,
		Intent:     intent,
		Variant:    string(variant),
		Timestamp:  time.Now().UTC(),
	})

	if req.Fail {
		e.log.RecordFailure(requestID, req.SessionID, string(variant), ErrInjectedFailure.Error())
		metrics.SearchesTotal.WithLabelValues(string(variant), "failure").Inc()
		logger.Warn().Str("variant", string(variant)).Msg("injected failure requested")
		return nil, ErrInjectedFailure
	}

	strategy, ok := e.strategies[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoStrategy, variant)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = e.topK
	}

	start := time.Now()
	items, err := strategy.Rank(ctx, &intent, limit)
	if err != nil {
		e.log.RecordFailure(requestID, req.SessionID, string(variant), err.Error())
		metrics.SearchesTotal.WithLabelValues(string(variant), "failure").Inc()
		return nil, fmt.Errorf("rank: %w", err)
	}
	metrics.SearchDuration.WithLabelValues(string(variant)).Observe(time.Since(start).Seconds())
	metrics.RankedItems.WithLabelValues(strategy.Name()).Observe(float64(len(items)))

	shown := make([]events.Impression, len(items))
	for i, item := range items {
		shown[i] = events.Impression{ItemID: item.Item.ID, Position: item.Position}
	}
	e.log.RecordImpressions(requestID, req.SessionID, string(variant), shown)
	metrics.ImpressionsTotal.WithLabelValues(string(variant)).Add(float64(len(shown)))
	metrics.SearchesTotal.WithLabelValues(string(variant), "success").Inc()
	metrics.EventLogSize.Set(float64(e.log.Len()))

	logger.Info().
		Str("variant", string(variant)).
		Str("strategy", strategy.Name()).
		Int("results", len(items)).
		Str("normalized_query", normalized).
		Msg("search completed")

	return &Result{
		RequestID:  requestID,
		SessionID:  req.SessionID,
		Variant:    string(variant),
		Strategy:   strategy.Name(),
		Normalized: normalized,
		Intent:     intent,
		Items:      items,
	}, nil
}

// Click records a click event. The item must exist in the catalog; whether
// the request ID references a recorded impression only affects the orphan
// flag. A click arriving without a request ID gets a fresh one and is
// therefore always an orphan.
func (e *Engine) Click(ctx context.Context, req ClickRequest) (events.Event, error) {
	if _, ok := e.cat.ByID(req.ItemID); !ok {
		return events.Event{}, fmt.Errorf("%w: %d", ErrUnknownItem, req.ItemID)
	}

	variant := e.assignor.Assign(req.SessionID)
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	ev := e.log.RecordClick(requestID, req.SessionID, string(variant), req.ItemID, req.Position)
	metrics.ClicksTotal.WithLabelValues(string(variant), boolLabel(ev.Orphan)).Inc()
	metrics.EventLogSize.Set(float64(e.log.Len()))

	if ev.Orphan {
		e.logger.Warn().
			Str("session_id", req.SessionID).
			Int("item_id", req.ItemID).
			Msg("orphan click recorded")
	}
	return ev, nil
}

// Events exposes the underlying event log for read endpoints.
func (e *Engine) Events() *events.Log { return e.log }

// Catalog exposes the shared catalog for read endpoints.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// LastQuery returns the most recent interpretation trace, or nil before
// the first search.
func (e *Engine) LastQuery() *DebugInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.lastQuery == nil {
		return nil
	}
	info := *e.lastQuery
	return &info
}

func (e *Engine) setLastQuery(info *DebugInfo) {
	e.mu.Lock()
	e.lastQuery = info
	e.mu.Unlock()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
