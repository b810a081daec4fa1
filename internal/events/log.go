// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package events

import (
	"sort"
	"sync"
	"time"
)

// Sink receives a copy of every appended event, typically for asynchronous
// persistence. Publish must not block the caller for long; delivery is
// best-effort and never affects the in-memory append.
type Sink interface {
	Publish(Event)
}

// Impression is one (item, position) pair shown in a result list.
type Impression struct {
	ItemID   int
	Position int
}

// Log is the append-only in-memory event store. All reads are served from
// memory, so a client observes its own writes immediately. Appends take
// the write lock; aggregation and timeline reads share the read lock.
type Log struct {
	mu           sync.RWMutex
	seq          uint64
	all          []Event
	seenRequests map[string]struct{}
	variants     []string
	sink         Sink

	now func() time.Time
}

// Option configures a Log.
type Option func(*Log)

// WithSink attaches an asynchronous persistence sink.
func WithSink(s Sink) Option {
	return func(l *Log) { l.sink = s }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// NewLog creates an empty event log.
func NewLog(opts ...Option) *Log {
	l := &Log{
		seenRequests: make(map[string]struct{}),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RegisterVariants declares the experiment arms that must always appear in
// aggregation output. A registered variant with no recorded events reports
// zeros instead of being omitted.
func (l *Log) RegisterVariants(variants ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, v := range variants {
		known := false
		for _, existing := range l.variants {
			if existing == v {
				known = true
				break
			}
		}
		if !known {
			l.variants = append(l.variants, v)
		}
	}
}

// RecordImpressions appends one impression event per shown item, in
// position order, as a single atomic batch.
func (l *Log) RecordImpressions(requestID, sessionID, variant string, shown []Impression) []Event {
	l.mu.Lock()
	out := make([]Event, 0, len(shown))
	for _, imp := range shown {
		ev := l.appendLocked(Event{
			Type:      TypeImpression,
			RequestID: requestID,
			SessionID: sessionID,
			Variant:   variant,
			ItemID:    imp.ItemID,
			Position:  imp.Position,
		})
		out = append(out, ev)
	}
	l.seenRequests[requestID] = struct{}{}
	l.mu.Unlock()

	l.publish(out)
	return out
}

// RecordClick appends a click event. A click referencing a request ID with
// no prior recorded impression is accepted but flagged as an orphan.
func (l *Log) RecordClick(requestID, sessionID, variant string, itemID, position int) Event {
	l.mu.Lock()
	_, known := l.seenRequests[requestID]
	ev := l.appendLocked(Event{
		Type:      TypeClick,
		RequestID: requestID,
		SessionID: sessionID,
		Variant:   variant,
		ItemID:    itemID,
		Position:  position,
		Orphan:    !known,
	})
	l.mu.Unlock()

	l.publish([]Event{ev})
	return ev
}

// RecordFailure appends a failure event for a search request.
func (l *Log) RecordFailure(requestID, sessionID, variant, reason string) Event {
	l.mu.Lock()
	ev := l.appendLocked(Event{
		Type:      TypeFailure,
		RequestID: requestID,
		SessionID: sessionID,
		Variant:   variant,
		Error:     reason,
	})
	l.mu.Unlock()

	l.publish([]Event{ev})
	return ev
}

// appendLocked assigns sequence and timestamp and stores the event.
// Caller holds l.mu.
func (l *Log) appendLocked(ev Event) Event {
	l.seq++
	ev.Sequence = l.seq
	if ev.Timestamp.IsZero() {
		ev.Timestamp = l.now().UTC()
	}
	l.all = append(l.all, ev)
	return ev
}

// publish hands appended events to the sink outside the log's lock, so a
// slow sink delays only its own caller, never other appends or reads.
// Delivery order across concurrent appends is therefore not guaranteed;
// durable replay sorts by sequence.
func (l *Log) publish(evs []Event) {
	if l.sink == nil {
		return
	}
	for _, ev := range evs {
		l.sink.Publish(ev)
	}
}

// SessionEvents returns a session's events in append order.
func (l *Log) SessionEvents(sessionID string) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Event
	for _, ev := range l.all {
		if ev.SessionID == sessionID {
			out = append(out, ev)
		}
	}
	return out
}

// AggregateByVariant computes per-variant engagement over events at or
// after the cutoff. A zero cutoff aggregates the whole log. Registered
// variants always appear, zeroed when cold; variants are returned in
// lexicographic order.
func (l *Log) AggregateByVariant(since time.Time) []VariantStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	byVariant := make(map[string]*VariantStats)
	for _, v := range l.variants {
		byVariant[v] = &VariantStats{Variant: v}
	}
	for _, ev := range l.all {
		if !since.IsZero() && ev.Timestamp.Before(since) {
			continue
		}
		stats, ok := byVariant[ev.Variant]
		if !ok {
			stats = &VariantStats{Variant: ev.Variant}
			byVariant[ev.Variant] = stats
		}
		switch ev.Type {
		case TypeImpression:
			stats.Impressions++
		case TypeClick:
			stats.Clicks++
			if ev.Orphan {
				stats.OrphanClicks++
			}
		case TypeFailure:
			stats.Failures++
		}
	}

	out := make([]VariantStats, 0, len(byVariant))
	for _, stats := range byVariant {
		if stats.Impressions > 0 {
			stats.CTR = float64(stats.Clicks) / float64(stats.Impressions)
		}
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Variant < out[j].Variant })
	return out
}

// Len returns the number of stored events.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.all)
}

// Snapshot copies events at or after the cutoff, in append order. A zero
// cutoff copies the whole log.
func (l *Log) Snapshot(since time.Time) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Event, 0, len(l.all))
	for _, ev := range l.all {
		if !since.IsZero() && ev.Timestamp.Before(since) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// Restore reloads persisted events into an empty log at startup. Events
// must arrive in their original sequence order; the sink is not re-notified.
func (l *Log) Restore(persisted []Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, ev := range persisted {
		l.all = append(l.all, ev)
		if ev.Sequence > l.seq {
			l.seq = ev.Sequence
		}
		if ev.Type == TypeImpression {
			l.seenRequests[ev.RequestID] = struct{}{}
		}
	}
}
