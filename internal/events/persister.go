// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package events

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/discoverus/internal/logging"
)

// eventKeyPrefix namespaces event records in BadgerDB. Keys embed the
// zero-padded sequence so a prefix scan yields append order.
const eventKeyPrefix = "event:"

// Persister consumes the event bus and writes each event to BadgerDB.
// Writes go through a circuit breaker: when storage misbehaves, events are
// dropped from the durable copy while the in-memory log stays authoritative.
// Serve is shaped for supervision; it runs until ctx is canceled.
type Persister struct {
	db      *badger.DB
	bus     *Bus
	breaker *gobreaker.CircuitBreaker[any]
	logger  zerolog.Logger
}

// NewPersister creates a persister over an open BadgerDB handle.
func NewPersister(db *badger.DB, bus *Bus) *Persister {
	settings := gobreaker.Settings{
		Name:    "event-persister",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Persister{
		db:      db,
		bus:     bus,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		logger:  logging.With().Str("component", "event_persister").Logger(),
	}
}

// Serve subscribes to the event topic and persists messages until ctx is
// canceled. It satisfies suture's service contract.
func (p *Persister) Serve(ctx context.Context) error {
	messages, err := p.bus.Subscribe(ctx, TopicEvents)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicEvents, err)
	}
	p.logger.Info().Str("topic", TopicEvents).Msg("event persister started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return fmt.Errorf("event stream closed")
			}
			if err := p.persist(msg.Payload); err != nil {
				p.logger.Error().Err(err).Str("message_uuid", msg.UUID).Msg("persist event")
			}
			// Ack regardless: the in-memory log owns the event, and
			// redelivery of a failed write has nowhere better to go.
			msg.Ack()
		}
	}
}

func (p *Persister) persist(payload []byte) error {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.db.Update(func(txn *badger.Txn) error {
			return txn.Set(eventKey(ev.Sequence), payload)
		})
	})
	if err != nil {
		return fmt.Errorf("write event %d: %w", ev.Sequence, err)
	}
	return nil
}

func eventKey(sequence uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", eventKeyPrefix, sequence))
}

// LoadPersisted reads all stored events in sequence order, for rehydrating
// the in-memory log at startup.
func LoadPersisted(db *badger.DB) ([]Event, error) {
	var out []Event

	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(eventKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var ev Event
				if err := json.Unmarshal(val, &ev); err != nil {
					return fmt.Errorf("unmarshal persisted event: %w", err)
				}
				out = append(out, ev)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Keys scan in order already; sorting by sequence guards against any
	// legacy keys written without padding.
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}
