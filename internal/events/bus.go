// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package events

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/discoverus/internal/logging"
)

// TopicEvents is the bus topic carrying appended engagement events.
const TopicEvents = "discoverus.events"

// Bus is the in-process pub/sub channel between the event log and its
// persister. Publish never blocks the caller: events queue behind a single
// dispatcher goroutine, and an event that arrives with the queue full is
// dropped and logged. The in-memory log already holds every event, so a
// drop costs durability of that one record, not correctness.
type Bus struct {
	pubsub *gochannel.GoChannel
	queue  chan *message.Message
	done   chan struct{}
	wg     sync.WaitGroup
	logger zerolog.Logger
}

// NewBus creates the in-process event bus and starts its dispatcher.
func NewBus(bufferSize int64) *Bus {
	b := &Bus{
		// Persistent delivery covers the window between the first append
		// and the persister's subscription at startup.
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: bufferSize,
			Persistent:          true,
		}, NewWatermillLogger()),
		queue:  make(chan *message.Message, bufferSize),
		done:   make(chan struct{}),
		logger: logging.With().Str("component", "event_bus").Logger(),
	}
	b.wg.Add(1)
	go b.dispatch()
	return b
}

// dispatch drains the queue into the underlying pub/sub. A stalled
// subscriber blocks only this goroutine; callers keep queueing until the
// buffer fills and then drop.
func (b *Bus) dispatch() {
	defer b.wg.Done()
	for {
		select {
		case <-b.done:
			// Flush whatever is already queued before exiting.
			for {
				select {
				case msg := <-b.queue:
					b.forward(msg)
				default:
					return
				}
			}
		case msg := <-b.queue:
			b.forward(msg)
		}
	}
}

func (b *Bus) forward(msg *message.Message) {
	if err := b.pubsub.Publish(TopicEvents, msg); err != nil {
		b.logger.Error().Err(err).Str("message_id", msg.UUID).Msg("publish event")
	}
}

// Publish implements Sink.
func (b *Bus) Publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		b.logger.Error().Err(err).Uint64("sequence", ev.Sequence).Msg("marshal event")
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	select {
	case b.queue <- msg:
	default:
		b.logger.Warn().Uint64("sequence", ev.Sequence).Msg("event bus backlog full, dropping event")
	}
}

// Subscribe returns the event stream for a consumer. The subscription
// lives until ctx is canceled or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Close stops the dispatcher, then shuts down the bus and closes
// subscriber channels.
func (b *Bus) Close() error {
	close(b.done)
	b.wg.Wait()
	return b.pubsub.Close()
}

// watermillLogger bridges Watermill's logging interface onto zerolog.
type watermillLogger struct {
	logger zerolog.Logger
}

// NewWatermillLogger returns a LoggerAdapter backed by the global logger.
func NewWatermillLogger() watermill.LoggerAdapter {
	return &watermillLogger{logger: logging.With().Str("component", "watermill").Logger()}
}

func (w *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	w.event(w.logger.Error().Err(err), fields).Msg(msg)
}

func (w *watermillLogger) Info(msg string, fields watermill.LogFields) {
	w.event(w.logger.Info(), fields).Msg(msg)
}

func (w *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	w.event(w.logger.Debug(), fields).Msg(msg)
}

func (w *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	w.event(w.logger.Trace(), fields).Msg(msg)
}

func (w *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	ctx := w.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &watermillLogger{logger: ctx.Logger()}
}

func (w *watermillLogger) event(ev *zerolog.Event, fields watermill.LogFields) *zerolog.Event {
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	return ev
}
