// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

// Command server runs the Discoverus HTTP service: deterministic query
// interpretation, A/B-split ranking over a shared catalog, and an
// append-only engagement log with durable replay.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/tomtom215/discoverus/internal/api"
	"github.com/tomtom215/discoverus/internal/catalog"
	"github.com/tomtom215/discoverus/internal/config"
	"github.com/tomtom215/discoverus/internal/discovery"
	"github.com/tomtom215/discoverus/internal/events"
	"github.com/tomtom215/discoverus/internal/experiment"
	"github.com/tomtom215/discoverus/internal/logging"
	"github.com/tomtom215/discoverus/internal/query"
	"github.com/tomtom215/discoverus/internal/rank"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: true,
	})

	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("load catalog")
	}
	logging.Info().Int("items", cat.Len()).Msg("catalog loaded")

	assignor, err := experiment.NewAssignor(cfg.Experiment.Salt, []experiment.Split{
		{Variant: experiment.VariantA, Weight: cfg.Experiment.WeightA},
		{Variant: experiment.VariantB, Weight: cfg.Experiment.WeightB},
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("build experiment assignor")
	}

	strategies := map[experiment.Variant]rank.Strategy{
		experiment.VariantA: rank.NewPopularity(cat, rank.PopularityConfig{
			GenreBoost:      cfg.Ranking.PopularityGenreBoost,
			CastBoost:       cfg.Ranking.PopularityCastBoost,
			VibeBoost:       cfg.Ranking.PopularityVibeBoost,
			MaxGenreMatches: rank.DefaultPopularityConfig().MaxGenreMatches,
			VibeBoostCap:    rank.DefaultPopularityConfig().VibeBoostCap,
		}),
		experiment.VariantB: rank.NewSimilarity(cat, rank.SimilarityConfig{
			GenreBoost: cfg.Ranking.SimilarityGenreBoost,
			CastBoost:  cfg.Ranking.SimilarityCastBoost,
		}),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
	supervisor := suture.New("discoverus", suture.Spec{
		EventHook: handler.MustHook(),
		Timeout:   cfg.Server.ShutdownTimeout,
	})

	// Event pipeline: in-memory log as source of truth, optional durable
	// copy via the bus and a supervised BadgerDB persister.
	var logOpts []events.Option
	var bus *events.Bus
	var db *badger.DB
	if cfg.Events.DataDir != "" {
		db, err = badger.Open(badger.DefaultOptions(cfg.Events.DataDir).WithLogger(nil))
		if err != nil {
			logging.Fatal().Err(err).Str("dir", cfg.Events.DataDir).Msg("open event store")
		}
		defer func() {
			if err := db.Close(); err != nil {
				logging.Error().Err(err).Msg("close event store")
			}
		}()

		bus = events.NewBus(cfg.Events.BusBuffer)
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("close event bus")
			}
		}()
		logOpts = append(logOpts, events.WithSink(bus))
	}

	eventLog := events.NewLog(logOpts...)
	if db != nil {
		persisted, err := events.LoadPersisted(db)
		if err != nil {
			logging.Fatal().Err(err).Msg("replay persisted events")
		}
		eventLog.Restore(persisted)
		logging.Info().Int("events", len(persisted)).Msg("event log rehydrated")

		supervisor.Add(events.NewPersister(db, bus))
	}

	engine, err := discovery.New(cat, query.NewInterpreter(), assignor, strategies, eventLog, cfg.Ranking.TopK)
	if err != nil {
		logging.Fatal().Err(err).Msg("build discovery engine")
	}

	router := api.NewRouter(api.NewHandler(engine), cfg.Server.CORSOrigins)
	supervisor.Add(api.NewServer(cfg.Server, router))

	logging.Info().
		Str("variant_a", strategies[experiment.VariantA].Name()).
		Str("variant_b", strategies[experiment.VariantB].Name()).
		Msg("starting")

	err = supervisor.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor exited")
		// Give the deferred closers a chance before exiting nonzero.
		time.Sleep(100 * time.Millisecond)
		os.Exit(1)
	}
	logging.Info().Msg("shutdown complete")
}
