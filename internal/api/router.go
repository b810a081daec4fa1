// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the full route table.
func NewRouter(handler *Handler, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", handler.Search)
		r.Post("/click", handler.Click)
		r.Get("/catalog", handler.Catalog)
		r.Get("/analytics/variants", handler.VariantAnalytics)
		r.Get("/analytics/summary", handler.AnalyticsSummary)
		r.Get("/voice/suggestions", handler.VoiceSuggestions)
		r.Get("/sessions/{sessionID}/events", handler.SessionEvents)
		r.Get("/debug/last-query", handler.LastQuery)
	})

	return r
}
