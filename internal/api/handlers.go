// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/discoverus/internal/discovery"
	"github.com/tomtom215/discoverus/internal/events"
	"github.com/tomtom215/discoverus/internal/logging"
	"github.com/tomtom215/discoverus/internal/query"
)

// Handler serves the discovery API on top of the engine.
type Handler struct {
	engine *discovery.Engine
}

// NewHandler creates the API handler.
func NewHandler(engine *discovery.Engine) *Handler {
	return &Handler{engine: engine}
}

// Search handles POST /api/v1/search. The fail query parameter triggers a
// simulated post-interpretation failure.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var body SearchBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "malformed JSON body")
		return
	}
	if err := validateRequest(&body); err != nil {
		respondError(w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	origin := query.OriginText
	if body.Origin == string(query.OriginVoice) {
		origin = query.OriginVoice
	}

	result, err := h.engine.Search(r.Context(), discovery.SearchRequest{
		SessionID: body.SessionID,
		Query:     body.Query,
		Origin:    origin,
		Limit:     body.Limit,
		Fail:      r.URL.Query().Get("fail") == "1",
	})
	if err != nil {
		if errors.Is(err, discovery.ErrInjectedFailure) {
			respondError(w, r, http.StatusInternalServerError, codeInjectedFailure, "simulated ranking failure")
			return
		}
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).Msg("search failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "search failed")
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

// Click handles POST /api/v1/click.
func (h *Handler) Click(w http.ResponseWriter, r *http.Request) {
	var body ClickBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "malformed JSON body")
		return
	}
	if err := validateRequest(&body); err != nil {
		respondError(w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	ev, err := h.engine.Click(r.Context(), discovery.ClickRequest{
		SessionID: body.SessionID,
		RequestID: body.RequestID,
		ItemID:    body.ItemID,
		Position:  body.Position,
	})
	if err != nil {
		if errors.Is(err, discovery.ErrUnknownItem) {
			respondError(w, r, http.StatusNotFound, codeNotFound, "item not found")
			return
		}
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).Msg("click failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "click failed")
		return
	}
	respondJSON(w, r, http.StatusOK, ev)
}

// windowStart resolves the optional days query parameter into a cutoff
// time. A missing parameter means an unbounded window.
func windowStart(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return time.Time{}, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return time.Time{}, errors.New("days must be a positive integer")
	}
	return time.Now().UTC().AddDate(0, 0, -days), nil
}

// VariantAnalytics handles GET /api/v1/analytics/variants. The optional
// days parameter restricts the aggregation window.
func (h *Handler) VariantAnalytics(w http.ResponseWriter, r *http.Request) {
	since, err := windowStart(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	respondJSON(w, r, http.StatusOK, h.engine.Events().AggregateByVariant(since))
}

// AnalyticsSummary handles GET /api/v1/analytics/summary: the overall
// cross-variant engagement picture.
func (h *Handler) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	since, err := windowStart(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	respondJSON(w, r, http.StatusOK, h.engine.AnalyticsSummary(since))
}

// VoiceSuggestions handles GET /api/v1/voice/suggestions.
func (h *Handler) VoiceSuggestions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, query.VoiceSuggestions())
}

// SessionEvents handles GET /api/v1/sessions/{sessionID}/events.
func (h *Handler) SessionEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		respondError(w, r, http.StatusBadRequest, codeValidation, "session ID is required")
		return
	}
	sessionEvents := h.engine.Events().SessionEvents(sessionID)
	if sessionEvents == nil {
		// An unknown session yields an empty timeline, not a 404.
		sessionEvents = []events.Event{}
	}
	respondJSON(w, r, http.StatusOK, sessionEvents)
}

// LastQuery handles GET /api/v1/debug/last-query.
func (h *Handler) LastQuery(w http.ResponseWriter, r *http.Request) {
	info := h.engine.LastQuery()
	if info == nil {
		respondError(w, r, http.StatusNotFound, codeNotFound, "no query interpreted yet")
		return
	}
	respondJSON(w, r, http.StatusOK, info)
}

// Catalog handles GET /api/v1/catalog. The optional limit parameter
// truncates the listing.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	items := h.engine.Catalog().Items()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondError(w, r, http.StatusBadRequest, codeValidation, "limit must be a positive integer")
			return
		}
		if limit < len(items) {
			items = items[:limit]
		}
	}
	respondJSON(w, r, http.StatusOK, items)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]any{
		"healthy":       true,
		"catalog_items": h.engine.Catalog().Len(),
		"events":        h.engine.Events().Len(),
	})
}
