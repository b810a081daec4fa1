// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/discoverus/internal/catalog"
	"github.com/tomtom215/discoverus/internal/discovery"
	"github.com/tomtom215/discoverus/internal/events"
	"github.com/tomtom215/discoverus/internal/experiment"
	"github.com/tomtom215/discoverus/internal/query"
	"github.com/tomtom215/discoverus/internal/rank"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()

	cat, err := catalog.New(catalog.SampleItems())
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	assignor, err := experiment.NewAssignor("test-salt", experiment.DefaultSplits())
	if err != nil {
		t.Fatalf("build assignor: %v", err)
	}
	strategies := map[experiment.Variant]rank.Strategy{
		experiment.VariantA: rank.NewPopularity(cat, rank.DefaultPopularityConfig()),
		experiment.VariantB: rank.NewSimilarity(cat, rank.DefaultSimilarityConfig()),
	}
	engine, err := discovery.New(cat, query.NewInterpreterAt(2026), assignor, strategies, events.NewLog(), 10)
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	return NewRouter(NewHandler(engine), []string{"*"})
}

func doJSON(t *testing.T, handler http.Handler, method, target string, body any) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var envelope APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
	}
	return rec, envelope
}

func TestSearchEndpoint(t *testing.T) {
	srv := testServer(t)

	rec, envelope := doJSON(t, srv, http.MethodPost, "/api/v1/search", SearchBody{
		SessionID: "sess-1",
		Query:     "comedy with tom hanks",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if envelope.Status != "ok" {
		t.Errorf("envelope status = %q", envelope.Status)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}

	data, err := json.Marshal(envelope.Data)
	if err != nil {
		t.Fatalf("re-marshal data: %v", err)
	}
	var result discovery.Result
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(result.Items) == 0 {
		t.Error("empty result list for a matching query")
	}
	if result.Variant != "A" && result.Variant != "B" {
		t.Errorf("variant = %q", result.Variant)
	}
}

func TestSearchEndpointValidation(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name string
		body SearchBody
	}{
		{name: "missing session", body: SearchBody{Query: "comedy"}},
		{name: "missing query", body: SearchBody{SessionID: "sess-1"}},
		{name: "bad origin", body: SearchBody{SessionID: "s", Query: "q", Origin: "telepathy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, envelope := doJSON(t, srv, http.MethodPost, "/api/v1/search", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if envelope.Error == nil || envelope.Error.Code != codeValidation {
				t.Errorf("error = %+v, want %s", envelope.Error, codeValidation)
			}
		})
	}
}

func TestSearchEndpointMalformedJSON(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchEndpointInjectedFailure(t *testing.T) {
	srv := testServer(t)

	rec, envelope := doJSON(t, srv, http.MethodPost, "/api/v1/search?fail=1", SearchBody{
		SessionID: "sess-f",
		Query:     "comedy",
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != codeInjectedFailure {
		t.Errorf("error = %+v, want %s", envelope.Error, codeInjectedFailure)
	}

	// The failure appears in the session timeline, not as impressions.
	rec, envelope = doJSON(t, srv, http.MethodGet, "/api/v1/sessions/sess-f/events", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("timeline status = %d", rec.Code)
	}
	data, _ := json.Marshal(envelope.Data)
	var timeline []events.Event
	if err := json.Unmarshal(data, &timeline); err != nil {
		t.Fatalf("decode timeline: %v", err)
	}
	if len(timeline) != 1 || timeline[0].Type != events.TypeFailure {
		t.Errorf("timeline = %+v, want a single failure event", timeline)
	}
}

func TestClickEndpoint(t *testing.T) {
	srv := testServer(t)

	rec, _ := doJSON(t, srv, http.MethodPost, "/api/v1/click", ClickBody{
		SessionID: "sess-1",
		ItemID:    1,
		Position:  1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec, envelope := doJSON(t, srv, http.MethodPost, "/api/v1/click", ClickBody{
		SessionID: "sess-1",
		ItemID:    99999,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown item status = %d, want 404", rec.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != codeNotFound {
		t.Errorf("error = %+v, want %s", envelope.Error, codeNotFound)
	}
}

func TestVariantAnalyticsEndpoint(t *testing.T) {
	srv := testServer(t)

	doJSON(t, srv, http.MethodPost, "/api/v1/search", SearchBody{SessionID: "sess-1", Query: "drama"})

	rec, envelope := doJSON(t, srv, http.MethodGet, "/api/v1/analytics/variants", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data, _ := json.Marshal(envelope.Data)
	var stats []events.VariantStats
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %+v, want both variants", stats)
	}
	if stats[0].Impressions+stats[1].Impressions == 0 {
		t.Errorf("stats = %+v, want impressions on one variant", stats)
	}

	rec, _ = doJSON(t, srv, http.MethodGet, "/api/v1/analytics/variants?days=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad days status = %d, want 400", rec.Code)
	}
	rec, _ = doJSON(t, srv, http.MethodGet, "/api/v1/analytics/variants?days=7", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("days=7 status = %d, want 200", rec.Code)
	}
}

func TestAnalyticsSummaryEndpoint(t *testing.T) {
	srv := testServer(t)

	doJSON(t, srv, http.MethodPost, "/api/v1/search", SearchBody{SessionID: "sess-1", Query: "drama"})
	doJSON(t, srv, http.MethodPost, "/api/v1/click", ClickBody{SessionID: "sess-1", ItemID: 1, Position: 1})

	rec, envelope := doJSON(t, srv, http.MethodGet, "/api/v1/analytics/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data, _ := json.Marshal(envelope.Data)
	var summary discovery.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Sessions != 1 || summary.Impressions == 0 || summary.Clicks != 1 {
		t.Errorf("summary = %+v, want one session, impressions, and one click", summary)
	}
	if len(summary.TopItems) != 1 || summary.TopItems[0].ItemID != 1 {
		t.Errorf("TopItems = %+v, want item 1", summary.TopItems)
	}

	rec, _ = doJSON(t, srv, http.MethodGet, "/api/v1/analytics/summary?days=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad days status = %d, want 400", rec.Code)
	}
}

func TestVoiceSuggestionsEndpoint(t *testing.T) {
	srv := testServer(t)

	rec, envelope := doJSON(t, srv, http.MethodGet, "/api/v1/voice/suggestions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data, _ := json.Marshal(envelope.Data)
	var suggestions []string
	if err := json.Unmarshal(data, &suggestions); err != nil {
		t.Fatalf("decode suggestions: %v", err)
	}
	if len(suggestions) == 0 {
		t.Error("no voice suggestions returned")
	}
}

func TestDebugLastQueryEndpoint(t *testing.T) {
	srv := testServer(t)

	rec, _ := doJSON(t, srv, http.MethodGet, "/api/v1/debug/last-query", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status before any search = %d, want 404", rec.Code)
	}

	doJSON(t, srv, http.MethodPost, "/api/v1/search", SearchBody{SessionID: "sess-1", Query: "funny sci-fi"})

	rec, envelope := doJSON(t, srv, http.MethodGet, "/api/v1/debug/last-query", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data, _ := json.Marshal(envelope.Data)
	var info discovery.DebugInfo
	if err := json.Unmarshal(data, &info); err != nil {
		t.Fatalf("decode debug info: %v", err)
	}
	if info.Raw != "funny sci-fi" {
		t.Errorf("Raw = %q", info.Raw)
	}
	if len(info.Intent.Genres) == 0 {
		t.Errorf("debug intent has no genres: %+v", info.Intent)
	}
}

func TestCatalogAndHealthEndpoints(t *testing.T) {
	srv := testServer(t)

	rec, envelope := doJSON(t, srv, http.MethodGet, "/api/v1/catalog", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("catalog status = %d", rec.Code)
	}
	data, _ := json.Marshal(envelope.Data)
	var items []catalog.Item
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != len(catalog.SampleItems()) {
		t.Errorf("catalog has %d items, want %d", len(items), len(catalog.SampleItems()))
	}

	rec, envelope = doJSON(t, srv, http.MethodGet, "/api/v1/catalog?limit=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("limited catalog status = %d", rec.Code)
	}
	data, _ = json.Marshal(envelope.Data)
	items = nil
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("decode limited items: %v", err)
	}
	if len(items) != 5 {
		t.Errorf("limited catalog has %d items, want 5", len(items))
	}

	rec, envelope = doJSON(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || envelope.Status != "ok" {
		t.Errorf("health = %d %q", rec.Code, envelope.Status)
	}
}
