// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/discoverus/internal/catalog"
	"github.com/tomtom215/discoverus/internal/events"
	"github.com/tomtom215/discoverus/internal/experiment"
	"github.com/tomtom215/discoverus/internal/query"
	"github.com/tomtom215/discoverus/internal/rank"
)

func testEngine(t *testing.T) (*Engine, *events.Log) {
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
	log := events.NewLog()

	engine, err := New(cat, query.NewInterpreterAt(2026), assignor, strategies, log, 10)
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	return engine, log
}

func TestSearchRecordsImpressions(t *testing.T) {
	engine, log := testEngine(t)

	result, err := engine.Search(context.Background(), SearchRequest{
		SessionID: "sess-1",
		Query:     "comedy with tom hanks",
		Origin:    query.OriginText,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if result.RequestID == "" {
		t.Error("empty request ID")
	}
	if result.Variant != "A" && result.Variant != "B" {
		t.Errorf("variant = %q", result.Variant)
	}
	if len(result.Items) == 0 {
		t.Fatal("no results for a matching query")
	}
	for i, item := range result.Items {
		if item.Position != i+1 {
			t.Errorf("item %d Position = %d, want %d", i, item.Position, i+1)
		}
	}

	timeline := log.SessionEvents("sess-1")
	if len(timeline) != len(result.Items) {
		t.Fatalf("recorded %d events, want %d impressions", len(timeline), len(result.Items))
	}
	for i, ev := range timeline {
		if ev.Type != events.TypeImpression {
			t.Errorf("event %d Type = %s, want impression", i, ev.Type)
		}
		if ev.RequestID != result.RequestID {
			t.Errorf("event %d RequestID = %q, want %q", i, ev.RequestID, result.RequestID)
		}
		if ev.ItemID != result.Items[i].Item.ID {
			t.Errorf("event %d ItemID = %d, want %d", i, ev.ItemID, result.Items[i].Item.ID)
		}
	}
}

func TestSearchVariantStablePerSession(t *testing.T) {
	engine, _ := testEngine(t)

	first, err := engine.Search(context.Background(), SearchRequest{SessionID: "sess-1", Query: "drama"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := engine.Search(context.Background(), SearchRequest{SessionID: "sess-1", Query: "thriller"})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if again.Variant != first.Variant {
			t.Fatalf("variant changed within a session: %s then %s", first.Variant, again.Variant)
		}
	}
}

func TestSearchInjectedFailure(t *testing.T) {
	engine, log := testEngine(t)

	_, err := engine.Search(context.Background(), SearchRequest{
		SessionID: "sess-f",
		Query:     "comedy",
		Fail:      true,
	})
	if !errors.Is(err, ErrInjectedFailure) {
		t.Fatalf("err = %v, want ErrInjectedFailure", err)
	}

	timeline := log.SessionEvents("sess-f")
	if len(timeline) != 1 {
		t.Fatalf("failure recorded %d events, want exactly 1", len(timeline))
	}
	if timeline[0].Type != events.TypeFailure {
		t.Errorf("event Type = %s, want failure", timeline[0].Type)
	}

	// Interpretation happened before the failure and is still debuggable.
	info := engine.LastQuery()
	if info == nil {
		t.Fatal("LastQuery = nil after a failed search")
	}
	if len(info.Intent.Genres) == 0 || info.Intent.Genres[0] != "Comedy" {
		t.Errorf("debug intent genres = %v, want [Comedy]", info.Intent.Genres)
	}
}

func TestSearchLimit(t *testing.T) {
	engine, _ := testEngine(t)

	result, err := engine.Search(context.Background(), SearchRequest{
		SessionID: "sess-1",
		Query:     "",
		Limit:     3,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Items) != 3 {
		t.Errorf("len = %d, want 3", len(result.Items))
	}
}

func TestSearchVoiceOriginNormalizes(t *testing.T) {
	engine, _ := testEngine(t)

	result, err := engine.Search(context.Background(), SearchRequest{
		SessionID: "sess-v",
		Query:     "um show me a sigh fi movie",
		Origin:    query.OriginVoice,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Normalized != "a sci-fi movie" {
		t.Errorf("Normalized = %q, want %q", result.Normalized, "a sci-fi movie")
	}
	if len(result.Intent.Genres) != 1 || result.Intent.Genres[0] != "Sci-Fi" {
		t.Errorf("Genres = %v, want [Sci-Fi]", result.Intent.Genres)
	}
}

func TestClick(t *testing.T) {
	engine, log := testEngine(t)

	result, err := engine.Search(context.Background(), SearchRequest{SessionID: "sess-1", Query: "drama"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	shown := result.Items[0]

	ev, err := engine.Click(context.Background(), ClickRequest{
		SessionID: "sess-1",
		RequestID: result.RequestID,
		ItemID:    shown.Item.ID,
		Position:  shown.Position,
	})
	if err != nil {
		t.Fatalf("Click: %v", err)
	}
	if ev.Orphan {
		t.Error("click on a shown item flagged as orphan")
	}
	if ev.Variant != result.Variant {
		t.Errorf("click variant = %s, want %s", ev.Variant, result.Variant)
	}

	timeline := log.SessionEvents("sess-1")
	if timeline[len(timeline)-1].Type != events.TypeClick {
		t.Error("click not appended to the session timeline")
	}
}

func TestClickOrphanAndUnknownItem(t *testing.T) {
	engine, _ := testEngine(t)

	// Valid item never shown to this session: accepted, flagged.
	ev, err := engine.Click(context.Background(), ClickRequest{SessionID: "sess-x", ItemID: 1, Position: 1})
	if err != nil {
		t.Fatalf("Click: %v", err)
	}
	if !ev.Orphan {
		t.Error("unshown item click not flagged as orphan")
	}

	// Item outside the catalog: rejected.
	_, err = engine.Click(context.Background(), ClickRequest{SessionID: "sess-x", ItemID: 99999, Position: 1})
	if !errors.Is(err, ErrUnknownItem) {
		t.Errorf("err = %v, want ErrUnknownItem", err)
	}
}

func TestLastQueryBeforeAnySearch(t *testing.T) {
	engine, _ := testEngine(t)
	if info := engine.LastQuery(); info != nil {
		t.Errorf("LastQuery = %+v before any search, want nil", info)
	}
}

func TestNewRejectsMissingStrategy(t *testing.T) {
	cat, err := catalog.New(catalog.SampleItems())
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	assignor, err := experiment.NewAssignor("s", experiment.DefaultSplits())
	if err != nil {
		t.Fatalf("build assignor: %v", err)
	}
	only := map[experiment.Variant]rank.Strategy{
		experiment.VariantA: rank.NewPopularity(cat, rank.DefaultPopularityConfig()),
	}

	if _, err := New(cat, query.NewInterpreterAt(2026), assignor, only, events.NewLog(), 10); !errors.Is(err, ErrNoStrategy) {
		t.Errorf("err = %v, want ErrNoStrategy", err)
	}
}

func TestSearchCTRScenario(t *testing.T) {
	engine, log := testEngine(t)

	result, err := engine.Search(context.Background(), SearchRequest{SessionID: "sess-ctr", Query: "crime"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if _, err := engine.Click(context.Background(), ClickRequest{
		SessionID: "sess-ctr",
		RequestID: result.RequestID,
		ItemID:    result.Items[0].Item.ID,
		Position:  1,
	}); err != nil {
		t.Fatalf("Click: %v", err)
	}

	// Both registered arms appear; the one that served the search carries
	// the engagement, the other reports zeros.
	stats := log.AggregateByVariant(time.Time{})
	if len(stats) != 2 {
		t.Fatalf("got %d variants, want 2", len(stats))
	}
	var active, cold events.VariantStats
	for _, s := range stats {
		if s.Variant == result.Variant {
			active = s
		} else {
			cold = s
		}
	}
	want := 1.0 / float64(len(result.Items))
	if active.CTR != want {
		t.Errorf("CTR = %v, want %v", active.CTR, want)
	}
	if cold.Impressions != 0 || cold.Clicks != 0 || cold.CTR != 0 {
		t.Errorf("cold variant = %+v, want all zeros", cold)
	}
}

func TestAnalyticsSummary(t *testing.T) {
	engine, _ := testEngine(t)

	result, err := engine.Search(context.Background(), SearchRequest{SessionID: "sess-1", Query: "drama"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	clicked := result.Items[0].Item
	if _, err := engine.Click(context.Background(), ClickRequest{
		SessionID: "sess-1",
		RequestID: result.RequestID,
		ItemID:    clicked.ID,
		Position:  1,
	}); err != nil {
		t.Fatalf("Click: %v", err)
	}

	got := engine.AnalyticsSummary(time.Time{})
	if got.Sessions != 1 {
		t.Errorf("Sessions = %d, want 1", got.Sessions)
	}
	if got.Impressions != len(result.Items) || got.Clicks != 1 {
		t.Errorf("Impressions/Clicks = %d/%d, want %d/1", got.Impressions, got.Clicks, len(result.Items))
	}
	if want := 1.0 / float64(len(result.Items)); got.CTR != want {
		t.Errorf("CTR = %v, want %v", got.CTR, want)
	}
	if len(got.TopItems) != 1 || got.TopItems[0].ItemID != clicked.ID || got.TopItems[0].Title != clicked.Title {
		t.Errorf("TopItems = %+v, want the clicked item", got.TopItems)
	}
	if len(got.TopGenres) == 0 {
		t.Error("TopGenres empty after a click on a genre-tagged item")
	}
	for _, gc := range got.TopGenres {
		if !clicked.HasGenre(gc.Genre) {
			t.Errorf("TopGenres lists %q, not a genre of the clicked item", gc.Genre)
		}
	}
}
