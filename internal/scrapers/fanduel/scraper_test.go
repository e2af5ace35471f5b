package fanduel

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oddscope/oddscope/internal/pkg/config"
	"github.com/oddscope/oddscope/internal/pkg/models"
)

const sampleState = `{
	"competitions": [
		{
			"events": [
				{
					"id": "fd-777",
					"name": "Lakers @ Celtics",
					"startTime": "2025-11-01T00:30:00Z",
					"competitors": [
						{"name": "Lakers"},
						{"name": "Celtics"}
					],
					"markets": [
						{
							"id": 42,
							"marketName": "Moneyline",
							"selections": [
								{"name": "Lakers", "americanOdds": 210},
								{"name": "Celtics", "americanOdds": -250}
							]
						},
						{
							"id": 43,
							"marketName": "Total Points",
							"selections": [
								{"name": "Over", "americanOdds": "-112", "line": 224.5}
							]
						}
					]
				}
			]
		}
	]
}`

func sampleDocument(state string) string {
	return fmt.Sprintf(`<html><script>window.INITIAL_STATE = %s;</script></html>`, state)
}

func TestParseDocument(t *testing.T) {
	book, err := parseDocument(sampleDocument(sampleState))
	if err != nil {
		t.Fatalf("parseDocument: %v", err)
	}
	if len(book.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(book.Events))
	}

	ev := book.Events[0]
	if ev.ID != "fd-777" {
		t.Errorf("event id = %q", ev.ID)
	}
	if len(ev.Teams) != 2 || ev.Teams[0] != "Lakers" {
		t.Errorf("teams = %v", ev.Teams)
	}
	if len(ev.Markets) != 2 {
		t.Fatalf("markets = %d, want 2", len(ev.Markets))
	}
	if ev.Markets[0].ID != "42" {
		t.Errorf("numeric market id normalized to %q, want 42", ev.Markets[0].ID)
	}

	total := ev.Markets[1]
	if v, ok := total.Outcomes[0].Price.Numeric(); !ok || v != -112 {
		t.Errorf("string price parsed to %v (%v), want -112", v, ok)
	}
	if total.Outcomes[0].Points == nil || *total.Outcomes[0].Points != 224.5 {
		t.Errorf("line = %v, want 224.5", total.Outcomes[0].Points)
	}
}

func TestParseDocument_MalformedMarketSkipped(t *testing.T) {
	state := `{
		"competitions": [
			{
				"events": [
					{
						"id": "fd-1",
						"name": "A vs B",
						"markets": [
							12345,
							{"id": "ok", "marketName": "Moneyline", "selections": []}
						]
					}
				]
			}
		]
	}`
	book, err := parseDocument(sampleDocument(state))
	if err != nil {
		t.Fatalf("parseDocument: %v", err)
	}
	if len(book.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(book.Events))
	}
	markets := book.Events[0].Markets
	if len(markets) != 1 || markets[0].Name != "Moneyline" {
		t.Errorf("markets = %+v, want only Moneyline", markets)
	}
}

func TestParseDocument_EmptyCompetitions(t *testing.T) {
	book, err := parseDocument(sampleDocument(`{"competitions": []}`))
	if err != nil {
		t.Fatalf("parseDocument: %v", err)
	}
	if book.Events == nil || len(book.Events) != 0 {
		t.Errorf("events = %v, want empty non-nil slice", book.Events)
	}
}

func TestScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleDocument(sampleState))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Scraper.FanDuel.BaseURL = srv.URL
	cfg.Scraper.Timeout = 5 * time.Second

	s := NewScraper(cfg)
	if s.Name() != "FanDuel" {
		t.Errorf("Name() = %q", s.Name())
	}

	results, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if len(results) != len(models.AllSports) {
		t.Fatalf("sports = %d, want %d", len(results), len(models.AllSports))
	}
}
