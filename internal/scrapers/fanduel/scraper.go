// Package fanduel scrapes the FanDuel sportsbook. Odds pages embed a
// window.INITIAL_STATE JSON blob with events grouped under competitions.
package fanduel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/oddscope/oddscope/internal/pkg/config"
	"github.com/oddscope/oddscope/internal/pkg/models"
	"github.com/oddscope/oddscope/internal/scrapers"
)

const (
	bookmakerName  = "FanDuel"
	defaultBaseURL = "https://sportsbook.fanduel.com"
	stateMarker    = "window.INITIAL_STATE"
)

var sportPaths = map[models.Sport]string{
	models.SportNFL:    "/navigation/nfl",
	models.SportNBA:    "/navigation/nba",
	models.SportMLB:    "/navigation/mlb",
	models.SportNHL:    "/navigation/nhl",
	models.SportSoccer: "/navigation/soccer",
}

func init() {
	scrapers.Register(bookmakerName, func(cfg *config.Config) scrapers.Scraper {
		return NewScraper(cfg)
	})
}

type Scraper struct {
	baseURL string
	client  *scrapers.FetchClient
}

func NewScraper(cfg *config.Config) *Scraper {
	baseURL := cfg.Scraper.FanDuel.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Scraper{
		baseURL: baseURL,
		client:  scrapers.NewFetchClient(cfg.Scraper.Timeout, cfg.Scraper.UserAgent),
	}
}

func (s *Scraper) Name() string { return bookmakerName }

func (s *Scraper) Scrape(ctx context.Context) (map[models.Sport]models.BookOdds, error) {
	slog.Info("fanduel: starting scrape")
	results := make(map[models.Sport]models.BookOdds)

	for _, sport := range models.AllSports {
		url := s.baseURL + sportPaths[sport]
		slog.Info("fanduel: fetching sport", "sport", sport, "url", url)

		doc, err := s.client.FetchDocument(ctx, url)
		if err != nil {
			slog.Error("fanduel: fetch failed", "sport", sport, "error", err)
			continue
		}

		book, err := parseDocument(doc)
		if err != nil {
			slog.Error("fanduel: extraction failed", "sport", sport, "error", err)
			continue
		}
		results[sport] = book
		slog.Info("fanduel: sport parsed", "sport", sport, "events", len(book.Events))
	}

	slog.Info("fanduel: scrape finished", "sports", len(results))
	return results, nil
}

func parseDocument(doc string) (models.BookOdds, error) {
	blob, err := scrapers.ExtractStateJSON(doc, stateMarker)
	if err != nil {
		return models.BookOdds{}, err
	}
	var root stateRoot
	if err := json.Unmarshal(blob, &root); err != nil {
		return models.BookOdds{}, fmt.Errorf("decode state: %w", err)
	}

	events := make([]models.Event, 0)
	for _, comp := range root.Competitions {
		for _, raw := range comp.Events {
			ev, err := parseEvent(raw)
			if err != nil {
				slog.Warn("fanduel: skipping event", "error", err)
				continue
			}
			events = append(events, ev)
		}
	}
	return models.BookOdds{Events: events}, nil
}

func parseEvent(raw json.RawMessage) (models.Event, error) {
	var e rawEvent
	if err := json.Unmarshal(raw, &e); err != nil {
		return models.Event{}, fmt.Errorf("decode event: %w", err)
	}

	teams := make([]string, 0, len(e.Competitors))
	for _, c := range e.Competitors {
		teams = append(teams, c.Name)
	}

	markets := make([]models.Market, 0, len(e.Markets))
	for _, rawM := range e.Markets {
		m, err := parseMarket(rawM)
		if err != nil {
			slog.Warn("fanduel: skipping market", "event", e.Name, "error", err)
			continue
		}
		markets = append(markets, m)
	}

	return models.Event{
		ID:        e.ID,
		Name:      e.Name,
		StartTime: e.StartTime,
		Teams:     teams,
		Markets:   markets,
	}, nil
}

func parseMarket(raw json.RawMessage) (models.Market, error) {
	var m rawMarket
	if err := json.Unmarshal(raw, &m); err != nil {
		return models.Market{}, fmt.Errorf("decode market: %w", err)
	}

	outcomes := make([]models.Outcome, 0, len(m.Selections))
	for _, sel := range m.Selections {
		outcomes = append(outcomes, models.Outcome{
			Name:   sel.Name,
			Price:  sel.AmericanOdds,
			Points: sel.Line,
		})
	}
	return models.Market{ID: m.ID, Name: m.MarketName, Outcomes: outcomes}, nil
}
