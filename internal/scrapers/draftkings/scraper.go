// Package draftkings scrapes the DraftKings sportsbook. Odds pages embed a
// window.__INITIAL_STATE__ JSON blob with events grouped under eventGroups.
package draftkings

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
	bookmakerName  = "DraftKings"
	defaultBaseURL = "https://sportsbook.draftkings.com"
	stateMarker    = "window.__INITIAL_STATE__"
)

var sportPaths = map[models.Sport]string{
	models.SportNFL:    "/leagues/football/nfl",
	models.SportNBA:    "/leagues/basketball/nba",
	models.SportMLB:    "/leagues/baseball/mlb",
	models.SportNHL:    "/leagues/hockey/nhl",
	models.SportSoccer: "/leagues/soccer/featured",
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
	baseURL := cfg.Scraper.DraftKings.BaseURL
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
	slog.Info("draftkings: starting scrape")
	results := make(map[models.Sport]models.BookOdds)

	for _, sport := range models.AllSports {
		url := s.baseURL + sportPaths[sport]
		slog.Info("draftkings: fetching sport", "sport", sport, "url", url)

		doc, err := s.client.FetchDocument(ctx, url)
		if err != nil {
			slog.Error("draftkings: fetch failed", "sport", sport, "error", err)
			continue
		}

		book, err := parseDocument(doc)
		if err != nil {
			slog.Error("draftkings: extraction failed", "sport", sport, "error", err)
			continue
		}
		results[sport] = book
		slog.Info("draftkings: sport parsed", "sport", sport, "events", len(book.Events))
	}

	slog.Info("draftkings: scrape finished", "sports", len(results))
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
	for _, group := range root.EventGroups {
		for _, raw := range group.Events {
			ev, err := parseEvent(raw)
			if err != nil {
				slog.Warn("draftkings: skipping event", "error", err)
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

	teams := []string{}
	if e.TeamName1 != "" && e.TeamName2 != "" {
		teams = []string{e.TeamName1, e.TeamName2}
	}

	markets := make([]models.Market, 0, len(e.Offers))
	for _, rawM := range e.Offers {
		m, err := parseMarket(rawM)
		if err != nil {
			slog.Warn("draftkings: skipping market", "event", e.Name, "error", err)
			continue
		}
		markets = append(markets, m)
	}

	return models.Event{
		ID:        e.EventID,
		Name:      e.Name,
		StartTime: e.StartDate,
		Teams:     teams,
		Markets:   markets,
	}, nil
}

func parseMarket(raw json.RawMessage) (models.Market, error) {
	var o rawOffer
	if err := json.Unmarshal(raw, &o); err != nil {
		return models.Market{}, fmt.Errorf("decode offer: %w", err)
	}

	outcomes := make([]models.Outcome, 0, len(o.Outcomes))
	for _, out := range o.Outcomes {
		outcomes = append(outcomes, models.Outcome{
			Name:   out.Label,
			Price:  out.OddsAmerican,
			Points: out.Line,
		})
	}
	return models.Market{ID: o.OfferID, Name: o.Label, Outcomes: outcomes}, nil
}
