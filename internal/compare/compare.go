// Package compare matches events, markets and outcomes across bookmakers and
// picks the best American price for every outcome.
package compare

import (
	"sort"
	"strings"

	"github.com/oddscope/oddscope/internal/pkg/models"
)

// EventRef identifies a merged event in a comparison result.
type EventRef struct {
	ID        models.ID `json:"id"`
	Name      string    `json:"name"`
	StartTime string    `json:"start_time"`
	Teams     []string  `json:"teams"`
}

// MarketRef identifies a merged market in a comparison result.
type MarketRef struct {
	ID   models.ID `json:"id"`
	Name string    `json:"name"`
}

// Quote is one bookmaker's price for a merged outcome.
type Quote struct {
	Price  models.Price `json:"price"`
	Points *float64     `json:"points"`
}

// OutcomeComparison is one selection merged across bookmakers, with the best
// available price. BestPrice is nil when no bookmaker quoted a numeric price.
type OutcomeComparison struct {
	Name          string           `json:"name"`
	Bookmakers    map[string]Quote `json:"bookmakers"`
	BestPrice     *float64         `json:"best_price"`
	BestBookmaker string           `json:"best_bookmaker,omitempty"`

	// order tracks bookmakers by first appearance so tie-breaks are stable.
	order []string
}

// MarketComparison is one market merged across bookmakers.
type MarketComparison struct {
	Market   MarketRef            `json:"market"`
	Outcomes []*OutcomeComparison `json:"outcomes"`

	index map[string]*OutcomeComparison
}

// EventComparison is one event merged across bookmakers.
type EventComparison struct {
	Event   EventRef            `json:"event"`
	Markets []*MarketComparison `json:"markets"`

	index map[string]*MarketComparison
}

// Compare merges one sport's per-bookmaker odds into a cross-bookmaker view.
// eventID, when non-empty, keeps only the event whose join key stringifies to
// it. marketFilter, when non-empty, keeps only markets whose name contains it
// case-insensitively. Events, markets and outcomes keep encounter order;
// bookmakers are visited in sorted name order, which also decides first-seen
// tie-breaks (persisted JSON objects carry no insertion order).
func Compare(snap models.SportSnapshot, eventID, marketFilter string) []EventComparison {
	books := make([]string, 0, len(snap))
	for name := range snap {
		books = append(books, name)
	}
	sort.Strings(books)

	marketFilter = strings.ToLower(marketFilter)

	var events []EventComparison
	byKey := make(map[string]int)

	for _, book := range books {
		for _, ev := range snap[book].Events {
			key := ev.Key()
			if key == "" {
				continue
			}
			if eventID != "" && key != eventID {
				continue
			}
			idx, ok := byKey[key]
			if !ok {
				idx = len(events)
				byKey[key] = idx
				teams := ev.Teams
				if teams == nil {
					teams = []string{}
				}
				events = append(events, EventComparison{
					Event: EventRef{
						ID:        ev.ID,
						Name:      ev.Name,
						StartTime: ev.StartTime,
						Teams:     teams,
					},
					Markets: []*MarketComparison{},
					index:   make(map[string]*MarketComparison),
				})
			}
			mergeMarkets(&events[idx], book, ev.Markets, marketFilter)
		}
	}

	for i := range events {
		for _, mc := range events[i].Markets {
			for _, oc := range mc.Outcomes {
				pickBest(oc)
			}
		}
	}
	return events
}

func mergeMarkets(ec *EventComparison, book string, markets []models.Market, marketFilter string) {
	for _, m := range markets {
		key := m.Key()
		if key == "" {
			continue
		}
		if marketFilter != "" && !strings.Contains(strings.ToLower(m.Name), marketFilter) {
			continue
		}
		mc, ok := ec.index[key]
		if !ok {
			mc = &MarketComparison{
				Market:   MarketRef{ID: m.ID, Name: m.Name},
				Outcomes: []*OutcomeComparison{},
				index:    make(map[string]*OutcomeComparison),
			}
			ec.index[key] = mc
			ec.Markets = append(ec.Markets, mc)
		}
		mergeOutcomes(mc, book, m.Outcomes)
	}
}

func mergeOutcomes(mc *MarketComparison, book string, outcomes []models.Outcome) {
	for _, o := range outcomes {
		if o.Name == "" {
			continue
		}
		oc, ok := mc.index[o.Name]
		if !ok {
			oc = &OutcomeComparison{
				Name:       o.Name,
				Bookmakers: make(map[string]Quote),
			}
			mc.index[o.Name] = oc
			mc.Outcomes = append(mc.Outcomes, oc)
		}
		if _, seen := oc.Bookmakers[book]; !seen {
			oc.order = append(oc.order, book)
		}
		oc.Bookmakers[book] = Quote{Price: o.Price, Points: o.Points}
	}
}

// pickBest applies American odds semantics over the outcome's quotes in
// first-seen bookmaker order. A price of exactly 0 falls in the non-negative
// branch; equal prices never displace an earlier bookmaker.
func pickBest(oc *OutcomeComparison) {
	var best *float64
	for _, book := range oc.order {
		price, ok := oc.Bookmakers[book].Price.Numeric()
		if !ok {
			continue
		}
		if beats(price, best) {
			p := price
			best = &p
			oc.BestBookmaker = book
		}
	}
	oc.BestPrice = best
}

func beats(price float64, best *float64) bool {
	if best == nil {
		return true
	}
	if price >= 0 {
		return *best < 0 || price > *best
	}
	return *best < 0 && price > *best
}
