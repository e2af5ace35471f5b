package fanduel

import (
	"encoding/json"

	"github.com/oddscope/oddscope/internal/pkg/models"
)

// Raw shapes of the embedded window.INITIAL_STATE payload. Events and
// markets stay as raw JSON so one malformed item is skipped without losing
// its siblings.

type stateRoot struct {
	Competitions []competition `json:"competitions"`
}

type competition struct {
	Events []json.RawMessage `json:"events"`
}

type rawEvent struct {
	ID          models.ID         `json:"id"`
	Name        string            `json:"name"`
	StartTime   string            `json:"startTime"`
	Competitors []rawCompetitor   `json:"competitors"`
	Markets     []json.RawMessage `json:"markets"`
}

type rawCompetitor struct {
	Name string `json:"name"`
}

type rawMarket struct {
	ID         models.ID      `json:"id"`
	MarketName string         `json:"marketName"`
	Selections []rawSelection `json:"selections"`
}

type rawSelection struct {
	Name         string       `json:"name"`
	AmericanOdds models.Price `json:"americanOdds"`
	Line         *float64     `json:"line"`
}
