package betmgm

import (
	"encoding/json"

	"github.com/oddscope/oddscope/internal/pkg/models"
)

// Raw shapes of the embedded __PRELOADED_STATE__ payload. Events and markets
// stay as raw JSON so one malformed item is skipped without losing its
// siblings. BetMGM nests the American price under price.american.

type stateRoot struct {
	Competitions []competition `json:"competitions"`
}

type competition struct {
	Events []json.RawMessage `json:"events"`
}

type rawEvent struct {
	ID           models.ID         `json:"id"`
	Name         string            `json:"name"`
	StartTime    string            `json:"startTime"`
	Participants []rawParticipant  `json:"participants"`
	Markets      []json.RawMessage `json:"markets"`
}

type rawParticipant struct {
	Name string `json:"name"`
}

type rawMarket struct {
	ID         models.ID      `json:"id"`
	Name       string         `json:"name"`
	Selections []rawSelection `json:"selections"`
}

type rawSelection struct {
	Name     string    `json:"name"`
	Price    *rawPrice `json:"price"`
	Handicap *float64  `json:"handicap"`
}

type rawPrice struct {
	American models.Price `json:"american"`
}
