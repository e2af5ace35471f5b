package draftkings

import (
	"encoding/json"

	"github.com/oddscope/oddscope/internal/pkg/models"
)

// Raw shapes of the embedded window.__INITIAL_STATE__ payload. Events and
// offers stay as raw JSON so one malformed item is skipped without losing
// its siblings.

type stateRoot struct {
	EventGroups []eventGroup `json:"eventGroups"`
}

type eventGroup struct {
	Events []json.RawMessage `json:"events"`
}

type rawEvent struct {
	EventID   models.ID         `json:"eventId"`
	Name      string            `json:"name"`
	StartDate string            `json:"startDate"`
	TeamName1 string            `json:"teamName1"`
	TeamName2 string            `json:"teamName2"`
	Offers    []json.RawMessage `json:"offers"`
}

type rawOffer struct {
	OfferID  models.ID    `json:"offerId"`
	Label    string       `json:"label"`
	Outcomes []rawOutcome `json:"outcomes"`
}

type rawOutcome struct {
	Label        string       `json:"label"`
	OddsAmerican models.Price `json:"oddsAmerican"`
	Line         *float64     `json:"line"`
}
