package models

import (
	"time"
)

// Sport is one of the leagues the scrapers cover.
type Sport string

const (
	SportNFL    Sport = "NFL"
	SportNBA    Sport = "NBA"
	SportMLB    Sport = "MLB"
	SportNHL    Sport = "NHL"
	SportSoccer Sport = "Soccer"
)

// AllSports lists the supported sports in the order scrapers visit them.
var AllSports = []Sport{SportNFL, SportNBA, SportMLB, SportNHL, SportSoccer}

// Outcome is a single selection inside a market. Name is the join key when
// comparing the same market across bookmakers.
type Outcome struct {
	Name   string   `json:"name"`
	Price  Price    `json:"price"`
	Points *float64 `json:"points"`
}

// Market is one betting market (moneyline, spread, total, ...) of an event.
type Market struct {
	ID       ID        `json:"id"`
	Name     string    `json:"name"`
	Outcomes []Outcome `json:"outcomes"`
}

// Key returns the market identity: upstream id when present, name otherwise.
func (m Market) Key() string {
	if m.ID != "" {
		return string(m.ID)
	}
	return m.Name
}

// Event is a single fixture as published by one bookmaker. StartTime is the
// upstream timestamp string passed through untouched; formats differ per site.
type Event struct {
	ID        ID       `json:"id"`
	Name      string   `json:"name"`
	StartTime string   `json:"start_time"`
	Teams     []string `json:"teams"`
	Markets   []Market `json:"markets"`
}

// Key returns the event identity: upstream id when present, name otherwise.
func (e Event) Key() string {
	if e.ID != "" {
		return string(e.ID)
	}
	return e.Name
}

// BookOdds is one bookmaker's full event list for a sport.
type BookOdds struct {
	Events []Event `json:"events"`
}

// SportSnapshot maps bookmaker name to that bookmaker's odds for one sport.
type SportSnapshot map[string]BookOdds

// RootSnapshot is the persisted document: the latest aggregation result for
// every sport. It is replaced wholesale on each successful cycle.
type RootSnapshot struct {
	LastUpdated *time.Time               `json:"last_updated"`
	Odds        map[string]SportSnapshot `json:"odds"`
}

// EmptyRoot returns a snapshot with no odds, used when nothing has been
// persisted yet or the stored document is unreadable.
func EmptyRoot() RootSnapshot {
	return RootSnapshot{Odds: map[string]SportSnapshot{}}
}
