// Package oddsmath holds pure odds conversion and arbitrage math.
package oddsmath

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroAmerican is returned for the degenerate American price 0,
	// which has no decimal equivalent.
	ErrZeroAmerican = errors.New("american odds of 0 have no decimal form")
	// ErrDegenerateDecimal is returned for decimal odds at or below 1,
	// where the American conversion divides by zero or flips sign.
	ErrDegenerateDecimal = errors.New("decimal odds must be greater than 1")
)

// AmericanToDecimal converts American odds to decimal odds.
// +150 -> 2.50, -150 -> 1.667.
func AmericanToDecimal(american float64) (float64, error) {
	if american == 0 {
		return 0, ErrZeroAmerican
	}
	if american > 0 {
		return american/100 + 1, nil
	}
	return 100/-american + 1, nil
}

// DecimalToAmerican converts decimal odds to American odds.
// 2.50 -> +150, 1.667 -> -150.
func DecimalToAmerican(decimal float64) (float64, error) {
	if decimal <= 1 {
		return 0, ErrDegenerateDecimal
	}
	if decimal >= 2 {
		return (decimal - 1) * 100, nil
	}
	return -100 / (decimal - 1), nil
}

// ImpliedProbability returns the break-even probability for an American
// price: 1 / decimal odds. +150 -> 0.4, -110 -> 0.5238.
func ImpliedProbability(american float64) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return 1 / decimal, nil
}

// ArbitrageResult describes whether a set of mutually exclusive prices allows
// a risk-free profit. Stakes are fractions of the bankroll, proportional to
// implied probability, and sum to 1 when an opportunity exists.
type ArbitrageResult struct {
	Exists                  bool      `json:"arbitrage_exists"`
	TotalImpliedProbability float64   `json:"total_implied_probability"`
	ProfitPercentage        float64   `json:"profit_percentage,omitempty"`
	OptimalStakes           []float64 `json:"optimal_stakes,omitempty"`
}

// Arbitrage evaluates a set of American prices covering every outcome of one
// event. An opportunity exists when the implied probabilities sum below 1.
func Arbitrage(odds []float64) (ArbitrageResult, error) {
	if len(odds) == 0 {
		return ArbitrageResult{}, errors.New("no odds given")
	}
	probs := make([]float64, len(odds))
	var total float64
	for i, a := range odds {
		p, err := ImpliedProbability(a)
		if err != nil {
			return ArbitrageResult{}, fmt.Errorf("odds[%d]: %w", i, err)
		}
		probs[i] = p
		total += p
	}
	res := ArbitrageResult{TotalImpliedProbability: total}
	if total >= 1 {
		return res, nil
	}
	res.Exists = true
	res.ProfitPercentage = (1/total - 1) * 100
	res.OptimalStakes = make([]float64, len(probs))
	for i, p := range probs {
		res.OptimalStakes[i] = p / total
	}
	return res, nil
}
