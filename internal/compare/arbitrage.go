package compare

import (
	"github.com/oddscope/oddscope/internal/oddsmath"
)

// ArbitrageLeg is one outcome of an arbitrage opportunity: the best quote for
// that selection and the bankroll fraction to stake on it.
type ArbitrageLeg struct {
	Name      string  `json:"name"`
	Bookmaker string  `json:"bookmaker"`
	Price     float64 `json:"price"`
	Stake     float64 `json:"stake"`
}

// ArbitrageOpportunity is a market whose best-price outcomes imply a total
// probability below 1.
type ArbitrageOpportunity struct {
	Event                   EventRef       `json:"event"`
	Market                  MarketRef      `json:"market"`
	Legs                    []ArbitrageLeg `json:"legs"`
	ProfitPercentage        float64        `json:"profit_percentage"`
	TotalImpliedProbability float64        `json:"total_implied_probability"`
}

// FindArbitrage scans a comparison result for arbitrage. Only markets where
// every merged outcome has a numeric best price qualify; a market missing a
// quote for any outcome is not a full book and is skipped.
func FindArbitrage(events []EventComparison) []ArbitrageOpportunity {
	var opps []ArbitrageOpportunity
	for _, ec := range events {
		for _, mc := range ec.Markets {
			if len(mc.Outcomes) < 2 {
				continue
			}
			prices := make([]float64, 0, len(mc.Outcomes))
			for _, oc := range mc.Outcomes {
				if oc.BestPrice == nil {
					prices = nil
					break
				}
				prices = append(prices, *oc.BestPrice)
			}
			if prices == nil {
				continue
			}
			res, err := oddsmath.Arbitrage(prices)
			if err != nil || !res.Exists {
				continue
			}
			legs := make([]ArbitrageLeg, len(mc.Outcomes))
			for i, oc := range mc.Outcomes {
				legs[i] = ArbitrageLeg{
					Name:      oc.Name,
					Bookmaker: oc.BestBookmaker,
					Price:     prices[i],
					Stake:     res.OptimalStakes[i],
				}
			}
			opps = append(opps, ArbitrageOpportunity{
				Event:                   ec.Event,
				Market:                  mc.Market,
				Legs:                    legs,
				ProfitPercentage:        res.ProfitPercentage,
				TotalImpliedProbability: res.TotalImpliedProbability,
			})
		}
	}
	return opps
}
