package oddsmath

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		american float64
		want     float64
	}{
		{"even money", 100, 2.0},
		{"underdog +150", 150, 2.5},
		{"underdog +300", 300, 4.0},
		{"favorite -110", -110, 1.909090909},
		{"favorite -150", -150, 1.666666667},
		{"favorite -200", -200, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AmericanToDecimal(tt.american)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(got, tt.want, 0.0001) {
				t.Errorf("AmericanToDecimal(%v) = %v, want %v", tt.american, got, tt.want)
			}
		})
	}
}

func TestAmericanToDecimal_Zero(t *testing.T) {
	if _, err := AmericanToDecimal(0); err == nil {
		t.Error("expected error for american odds of 0")
	}
}

func TestDecimalToAmerican_Degenerate(t *testing.T) {
	for _, d := range []float64{1.0, 0.5, 0} {
		if _, err := DecimalToAmerican(d); err == nil {
			t.Errorf("expected error for decimal odds %v", d)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, a := range []float64{-350, -200, -150, -110, -101, 100, 110, 150, 200, 350} {
		decimal, err := AmericanToDecimal(a)
		if err != nil {
			t.Fatalf("AmericanToDecimal(%v): %v", a, err)
		}
		back, err := DecimalToAmerican(decimal)
		if err != nil {
			t.Fatalf("DecimalToAmerican(%v): %v", decimal, err)
		}
		if !almostEqual(back, a, 0.0001) {
			t.Errorf("round trip %v -> %v -> %v", a, decimal, back)
		}
	}
}

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		american float64
		want     float64
	}{
		{100, 0.5},
		{150, 0.4},
		{-110, 0.5238},
		{-200, 0.6667},
		{300, 0.25},
	}
	for _, tt := range tests {
		got, err := ImpliedProbability(tt.american)
		if err != nil {
			t.Fatalf("ImpliedProbability(%v): %v", tt.american, err)
		}
		if !almostEqual(got, tt.want, 0.0001) {
			t.Errorf("ImpliedProbability(%v) = %v, want %v", tt.american, got, tt.want)
		}
	}
}

func TestArbitrage_Exists(t *testing.T) {
	res, err := Arbitrage([]float64{150, -110})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Exists {
		t.Fatal("expected an arbitrage opportunity for [+150, -110]")
	}
	if !almostEqual(res.TotalImpliedProbability, 0.92381, 0.0001) {
		t.Errorf("total implied probability = %v, want ~0.9238", res.TotalImpliedProbability)
	}
	if !almostEqual(res.ProfitPercentage, 8.2474, 0.01) {
		t.Errorf("profit percentage = %v, want ~8.25", res.ProfitPercentage)
	}
	if len(res.OptimalStakes) != 2 {
		t.Fatalf("expected 2 stakes, got %d", len(res.OptimalStakes))
	}
	sum := res.OptimalStakes[0] + res.OptimalStakes[1]
	if !almostEqual(sum, 1.0, 1e-9) {
		t.Errorf("stakes sum to %v, want 1", sum)
	}
	// Stakes proportional to implied probabilities [0.4, 0.5238].
	if res.OptimalStakes[0] >= res.OptimalStakes[1] {
		t.Errorf("expected the favorite leg to carry the larger stake: %v", res.OptimalStakes)
	}
	if !almostEqual(res.OptimalStakes[0], 0.4/0.92381, 0.001) {
		t.Errorf("stake[0] = %v, want ~%v", res.OptimalStakes[0], 0.4/0.92381)
	}
}

func TestArbitrage_NotExists(t *testing.T) {
	res, err := Arbitrage([]float64{-150, 120})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Exists {
		t.Error("expected no arbitrage for [-150, +120]")
	}
	if !almostEqual(res.TotalImpliedProbability, 1.05454, 0.0001) {
		t.Errorf("total implied probability = %v, want ~1.0545", res.TotalImpliedProbability)
	}
	if res.OptimalStakes != nil {
		t.Errorf("expected no stakes, got %v", res.OptimalStakes)
	}
}

func TestArbitrage_Invalid(t *testing.T) {
	if _, err := Arbitrage(nil); err == nil {
		t.Error("expected error for empty odds")
	}
	if _, err := Arbitrage([]float64{150, 0}); err == nil {
		t.Error("expected error when one leg has odds of 0")
	}
}
