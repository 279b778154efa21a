// Package odds converts win probabilities into American moneyline quotes.
package odds

import "math"

const (
	minProbability = 0.001
	maxProbability = 0.999
)

// AmericanOdds converts a win probability to an American odds quote for that side.
// Favorites (p >= 0.5) get negative odds; underdogs get positive odds.
// An even 0.5 falls on the favorite side and quotes -100.
func AmericanOdds(p float64) int {
	p = clamp(p, minProbability, maxProbability)
	if p >= 0.5 {
		return -int(math.Round(p / (1 - p) * 100))
	}
	return int(math.Round((1 - p) / p * 100))
}

// ImpliedProbability converts an American odds quote back to the probability it implies.
func ImpliedProbability(american int) float64 {
	switch {
	case american == 0:
		return 0
	case american < 0:
		stake := float64(-american)
		return stake / (stake + 100)
	default:
		return 100 / (float64(american) + 100)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
