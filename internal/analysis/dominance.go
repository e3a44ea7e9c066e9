package analysis

import (
	"strconv"

	"github.com/yourusername/race-lens/internal/models"
)

// NoDominance is the sentinel returned by the dominance comparators when
// no horse accumulated a strictly positive net score.
const NoDominance = "0"

// CompareQuinellaDominance pits two first-leg horses against each other
// across a set of shared second legs: each leg where both combinations are
// priced scores +1 for the cheaper side, with exact ties scoring neither.
// It returns the horse number with a strictly positive net score, or
// NoDominance on a tie or when no leg had both combinations. The result
// identifies an actual horse, so swapping the argument order never flips
// it.
func CompareQuinellaDominance(firstLegA, firstLegB string, secondLegs []string, quinellaOdds []models.QuinellaPair) string {
	return compareDominance(firstLegA, firstLegB, secondLegs, quinellaOdds)
}

// ComparePQDominance mirrors CompareQuinellaDominance over the place
// quinella pool.
func ComparePQDominance(firstLegA, firstLegB string, secondLegs []string, placeQuinellaOdds []models.QuinellaPair) string {
	return compareDominance(firstLegA, firstLegB, secondLegs, placeQuinellaOdds)
}

func compareDominance(firstLegA, firstLegB string, secondLegs []string, pairs []models.QuinellaPair) string {
	score := 0
	for _, leg := range secondLegs {
		if leg == firstLegA || leg == firstLegB {
			continue
		}
		oddsA, okA := pairOdds(pairs, firstLegA, leg)
		oddsB, okB := pairOdds(pairs, firstLegB, leg)
		if !okA || !okB {
			continue
		}
		if oddsA < oddsB {
			score++
		} else if oddsA > oddsB {
			score--
		}
	}
	switch {
	case score > 0:
		return firstLegA
	case score < 0:
		return firstLegB
	default:
		return NoDominance
	}
}

// pairOdds finds the odds for an unordered pair, matching numerically in
// either orientation.
func pairOdds(pairs []models.QuinellaPair, horse1, horse2 string) (float64, bool) {
	n1, err1 := strconv.Atoi(horse1)
	n2, err2 := strconv.Atoi(horse2)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	for _, p := range pairs {
		p1, e1 := strconv.Atoi(p.HorseNumber1)
		p2, e2 := strconv.Atoi(p.HorseNumber2)
		if e1 != nil || e2 != nil {
			continue
		}
		if (p1 == n1 && p2 == n2) || (p1 == n2 && p2 == n1) {
			return p.Odds, true
		}
	}
	return 0, false
}
