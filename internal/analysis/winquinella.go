package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/race-lens/internal/models"
)

// analyzeWinQuinella runs the quinella cross-market checks for one group:
// the regression residual pass over every pair, then the per-leg
// win-vs-combination consistency comparison inside the group.
func analyzeWinQuinella(e *emitter, pre *models.PreprocessedRaceData, group []models.PreprocessedHorse) {
	if len(pre.QuinellaPairs) == 0 {
		return
	}

	analyzeExpectedQuinellaOdds(e, pre)

	if len(group) == 1 {
		if group[0].Win <= 20 {
			e.emit(20, group[0].HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
				"only horse in group with reasonable odds", 5, 10)
		}
		return
	}

	pairs := pre.QuinellaOddsList()
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			compareCommonLegs(e, group[i], group[j], pairs,
				"Q better", "Q odds OK", 2, 2)
		}
	}
}

// analyzeExpectedQuinellaOdds reports the regression residual of every
// quinella pair and, per horse with win odds at 20 or below, one summary
// of the legs its combinations are priced shorter than the model expects.
// Re-runs for later groups produce exact duplicates that the final dedupe
// collapses.
func analyzeExpectedQuinellaOdds(e *emitter, pre *models.PreprocessedRaceData) {
	favourableLegs := make(map[string]*stringSet)
	var eligible []string
	for _, horse := range pre.Horses {
		if horse.Win <= 20 {
			favourableLegs[horse.HorseNumber] = newStringSet()
			eligible = append(eligible, horse.HorseNumber)
		}
	}

	for _, pair := range pre.QuinellaPairs {
		comboID := pair.HorseNumber1 + "-" + pair.HorseNumber2
		e.emit(30, comboID, models.PurposeAnalyze, models.TargetGeneric,
			fmt.Sprintf("Expected Q: %.2f, Actual Q: %.2f, Residual: %.2f, Z-score: %.2f",
				pair.ExpectedOdds, pair.ActualOdds, pair.Residual, pair.StandardizedResidual),
			0, 0)

		if pair.Residual > 0 {
			if legs, ok := favourableLegs[pair.HorseNumber1]; ok {
				legs.add(pair.HorseNumber2)
			}
			if legs, ok := favourableLegs[pair.HorseNumber2]; ok {
				legs.add(pair.HorseNumber1)
			}
		}
	}

	for _, horseNumber := range eligible {
		legs := favourableLegs[horseNumber].values()
		if len(legs) == 0 {
			continue
		}
		sort.Strings(legs)
		e.emit(140, horseNumber, models.PurposeAnalyze, models.TargetGeneric,
			fmt.Sprintf("Q - %d 瓣 Q 拖 %s 有飛", len(legs), strings.Join(legs, " + ")),
			5, 5)
	}
}

// compareCommonLegs finds third horses paired with both A and B and, when
// A's win odds are at most B's, compares the two combination prices per
// shared leg. Emitting nothing when a lookup fails is deliberate.
func compareCommonLegs(e *emitter, horseA, horseB models.PreprocessedHorse, pairs []models.QuinellaPair, betterMsg, okMsg string, winScore, placeScore float64) {
	if horseA.Win > horseB.Win {
		return
	}
	for _, leg := range commonLegs(pairs, horseA.HorseNumber, horseB.HorseNumber) {
		oddsA, okA := pairOdds(pairs, horseA.HorseNumber, leg)
		oddsB, okB := pairOdds(pairs, horseB.HorseNumber, leg)
		if !okA || !okB {
			continue
		}
		if oddsA > oddsB {
			e.emit(20, horseB.HorseNumber, models.PurposeAnalyze, models.TargetGeneric, betterMsg, winScore, placeScore)
		} else {
			e.emit(20, horseA.HorseNumber, models.PurposeAnalyze, models.TargetGeneric, okMsg, winScore, placeScore)
		}
	}
}

// commonLegs lists the horses paired with both anchors, in pair-list
// order.
func commonLegs(pairs []models.QuinellaPair, anchorA, anchorB string) []string {
	legsOfA := newStringSet()
	for _, p := range pairs {
		if leg, ok := otherLeg(p, anchorA); ok {
			legsOfA.add(leg)
		}
	}
	shared := newStringSet()
	for _, p := range pairs {
		leg, ok := otherLeg(p, anchorB)
		if !ok {
			continue
		}
		if _, seen := legsOfA.seen[leg]; seen {
			shared.add(leg)
		}
	}
	return shared.values()
}

func otherLeg(pair models.QuinellaPair, anchor string) (string, bool) {
	switch anchor {
	case pair.HorseNumber1:
		return pair.HorseNumber2, true
	case pair.HorseNumber2:
		return pair.HorseNumber1, true
	}
	return "", false
}
