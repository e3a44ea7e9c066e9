package analysis

import "github.com/yourusername/race-lens/internal/models"

// analyzeWinPlaceQuinella mirrors the quinella cross-market check over the
// place quinella pool for one group.
func analyzeWinPlaceQuinella(e *emitter, pre *models.PreprocessedRaceData, group []models.PreprocessedHorse) {
	if len(pre.PlaceQPairs) == 0 {
		return
	}

	if len(group) == 1 {
		if group[0].Win <= 20 {
			e.emit(20, group[0].HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
				"Only horse in group with reasonable PQ odds", 0, 10)
		}
		return
	}

	pairs := pre.PlaceQuinellaOddsList()
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			compareCommonLegs(e, group[i], group[j], pairs,
				"PQ combination better", "PQ odds normal", 0, 2)
		}
	}
}
