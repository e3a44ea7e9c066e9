package analysis

import "github.com/yourusername/race-lens/internal/models"

// analyzeWinPlace checks that the win-odds ordering within a group is
// reflected in the place odds. A horse with better win odds but equal or
// worse place odds than a rival is flagged weak, the rival strong.
func analyzeWinPlace(e *emitter, group []models.PreprocessedHorse) {
	if len(group) == 1 {
		if group[0].Win <= 20 {
			e.emit(20, group[0].HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
				"Only horse in group with reasonable odds", 5, 10)
		}
		return
	}

	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			horseA := group[i]
			horseB := group[j]
			if horseA.Win >= horseB.Win {
				continue
			}
			if horseA.Place >= horseB.Place {
				e.emit(20, horseA.HorseNumber, models.PurposeAnalyze, models.TargetGeneric, "Weak place odds", -5, -5)
				e.emit(20, horseB.HorseNumber, models.PurposeAnalyze, models.TargetGeneric, "Strong place odds", 5, 5)
			} else {
				e.emit(20, horseA.HorseNumber, models.PurposeAnalyze, models.TargetGeneric, "Place odds normal", 5, 10)
			}
		}
	}
}
