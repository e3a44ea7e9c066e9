package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/yourusername/race-lens/internal/models"
)

// analyzeWinWin runs the composite reasoning over the Favourites category:
// six boolean diagnostics plus a quinella-banker contest per favourite, a
// banker-recommendation decision table, and finally the contender
// analysis with the favourite context just computed. The contender pass
// runs even when the Favourites category is empty.
func analyzeWinWin(e *emitter, pre *models.PreprocessedRaceData) {
	favourites := pre.HorsesInCategory(CategoryFavourites)

	isOnlyFavourite := len(favourites) == 1
	multiFavourite := false
	if !isOnlyFavourite {
		beatIndexCount := 0
		for _, h := range favourites {
			if h.IsBeatIndex {
				beatIndexCount++
			}
		}
		multiFavourite = beatIndexCount > 1
	}
	anyBeatIndex := false
	for _, h := range favourites {
		if h.IsBeatIndex {
			anyBeatIndex = true
			break
		}
	}

	quinellaOdds := pre.QuinellaOddsList()
	qBanker := favouriteQuinellaBanker(pre, favourites, quinellaOdds)

	newHorseAlertAdded := false

	// First pass: per-favourite diagnostics.
	for _, horse := range favourites {
		isMoreConfidence := horse.Win <= horse.LastWin
		isGoodResult := isMoreConfidence && horse.LastPosition >= 2 && horse.LastPosition <= 4
		isUnexpected := horse.Win <= 15 && horse.RaceDayIndex >= 40
		isQBanker := qBanker == horse.HorseNumber

		emitWinWinMetric(e, horse.HorseNumber, "isOnlyFavourite", isOnlyFavourite)
		emitWinWinMetric(e, horse.HorseNumber, "isBeatIndex", horse.IsBeatIndex)
		emitWinWinMetric(e, horse.HorseNumber, "isMoreConfidence", isMoreConfidence)
		emitWinWinMetric(e, horse.HorseNumber, "isGoodResult", isGoodResult)
		emitWinWinMetric(e, horse.HorseNumber, "isUnexpected", isUnexpected)
		emitWinWinMetric(e, horse.HorseNumber, "isNewHorse", horse.IsNewHorse)
		emitWinWinMetric(e, horse.HorseNumber, "isQBanker", isQBanker)

		messageParts := []string{
			fmt.Sprintf("Horse %s %s", horse.HorseNumber, horse.HorseName),
			"Group: Favourites",
			fmt.Sprintf("OnlyFavourite: %t", isOnlyFavourite),
			fmt.Sprintf("BeatIndex: %t", horse.IsBeatIndex),
			fmt.Sprintf("MoreConfidence: %t", isMoreConfidence),
			fmt.Sprintf("GoodResult: %t", isGoodResult),
			fmt.Sprintf("Unexpected: %t", isUnexpected),
			fmt.Sprintf("NewHorse: %t", horse.IsNewHorse),
			fmt.Sprintf("QBanker: %t", isQBanker),
		}

		winScore, placeScore := winWinScores(isUnexpected, isOnlyFavourite && horse.IsBeatIndex, isQBanker)
		purpose := models.PurposeAnalyze
		if isUnexpected {
			purpose = models.PurposeDisplay
		}
		e.emit(20, horse.HorseNumber, purpose, models.TargetGeneric, strings.Join(messageParts, " | "), winScore, placeScore)

		if horse.IsNewHorse && ((isOnlyFavourite && (isUnexpected || horse.IsBeatIndex)) || (!isOnlyFavourite && isUnexpected)) {
			newHorseAlertAdded = true
			e.emit(160, horse.HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
				fmt.Sprintf("初出熱門馬 - %s %s ，做腳", horse.HorseNumber, horse.HorseName),
				winScore+10, placeScore+10)
		}
	}

	// Second pass: banker recommendations. The precedence is a decision
	// table: unexpected overrides beat-index overrides the plain fallback.
	for _, horse := range favourites {
		isUnexpected := horse.Win <= 15 && horse.RaceDayIndex >= 40

		if horse.IsNewHorse && newHorseAlertAdded {
			continue
		}

		if isOnlyFavourite {
			switch {
			case isUnexpected:
				e.emit(160, horse.HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
					fmt.Sprintf("異常落飛，可以做胆 - %s %s (Place: %g %s Expected: %g)",
						horse.HorseNumber, horse.HorseName, horse.Place, placeComparator(horse), horse.ExpectedP),
					60, 70)
			case horse.IsBeatIndex:
				e.emit(170, horse.HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
					fmt.Sprintf("可以做胆 - %s %s 唯一 5 倍下的有飛馬", horse.HorseNumber, horse.HorseName),
					40, 50)
			default:
				e.emit(165, horse.HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
					fmt.Sprintf("熱門腳 - %s %s  唯一 5 倍下的馬", horse.HorseNumber, horse.HorseName),
					-10, -5)
			}
			continue
		}

		switch {
		case isUnexpected:
			e.emit(160, horse.HorseNumber, models.PurposeDisplay, models.TargetGeneric,
				fmt.Sprintf("異常落飛，優先考慮 - %s %s (Place: %g %s Expected: %g)",
					horse.HorseNumber, horse.HorseName, horse.Place, placeComparator(horse), horse.ExpectedP),
				50, 60)
		case horse.IsBeatIndex:
			if multiFavourite {
				e.emit(160, horse.HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
					fmt.Sprintf("有對手，做腳 - %s %s", horse.HorseNumber, horse.HorseName),
					30, 40)
			} else {
				e.emit(165, horse.HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
					fmt.Sprintf("雖有對手，仍然可做胆 - %s %s", horse.HorseNumber, horse.HorseName),
					30, 40)
			}
		default:
			if horse.Win > 0 && horse.RaceDayIndex > 0 && math.Log(horse.Win)-math.Log(horse.RaceDayIndex) <= 0.3 {
				e.emit(165, horse.HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
					fmt.Sprintf("可接受 - %s %s 約一半機會三甲", horse.HorseNumber, horse.HorseName),
					-20, -10)
			} else {
				e.emit(160, horse.HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
					fmt.Sprintf("缺乏信心 - %s %s 可放棄", horse.HorseNumber, horse.HorseName),
					-20, -10)
			}
		}
	}

	if len(pre.Horses) > 1 {
		favouriteHorseNumber := ""
		if isOnlyFavourite {
			favouriteHorseNumber = favourites[0].HorseNumber
		}
		alerts, err := AnalyzeContenders(pre, isOnlyFavourite, anyBeatIndex, favouriteHorseNumber)
		if err != nil {
			e.err = err
			return
		}
		e.emitAll(alerts)
	}
}

func emitWinWinMetric(e *emitter, horseNumber, metricName string, value bool) {
	e.emit(20, horseNumber, models.PurposeAnalyze, models.TargetGeneric,
		fmt.Sprintf("%s: %t", metricName, value), 20, 0)
}

func winWinScores(isUnexpected, onlyFavouriteBeatIndex, isQBanker bool) (float64, float64) {
	switch {
	case isUnexpected:
		return 50, 60
	case onlyFavouriteBeatIndex:
		return 40, 50
	case isQBanker:
		return 30, 40
	default:
		return 20, 30
	}
}

func placeComparator(horse models.PreprocessedHorse) string {
	if horse.Place <= horse.ExpectedP {
		return "<="
	}
	return ">"
}

// favouriteQuinellaBanker runs the pairwise dominance contest among the
// favourites (or the lone favourite against the second-lowest-odds horse)
// over the quinella legs outside the favourite group. Returns NoDominance
// when no horse wins the contest outright.
func favouriteQuinellaBanker(pre *models.PreprocessedRaceData, favourites []models.PreprocessedHorse, quinellaOdds []models.QuinellaPair) string {
	legSet := newStringSet()
	for _, pair := range pre.QuinellaPairs {
		legSet.add(pair.HorseNumber1)
		legSet.add(pair.HorseNumber2)
	}
	var legs []string
	for _, leg := range legSet.values() {
		inFavGroup := false
		for _, h := range favourites {
			if h.HorseNumber == leg {
				inFavGroup = true
				break
			}
		}
		if !inFavGroup {
			legs = append(legs, leg)
		}
	}

	contestants := favourites
	if len(favourites) == 1 {
		if second, ok := secondLowestWinHorse(pre.Horses); ok {
			contestants = append([]models.PreprocessedHorse{favourites[0]}, second)
		}
	}
	if len(contestants) < 2 {
		return NoDominance
	}

	winCounts := make(map[string]int, len(contestants))
	for _, h := range contestants {
		winCounts[h.HorseNumber] = 0
	}
	for i := 0; i < len(contestants); i++ {
		for j := i + 1; j < len(contestants); j++ {
			winner := CompareQuinellaDominance(contestants[i].HorseNumber, contestants[j].HorseNumber, legs, quinellaOdds)
			if winner != NoDominance {
				winCounts[winner]++
			}
		}
	}

	maxCount := 0
	dominant := NoDominance
	tie := false
	for _, h := range contestants {
		count := winCounts[h.HorseNumber]
		if count > maxCount {
			maxCount = count
			dominant = h.HorseNumber
			tie = false
		} else if count == maxCount {
			tie = true
		}
	}
	if tie {
		return NoDominance
	}
	return dominant
}

// secondLowestWinHorse returns the horse with the second lowest win odds.
func secondLowestWinHorse(horses []models.PreprocessedHorse) (models.PreprocessedHorse, bool) {
	if len(horses) < 2 {
		return models.PreprocessedHorse{}, false
	}
	sorted := make([]models.PreprocessedHorse, len(horses))
	copy(sorted, horses)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Win < sorted[j].Win })
	return sorted[1], true
}
