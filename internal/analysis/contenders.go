package analysis

import (
	"fmt"

	"github.com/yourusername/race-lens/internal/models"
)

// AnalyzeContenders reasons over the Contenders category, restricted to
// horses that beat their race-day index. A lone qualified contender
// priced at or under its expected place odds is a value pick; several
// qualified contenders are compared pairwise for cross-market dominance,
// using the favourite as the shared leg when there is a single favourite
// that itself beat its index, and every other horse otherwise.
func AnalyzeContenders(pre *models.PreprocessedRaceData, isOnlyFavourite, anyBeatIndex bool, favouriteHorseNumber string) ([]models.AlertMessage, error) {
	var qualified []models.PreprocessedHorse
	for _, horse := range pre.HorsesInCategory(CategoryContenders) {
		if horse.IsBeatIndex {
			qualified = append(qualified, horse)
		}
	}

	if len(qualified) == 1 {
		horse := qualified[0]
		if horse.Place > horse.ExpectedP {
			return nil, nil
		}
		alert, err := models.NewAlert(170, horse.HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
			fmt.Sprintf("挑戰者 - %s 今場抵買機會馬", horse.HorseName), 30, 30)
		if err != nil {
			return nil, err
		}
		return []models.AlertMessage{alert}, nil
	}

	if len(qualified) < 2 {
		return nil, nil
	}

	var legsFor func(horseA, horseB models.PreprocessedHorse) []string
	if isOnlyFavourite && anyBeatIndex && favouriteHorseNumber != "" {
		legsFor = func(models.PreprocessedHorse, models.PreprocessedHorse) []string {
			return []string{favouriteHorseNumber}
		}
	} else {
		legsFor = func(horseA, horseB models.PreprocessedHorse) []string {
			var legs []string
			for _, h := range pre.Horses {
				if h.HorseNumber != horseA.HorseNumber && h.HorseNumber != horseB.HorseNumber {
					legs = append(legs, h.HorseNumber)
				}
			}
			return legs
		}
	}

	quinellaOdds := pre.QuinellaOddsList()
	placeQuinellaOdds := pre.PlaceQuinellaOddsList()

	var alerts []models.AlertMessage
	for i := 0; i < len(qualified); i++ {
		for j := i + 1; j < len(qualified); j++ {
			horseA := qualified[i]
			horseB := qualified[j]
			legs := legsFor(horseA, horseB)

			if winner := CompareQuinellaDominance(horseA.HorseNumber, horseB.HorseNumber, legs, quinellaOdds); winner != NoDominance {
				alert, err := suspiciousWagerAlert(horseA, horseB, winner, "Quinella")
				if err != nil {
					return nil, err
				}
				if alert != nil {
					alerts = append(alerts, *alert)
				}
			}

			if winner := ComparePQDominance(horseA.HorseNumber, horseB.HorseNumber, legs, placeQuinellaOdds); winner != NoDominance {
				alert, err := suspiciousWagerAlert(horseA, horseB, winner, "PQ")
				if err != nil {
					return nil, err
				}
				if alert != nil {
					alerts = append(alerts, *alert)
				}
			}
		}
	}
	return alerts, nil
}

// suspiciousWagerAlert flags a dominance winner whose win odds are
// nonetheless longer than its rival's. A winner with shorter win odds is
// consistent pricing and emits nothing.
func suspiciousWagerAlert(horseA, horseB models.PreprocessedHorse, winner, comparisonType string) (*models.AlertMessage, error) {
	dominant, other := horseA, horseB
	if winner != horseA.HorseNumber {
		dominant, other = horseB, horseA
	}
	if dominant.Win <= other.Win {
		return nil, nil
	}
	alert, err := models.NewAlert(150, dominant.HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
		fmt.Sprintf("%s %s has suspicious %s wager as compared to %s %s",
			dominant.HorseNumber, dominant.HorseName, comparisonType, other.HorseNumber, other.HorseName),
		20, 20)
	if err != nil {
		return nil, err
	}
	return &alert, nil
}
