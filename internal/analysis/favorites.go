package analysis

import (
	"fmt"

	"github.com/yourusername/race-lens/internal/models"
)

// The favorites locator comes in two call shapes: the Find* variants
// return full alerts for the display path, the *Numbers/*Pairs variants
// return bare identifiers for the preprocessor's favorite flags.

// FindWinFavorite locates the horse(s) with the lowest strictly positive
// win odds. Ties produce one highlight per tied horse plus a single
// multiple-favourites diagnostic referencing the first of them.
func FindWinFavorite(odds []models.RaceHorse, horseInfo models.HorseInfo) ([]models.AlertMessage, error) {
	if len(odds) == 0 {
		return diagnosticOnly("No horses in race")
	}
	favorites := lowestWinOdds(odds)
	if len(favorites) == 0 {
		return diagnosticOnly("No active horses in race")
	}

	var alerts []models.AlertMessage
	for _, horse := range favorites {
		name := horseName(horseInfo, horse.HorseNumber)
		highlight, err := models.NewAlert(50, horse.HorseNumber, models.PurposeHighlight, models.TargetWin, " ", 100, 100)
		if err != nil {
			return nil, err
		}
		info, err := models.NewAlert(150, horse.HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
			fmt.Sprintf("Info - Win Favourite is %s %s %g", horse.HorseNumber, name, horse.Win), 0, 0)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, highlight, info)
	}

	if len(favorites) > 1 {
		multi, err := models.NewAlert(100, favorites[0].HorseNumber, models.PurposeDisplay, models.TargetGeneric,
			"Info - Two win favourites!", 0, 0)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, multi)
	}
	return alerts, nil
}

// FindPlaceFavorite locates the horse(s) with the lowest strictly positive
// place odds.
func FindPlaceFavorite(odds []models.RaceHorse, horseInfo models.HorseInfo) ([]models.AlertMessage, error) {
	if len(odds) == 0 {
		return diagnosticOnly("No horses in race")
	}
	favorites := lowestPlaceOdds(odds)
	if len(favorites) == 0 {
		return diagnosticOnly("No active horses in race")
	}

	var alerts []models.AlertMessage
	for _, horse := range favorites {
		name := horseName(horseInfo, horse.HorseNumber)
		highlight, err := models.NewAlert(50, horse.HorseNumber, models.PurposeHighlight, models.TargetPlace, " ", 0, 100)
		if err != nil {
			return nil, err
		}
		info, err := models.NewAlert(150, horse.HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
			fmt.Sprintf("Info - Place Favourite is %s %s %g", horse.HorseNumber, name, horse.Place), 0, 0)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, highlight, info)
	}

	if len(favorites) > 1 {
		multi, err := models.NewAlert(100, favorites[0].HorseNumber, models.PurposeDisplay, models.TargetGeneric,
			"Multiple place favourites!", 0, 0)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, multi)
	}
	return alerts, nil
}

// FindQuinellaFavorite locates the quinella combination(s) with the lowest
// strictly positive odds, highlighting the combo and tagging both legs.
func FindQuinellaFavorite(quinellaOdds []models.QuinellaPair) ([]models.AlertMessage, error) {
	return findComboFavorite(quinellaOdds, models.TargetQuinella,
		"No quinella odds available", "No active quinella combinations",
		"Favourite Q", "favourite Q leg", 30, 30,
		"Info - Two Q favourites!")
}

// FindPQFavorite locates the place quinella combination(s) with the lowest
// strictly positive odds.
func FindPQFavorite(quinellaPlaceOdds []models.QuinellaPair) ([]models.AlertMessage, error) {
	return findComboFavorite(quinellaPlaceOdds, models.TargetPlaceQuinella,
		"No PQ odds available", "No active PQ combinations",
		"Favourite PQ", "favourite PQ leg", 10, 30,
		"Info - Two PQ favourites!")
}

func findComboFavorite(pairs []models.QuinellaPair, target models.AlertTarget, emptyMsg, withdrawnMsg, favLabel, legLabel string, legWinScore, legPlaceScore float64, multiMsg string) ([]models.AlertMessage, error) {
	if len(pairs) == 0 {
		return diagnosticOnly(emptyMsg)
	}
	favorites := lowestPairOdds(pairs)
	if len(favorites) == 0 {
		return diagnosticOnly(withdrawnMsg)
	}

	var alerts []models.AlertMessage
	for _, combo := range favorites {
		comboID := combo.HorseNumber1 + "-" + combo.HorseNumber2
		highlight, err := models.NewAlert(150, comboID, models.PurposeHighlight, target,
			fmt.Sprintf("Info - %s is %s with odds %g", favLabel, comboID, combo.Odds), 0, 0)
		if err != nil {
			return nil, err
		}
		leg1, err := models.NewAlert(20, combo.HorseNumber1, models.PurposeAnalyze, models.TargetGeneric, legLabel, legWinScore, legPlaceScore)
		if err != nil {
			return nil, err
		}
		leg2, err := models.NewAlert(20, combo.HorseNumber2, models.PurposeAnalyze, models.TargetGeneric, legLabel, legWinScore, legPlaceScore)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, highlight, leg1, leg2)
	}

	if len(favorites) > 1 {
		firstCombo := favorites[0].HorseNumber1 + "-" + favorites[0].HorseNumber2
		multi, err := models.NewAlert(100, firstCombo, models.PurposeDisplay, models.TargetGeneric, multiMsg, 0, 0)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, multi)
	}
	return alerts, nil
}

// WinFavoriteNumbers returns the horse numbers sharing the lowest strictly
// positive win odds, without touching the alert store.
func WinFavoriteNumbers(odds []models.RaceHorse) []string {
	horses := lowestWinOdds(odds)
	out := make([]string, 0, len(horses))
	for _, h := range horses {
		out = append(out, h.HorseNumber)
	}
	return out
}

// PlaceFavoriteNumbers returns the horse numbers sharing the lowest
// strictly positive place odds.
func PlaceFavoriteNumbers(odds []models.RaceHorse) []string {
	horses := lowestPlaceOdds(odds)
	out := make([]string, 0, len(horses))
	for _, h := range horses {
		out = append(out, h.HorseNumber)
	}
	return out
}

// QuinellaFavoritePairs returns the pair(s) sharing the lowest strictly
// positive quinella odds.
func QuinellaFavoritePairs(quinellaOdds []models.QuinellaPair) [][]string {
	pairs := lowestPairOdds(quinellaOdds)
	out := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, []string{p.HorseNumber1, p.HorseNumber2})
	}
	return out
}

// PQFavoritePairs returns the pair(s) sharing the lowest strictly positive
// place quinella odds.
func PQFavoritePairs(quinellaPlaceOdds []models.QuinellaPair) [][]string {
	return QuinellaFavoritePairs(quinellaPlaceOdds)
}

func diagnosticOnly(message string) ([]models.AlertMessage, error) {
	alert, err := models.NewAlert(0, models.AllHorses, models.PurposeDisplay, models.TargetGeneric, message, 0, 0)
	if err != nil {
		return nil, err
	}
	return []models.AlertMessage{alert}, nil
}

func lowestWinOdds(odds []models.RaceHorse) []models.RaceHorse {
	min := 0.0
	for _, h := range odds {
		if h.Win <= 0 {
			continue
		}
		if min == 0 || h.Win < min {
			min = h.Win
		}
	}
	if min == 0 {
		return nil
	}
	var out []models.RaceHorse
	for _, h := range odds {
		if h.Win == min {
			out = append(out, h)
		}
	}
	return out
}

func lowestPlaceOdds(odds []models.RaceHorse) []models.RaceHorse {
	min := 0.0
	for _, h := range odds {
		if h.Place <= 0 {
			continue
		}
		if min == 0 || h.Place < min {
			min = h.Place
		}
	}
	if min == 0 {
		return nil
	}
	var out []models.RaceHorse
	for _, h := range odds {
		if h.Place == min {
			out = append(out, h)
		}
	}
	return out
}

func lowestPairOdds(pairs []models.QuinellaPair) []models.QuinellaPair {
	min := 0.0
	for _, p := range pairs {
		if p.Odds <= 0 {
			continue
		}
		if min == 0 || p.Odds < min {
			min = p.Odds
		}
	}
	if min == 0 {
		return nil
	}
	var out []models.QuinellaPair
	for _, p := range pairs {
		if p.Odds == min {
			out = append(out, p)
		}
	}
	return out
}

func horseName(info models.HorseInfo, horseNumber string) string {
	if detail, ok := info.HorseByNumber(horseNumber); ok && detail.HorseName != "" {
		return detail.HorseName
	}
	return "Unknown"
}
