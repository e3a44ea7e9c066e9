package analysis

import (
	"math"

	"github.com/yourusername/race-lens/internal/models"
)

// Hand-tuned regression constants. These are fixed inputs to the engine,
// not fitted here.
const (
	expectedPlaceIntercept = 0.9458
	expectedPlaceSlope     = 0.1923

	expectedQuinellaIntercept = 6.44
	expectedQuinellaSlope     = 0.415

	// QuinellaStandardError is the residual standard error of the quinella
	// regression, used only to report standardized residuals.
	QuinellaStandardError = 23.68

	// DefaultTakeout is the pool takeout assumed by the fair place
	// quinella odds model.
	DefaultTakeout = 0.20
)

// winRangeBoundaries is the coarse odds bucket table behind sameWinRange.
var winRangeBoundaries = [][2]float64{
	{1, 3},
	{3, 5},
	{5, 7},
	{7, 10},
	{10, 15},
	{15, 20},
	{20, 30},
	{30, 60},
	{60, 999},
}

// ExpectedPlaceOdds predicts place odds from win odds:
// Expected P = 0.9458 + 0.1923 * Win.
func ExpectedPlaceOdds(win float64) float64 {
	return expectedPlaceIntercept + expectedPlaceSlope*win
}

// ExpectedQuinellaOdds predicts quinella odds from the two win odds:
// Expected Q = 6.44 + 0.415 * Win1 * Win2.
func ExpectedQuinellaOdds(win1, win2 float64) float64 {
	return expectedQuinellaIntercept + expectedQuinellaSlope*win1*win2
}

// FairPlaceQuinellaOdds converts two HK-style win odds into fair decimal
// place quinella odds: implied win probabilities, a top-3 approximation
// per horse, a Stern-style conditional for the second horse placing given
// the first placed, symmetrized over both orderings, then de-vigged by the
// takeout factor.
func FairPlaceQuinellaOdds(hkOddsA, hkOddsB, takeout float64) float64 {
	pA := 1 / (hkOddsA + 1)
	pB := 1 / (hkOddsB + 1)

	pATop3 := 1 - math.Pow(1-pA, 3)
	pBTop3 := 1 - math.Pow(1-pB, 3)

	pBGivenA := 1 - math.Pow(1-pB/(1-pA), 2)
	pAGivenB := 1 - math.Pow(1-pA/(1-pB), 2)

	qpProb := 0.5 * (pATop3*pBGivenA + pBTop3*pAGivenB)

	return (1 - takeout) / qpProb
}

// sameWinRange reports whether two odds values fall in the same coarse
// bucket. Odds outside every bucket (a debutant's zero lastWin) only match
// another out-of-range value.
func sameWinRange(odds1, odds2 float64) bool {
	return winRangeIndex(odds1) == winRangeIndex(odds2)
}

func winRangeIndex(odds float64) int {
	for i, b := range winRangeBoundaries {
		if odds >= b[0] && odds <= b[1] {
			return i
		}
	}
	return -1
}

// Preprocess joins the raw odds arrays with the horse metadata into the
// normalized model every detector reads. It fails only when the odds
// board is empty; a missing metadata row degrades that one horse to
// zero/"Unknown" defaults instead of failing the run.
func Preprocess(data *models.RaceData) (*models.PreprocessedRaceData, error) {
	return PreprocessWithTakeout(data, DefaultTakeout)
}

// PreprocessWithTakeout is Preprocess with a configurable pool takeout
// for the fair place quinella quotes.
func PreprocessWithTakeout(data *models.RaceData, takeout float64) (*models.PreprocessedRaceData, error) {
	if data == nil || len(data.Odds) == 0 {
		return nil, models.ErrNoOddsData
	}

	winFavourites := WinFavoriteNumbers(data.Odds)
	placeFavourites := PlaceFavoriteNumbers(data.Odds)
	qFavouritePairs := QuinellaFavoritePairs(data.QuinellaOdds)
	pqFavouritePairs := PQFavoritePairs(data.QuinellaPlaceOdds)

	horses := make([]models.PreprocessedHorse, 0, len(data.Odds))
	for _, horse := range data.Odds {
		detail, found := data.HorseInfo.HorseByNumber(horse.HorseNumber)

		// A missing race-day index never disqualifies a horse from the
		// beat-index test.
		isBeatIndex := true
		if detail.RaceDayWinIndex > 0 {
			isBeatIndex = horse.Win <= detail.RaceDayWinIndex
		}

		name := detail.HorseName
		if name == "" {
			name = "Unknown"
		}
		trainer := detail.Trainer
		if trainer == "" {
			trainer = "Unknown"
		}
		jockey := detail.Jockey
		if jockey == "" {
			jockey = "Unknown"
		}
		weight := detail.Weight
		if weight == "" {
			weight = "0"
		}

		horses = append(horses, models.PreprocessedHorse{
			HorseNumber:     horse.HorseNumber,
			HorseName:       name,
			Trainer:         trainer,
			Jockey:          jockey,
			Weight:          weight,
			FirstDayIndex:   detail.FirstDayIndex,
			RaceDayIndex:    detail.RaceDayWinIndex,
			LastWin:         detail.LastWin,
			LastPosition:    detail.LastPosition,
			Win:             horse.Win,
			Place:           horse.Place,
			ExpectedP:       ExpectedPlaceOdds(horse.Win),
			Category:        CategoryForWinOdds(horse.Win),
			IsNewHorse:      found && detail.LastWin == 0,
			IsBeatIndex:     isBeatIndex,
			LastGoodResult:  detail.LastPosition >= 1 && detail.LastPosition <= 4,
			SameWinRange:    sameWinRange(horse.Win, detail.LastWin),
			IsWinFavorite:   containsString(winFavourites, horse.HorseNumber),
			IsPlaceFavorite: containsString(placeFavourites, horse.HorseNumber),
			IsQFavourite:    pairsContain(qFavouritePairs, horse.HorseNumber),
			IsPQFavourite:   pairsContain(pqFavouritePairs, horse.HorseNumber),
		})
	}

	winByNumber := make(map[string]float64, len(horses))
	for _, h := range horses {
		winByNumber[h.HorseNumber] = h.Win
	}

	quinellaPairs := make([]models.PreprocessedQuinellaPair, 0, len(data.QuinellaOdds))
	for _, pair := range data.QuinellaOdds {
		expected := ExpectedQuinellaOdds(winByNumber[pair.HorseNumber1], winByNumber[pair.HorseNumber2])
		residual := expected - pair.Odds
		quinellaPairs = append(quinellaPairs, models.PreprocessedQuinellaPair{
			HorseNumber1:         pair.HorseNumber1,
			HorseNumber2:         pair.HorseNumber2,
			ActualOdds:           pair.Odds,
			ExpectedOdds:         expected,
			Residual:             residual,
			StandardizedResidual: residual / QuinellaStandardError,
		})
	}

	var placeQPairs []models.PreprocessedPlaceQPair
	for _, pair := range data.QuinellaPlaceOdds {
		expected := FairPlaceQuinellaOdds(winByNumber[pair.HorseNumber1], winByNumber[pair.HorseNumber2], takeout)
		placeQPairs = append(placeQPairs, models.PreprocessedPlaceQPair{
			HorseNumber1: pair.HorseNumber1,
			HorseNumber2: pair.HorseNumber2,
			ActualOdds:   pair.Odds,
			ExpectedOdds: expected,
			Residual:     expected - pair.Odds,
		})
	}

	result := &models.PreprocessedRaceData{
		Horses:        horses,
		QuinellaPairs: quinellaPairs,
		PlaceQPairs:   placeQPairs,
		Predictions:   data.Predictions,
	}
	if len(winFavourites) > 0 {
		result.WinFavourite = winFavourites[0]
	}
	if len(placeFavourites) > 0 {
		result.PlaceFavourite = placeFavourites[0]
	}
	if len(qFavouritePairs) > 0 {
		result.QFavouritePair = qFavouritePairs[0]
	}
	if len(pqFavouritePairs) > 0 {
		result.PQFavouritePair = pqFavouritePairs[0]
	}
	return result, nil
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func pairsContain(pairs [][]string, v string) bool {
	for _, pair := range pairs {
		if containsString(pair, v) {
			return true
		}
	}
	return false
}
