package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/race-lens/internal/models"
)

func TestFindWinFavoriteSingle(t *testing.T) {
	odds := []models.RaceHorse{
		{HorseNumber: "1", Win: 4.5, Place: 1.8},
		{HorseNumber: "2", Win: 2.2, Place: 1.3},
		{HorseNumber: "3", Win: 0, Place: 0}, // withdrawn
	}
	info := models.HorseInfo{Horses: []models.HorseDetail{
		{HorseNumber: "2", HorseName: "Beta"},
	}}

	alerts, err := FindWinFavorite(odds, info)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, 50, alerts[0].Priority)
	assert.Equal(t, models.PurposeHighlight, alerts[0].Purpose)
	assert.Equal(t, models.TargetWin, alerts[0].Target)
	assert.Equal(t, "2", alerts[0].HorseNumber)
	assert.Equal(t, 100.0, alerts[0].Metrics.WinScore)

	assert.Equal(t, 150, alerts[1].Priority)
	assert.Equal(t, models.PurposeAnalyze, alerts[1].Purpose)
	assert.Contains(t, alerts[1].Message, "Win Favourite is 2 Beta 2.2")
}

func TestFindWinFavoriteTie(t *testing.T) {
	odds := []models.RaceHorse{
		{HorseNumber: "1", Win: 3.0, Place: 1.8},
		{HorseNumber: "2", Win: 3.0, Place: 1.9},
		{HorseNumber: "3", Win: 8.0, Place: 2.5},
	}

	alerts, err := FindWinFavorite(odds, models.HorseInfo{})
	require.NoError(t, err)
	require.Len(t, alerts, 5, "two highlight+info pairs plus the tie diagnostic")

	last := alerts[4]
	assert.Equal(t, 100, last.Priority)
	assert.Equal(t, models.PurposeDisplay, last.Purpose)
	assert.Equal(t, "1", last.HorseNumber, "diagnostic references the first tied horse")
	assert.Equal(t, "Info - Two win favourites!", last.Message)
}

func TestFindWinFavoriteAllWithdrawn(t *testing.T) {
	odds := []models.RaceHorse{
		{HorseNumber: "1", Win: 0},
		{HorseNumber: "2", Win: 0},
	}

	alerts, err := FindWinFavorite(odds, models.HorseInfo{})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, 0, alerts[0].Priority)
	assert.Equal(t, models.AllHorses, alerts[0].HorseNumber)
	assert.Equal(t, "No active horses in race", alerts[0].Message)
}

func TestFindPlaceFavorite(t *testing.T) {
	odds := []models.RaceHorse{
		{HorseNumber: "1", Win: 4.5, Place: 1.8},
		{HorseNumber: "2", Win: 2.2, Place: 2.3},
	}

	alerts, err := FindPlaceFavorite(odds, models.HorseInfo{})
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, models.TargetPlace, alerts[0].Target)
	assert.Equal(t, "1", alerts[0].HorseNumber)
	assert.Equal(t, 0.0, alerts[0].Metrics.WinScore)
	assert.Equal(t, 100.0, alerts[0].Metrics.PlaceScore)
}

func TestFindQuinellaFavorite(t *testing.T) {
	pairs := []models.QuinellaPair{
		{HorseNumber1: "1", HorseNumber2: "2", Odds: 8.5},
		{HorseNumber1: "1", HorseNumber2: "3", Odds: 18.0},
	}

	alerts, err := FindQuinellaFavorite(pairs)
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	assert.Equal(t, 150, alerts[0].Priority)
	assert.Equal(t, models.TargetQuinella, alerts[0].Target)
	assert.Equal(t, "1-2", alerts[0].HorseNumber)

	// Both legs get an Analyze nudge.
	assert.Equal(t, "1", alerts[1].HorseNumber)
	assert.Equal(t, "2", alerts[2].HorseNumber)
	assert.Equal(t, 30.0, alerts[1].Metrics.WinScore)
	assert.Equal(t, 30.0, alerts[1].Metrics.PlaceScore)
}

func TestFindPQFavoriteLegScores(t *testing.T) {
	pairs := []models.QuinellaPair{
		{HorseNumber1: "4", HorseNumber2: "7", Odds: 3.1},
	}

	alerts, err := FindPQFavorite(pairs)
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	assert.Equal(t, models.TargetPlaceQuinella, alerts[0].Target)
	assert.Equal(t, 10.0, alerts[1].Metrics.WinScore, "PQ legs carry a weaker win nudge")
	assert.Equal(t, 30.0, alerts[1].Metrics.PlaceScore)
}

func TestFindQuinellaFavoriteEmpty(t *testing.T) {
	alerts, err := FindQuinellaFavorite(nil)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "No quinella odds available", alerts[0].Message)
}

func TestFavoriteNumbersHelpers(t *testing.T) {
	odds := []models.RaceHorse{
		{HorseNumber: "1", Win: 3.0, Place: 2.0},
		{HorseNumber: "2", Win: 3.0, Place: 1.5},
	}
	assert.Equal(t, []string{"1", "2"}, WinFavoriteNumbers(odds))
	assert.Equal(t, []string{"2"}, PlaceFavoriteNumbers(odds))

	pairs := []models.QuinellaPair{
		{HorseNumber1: "1", HorseNumber2: "2", Odds: 6.0},
		{HorseNumber1: "2", HorseNumber2: "3", Odds: 6.0},
	}
	assert.Equal(t, [][]string{{"1", "2"}, {"2", "3"}}, QuinellaFavoritePairs(pairs))
}
