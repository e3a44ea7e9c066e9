package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/race-lens/internal/models"
)

func runWinPlace(t *testing.T, horses ...models.PreprocessedHorse) []models.AlertMessage {
	t.Helper()
	store := NewStore()
	e := newEmitter(store)
	analyzeWinPlace(e, horses)
	require.NoError(t, e.Err())
	return store.All(false)
}

func TestWinPlaceSingleton(t *testing.T) {
	alerts := runWinPlace(t, models.PreprocessedHorse{HorseNumber: "4", Win: 12, Place: 3.5})
	require.Len(t, alerts, 1)
	assert.Equal(t, 20, alerts[0].Priority)
	assert.Equal(t, "Only horse in group with reasonable odds", alerts[0].Message)
	assert.Equal(t, float64(5), alerts[0].Metrics.WinScore)
	assert.Equal(t, float64(10), alerts[0].Metrics.PlaceScore)
}

func TestWinPlaceSingletonLongOdds(t *testing.T) {
	alerts := runWinPlace(t, models.PreprocessedHorse{HorseNumber: "4", Win: 25, Place: 6})
	assert.Empty(t, alerts)
}

func TestWinPlaceNormalOrdering(t *testing.T) {
	alerts := runWinPlace(t,
		models.PreprocessedHorse{HorseNumber: "1", Win: 4, Place: 1.8},
		models.PreprocessedHorse{HorseNumber: "2", Win: 7, Place: 2.6},
	)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Place odds normal", alerts[0].Message)
	assert.Equal(t, "1", alerts[0].HorseNumber)
}

func TestWinPlaceInvertedOrdering(t *testing.T) {
	// Horse 1 is shorter in the win market but no shorter in the place
	// market, which flags it weak and its rival strong.
	alerts := runWinPlace(t,
		models.PreprocessedHorse{HorseNumber: "1", Win: 4, Place: 2.8},
		models.PreprocessedHorse{HorseNumber: "2", Win: 7, Place: 2.2},
	)
	require.Len(t, alerts, 2)

	assert.Equal(t, "Weak place odds", alerts[0].Message)
	assert.Equal(t, "1", alerts[0].HorseNumber)
	assert.Equal(t, float64(-5), alerts[0].Metrics.WinScore)

	assert.Equal(t, "Strong place odds", alerts[1].Message)
	assert.Equal(t, "2", alerts[1].HorseNumber)
	assert.Equal(t, float64(5), alerts[1].Metrics.PlaceScore)
}

func TestWinPlaceEqualWinOddsSkipped(t *testing.T) {
	alerts := runWinPlace(t,
		models.PreprocessedHorse{HorseNumber: "1", Win: 6, Place: 2.1},
		models.PreprocessedHorse{HorseNumber: "2", Win: 6, Place: 3.0},
	)
	assert.Empty(t, alerts)
}

func TestWinPlaceAllPairsCompared(t *testing.T) {
	// Three horses in win order: each of the three pairs produces one
	// normal alert when place odds track win odds.
	alerts := runWinPlace(t,
		models.PreprocessedHorse{HorseNumber: "1", Win: 3, Place: 1.5},
		models.PreprocessedHorse{HorseNumber: "2", Win: 6, Place: 2.2},
		models.PreprocessedHorse{HorseNumber: "3", Win: 9, Place: 3.1},
	)
	require.Len(t, alerts, 3)
	for _, a := range alerts {
		assert.Equal(t, "Place odds normal", a.Message)
	}
}
