package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/race-lens/internal/models"
)

func runInsider(t *testing.T, horses ...models.PreprocessedHorse) []models.AlertMessage {
	t.Helper()
	store := NewStore()
	e := newEmitter(store)
	analyzeWinRaceDayIndex(e, horses)
	require.NoError(t, e.Err())
	return store.All(false)
}

func TestInsiderSkipsUnknownIndex(t *testing.T) {
	alerts := runInsider(t, models.PreprocessedHorse{HorseNumber: "1", Win: 3.0, RaceDayIndex: 0})
	assert.Empty(t, alerts)
}

func TestInsiderBackedRules(t *testing.T) {
	tests := []struct {
		name         string
		horse        models.PreprocessedHorse
		wantPriority int
		wantMsg      string
		wantWin      float64
		wantPlace    float64
	}{
		{
			name:         "market plunge against weak index short-circuits everything",
			horse:        models.PreprocessedHorse{HorseNumber: "1", Win: 10, RaceDayIndex: 50, IsNewHorse: true},
			wantPriority: 160,
			wantMsg:      "unexpected market plunge 80.00%",
			wantWin:      30, wantPlace: 40,
		},
		{
			name:         "debutant heavily backed",
			horse:        models.PreprocessedHorse{HorseNumber: "2", Win: 8, RaceDayIndex: 12, IsNewHorse: true},
			wantPriority: 150,
			wantMsg:      "debutant heavily backed",
			wantWin:      25, wantPlace: 35,
		},
		{
			name:         "debutant backed in",
			horse:        models.PreprocessedHorse{HorseNumber: "3", Win: 14, RaceDayIndex: 18, IsNewHorse: true},
			wantPriority: 130,
			wantMsg:      "debutant backed in",
			wantWin:      15, wantPlace: 25,
		},
		{
			name:         "form horse backed below last-race odds",
			horse:        models.PreprocessedHorse{HorseNumber: "4", Win: 6, RaceDayIndex: 8, LastWin: 9, LastPosition: 2, LastGoodResult: true},
			wantPriority: 140,
			wantMsg:      "form horse backed below last-race odds (last 9, finished 2)",
			wantWin:      20, wantPlace: 30,
		},
		{
			name:         "form horse holding support above 15",
			horse:        models.PreprocessedHorse{HorseNumber: "5", Win: 16, RaceDayIndex: 21, LastWin: 20, LastPosition: 3, LastGoodResult: true},
			wantPriority: 125,
			wantMsg:      "form horse holding support",
			wantWin:      10, wantPlace: 20,
		},
		{
			name:         "steady money in same bracket",
			horse:        models.PreprocessedHorse{HorseNumber: "6", Win: 8, RaceDayIndex: 10, LastWin: 9, SameWinRange: true},
			wantPriority: 120,
			wantMsg:      "steady money in same bracket",
			wantWin:      10, wantPlace: 15,
		},
		{
			name:         "shorter than last start",
			horse:        models.PreprocessedHorse{HorseNumber: "7", Win: 19, RaceDayIndex: 22, LastWin: 24},
			wantPriority: 110,
			wantMsg:      "shorter than last start",
			wantWin:      5, wantPlace: 10,
		},
		{
			name:         "longshot plunge",
			horse:        models.PreprocessedHorse{HorseNumber: "8", Win: 40, RaceDayIndex: 55},
			wantPriority: 135,
			wantMsg:      "longshot plunge 27.27%",
			wantWin:      15, wantPlace: 15,
		},
		{
			name:         "suspicious bets at 40 percent",
			horse:        models.PreprocessedHorse{HorseNumber: "9", Win: 12, RaceDayIndex: 22},
			wantPriority: 130,
			wantMsg:      "suspicious insider bets 45.45%",
			wantWin:      20, wantPlace: 40,
		},
		{
			name:         "suspicious bets at 20 percent",
			horse:        models.PreprocessedHorse{HorseNumber: "10", Win: 18, RaceDayIndex: 24},
			wantPriority: 130,
			wantMsg:      "suspicious insider bets 25.00%",
			wantWin:      10, wantPlace: 20,
		},
		{
			name:         "suspicious bets at 10 percent",
			horse:        models.PreprocessedHorse{HorseNumber: "11", Win: 22, RaceDayIndex: 25},
			wantPriority: 120,
			wantMsg:      "suspicious insider bets 12.00%",
			wantWin:      5, wantPlace: 10,
		},
		{
			name:         "normal support",
			horse:        models.PreprocessedHorse{HorseNumber: "12", Win: 24, RaceDayIndex: 25},
			wantPriority: 20,
			wantMsg:      "normal",
			wantWin:      0, wantPlace: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := runInsider(t, tt.horse)
			require.Len(t, alerts, 1)
			a := alerts[0]
			assert.Equal(t, tt.wantPriority, a.Priority)
			assert.Contains(t, a.Message, tt.wantMsg)
			assert.Equal(t, tt.wantWin, a.Metrics.WinScore)
			assert.Equal(t, tt.wantPlace, a.Metrics.PlaceScore)
			assert.Equal(t, models.PurposeAnalyze, a.Purpose)
		})
	}
}

func TestInsiderBackedFallThrough(t *testing.T) {
	// Backed but above every threshold: win 28 with index 30 matches no rule.
	alerts := runInsider(t, models.PreprocessedHorse{HorseNumber: "1", Win: 28, RaceDayIndex: 30})
	assert.Empty(t, alerts, "a rule-table fall-through is silent")
}

func TestInsiderDriftRules(t *testing.T) {
	tests := []struct {
		name         string
		horse        models.PreprocessedHorse
		wantPriority int
		wantMsg      string
		wantWin      float64
	}{
		{
			name:         "drifting favourite",
			horse:        models.PreprocessedHorse{HorseNumber: "1", Win: 4.5, RaceDayIndex: 3.0},
			wantPriority: 30,
			wantMsg:      "drifting favourite, fade",
			wantWin:      -15,
		},
		{
			name:         "weaker than expected",
			horse:        models.PreprocessedHorse{HorseNumber: "2", Win: 9, RaceDayIndex: 7},
			wantPriority: 25,
			wantMsg:      "weaker than expected",
			wantWin:      -10,
		},
		{
			name:         "no insider bets",
			horse:        models.PreprocessedHorse{HorseNumber: "3", Win: 25, RaceDayIndex: 20},
			wantPriority: 20,
			wantMsg:      "no insider bets",
			wantWin:      -10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := runInsider(t, tt.horse)
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.wantPriority, alerts[0].Priority)
			assert.Contains(t, alerts[0].Message, tt.wantMsg)
			assert.Equal(t, tt.wantWin, alerts[0].Metrics.WinScore)
		})
	}
}

func TestInsiderDriftFallThrough(t *testing.T) {
	alerts := runInsider(t, models.PreprocessedHorse{HorseNumber: "1", Win: 45, RaceDayIndex: 40})
	assert.Empty(t, alerts)
}

func TestInsiderEqualOddsUseDriftBranch(t *testing.T) {
	// win == index is not a plunge; it lands in the drift table.
	alerts := runInsider(t, models.PreprocessedHorse{HorseNumber: "1", Win: 4, RaceDayIndex: 4})
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Message, "drifting favourite")
}
