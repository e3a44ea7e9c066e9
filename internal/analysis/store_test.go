package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/race-lens/internal/models"
)

func mustAlert(t *testing.T, priority int, horse string, purpose models.AlertPurpose, target models.AlertTarget, msg string, win, place float64) models.AlertMessage {
	t.Helper()
	a, err := models.NewAlert(priority, horse, purpose, target, msg, win, place)
	require.NoError(t, err)
	return a
}

func TestStoreAddRejectsInvalid(t *testing.T) {
	s := NewStore()

	err := s.Add(models.AlertMessage{
		Priority:    100,
		HorseNumber: "3-3",
		Purpose:     models.PurposeHighlight,
		Target:      models.TargetQuinella,
	}, false)
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestStoreAllSorted(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(mustAlert(t, 20, "1", models.PurposeAnalyze, models.TargetGeneric, "a", 0, 0), false))
	require.NoError(t, s.Add(mustAlert(t, 160, "2", models.PurposeDisplay, models.TargetGeneric, "b", 0, 0), false))
	require.NoError(t, s.Add(mustAlert(t, 50, "3", models.PurposeHighlight, models.TargetWin, "c", 0, 0), false))

	sorted := s.All(true)
	assert.Equal(t, []int{160, 50, 20}, []int{sorted[0].Priority, sorted[1].Priority, sorted[2].Priority})

	unsorted := s.All(false)
	assert.Equal(t, 20, unsorted[0].Priority, "insertion order preserved without sorting")

	// All must return copies, not the backing slice.
	sorted[0].Priority = 1
	assert.Equal(t, 160, s.All(true)[0].Priority)
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(mustAlert(t, 50, "3", models.PurposeHighlight, models.TargetWin, "c", 0, 0), false))
	s.ApplyHighlight(mustAlert(t, 50, "3", models.PurposeHighlight, models.TargetWin, "c", 0, 0))

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Highlights().Win)
}

func TestStoreDedupe(t *testing.T) {
	s := NewStore()
	a := mustAlert(t, 100, "5", models.PurposeAnalyze, models.TargetWin, "same", 5, 10)
	b := mustAlert(t, 100, "5", models.PurposeAnalyze, models.TargetWin, "same", 5, 10)
	c := mustAlert(t, 100, "5", models.PurposeAnalyze, models.TargetWin, "same", 5, 11)

	out := s.Dedupe([]models.AlertMessage{a, b, c})
	require.Len(t, out, 2, "exact duplicates collapse, near-duplicates survive")
	assert.True(t, out[0].Equal(a))
	assert.True(t, out[1].Equal(c))
}

func TestStoreHighlights(t *testing.T) {
	s := NewStore()

	s.ApplyHighlight(mustAlert(t, 50, "3", models.PurposeHighlight, models.TargetWin, "", 0, 0))
	s.ApplyHighlight(mustAlert(t, 50, "3", models.PurposeHighlight, models.TargetWin, "", 0, 0))
	s.ApplyHighlight(mustAlert(t, 50, "6", models.PurposeHighlight, models.TargetPlace, "", 0, 0))
	s.ApplyHighlight(mustAlert(t, 150, "2-7", models.PurposeHighlight, models.TargetQuinella, "", 0, 0))
	s.ApplyHighlight(mustAlert(t, 150, "9-4", models.PurposeHighlight, models.TargetPlaceQuinella, "", 0, 0))
	s.ApplyHighlight(mustAlert(t, 20, "8", models.PurposeAnalyze, models.TargetGeneric, "", 0, 0))

	h := s.Highlights()
	assert.Equal(t, []string{"3"}, h.Win, "duplicates collapse")
	assert.Equal(t, []string{"6"}, h.Place)
	assert.Equal(t, []string{"7-2"}, h.Quinella, "combos are canonicalized column-first")
	assert.Equal(t, []string{"9-4"}, h.PlaceQuinella)
}
