package analysis

import (
	"fmt"
	"strconv"

	"github.com/yourusername/race-lens/internal/models"
)

// analyzePredictions emits one Analyze alert per populated external
// prediction field. Unknown or empty horse numbers are skipped; missing
// prediction data skips the whole pass.
func analyzePredictions(e *emitter, data *models.RaceData) {
	if data.Predictions == nil || len(data.HorseInfo.Horses) == 0 {
		return
	}
	p := data.Predictions

	details := make(map[string]models.HorseDetail, len(data.HorseInfo.Horses))
	for _, h := range data.HorseInfo.Horses {
		details[h.HorseNumber] = h
	}

	emit := func(field, horseNumber string, priority int, winScore, placeScore float64) {
		if horseNumber == "" || horseNumber == "0" {
			return
		}
		horse, ok := details[horseNumber]
		if !ok {
			return
		}
		message := fmt.Sprintf("%s - %s", field, predictionBaseMessage(horse))
		if field == "RTG1" || field == "RTG2" || field == "RTG3" {
			message += fmt.Sprintf(" !Score = %.2f", winScore)
		}
		e.emit(priority, horseNumber, models.PurposeAnalyze, models.TargetGeneric, message, winScore, placeScore)
	}

	emit("DBL1", p.DBL1, 170, 50, 60)
	emit("DBL2", p.DBL2, 170, 50, 60)
	emit("DBL3", p.DBL3, 160, 40, 30)

	emit("Q1", p.Q1, 170, 50, 60)
	emit("Q2", p.Q2, 170, 50, 60)
	emit("Q3", p.Q3, 160, 40, 30)
	emit("Q4", p.Q4, 160, 40, 30)

	emit("QP1", p.QP1, 170, 50, 60)
	emit("QP2", p.QP2, 170, 50, 60)
	emit("QP3", p.QP3, 160, 40, 30)
	emit("QP4", p.QP4, 160, 40, 30)

	emit("RTG1", p.RTG1, 160, parseScore(p.Score1), 60)
	emit("RTG2", p.RTG2, 160, parseScore(p.Score2), 30)
	emit("RTG3", p.RTG3, 160, parseScore(p.Score3), 60)
}

// predictionBaseMessage mirrors the insider detector's report line for a
// predicted horse.
func predictionBaseMessage(horse models.HorseDetail) string {
	pct := 0.0
	if horse.RaceDayWinIndex > 0 {
		pct = (horse.RaceDayWinIndex - horse.Win) / horse.RaceDayWinIndex * 100
	}
	name := horse.HorseName
	if name == "" {
		name = "Unknown"
	}
	return fmt.Sprintf("%s %s: Current odds %g vs expected %g (%.2f%%). Last race: %g odds, finished %d",
		horse.HorseNumber, name, horse.Win, horse.RaceDayWinIndex, pct, horse.LastWin, horse.LastPosition)
}

func parseScore(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
