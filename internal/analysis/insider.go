package analysis

import (
	"fmt"
	"math"

	"github.com/yourusername/race-lens/internal/models"
)

// The insider detector compares current win odds against the pre-race
// race-day index. Both branches are explicit ordered rule tables evaluated
// top to bottom with first match winning, which keeps every threshold
// auditable on its own.

type insiderRule struct {
	match      func(h models.PreprocessedHorse, pct float64) bool
	priority   int
	message    func(h models.PreprocessedHorse, pct float64) string
	winScore   float64
	placeScore float64
}

func formatPct(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// backedRules covers horses whose current odds beat the index
// (win < index). pct is the percentage improvement over the index.
var backedRules = []insiderRule{
	{
		// Short-circuit: short odds against a very weak expectation.
		match:    func(h models.PreprocessedHorse, _ float64) bool { return h.Win <= 15 && h.RaceDayIndex >= 40 },
		priority: 160,
		message: func(h models.PreprocessedHorse, pct float64) string {
			return fmt.Sprintf("unexpected market plunge %s", formatPct(pct))
		},
		winScore: 30, placeScore: 40,
	},
	{
		match:    func(h models.PreprocessedHorse, _ float64) bool { return h.IsNewHorse && h.Win <= 11 },
		priority: 150,
		message: func(h models.PreprocessedHorse, pct float64) string {
			return fmt.Sprintf("debutant heavily backed %s", formatPct(pct))
		},
		winScore: 25, placeScore: 35,
	},
	{
		match:    func(h models.PreprocessedHorse, _ float64) bool { return h.IsNewHorse },
		priority: 130,
		message: func(h models.PreprocessedHorse, pct float64) string {
			return fmt.Sprintf("debutant backed in %s", formatPct(pct))
		},
		winScore: 15, placeScore: 25,
	},
	{
		match: func(h models.PreprocessedHorse, _ float64) bool {
			return h.Win <= h.LastWin && h.LastGoodResult && h.Win <= 15
		},
		priority: 140,
		message: func(h models.PreprocessedHorse, _ float64) string {
			return fmt.Sprintf("form horse backed below last-race odds (last %g, finished %d)", h.LastWin, h.LastPosition)
		},
		winScore: 20, placeScore: 30,
	},
	{
		match:    func(h models.PreprocessedHorse, _ float64) bool { return h.Win <= h.LastWin && h.LastGoodResult },
		priority: 125,
		message: func(h models.PreprocessedHorse, _ float64) string {
			return fmt.Sprintf("form horse holding support (last %g, finished %d)", h.LastWin, h.LastPosition)
		},
		winScore: 10, placeScore: 20,
	},
	{
		match: func(h models.PreprocessedHorse, _ float64) bool {
			return h.Win <= h.LastWin && h.SameWinRange && h.Win <= 18
		},
		priority: 120,
		message: func(h models.PreprocessedHorse, _ float64) string {
			return fmt.Sprintf("steady money in same bracket as last start (%g)", h.LastWin)
		},
		winScore: 10, placeScore: 15,
	},
	{
		match:    func(h models.PreprocessedHorse, _ float64) bool { return h.Win <= h.LastWin },
		priority: 110,
		message: func(h models.PreprocessedHorse, _ float64) string {
			return fmt.Sprintf("shorter than last start (%g)", h.LastWin)
		},
		winScore: 5, placeScore: 10,
	},
	{
		match: func(h models.PreprocessedHorse, pct float64) bool {
			return h.Win >= 29 && h.Win <= 61 && pct >= 20
		},
		priority: 135,
		message: func(h models.PreprocessedHorse, pct float64) string {
			return fmt.Sprintf("longshot plunge %s", formatPct(pct))
		},
		winScore: 15, placeScore: 15,
	},
	{
		match:    func(h models.PreprocessedHorse, pct float64) bool { return h.Win <= 25 && pct >= 40 },
		priority: 130,
		message: func(h models.PreprocessedHorse, pct float64) string {
			return fmt.Sprintf("suspicious insider bets %s", formatPct(pct))
		},
		winScore: 20, placeScore: 40,
	},
	{
		match:    func(h models.PreprocessedHorse, pct float64) bool { return h.Win <= 25 && pct >= 20 },
		priority: 130,
		message: func(h models.PreprocessedHorse, pct float64) string {
			return fmt.Sprintf("suspicious insider bets %s", formatPct(pct))
		},
		winScore: 10, placeScore: 20,
	},
	{
		match:    func(h models.PreprocessedHorse, pct float64) bool { return h.Win <= 25 && pct >= 10 },
		priority: 120,
		message: func(h models.PreprocessedHorse, pct float64) string {
			return fmt.Sprintf("suspicious insider bets %s", formatPct(pct))
		},
		winScore: 5, placeScore: 10,
	},
	{
		match:    func(h models.PreprocessedHorse, _ float64) bool { return h.Win <= 25 },
		priority: 20,
		message: func(h models.PreprocessedHorse, pct float64) string {
			return fmt.Sprintf("normal (%s)", formatPct(pct))
		},
		winScore: 0, placeScore: 5,
	},
}

// driftRules covers horses at or worse than the index. The log-odds ratio
// ln(win) - ln(index) quantifies the drift.
var driftRules = []insiderRule{
	{
		match:    func(h models.PreprocessedHorse, _ float64) bool { return h.Win <= 5 },
		priority: 30,
		message: func(h models.PreprocessedHorse, _ float64) string {
			return fmt.Sprintf("drifting favourite, fade (log ratio %.2f)", logOddsRatio(h))
		},
		winScore: -15, placeScore: -5,
	},
	{
		match:    func(h models.PreprocessedHorse, _ float64) bool { return h.Win <= 10 },
		priority: 25,
		message: func(h models.PreprocessedHorse, _ float64) string {
			return fmt.Sprintf("weaker than expected (log ratio %.2f)", logOddsRatio(h))
		},
		winScore: -10, placeScore: 0,
	},
	{
		match:    func(h models.PreprocessedHorse, _ float64) bool { return h.Win <= 30 },
		priority: 20,
		message: func(h models.PreprocessedHorse, _ float64) string {
			return "no insider bets"
		},
		winScore: -10, placeScore: 0,
	},
}

func logOddsRatio(h models.PreprocessedHorse) float64 {
	return math.Log(h.Win) - math.Log(h.RaceDayIndex)
}

// analyzeWinRaceDayIndex runs the insider rule tables over a group. Horses
// without a known race-day index are skipped; a rule-table fall-through
// emits nothing, which is a valid terminal outcome.
func analyzeWinRaceDayIndex(e *emitter, group []models.PreprocessedHorse) {
	for _, horse := range group {
		if horse.RaceDayIndex <= 0 {
			continue
		}

		if horse.Win < horse.RaceDayIndex {
			pct := (horse.RaceDayIndex - horse.Win) / horse.RaceDayIndex * 100
			applyRules(e, backedRules, horse, pct)
		} else {
			applyRules(e, driftRules, horse, 0)
		}
	}
}

func applyRules(e *emitter, rules []insiderRule, horse models.PreprocessedHorse, pct float64) {
	for _, rule := range rules {
		if rule.match(horse, pct) {
			e.emit(rule.priority, horse.HorseNumber, models.PurposeAnalyze, models.TargetGeneric,
				rule.message(horse, pct), rule.winScore, rule.placeScore)
			return
		}
	}
}
