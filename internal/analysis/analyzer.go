package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-lens/internal/metrics"
	"github.com/yourusername/race-lens/internal/models"
)

// Analyzer runs the full detector battery over one race snapshot. It holds
// no per-run state; every AnalyzeRace call constructs a fresh Store and
// threads it through the detectors, so concurrent analyses are safe.
type Analyzer struct {
	logger  *logrus.Logger
	takeout float64
}

// NewAnalyzer creates an analyzer that logs pipeline stages to the given
// logger, using the default pool takeout.
func NewAnalyzer(logger *logrus.Logger) *Analyzer {
	return NewAnalyzerWithTakeout(logger, DefaultTakeout)
}

// NewAnalyzerWithTakeout creates an analyzer with a configured pool
// takeout for the fair place quinella quotes.
func NewAnalyzerWithTakeout(logger *logrus.Logger, takeout float64) *Analyzer {
	return &Analyzer{logger: logger, takeout: takeout}
}

// AnalyzeRace is the primary entry point. It preprocesses the snapshot,
// runs the favorites locators and detectors in a fixed order, extracts
// highlights, deduplicates and returns the alerts sorted by priority
// descending. A snapshot with no odds entries never fails: it yields a
// single priority-0 diagnostic alert addressed to "ALL".
func (a *Analyzer) AnalyzeRace(data *models.RaceData) (*models.RaceAnalysis, error) {
	start := time.Now()
	runID := uuid.New()

	if data == nil {
		data = &models.RaceData{}
	}

	log := a.logger.WithFields(logrus.Fields{
		"run_id":      runID,
		"race_date":   data.RaceInfo.Date,
		"race_number": data.RaceInfo.RaceNumber,
	})
	log.Debug("Starting race analysis")

	result, err := a.analyze(log, data)
	if err != nil {
		metrics.RecordAnalysisRun("failure", time.Since(start).Seconds())
		return nil, err
	}

	result.RunID = runID.String()
	result.RaceDate = data.RaceInfo.Date
	result.RaceNumber = data.RaceInfo.RaceNumber
	result.AnalyzedAt = time.Now().UTC()

	status := "success"
	if len(data.Odds) == 0 {
		status = "no_odds"
	}
	metrics.RecordAnalysisRun(status, time.Since(start).Seconds())
	metrics.LastRunAlertCount.Set(float64(len(result.Alerts)))
	metrics.LastRunHighlightCount.WithLabelValues("win").Set(float64(len(result.Highlights.Win)))
	metrics.LastRunHighlightCount.WithLabelValues("place").Set(float64(len(result.Highlights.Place)))
	metrics.LastRunHighlightCount.WithLabelValues("quinella").Set(float64(len(result.Highlights.Quinella)))
	metrics.LastRunHighlightCount.WithLabelValues("place_quinella").Set(float64(len(result.Highlights.PlaceQuinella)))
	for _, alert := range result.Alerts {
		metrics.RecordAlert(string(alert.Purpose), string(alert.Target))
	}

	log.WithFields(logrus.Fields{
		"alerts":   len(result.Alerts),
		"duration": time.Since(start),
	}).Debug("Race analysis complete")

	return result, nil
}

func (a *Analyzer) analyze(log *logrus.Entry, data *models.RaceData) (*models.RaceAnalysis, error) {
	store := NewStore()

	pre, err := PreprocessWithTakeout(data, a.takeout)
	if err != nil {
		if !errors.Is(err, models.ErrNoOddsData) {
			return nil, fmt.Errorf("preprocessing race data: %w", err)
		}
		// An empty board is reported to the caller, never thrown.
		alert, alertErr := models.NewAlert(0, models.AllHorses, models.PurposeDisplay, models.TargetGeneric, "No odds data", 0, 0)
		if alertErr != nil {
			return nil, alertErr
		}
		log.Warn("No odds data in snapshot")
		return &models.RaceAnalysis{
			Alerts:     []models.AlertMessage{alert},
			Highlights: store.Highlights(),
		}, nil
	}
	log.WithFields(logrus.Fields{
		"horses":         len(pre.Horses),
		"quinella_pairs": len(pre.QuinellaPairs),
		"pq_pairs":       len(pre.PlaceQPairs),
	}).Debug("Preprocessing complete")

	if err := a.runFavorites(store, data); err != nil {
		return nil, err
	}
	log.WithField("alerts", store.Len()).Debug("Favorites located")

	e := newEmitter(store)

	if data.Predictions != nil {
		analyzePredictions(e, data)
	}

	analyzeWinWin(e, pre)
	log.WithField("alerts", store.Len()).Debug("Win-win analysis complete")

	for _, group := range DefaultGroups {
		groupHorses := pre.HorsesInCategory(group.Category)
		if len(groupHorses) == 0 {
			continue
		}
		log.WithFields(logrus.Fields{
			"group":  group.Name,
			"horses": len(groupHorses),
		}).Debug("Analyzing group")

		analyzeWinPlace(e, groupHorses)
		analyzeWinRaceDayIndex(e, groupHorses)
		if len(pre.QuinellaPairs) > 0 {
			analyzeWinQuinella(e, pre, groupHorses)
		}
		if len(pre.PlaceQPairs) > 0 {
			analyzeWinPlaceQuinella(e, pre, groupHorses)
		}
	}

	if err := e.Err(); err != nil {
		return nil, fmt.Errorf("running detectors: %w", err)
	}

	alerts := store.All(true)
	for _, alert := range alerts {
		store.ApplyHighlight(alert)
	}
	alerts = store.Dedupe(alerts)

	return &models.RaceAnalysis{
		Alerts:     alerts,
		Highlights: store.Highlights(),
	}, nil
}

func (a *Analyzer) runFavorites(store *Store, data *models.RaceData) error {
	winAlerts, err := FindWinFavorite(data.Odds, data.HorseInfo)
	if err != nil {
		return fmt.Errorf("locating win favorite: %w", err)
	}
	if err := store.AddMany(winAlerts, false); err != nil {
		return err
	}

	placeAlerts, err := FindPlaceFavorite(data.Odds, data.HorseInfo)
	if err != nil {
		return fmt.Errorf("locating place favorite: %w", err)
	}
	if err := store.AddMany(placeAlerts, false); err != nil {
		return err
	}

	if len(data.QuinellaOdds) > 0 {
		qAlerts, err := FindQuinellaFavorite(data.QuinellaOdds)
		if err != nil {
			return fmt.Errorf("locating quinella favorite: %w", err)
		}
		if err := store.AddMany(qAlerts, false); err != nil {
			return err
		}
	}

	if len(data.QuinellaPlaceOdds) > 0 {
		pqAlerts, err := FindPQFavorite(data.QuinellaPlaceOdds)
		if err != nil {
			return fmt.Errorf("locating place quinella favorite: %w", err)
		}
		if err := store.AddMany(pqAlerts, false); err != nil {
			return err
		}
	}

	return nil
}
