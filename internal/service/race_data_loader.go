// Package service provides race data loading, cached analysis and export
// building on top of the analysis engine.
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-lens/internal/logger"
	"github.com/yourusername/race-lens/internal/metrics"
	"github.com/yourusername/race-lens/internal/models"
)

// flexString accepts a JSON string or number and normalizes to a string.
// Scraped odds documents are inconsistent about horse number types.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*s = flexString(fmt.Sprintf("%d", i))
		return nil
	}
	*s = flexString(n.String())
	return nil
}

// flexFloat accepts a JSON number or numeric string; anything unparseable
// degrades to zero rather than failing the load.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		var n json.Number = json.Number(v)
		parsed, err := n.Float64()
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(parsed)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type rawOddsRow struct {
	HorseNumber    flexString `json:"horse_number"`
	HorseNumberAlt flexString `json:"horseNumber"`
	Win            flexFloat  `json:"win"`
	Place          flexFloat  `json:"place"`
}

func (r rawOddsRow) number() string {
	if r.HorseNumber != "" {
		return string(r.HorseNumber)
	}
	return string(r.HorseNumberAlt)
}

type rawPairRow struct {
	HorseNumber1 flexString `json:"horse_number_1"`
	HorseNumber2 flexString `json:"horse_number_2"`
	Odds         flexFloat  `json:"odds"`
}

type rawHorseDetail struct {
	HorseID         flexString `json:"horseID"`
	HorseNumber     flexString `json:"Horse Number"`
	HorseName       string     `json:"Horse Name"`
	Weight          flexString `json:"Weight"`
	Trainer         string     `json:"Trainer"`
	Jockey          string     `json:"Jockey"`
	Post            flexString `json:"Post"`
	FirstDayIndex   flexFloat  `json:"First Day Index"`
	RaceDayWinIndex flexFloat  `json:"Race Day Win Index"`
	LastWin         flexFloat  `json:"lastWin"`
	LastPosition    flexFloat  `json:"lastPosition"`
}

type rawHorseInfo struct {
	RaceDate   flexString       `json:"Race Date"`
	RaceNumber flexString       `json:"Race Number"`
	Horses     []rawHorseDetail `json:"Horses"`
}

type rawRaceDocument struct {
	Odds              []rawOddsRow           `json:"odds"`
	QuinellaOdds      []rawPairRow           `json:"quinella_odds"`
	QuinellaPlaceOdds []rawPairRow           `json:"quinella_place_odds"`
	HorseInfo         *rawHorseInfo          `json:"horseInfo"`
	RaceInfo          models.RaceInfo        `json:"raceInfo"`
	PaceData          *models.PaceData       `json:"paceData"`
	Predictions       *models.PredictionData `json:"predictions"`
}

// RaceDataLoader reads odds_<date>_<race>.json documents from a data
// directory and normalizes them into RaceData snapshots.
type RaceDataLoader struct {
	dataDir string
	log     *logger.AnalysisLogger
}

// NewRaceDataLoader creates a loader rooted at dataDir.
func NewRaceDataLoader(dataDir string, baseLogger *logrus.Logger) *RaceDataLoader {
	return &RaceDataLoader{
		dataDir: dataDir,
		log:     logger.NewAnalysisLogger(baseLogger),
	}
}

// Path returns the conventional file path for a race document.
func (l *RaceDataLoader) Path(date, raceNumber string) string {
	return filepath.Join(l.dataDir, fmt.Sprintf("odds_%s_%s.json", date, raceNumber))
}

// Load reads and normalizes one race document. A missing file maps to
// ErrRaceNotFound; malformed numeric fields degrade to zero instead of
// failing the whole load.
func (l *RaceDataLoader) Load(date, raceNumber string) (*models.RaceData, error) {
	path := l.Path(date, raceNumber)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			metrics.RaceDataLoadsTotal.WithLabelValues("not_found").Inc()
			return nil, fmt.Errorf("%w: %s race %s", models.ErrRaceNotFound, date, raceNumber)
		}
		metrics.RaceDataLoadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("reading race data file %s: %w", path, err)
	}

	var doc rawRaceDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		metrics.RaceDataLoadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("parsing race data file %s: %w", path, err)
	}

	data := l.normalize(&doc, date, raceNumber)
	metrics.RaceDataLoadsTotal.WithLabelValues("success").Inc()
	l.log.LogDataLoad(date, raceNumber, path, len(data.Odds), len(data.QuinellaOdds))

	return data, nil
}

func (l *RaceDataLoader) normalize(doc *rawRaceDocument, date, raceNumber string) *models.RaceData {
	odds := make([]models.RaceHorse, 0, len(doc.Odds))
	oddsByNumber := make(map[string]models.RaceHorse, len(doc.Odds))
	for _, row := range doc.Odds {
		horse := models.RaceHorse{
			HorseNumber: row.number(),
			Win:         roundTo(float64(row.Win), 1),
			Place:       roundTo(float64(row.Place), 1),
		}
		odds = append(odds, horse)
		oddsByNumber[horse.HorseNumber] = horse
	}

	info := models.HorseInfo{RaceDate: date, RaceNumber: raceNumber}
	if doc.HorseInfo != nil && len(doc.HorseInfo.Horses) > 0 {
		for _, h := range doc.HorseInfo.Horses {
			num := string(h.HorseNumber)
			board := oddsByNumber[num]
			info.Horses = append(info.Horses, models.HorseDetail{
				HorseID:         string(h.HorseID),
				HorseNumber:     num,
				HorseName:       h.HorseName,
				Weight:          string(h.Weight),
				Trainer:         h.Trainer,
				Jockey:          h.Jockey,
				Post:            string(h.Post),
				FirstDayIndex:   roundTo(float64(h.FirstDayIndex), 1),
				RaceDayWinIndex: roundTo(float64(h.RaceDayWinIndex), 1),
				LastWin:         roundTo(float64(h.LastWin), 0),
				LastPosition:    int(h.LastPosition),
				Win:             board.Win,
				Place:           board.Place,
			})
		}
	} else {
		// No metadata document; build a bare card from the odds board so
		// downstream lookups still resolve.
		for _, horse := range odds {
			info.Horses = append(info.Horses, models.HorseDetail{
				HorseNumber: horse.HorseNumber,
				HorseName:   " ",
				Weight:      " ",
				Trainer:     " ",
				Jockey:      " ",
				Post:        " ",
				Win:         horse.Win,
				Place:       horse.Place,
			})
		}
	}

	raceInfo := doc.RaceInfo
	if raceInfo.Date == "" {
		raceInfo.Date = date
	}
	if raceInfo.RaceNumber == "" {
		raceInfo.RaceNumber = raceNumber
	}

	return &models.RaceData{
		Odds:              odds,
		QuinellaOdds:      normalizePairs(doc.QuinellaOdds),
		QuinellaPlaceOdds: normalizePairs(doc.QuinellaPlaceOdds),
		HorseInfo:         info,
		RaceInfo:          raceInfo,
		PaceData:          doc.PaceData,
		Predictions:       doc.Predictions,
	}
}

func normalizePairs(rows []rawPairRow) []models.QuinellaPair {
	if len(rows) == 0 {
		return nil
	}
	out := make([]models.QuinellaPair, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.QuinellaPair{
			HorseNumber1: string(row.HorseNumber1),
			HorseNumber2: string(row.HorseNumber2),
			Odds:         roundTo(float64(row.Odds), 1),
		})
	}
	return out
}

func roundTo(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
