package service

import (
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-lens/internal/analysis"
	"github.com/yourusername/race-lens/internal/logger"
	"github.com/yourusername/race-lens/internal/metrics"
	"github.com/yourusername/race-lens/internal/models"
)

// cachedRace bundles the loaded snapshot with its analysis so exports can
// reuse both without touching the disk again.
type cachedRace struct {
	Data     *models.RaceData
	Analysis *models.RaceAnalysis
}

// AnalysisService runs cached race analyses on top of the loader and the
// engine. Results are cached per date+race with a configurable TTL.
type AnalysisService struct {
	loader   *RaceDataLoader
	analyzer *analysis.Analyzer
	cache    *cache.Cache
	log      *logger.AnalysisLogger
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(loader *RaceDataLoader, analyzer *analysis.Analyzer, ttl, cleanupInterval time.Duration, baseLogger *logrus.Logger) *AnalysisService {
	return &AnalysisService{
		loader:   loader,
		analyzer: analyzer,
		cache:    cache.New(ttl, cleanupInterval),
		log:      logger.NewAnalysisLogger(baseLogger),
	}
}

func cacheKey(date, raceNumber string) string {
	return fmt.Sprintf("%s:%s", date, raceNumber)
}

// Analyze runs the engine directly over a caller-supplied snapshot. The
// result is not cached: ad-hoc snapshots have no stable identity.
func (s *AnalysisService) Analyze(data *models.RaceData) (*models.RaceAnalysis, error) {
	return s.analyzer.AnalyzeRace(data)
}

// AnalyzeRace loads the stored snapshot for a race and analyzes it,
// serving repeat requests from the cache.
func (s *AnalysisService) AnalyzeRace(date, raceNumber string) (*models.RaceAnalysis, error) {
	entry, err := s.analyzeCached(date, raceNumber)
	if err != nil {
		return nil, err
	}
	return entry.Analysis, nil
}

// Export builds the filtered export envelope for a race, keeping only
// alerts at or above minPriority.
func (s *AnalysisService) Export(date, raceNumber string, minPriority int) (*models.AnalysisExport, error) {
	if minPriority < 0 {
		return nil, fmt.Errorf("%w: export priority threshold %d is negative", models.ErrInvalidPriority, minPriority)
	}

	entry, err := s.analyzeCached(date, raceNumber)
	if err != nil {
		return nil, err
	}

	export := models.NewAnalysisExport(entry.Data.RaceInfo, entry.Data.HorseInfo, entry.Analysis.Alerts, minPriority, entry.Analysis.AnalyzedAt)
	s.log.LogExport(date, raceNumber, minPriority, len(entry.Analysis.Alerts), len(export.Findings), export.Filename())

	return &export, nil
}

// InvalidateRace drops the cached analysis for one race, forcing the next
// request to reload and re-analyze.
func (s *AnalysisService) InvalidateRace(date, raceNumber string) {
	s.cache.Delete(cacheKey(date, raceNumber))
}

func (s *AnalysisService) analyzeCached(date, raceNumber string) (*cachedRace, error) {
	key := cacheKey(date, raceNumber)

	if cached, found := s.cache.Get(key); found {
		if entry, ok := cached.(*cachedRace); ok {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			s.log.LogCacheResult(date, raceNumber, true)
			return entry, nil
		}
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	s.log.LogCacheResult(date, raceNumber, false)

	data, err := s.loader.Load(date, raceNumber)
	if err != nil {
		return nil, err
	}

	result, err := s.analyzer.AnalyzeRace(data)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s race %s: %w", date, raceNumber, err)
	}

	entry := &cachedRace{Data: data, Analysis: result}
	s.cache.SetDefault(key, entry)

	return entry, nil
}
