// Package logger provides analysis-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AnalysisLogger provides dedicated logging for analysis runs.
type AnalysisLogger struct {
	*logrus.Entry
}

// NewAnalysisLogger creates a new analysis logger.
func NewAnalysisLogger(baseLogger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: baseLogger.WithField("component", "analysis"),
	}
}

// LogAnalysisRun logs a completed analysis run.
func (al *AnalysisLogger) LogAnalysisRun(runID, raceDate, raceNumber string, horses, alerts, highlights int, durationMs float64) {
	al.WithFields(logrus.Fields{
		"run_id":               runID,
		"race_date":            raceDate,
		"race_number":          raceNumber,
		"horses_analyzed":      horses,
		"alerts_generated":     alerts,
		"highlights_generated": highlights,
		"analysis_duration_ms": durationMs,
	}).Info("Race analysis completed")
}

// LogDataLoad logs a race data load from disk.
func (al *AnalysisLogger) LogDataLoad(raceDate, raceNumber, path string, horses, quinellaPairs int) {
	al.WithFields(logrus.Fields{
		"race_date":      raceDate,
		"race_number":    raceNumber,
		"path":           path,
		"horses":         horses,
		"quinella_pairs": quinellaPairs,
	}).Info("Race data loaded")
}

// LogCacheResult logs an analysis cache lookup.
func (al *AnalysisLogger) LogCacheResult(raceDate, raceNumber string, hit bool) {
	al.WithFields(logrus.Fields{
		"race_date":   raceDate,
		"race_number": raceNumber,
		"cache_hit":   hit,
	}).Debug("Analysis cache lookup")
}

// LogExport logs an export envelope build.
func (al *AnalysisLogger) LogExport(raceDate, raceNumber string, priorityThreshold, totalAlerts, exportedAlerts int, filename string) {
	al.WithFields(logrus.Fields{
		"race_date":          raceDate,
		"race_number":        raceNumber,
		"priority_threshold": priorityThreshold,
		"total_alerts":       totalAlerts,
		"exported_alerts":    exportedAlerts,
		"filename":           filename,
	}).Info("Analysis export built")
}
