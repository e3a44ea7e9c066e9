package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected logrus.Level
	}{
		{"debug level", "debug", logrus.DebugLevel},
		{"info level", "info", logrus.InfoLevel},
		{"warn level", "warn", logrus.WarnLevel},
		{"error level", "error", logrus.ErrorLevel},
		{"invalid level defaults to info", "banana", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewLogger(tt.level, "development")
			assert.Equal(t, tt.expected, log.GetLevel())
		})
	}
}

func TestNewLoggerFormatters(t *testing.T) {
	prod := NewLogger("info", "production")
	_, isJSON := prod.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON, "production should use the JSON formatter")

	dev := NewLogger("info", "development")
	_, isText := dev.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText, "development should use the text formatter")
}

func TestAnalysisLoggerRun(t *testing.T) {
	log, buf := setupTestLogger()
	analysisLogger := NewAnalysisLogger(log)

	analysisLogger.LogAnalysisRun("run-001", "2024-05-01", "3", 12, 45, 6, 1.25)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "analysis", entry["component"])
	assert.Equal(t, "run-001", entry["run_id"])
	assert.Equal(t, "2024-05-01", entry["race_date"])
	assert.Equal(t, float64(45), entry["alerts_generated"])
	assert.Equal(t, "Race analysis completed", entry["msg"])
}

func TestAnalysisLoggerDataLoad(t *testing.T) {
	log, buf := setupTestLogger()
	analysisLogger := NewAnalysisLogger(log)

	analysisLogger.LogDataLoad("2024-05-01", "3", "/data/odds_2024-05-01_3.json", 12, 66)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "/data/odds_2024-05-01_3.json", entry["path"])
	assert.Equal(t, float64(66), entry["quinella_pairs"])
}

func TestAnalysisLoggerExport(t *testing.T) {
	log, buf := setupTestLogger()
	analysisLogger := NewAnalysisLogger(log)

	analysisLogger.LogExport("2024-05-01", "3", 150, 45, 9, "analysis-p150-2024-05-01-3.json")

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, float64(150), entry["priority_threshold"])
	assert.Equal(t, float64(9), entry["exported_alerts"])
	assert.Equal(t, "analysis-p150-2024-05-01-3.json", entry["filename"])
}
