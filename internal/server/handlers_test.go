package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/race-lens/internal/analysis"
	"github.com/yourusername/race-lens/internal/models"
	"github.com/yourusername/race-lens/internal/service"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	loader := service.NewRaceDataLoader("../service/testdata", log)
	analyzer := analysis.NewAnalyzer(log)
	svc := service.NewAnalysisService(loader, analyzer, 5*time.Minute, 10*time.Minute, log)
	handler := NewHandler(svc, 150, log)

	return NewRouter(handler, []string{"*"})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "race-lens", body["service"])
}

func TestGetRaceAnalysis(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/races/2024-05-01/3/analysis", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.RaceAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "2024-05-01", result.RaceDate)
	assert.Equal(t, "3", result.RaceNumber)
	assert.NotEmpty(t, result.Alerts)
}

func TestGetRaceAnalysisNotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/races/2024-05-01/99/analysis", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, http.StatusNotFound, errResp.Code)
}

func TestAnalyzeSnapshot(t *testing.T) {
	router := newTestRouter(t)

	payload := `{
		"odds": [
			{"horseNumber": "1", "win": 2.2, "place": 1.3},
			{"horseNumber": "2", "win": 8.0, "place": 2.5}
		],
		"raceInfo": {"date": "2024-05-01", "raceNumber": "7"}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.RaceAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.NotEmpty(t, result.Alerts)
	assert.Contains(t, result.Highlights.Win, "1")
}

func TestAnalyzeSnapshotEmptyOdds(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(`{"odds": []}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.RaceAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Alerts, 1)
	assert.Equal(t, 0, result.Alerts[0].Priority)
	assert.Equal(t, models.AllHorses, result.Alerts[0].HorseNumber)
}

func TestAnalyzeSnapshotBadPayload(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/races/2024-05-01/3/export?minPriority=160", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "analysis-p160-2024-05-01-3.json")

	var export models.AnalysisExport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &export))
	assert.Equal(t, 160, export.Metadata.PriorityThreshold)
	for _, finding := range export.Findings {
		assert.GreaterOrEqual(t, finding.Priority, 160)
	}
}

func TestExportDefaultsThreshold(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/races/2024-05-01/3/export", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var export models.AnalysisExport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &export))
	assert.Equal(t, 150, export.Metadata.PriorityThreshold)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "race_lens")
}
