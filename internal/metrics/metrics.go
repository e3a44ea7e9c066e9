// Package metrics provides the centralized Prometheus registry for the
// race analysis service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysisRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "race_lens",
		Name:      "analysis_runs_total",
		Help:      "Total number of race analysis runs by status",
	}, []string{"status"})
	AlertsEmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "race_lens",
		Name:      "alerts_emitted_total",
		Help:      "Total number of alerts emitted by purpose and target",
	}, []string{"purpose", "target"})
	RaceDataLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "race_lens",
		Name:      "race_data_loads_total",
		Help:      "Total number of race data loads by outcome",
	}, []string{"outcome"})
	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "race_lens",
		Name:      "analysis_cache_lookups_total",
		Help:      "Total number of analysis cache lookups by result",
	}, []string{"result"})
)

// Gauge metrics
var (
	LastRunAlertCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "race_lens",
		Name:      "last_run_alert_count",
		Help:      "Number of alerts produced by the most recent analysis run",
	})
	LastRunHighlightCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "race_lens",
		Name:      "last_run_highlight_count",
		Help:      "Number of highlights per market in the most recent analysis run",
	}, []string{"market"})
)

// Histogram metrics
var (
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "race_lens",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of race analysis runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(AnalysisRunsTotal)
		registry.MustRegister(AlertsEmittedTotal)
		registry.MustRegister(RaceDataLoadsTotal)
		registry.MustRegister(CacheLookupsTotal)

		registry.MustRegister(LastRunAlertCount)
		registry.MustRegister(LastRunHighlightCount)

		registry.MustRegister(AnalysisDuration)
	})
	return registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(InitRegistry(), promhttp.HandlerOpts{})
}

// RecordAnalysisRun records one analysis run outcome.
// status should be one of: "success", "no_odds", "failure"
func RecordAnalysisRun(status string, seconds float64) {
	AnalysisRunsTotal.WithLabelValues(status).Inc()
	AnalysisDuration.Observe(seconds)
}

// RecordAlert counts one emitted alert.
func RecordAlert(purpose, target string) {
	AlertsEmittedTotal.WithLabelValues(purpose, target).Inc()
}
