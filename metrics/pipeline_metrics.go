package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline stage names used as metric label values
const (
	StageLocation    = "location"
	StageCoordinates = "coordinates"
	StageWeather     = "weather"
	StageForecast    = "forecast"
	StageTimezone    = "timezone"
)

type PipelineMetricsCollector struct {
	Queries       *prometheus.CounterVec
	StageResults  *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
	HistorySize   prometheus.Gauge
}

var globalCollector *PipelineMetricsCollector

func getCollector() *PipelineMetricsCollector {
	if globalCollector == nil {
		globalCollector = &PipelineMetricsCollector{
			Queries: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherchat_queries_total",
					Help: "The total number of weather queries by result",
				},
				[]string{"result"},
			),
			StageResults: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherchat_pipeline_stage_total",
					Help: "The total number of pipeline stage executions by result",
				},
				[]string{"stage", "result"},
			),
			QueryDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "weatherchat_query_duration_seconds",
					Help:    "Full pipeline duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"result"},
			),
			HistorySize: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "weatherchat_history_size",
					Help: "Number of query results held in session history",
				},
			),
		}
	}
	return globalCollector
}

type PipelineMetrics struct {
	succeeded int64
	failed    int64
	collector *PipelineMetricsCollector
	mu        sync.RWMutex
}

func NewPipelineMetrics() *PipelineMetrics {
	return &PipelineMetrics{
		collector: getCollector(),
	}
}

// RecordStage counts one execution of a pipeline stage
func (m *PipelineMetrics) RecordStage(stage string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.collector.StageResults.WithLabelValues(stage, result).Inc()
}

// RecordQuery counts one full pipeline run and observes its duration
func (m *PipelineMetrics) RecordQuery(duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := "success"
	if err != nil {
		result = "error"
		m.failed++
	} else {
		m.succeeded++
	}

	m.collector.Queries.WithLabelValues(result).Inc()
	m.collector.QueryDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// SetHistorySize reports the current number of stored results
func (m *PipelineMetrics) SetHistorySize(size int) {
	m.collector.HistorySize.Set(float64(size))
}

func (m *PipelineMetrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := m.succeeded + m.failed
	var successRatio float64
	if total > 0 {
		successRatio = float64(m.succeeded) / float64(total)
	}

	return map[string]interface{}{
		"queries_succeeded": m.succeeded,
		"queries_failed":    m.failed,
		"queries_total":     total,
		"success_ratio":     successRatio,
	}
}
