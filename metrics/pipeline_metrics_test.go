package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPipelineMetrics(t *testing.T) {
	metrics := NewPipelineMetrics()

	t.Run("Initial state", func(t *testing.T) {
		stats := metrics.GetStats()
		assert.Equal(t, int64(0), stats["queries_succeeded"])
		assert.Equal(t, int64(0), stats["queries_failed"])
		assert.Equal(t, int64(0), stats["queries_total"])
		assert.Equal(t, float64(0), stats["success_ratio"])
	})

	t.Run("Record queries", func(t *testing.T) {
		metrics.RecordQuery(120*time.Millisecond, nil)
		metrics.RecordQuery(80*time.Millisecond, nil)
		metrics.RecordQuery(30*time.Millisecond, errors.New("pipeline failed"))

		stats := metrics.GetStats()
		assert.Equal(t, int64(2), stats["queries_succeeded"])
		assert.Equal(t, int64(1), stats["queries_failed"])
		assert.Equal(t, int64(3), stats["queries_total"])
		assert.Equal(t, float64(2)/float64(3), stats["success_ratio"])
	})

	t.Run("Success ratio calculation", func(t *testing.T) {
		newMetrics := NewPipelineMetrics()

		for i := 0; i < 7; i++ {
			newMetrics.RecordQuery(time.Millisecond, nil)
		}
		for i := 0; i < 3; i++ {
			newMetrics.RecordQuery(time.Millisecond, errors.New("boom"))
		}

		stats := newMetrics.GetStats()
		assert.Equal(t, int64(7), stats["queries_succeeded"])
		assert.Equal(t, int64(3), stats["queries_failed"])
		assert.Equal(t, int64(10), stats["queries_total"])
		assert.Equal(t, 0.7, stats["success_ratio"])
	})

	t.Run("Record stages", func(t *testing.T) {
		metrics.RecordStage(StageLocation, nil)
		metrics.RecordStage(StageCoordinates, nil)
		metrics.RecordStage(StageWeather, errors.New("upstream down"))
		metrics.RecordStage(StageForecast, nil)
		metrics.RecordStage(StageTimezone, nil)
	})

	t.Run("History size", func(t *testing.T) {
		metrics.SetHistorySize(4)
		metrics.SetHistorySize(0)
	})
}
