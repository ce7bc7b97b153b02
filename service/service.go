package service

import (
	"context"
	"time"

	"weatherchat.app/errors"
	"weatherchat.app/metrics"
	"weatherchat.app/models"
	"weatherchat.app/pkg/logger"
	"weatherchat.app/pkg/validation"
)

// QueryService answers weather questions by chaining location extraction,
// coordinate resolution, weather retrieval and timezone lookup
type QueryService struct {
	locations   LocationResolverInterface
	coordinates CoordinateResolverInterface
	weather     WeatherProviderInterface
	timezone    TimezoneProviderInterface
	history     HistoryStoreInterface
	metrics     *metrics.PipelineMetrics
	logger      *logger.Logger
}

// NewQueryService creates a new query service
func NewQueryService(
	locations LocationResolverInterface,
	coordinates CoordinateResolverInterface,
	weather WeatherProviderInterface,
	timezone TimezoneProviderInterface,
	history HistoryStoreInterface,
	pipelineMetrics *metrics.PipelineMetrics,
	log *logger.Logger,
) *QueryService {
	return &QueryService{
		locations:   locations,
		coordinates: coordinates,
		weather:     weather,
		timezone:    timezone,
		history:     history,
		metrics:     pipelineMetrics,
		logger:      log,
	}
}

// Run executes the full pipeline for one question. The first failing
// required stage aborts the run; a successful run is appended to history.
func (s *QueryService) Run(ctx context.Context, question string) (*models.QueryResult, error) {
	started := time.Now()
	result, err := s.run(ctx, question)
	s.metrics.RecordQuery(time.Since(started), err)
	return result, err
}

func (s *QueryService) run(ctx context.Context, question string) (*models.QueryResult, error) {
	trimmed, ok := validation.TrimAndValidate(question)
	if !ok {
		return nil, errors.NewValidationError("question cannot be empty")
	}

	log := s.logger.WithField("question", trimmed)
	log.Debug("running weather query")

	location, err := s.locations.Resolve(ctx, trimmed)
	s.metrics.RecordStage(metrics.StageLocation, err)
	if err != nil {
		log.WithStage(metrics.StageLocation).Error("location extraction failed", "error", err)
		return nil, err
	}

	coords, err := s.coordinates.Resolve(ctx, location)
	s.metrics.RecordStage(metrics.StageCoordinates, err)
	if err != nil {
		log.WithStage(metrics.StageCoordinates).Error("coordinate resolution failed", "location", location, "error", err)
		return nil, err
	}

	current, err := s.weather.GetCurrentConditions(ctx, coords)
	s.metrics.RecordStage(metrics.StageWeather, err)
	if err != nil {
		log.WithStage(metrics.StageWeather).Error("current weather fetch failed", "location", location, "error", err)
		return nil, err
	}

	// Try to fetch the forecast but answer from current conditions alone
	// when it is unavailable
	forecast, err := s.weather.GetForecast(ctx, coords)
	s.metrics.RecordStage(metrics.StageForecast, err)
	if err != nil {
		log.WithStage(metrics.StageForecast).Warn("continuing without forecast", "location", location, "error", err)
		forecast = nil
	}

	tz := s.timezone.ResolveTimezone(ctx, coords)
	s.metrics.RecordStage(metrics.StageTimezone, nil)

	result := s.history.Append(models.QueryResult{
		Question:     trimmed,
		Location:     location,
		Coordinates:  coords,
		Current:      current,
		Forecast:     forecast,
		ForecastDays: models.GroupForecastByDay(forecast, tz),
		Timezone:     tz,
	})
	s.metrics.SetHistorySize(s.history.Len())

	log.Info("weather query answered", "location", location, "timezone", tz)
	return &result, nil
}

// Stats reports pipeline counters for the debug endpoint
func (s *QueryService) Stats() map[string]interface{} {
	return s.metrics.GetStats()
}
