package providers

import (
	"context"
	"time"

	"weatherchat.app/models"
)

// WeatherLoggerDecorator records every upstream weather call to the
// traffic log before delegating to the wrapped provider
type WeatherLoggerDecorator struct {
	wrappedProvider WeatherProvider
	logger          FileLogger
	providerName    string
}

func NewWeatherLoggerDecorator(provider WeatherProvider, logger FileLogger, providerName string) WeatherProvider {
	return &WeatherLoggerDecorator{
		wrappedProvider: provider,
		logger:          logger,
		providerName:    providerName,
	}
}

func (d *WeatherLoggerDecorator) GetCurrentConditions(ctx context.Context, coords models.Coordinates) (*models.CurrentConditions, error) {
	target := coords.String()
	d.logger.LogRequest(d.providerName, target)
	startTime := time.Now()

	conditions, err := d.wrappedProvider.GetCurrentConditions(ctx, coords)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.LogError(d.providerName, target, err, duration)
		return nil, err
	}

	d.logger.LogResponse(d.providerName, target, map[string]interface{}{
		"city":        conditions.City,
		"temperature": conditions.Temperature,
		"description": conditions.Description,
	}, duration)
	return conditions, nil
}

func (d *WeatherLoggerDecorator) GetForecast(ctx context.Context, coords models.Coordinates) ([]models.ForecastEntry, error) {
	target := coords.String()
	d.logger.LogRequest(d.providerName, target)
	startTime := time.Now()

	entries, err := d.wrappedProvider.GetForecast(ctx, coords)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.LogError(d.providerName, target, err, duration)
		return nil, err
	}

	d.logger.LogResponse(d.providerName, target, map[string]interface{}{
		"entries": len(entries),
	}, duration)
	return entries, nil
}

// Verify the decorator still satisfies the provider interface
var _ WeatherProvider = (*WeatherLoggerDecorator)(nil)
