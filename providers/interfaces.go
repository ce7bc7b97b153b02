package providers

import (
	"context"
	"time"

	"weatherchat.app/models"
)

// WeatherProvider defines the interface for weather data providers
type WeatherProvider interface {
	GetCurrentConditions(ctx context.Context, coords models.Coordinates) (*models.CurrentConditions, error)
	GetForecast(ctx context.Context, coords models.Coordinates) ([]models.ForecastEntry, error)
}

// TimezoneProvider resolves the IANA timezone identifier at a point.
// Implementations report "UTC" when resolution fails; the lookup is
// best effort and never aborts a query.
type TimezoneProvider interface {
	ResolveTimezone(ctx context.Context, coords models.Coordinates) string
}

// FileLogger defines the interface for upstream traffic logging
type FileLogger interface {
	LogRequest(providerName, target string)
	LogResponse(providerName, target string, summary map[string]interface{}, duration time.Duration)
	LogError(providerName, target string, err error, duration time.Duration)
}
