package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"weatherchat.app/config"
	"weatherchat.app/errors"
	"weatherchat.app/models"
)

// OpenWeatherProvider fetches current conditions and forecasts from the
// OpenWeatherMap API
type OpenWeatherProvider struct {
	apiKey  string
	baseURL string
	units   string
	client  *http.Client
}

// NewOpenWeatherProvider creates a provider from weather configuration
func NewOpenWeatherProvider(cfg *config.WeatherConfig) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		units:   cfg.Units,
		client:  &http.Client{Timeout: cfg.Timeout()},
	}
}

type currentWeatherResponse struct {
	Name string `json:"name"`
	Dt   int64  `json:"dt"`
	Sys  struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// GetCurrentConditions retrieves current weather for the given coordinates
func (p *OpenWeatherProvider) GetCurrentConditions(ctx context.Context, coords models.Coordinates) (*models.CurrentConditions, error) {
	if err := coords.Validate(); err != nil {
		return nil, errors.NewWeatherFetchError("invalid coordinates", err)
	}

	var apiResponse currentWeatherResponse
	if err := p.getJSON(ctx, "weather", coords, &apiResponse); err != nil {
		return nil, errors.NewWeatherFetchError("current conditions request failed", err)
	}

	description := ""
	if len(apiResponse.Weather) > 0 {
		description = apiResponse.Weather[0].Description
	}

	return &models.CurrentConditions{
		City:        apiResponse.Name,
		Country:     apiResponse.Sys.Country,
		Description: description,
		Temperature: apiResponse.Main.Temp,
		FeelsLike:   apiResponse.Main.FeelsLike,
		TempMin:     apiResponse.Main.TempMin,
		TempMax:     apiResponse.Main.TempMax,
		Humidity:    apiResponse.Main.Humidity,
		Pressure:    apiResponse.Main.Pressure,
		WindSpeed:   apiResponse.Wind.Speed,
		WindDeg:     apiResponse.Wind.Deg,
		Sunrise:     time.Unix(apiResponse.Sys.Sunrise, 0).UTC(),
		Sunset:      time.Unix(apiResponse.Sys.Sunset, 0).UTC(),
		ObservedAt:  time.Unix(apiResponse.Dt, 0).UTC(),
	}, nil
}

// GetForecast retrieves the 5-day, 3-hour-step forecast for the given coordinates
func (p *OpenWeatherProvider) GetForecast(ctx context.Context, coords models.Coordinates) ([]models.ForecastEntry, error) {
	if err := coords.Validate(); err != nil {
		return nil, errors.NewForecastFetchError("invalid coordinates", err)
	}

	var apiResponse forecastResponse
	if err := p.getJSON(ctx, "forecast", coords, &apiResponse); err != nil {
		return nil, errors.NewForecastFetchError("forecast request failed", err)
	}

	entries := make([]models.ForecastEntry, 0, len(apiResponse.List))
	for _, item := range apiResponse.List {
		description := ""
		if len(item.Weather) > 0 {
			description = item.Weather[0].Description
		}
		entries = append(entries, models.ForecastEntry{
			Timestamp:   time.Unix(item.Dt, 0).UTC(),
			Temperature: item.Main.Temp,
			Description: description,
		})
	}

	return entries, nil
}

func (p *OpenWeatherProvider) getJSON(ctx context.Context, endpoint string, coords models.Coordinates, out interface{}) error {
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%.4f", coords.Latitude))
	query.Set("lon", fmt.Sprintf("%.4f", coords.Longitude))
	query.Set("appid", p.apiKey)
	query.Set("units", p.units)

	requestURL := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("openweathermap API request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return p.handleHTTPError(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode openweathermap response: %w", err)
	}

	return nil
}

func (p *OpenWeatherProvider) handleHTTPError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("openweathermap: invalid API key")
	case http.StatusNotFound:
		return fmt.Errorf("openweathermap: no data for coordinates")
	case http.StatusTooManyRequests:
		return fmt.Errorf("openweathermap: rate limit exceeded")
	case http.StatusServiceUnavailable:
		return fmt.Errorf("openweathermap: service unavailable")
	default:
		return fmt.Errorf("openweathermap: HTTP %d error", statusCode)
	}
}
