package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"weatherchat.app/config"
	"weatherchat.app/errors"
	"weatherchat.app/models"
)

// DefaultTimezone is reported whenever the timezone of a location cannot
// be resolved
const DefaultTimezone = "UTC"

// TimezoneDBProvider resolves IANA timezone identifiers through the
// TimezoneDB API
type TimezoneDBProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewTimezoneDBProvider creates a provider from timezone configuration
func NewTimezoneDBProvider(cfg *config.TimezoneConfig) *TimezoneDBProvider {
	return &TimezoneDBProvider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout()},
	}
}

type timezoneResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	ZoneName string `json:"zoneName"`
}

// ResolveTimezone returns the IANA zone name at the given coordinates.
// The lookup is best effort: any failure logs a warning and yields UTC.
func (p *TimezoneDBProvider) ResolveTimezone(ctx context.Context, coords models.Coordinates) string {
	if p.apiKey == "" {
		return DefaultTimezone
	}

	zone, err := p.lookupZone(ctx, coords)
	if err != nil {
		appErr := errors.NewTimezoneResolutionError("timezone lookup failed", err)
		slog.Warn("falling back to UTC", "coordinates", coords.String(), "error", appErr)
		return DefaultTimezone
	}

	return zone
}

func (p *TimezoneDBProvider) lookupZone(ctx context.Context, coords models.Coordinates) (string, error) {
	query := url.Values{}
	query.Set("key", p.apiKey)
	query.Set("format", "json")
	query.Set("by", "position")
	query.Set("lat", fmt.Sprintf("%.4f", coords.Latitude))
	query.Set("lng", fmt.Sprintf("%.4f", coords.Longitude))

	requestURL := fmt.Sprintf("%s/get-time-zone?%s", p.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("timezonedb API request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timezonedb: HTTP %d error", resp.StatusCode)
	}

	var apiResponse timezoneResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("decode timezonedb response: %w", err)
	}

	if apiResponse.Status != "OK" {
		return "", fmt.Errorf("timezonedb: status %q: %s", apiResponse.Status, apiResponse.Message)
	}

	if apiResponse.ZoneName == "" {
		return "", fmt.Errorf("timezonedb: empty zone name")
	}

	return apiResponse.ZoneName, nil
}
