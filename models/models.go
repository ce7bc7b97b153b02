// Package models defines data structures used throughout the application
package models

import (
	"fmt"
	"time"

	"weatherchat.app/pkg/validation"
)

// Coordinates is a geographic point resolved for a query
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Validate checks that the point lies on the globe
func (c Coordinates) Validate() error {
	if !validation.IsValidLatitude(c.Latitude) {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Latitude)
	}
	if !validation.IsValidLongitude(c.Longitude) {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Longitude)
	}
	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// CurrentConditions represents the current weather at a location
type CurrentConditions struct {
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Description string    `json:"description"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feels_like"`
	TempMin     float64   `json:"temp_min"`
	TempMax     float64   `json:"temp_max"`
	Humidity    int       `json:"humidity"`
	Pressure    int       `json:"pressure"`
	WindSpeed   float64   `json:"wind_speed"`
	WindDeg     int       `json:"wind_deg"`
	Sunrise     time.Time `json:"sunrise"`
	Sunset      time.Time `json:"sunset"`
	ObservedAt  time.Time `json:"observed_at"`
}

// ForecastEntry is a single 3-hour forecast step
type ForecastEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
}

// ForecastDay groups forecast entries sharing a calendar date in the
// result's timezone
type ForecastDay struct {
	Date    string          `json:"date"`
	Entries []ForecastEntry `json:"entries"`
}

// QueryResult is the full outcome of one answered weather question
type QueryResult struct {
	ID           string             `json:"id"`
	Question     string             `json:"question"`
	Location     string             `json:"location"`
	Coordinates  Coordinates        `json:"coordinates"`
	Current      *CurrentConditions `json:"current"`
	Forecast     []ForecastEntry    `json:"forecast,omitempty"`
	ForecastDays []ForecastDay      `json:"forecast_days,omitempty"`
	Timezone     string             `json:"timezone"`
	CreatedAt    time.Time          `json:"created_at"`
}

// QueryRequest represents data required to run a weather query
type QueryRequest struct {
	Question string `json:"question" form:"question" binding:"required"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// GroupForecastByDay buckets entries by calendar date in the named IANA
// zone, preserving entry order. Unknown zone names fall back to UTC.
func GroupForecastByDay(entries []ForecastEntry, tzID string) []ForecastDay {
	if len(entries) == 0 {
		return nil
	}

	loc, err := time.LoadLocation(tzID)
	if err != nil {
		loc = time.UTC
	}

	var days []ForecastDay
	index := make(map[string]int)
	for _, entry := range entries {
		date := entry.Timestamp.In(loc).Format("2006-01-02")
		i, ok := index[date]
		if !ok {
			days = append(days, ForecastDay{Date: date})
			i = len(days) - 1
			index[date] = i
		}
		days[i].Entries = append(days[i].Entries, entry)
	}
	return days
}
