package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherchat.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server   ServerConfig   `split_words:"true"`
	LLM      LLMConfig      `split_words:"true"`
	Weather  WeatherConfig  `split_words:"true"`
	Timezone TimezoneConfig `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// LLMConfig contains settings for the language model used to interpret
// questions and resolve coordinates
type LLMConfig struct {
	APIKey            string `envconfig:"LLM_API_KEY" required:"true"`
	Model             string `envconfig:"LLM_MODEL" default:"gemini-2.0-flash"`
	BaseURL           string `envconfig:"LLM_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta/models"`
	TimeoutSeconds    int    `envconfig:"LLM_TIMEOUT_SECONDS" default:"10"`
	RequestsPerMinute int    `envconfig:"LLM_REQUESTS_PER_MINUTE" default:"30"`
}

// Timeout returns the per-request timeout for model calls
func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// WeatherConfig contains settings for the weather data service
type WeatherConfig struct {
	APIKey         string `envconfig:"OPENWEATHER_API_KEY" required:"true"`
	BaseURL        string `envconfig:"OPENWEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	TimeoutSeconds int    `envconfig:"OPENWEATHER_TIMEOUT_SECONDS" default:"10"`
	Units          string `envconfig:"WEATHER_UNITS" default:"metric"`
	LogEnabled     bool   `envconfig:"UPSTREAM_LOG_ENABLED" default:"false"`
	LogFile        string `envconfig:"UPSTREAM_LOG_FILE" default:"logs/upstream.log"`
}

// Timeout returns the per-request timeout for weather calls
func (w WeatherConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// TimezoneConfig contains settings for the timezone lookup service.
// The key is optional; without it every result uses UTC.
type TimezoneConfig struct {
	APIKey         string `envconfig:"TIMEZONEDB_API_KEY"`
	BaseURL        string `envconfig:"TIMEZONEDB_BASE_URL" default:"https://api.timezonedb.com/v2.1"`
	TimeoutSeconds int    `envconfig:"TIMEZONEDB_TIMEOUT_SECONDS" default:"10"`
}

// Timeout returns the per-request timeout for timezone calls
func (t TimezoneConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Timezone.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks language model configuration
func (l *LLMConfig) Validate() error {
	if l.APIKey == "" {
		return errors.NewConfigurationError("LLM_API_KEY is required", nil)
	}
	if l.Model == "" {
		return errors.NewConfigurationError("LLM_MODEL cannot be empty", nil)
	}
	if err := validateBaseURL("LLM_BASE_URL", l.BaseURL); err != nil {
		return err
	}
	if l.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("LLM_TIMEOUT_SECONDS must be at least 1", nil)
	}
	if l.RequestsPerMinute < 1 {
		return errors.NewConfigurationError("LLM_REQUESTS_PER_MINUTE must be at least 1", nil)
	}
	return nil
}

// ValidateUnits validates the measurement system configuration
func (w *WeatherConfig) ValidateUnits() error {
	validUnits := []string{"metric", "imperial", "standard"}
	for _, units := range validUnits {
		if w.Units == units {
			return nil
		}
	}
	return errors.NewConfigurationError(
		"WEATHER_UNITS must be one of: "+strings.Join(validUnits, ", "), nil)
}

// Validate checks weather service configuration
func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("OPENWEATHER_API_KEY is required", nil)
	}
	if err := validateBaseURL("OPENWEATHER_BASE_URL", w.BaseURL); err != nil {
		return err
	}
	if w.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("OPENWEATHER_TIMEOUT_SECONDS must be at least 1", nil)
	}
	if err := w.ValidateUnits(); err != nil {
		return err
	}
	if w.LogEnabled && w.LogFile == "" {
		return errors.NewConfigurationError("UPSTREAM_LOG_FILE cannot be empty when upstream logging is enabled", nil)
	}
	return nil
}

// Validate checks timezone service configuration
func (t *TimezoneConfig) Validate() error {
	if err := validateBaseURL("TIMEZONEDB_BASE_URL", t.BaseURL); err != nil {
		return err
	}
	if t.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("TIMEZONEDB_TIMEOUT_SECONDS must be at least 1", nil)
	}
	return nil
}

func validateBaseURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}
