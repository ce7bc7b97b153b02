package app

import (
	"log"
	"os"
	"sort"
	"strings"

	"weatherchat.app/config"
)

// ConfigDisplayer handles configuration and environment variable display
type ConfigDisplayer struct{}

// NewConfigDisplayer creates a new configuration displayer
func NewConfigDisplayer() *ConfigDisplayer {
	return &ConfigDisplayer{}
}

// PrintConfig prints all fields in the configuration
func (cd *ConfigDisplayer) PrintConfig(cfg *config.Config) {
	log.Println("==== APPLICATION CONFIGURATION ====")

	log.Printf("SERVER:\n")
	log.Printf("  Port: %d\n", cfg.Server.Port)

	log.Printf("\nLANGUAGE MODEL:\n")
	log.Printf("  API Key: %s\n", cd.maskString(cfg.LLM.APIKey))
	log.Printf("  Model: %s\n", cfg.LLM.Model)
	log.Printf("  Base URL: %s\n", cfg.LLM.BaseURL)
	log.Printf("  Timeout: %s\n", cfg.LLM.Timeout())
	log.Printf("  Requests Per Minute: %d\n", cfg.LLM.RequestsPerMinute)

	log.Printf("\nWEATHER API:\n")
	log.Printf("  API Key: %s\n", cd.maskString(cfg.Weather.APIKey))
	log.Printf("  Base URL: %s\n", cfg.Weather.BaseURL)
	log.Printf("  Timeout: %s\n", cfg.Weather.Timeout())
	log.Printf("  Units: %s\n", cfg.Weather.Units)
	log.Printf("  Upstream Log Enabled: %t\n", cfg.Weather.LogEnabled)
	if cfg.Weather.LogEnabled {
		log.Printf("  Upstream Log File: %s\n", cfg.Weather.LogFile)
	}

	log.Printf("\nTIMEZONE API:\n")
	if cfg.Timezone.APIKey == "" {
		log.Printf("  API Key: (not set, every result uses UTC)\n")
	} else {
		log.Printf("  API Key: %s\n", cd.maskString(cfg.Timezone.APIKey))
	}
	log.Printf("  Base URL: %s\n", cfg.Timezone.BaseURL)
	log.Printf("  Timeout: %s\n", cfg.Timezone.Timeout())

	log.Println("===================================")
}

// PrintAllEnvVars prints all environment variables available to the application
func (cd *ConfigDisplayer) PrintAllEnvVars() {
	log.Println("==== ENVIRONMENT VARIABLES ====")

	envVars := os.Environ()
	sort.Strings(envVars)

	for _, env := range envVars {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}

		key := pair[0]
		value := pair[1]

		if cd.isSensitive(key) {
			value = cd.maskString(value)
		}

		log.Printf("%s=%s\n", key, value)
	}

	log.Println("===============================")
}

// maskString masks sensitive information like passwords and API keys
func (cd *ConfigDisplayer) maskString(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	visible := len(s) / 4
	return s[:visible] + strings.Repeat("*", len(s)-visible)
}

// isSensitive checks if an environment variable key is considered sensitive
func (cd *ConfigDisplayer) isSensitive(key string) bool {
	sensitiveKeys := []string{
		"API_KEY", "PASSWORD", "SECRET", "TOKEN", "KEY", "PASS", "PWD",
	}

	key = strings.ToUpper(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return true
		}
	}

	return false
}
