package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"
	"weatherchat.app/api"
	"weatherchat.app/config"
	"weatherchat.app/llm"
	"weatherchat.app/metrics"
	"weatherchat.app/pkg/logger"
	"weatherchat.app/providers"
	"weatherchat.app/resolver"
	"weatherchat.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config      *config.Config
	server      *api.Server
	history     *service.HistoryStore
	upstreamLog io.Closer
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	generator := app.createTextGenerator()
	locationResolver := resolver.NewLocationResolver(generator)
	coordinateResolver := resolver.NewCoordinateResolver(generator)

	weatherProvider, err := app.createWeatherProvider()
	if err != nil {
		return fmt.Errorf("create weather provider: %w", err)
	}
	timezoneProvider := providers.NewTimezoneDBProvider(&app.config.Timezone)

	app.history = service.NewHistoryStore()

	queryService := service.NewQueryService(
		locationResolver,
		coordinateResolver,
		weatherProvider,
		timezoneProvider,
		app.history,
		metrics.NewPipelineMetrics(),
		logger.New(),
	)

	server, err := api.NewServer(api.ServerOptions{
		Config:       app.config,
		QueryService: queryService,
		History:      app.history,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	app.server = server

	slog.Info("Services initialized successfully")
	return nil
}

// createTextGenerator builds the model client with its rate limit applied
func (app *Application) createTextGenerator() llm.TextGenerator {
	client := llm.NewGeminiClient(&app.config.LLM)

	// Burst of two covers the pair of model calls a single query makes
	return llm.NewRateLimitedTextGenerator(client, app.config.LLM.RequestsPerMinute, 2)
}

// createWeatherProvider builds the weather client, wrapped with the
// upstream traffic logger when enabled
func (app *Application) createWeatherProvider() (providers.WeatherProvider, error) {
	provider := providers.WeatherProvider(providers.NewOpenWeatherProvider(&app.config.Weather))

	if app.config.Weather.LogEnabled {
		fileLogger, err := providers.NewFileLogger(app.config.Weather.LogFile)
		if err != nil {
			return nil, err
		}
		app.upstreamLog = fileLogger
		provider = providers.NewWeatherLoggerDecorator(provider, fileLogger, "OpenWeatherMap")
		slog.Debug("Upstream traffic logging enabled", "file", app.config.Weather.LogFile)
	}

	return provider, nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.history != nil {
		slog.Info("Discarding session history", "entries", app.history.Len())
	}

	if app.upstreamLog != nil {
		if err := app.upstreamLog.Close(); err != nil {
			slog.Warn("Closing upstream log", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}

// GetRouter returns the HTTP router for testing purposes
func (app *Application) GetRouter() *gin.Engine {
	return app.server.GetRouter()
}
