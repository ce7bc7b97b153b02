package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherchat.app/config"
	weathererr "weatherchat.app/errors"
	"weatherchat.app/models"
	"weatherchat.app/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router       *gin.Engine
	config       *config.Config
	queryService service.QueryServiceInterface
	history      service.HistoryStoreInterface
}

// ServerOptions holds the dependencies required to build a Server
type ServerOptions struct {
	Config       *config.Config
	QueryService service.QueryServiceInterface
	History      service.HistoryStoreInterface
}

// Validate checks that all required dependencies are present
func (o ServerOptions) Validate() error {
	if o.Config == nil {
		return fmt.Errorf("config is required")
	}
	if o.QueryService == nil {
		return fmt.Errorf("query service is required")
	}
	if o.History == nil {
		return fmt.Errorf("history store is required")
	}
	return nil
}

// NewServer creates and configures a new HTTP server
func NewServer(opts ServerOptions) (*Server, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	server := &Server{
		router:       gin.Default(),
		config:       opts.Config,
		queryService: opts.QueryService,
		history:      opts.History,
	}

	server.setupRoutes()
	return server, nil
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/query", s.runQuery)
		api.GET("/history", s.getHistory)
		api.DELETE("/history", s.clearHistory)
		api.GET("/debug", s.debugEndpoint)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.ServeStaticFiles()
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) runQuery(c *gin.Context) {
	var req models.QueryRequest

	if err := c.ShouldBind(&req); err != nil {
		// Distinguish field validation failures from malformed payloads
		// in the logs; the client sees the same response either way
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			slog.Warn("Query request failed validation", "fields", fieldErrs.Error())
		} else {
			slog.Error("Request binding error", "error", err)
		}
		s.handleError(c, weathererr.NewValidationError("invalid request format"))
		return
	}

	slog.Debug("Running weather query", "question", req.Question)

	result, err := s.queryService.Run(c.Request.Context(), req.Question)
	if err != nil {
		slog.Error("Query pipeline error", "kind", weathererr.TypeOf(err), "error", err, "question", req.Question)
		s.handleError(c, err)
		return
	}

	slog.Debug("Query answered", "location", result.Location, "timezone", result.Timezone)
	c.JSON(http.StatusOK, result)
}

func (s *Server) getHistory(c *gin.Context) {
	results := s.history.List()
	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"results": results,
	})
}

func (s *Server) clearHistory(c *gin.Context) {
	s.history.Clear()
	slog.Debug("History cleared")
	c.JSON(http.StatusOK, gin.H{"message": "History cleared"})
}

func (s *Server) debugEndpoint(c *gin.Context) {
	slog.Debug("Debug endpoint called")

	response := gin.H{
		"pipeline": s.queryService.Stats(),
		"history": map[string]interface{}{
			"count": s.history.Len(),
		},
		"config": map[string]interface{}{
			"model":           s.config.LLM.Model,
			"units":           s.config.Weather.Units,
			"timezone_lookup": s.config.Timezone.APIKey != "",
		},
	}

	c.JSON(http.StatusOK, response)
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *weathererr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case weathererr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case weathererr.LocationExtractionError:
			statusCode = http.StatusUnprocessableEntity
			message = appErr.Message
		case weathererr.CoordinateExtractionError:
			statusCode = http.StatusUnprocessableEntity
			message = appErr.Message
		case weathererr.WeatherFetchError:
			statusCode = http.StatusBadGateway
			message = "Weather service unavailable"
		case weathererr.ForecastFetchError:
			statusCode = http.StatusBadGateway
			message = "Forecast service unavailable"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
