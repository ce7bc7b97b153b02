package errors

import "fmt"

// Application error types organized by category for better error handling

type ErrorType string

// Pipeline Errors - failures that abort a weather query
const (
	LocationExtractionError   ErrorType = "LOCATION_EXTRACTION_ERROR"
	CoordinateExtractionError ErrorType = "COORDINATE_EXTRACTION_ERROR"
	WeatherFetchError         ErrorType = "WEATHER_FETCH_ERROR"
)

// Degradation Errors - failures that reduce a result without aborting it
const (
	ForecastFetchError      ErrorType = "FORECAST_FETCH_ERROR"
	TimezoneResolutionError ErrorType = "TIMEZONE_RESOLUTION_ERROR"
)

// Domain/Business Logic Errors - errors related to request validation
const (
	ValidationError ErrorType = "VALIDATION_ERROR"
)

// System/Configuration Errors - errors related to system setup and configuration
const (
	ConfigurationError ErrorType = "CONFIGURATION_ERROR"
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Pipeline Error Constructors
func NewLocationExtractionError(message string, cause error) *AppError {
	return Wrap(LocationExtractionError, message, cause)
}

func NewCoordinateExtractionError(message string, cause error) *AppError {
	return Wrap(CoordinateExtractionError, message, cause)
}

func NewWeatherFetchError(message string, cause error) *AppError {
	return Wrap(WeatherFetchError, message, cause)
}

// Degradation Error Constructors
func NewForecastFetchError(message string, cause error) *AppError {
	return Wrap(ForecastFetchError, message, cause)
}

func NewTimezoneResolutionError(message string, cause error) *AppError {
	return Wrap(TimezoneResolutionError, message, cause)
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// TypeOf reports the ErrorType carried by err, or an empty string when err
// is not an *AppError.
func TypeOf(err error) ErrorType {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type
	}
	return ""
}
