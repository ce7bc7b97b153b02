package service

import (
	"context"

	"weatherchat.app/models"
	"weatherchat.app/providers"
)

// WeatherProviderInterface is an alias to the providers interface
type WeatherProviderInterface = providers.WeatherProvider

// TimezoneProviderInterface is an alias to the providers interface
type TimezoneProviderInterface = providers.TimezoneProvider

// LocationResolverInterface extracts a location name from a free-form
// question
type LocationResolverInterface interface {
	Resolve(ctx context.Context, question string) (string, error)
}

// CoordinateResolverInterface resolves a location name to geographic
// coordinates
type CoordinateResolverInterface interface {
	Resolve(ctx context.Context, location string) (models.Coordinates, error)
}

// QueryServiceInterface defines the interface for running weather queries
type QueryServiceInterface interface {
	Run(ctx context.Context, question string) (*models.QueryResult, error)
	Stats() map[string]interface{}
}

// HistoryStoreInterface defines the interface for session history
type HistoryStoreInterface interface {
	Append(result models.QueryResult) models.QueryResult
	List() []models.QueryResult
	Len() int
	Clear()
}

// Ensure implementations satisfy interfaces
var _ QueryServiceInterface = (*QueryService)(nil)
var _ HistoryStoreInterface = (*HistoryStore)(nil)
