package resolver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "weatherchat.app/errors"
	"weatherchat.app/models"
)

func TestCoordinateResolver_Resolve_Success(t *testing.T) {
	mockGen := new(mockGenerator)
	resolver := NewCoordinateResolver(mockGen)

	mockGen.On("Generate", mock.Anything, promptContaining("New York")).
		Return(`{"lat": "40.7128", "lon": "-74.0060"}`, nil)

	coords, err := resolver.Resolve(context.Background(), "New York")

	require.NoError(t, err)
	assert.Equal(t, models.Coordinates{Latitude: 40.7128, Longitude: -74.006}, coords)
	mockGen.AssertExpectations(t)
}

func TestCoordinateResolver_Resolve_DoubleQuotedValues(t *testing.T) {
	mockGen := new(mockGenerator)
	resolver := NewCoordinateResolver(mockGen)

	// Model answers with quote characters inside the JSON string values
	mockGen.On("Generate", mock.Anything, mock.Anything).
		Return(`{"lat": "\"48.8566\"", "lon": "\"2.3522\""}`, nil)

	coords, err := resolver.Resolve(context.Background(), "Paris")

	require.NoError(t, err)
	assert.InDelta(t, 48.8566, coords.Latitude, 0.0001)
	assert.InDelta(t, 2.3522, coords.Longitude, 0.0001)
}

func TestCoordinateResolver_Resolve_NumericValues(t *testing.T) {
	mockGen := new(mockGenerator)
	resolver := NewCoordinateResolver(mockGen)

	mockGen.On("Generate", mock.Anything, mock.Anything).
		Return(`{"lat": 35.6762, "lon": 139.6503}`, nil)

	coords, err := resolver.Resolve(context.Background(), "Tokyo")

	require.NoError(t, err)
	assert.InDelta(t, 35.6762, coords.Latitude, 0.0001)
	assert.InDelta(t, 139.6503, coords.Longitude, 0.0001)
}

func TestCoordinateResolver_Resolve_ProseWrappedOutput(t *testing.T) {
	mockGen := new(mockGenerator)
	resolver := NewCoordinateResolver(mockGen)

	mockGen.On("Generate", mock.Anything, mock.Anything).
		Return("The coordinates are: {\"lat\": \"51.5074\", \"lon\": \"-0.1278\"} as requested.", nil)

	coords, err := resolver.Resolve(context.Background(), "London")

	require.NoError(t, err)
	assert.InDelta(t, 51.5074, coords.Latitude, 0.0001)
	assert.InDelta(t, -0.1278, coords.Longitude, 0.0001)
}

func TestCoordinateResolver_Resolve_OutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"LatitudeTooLarge", `{"lat": "91.0000", "lon": "10.0000"}`},
		{"LatitudeTooSmall", `{"lat": "-95.5000", "lon": "10.0000"}`},
		{"LongitudeTooLarge", `{"lat": "10.0000", "lon": "181.0000"}`},
		{"LongitudeTooSmall", `{"lat": "10.0000", "lon": "-180.5000"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGen := new(mockGenerator)
			resolver := NewCoordinateResolver(mockGen)

			mockGen.On("Generate", mock.Anything, mock.Anything).Return(tt.response, nil)

			_, err := resolver.Resolve(context.Background(), "Nowhere")

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.CoordinateExtractionError, appErr.Type)
			assert.Contains(t, err.Error(), "out of range")
		})
	}
}

func TestCoordinateResolver_Resolve_MalformedValues(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"NonNumericLatitude", `{"lat": "forty point seven", "lon": "-74.0060"}`},
		{"MissingLongitude", `{"lat": "40.7128"}`},
		{"NullLatitude", `{"lat": null, "lon": "-74.0060"}`},
		{"BooleanValue", `{"lat": true, "lon": "-74.0060"}`},
		{"NoJSONAtAll", `Sorry, I cannot provide coordinates.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGen := new(mockGenerator)
			resolver := NewCoordinateResolver(mockGen)

			mockGen.On("Generate", mock.Anything, mock.Anything).Return(tt.response, nil)

			_, err := resolver.Resolve(context.Background(), "New York")

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.CoordinateExtractionError, appErr.Type)
		})
	}
}

func TestCoordinateResolver_Resolve_GeneratorError(t *testing.T) {
	mockGen := new(mockGenerator)
	resolver := NewCoordinateResolver(mockGen)

	mockGen.On("Generate", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("model API: quota exceeded"))

	_, err := resolver.Resolve(context.Background(), "Berlin")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CoordinateExtractionError, appErr.Type)
}

func TestCoordinateResolver_Resolve_EmptyLocation(t *testing.T) {
	mockGen := new(mockGenerator)
	resolver := NewCoordinateResolver(mockGen)

	_, err := resolver.Resolve(context.Background(), "")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
	mockGen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}
