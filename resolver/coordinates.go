package resolver

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"weatherchat.app/errors"
	"weatherchat.app/llm"
	"weatherchat.app/models"
	"weatherchat.app/pkg/validation"
)

const coordinatesPrompt = `Provide the exact latitude and longitude coordinates for %s.
Return only a JSON object in this exact format:
{"lat": "LATITUDE", "lon": "LONGITUDE"}
Use exactly 4 decimal places. Only return the JSON, no other text.`

// CoordinateResolver resolves a place name to geographic coordinates
type CoordinateResolver struct {
	generator llm.TextGenerator
}

// NewCoordinateResolver creates a coordinate resolver backed by the given generator
func NewCoordinateResolver(generator llm.TextGenerator) *CoordinateResolver {
	return &CoordinateResolver{generator: generator}
}

type coordinatePayload struct {
	Lat interface{} `json:"lat"`
	Lon interface{} `json:"lon"`
}

// Resolve asks the model for the coordinates of a place name
func (r *CoordinateResolver) Resolve(ctx context.Context, location string) (models.Coordinates, error) {
	location, ok := validation.TrimAndValidate(location)
	if !ok {
		return models.Coordinates{}, errors.NewValidationError("location cannot be empty")
	}

	text, err := r.generator.Generate(ctx, fmt.Sprintf(coordinatesPrompt, location))
	if err != nil {
		return models.Coordinates{}, errors.NewCoordinateExtractionError("model call failed", err)
	}

	var payload coordinatePayload
	if err := llm.ExtractJSONObject(text, &payload); err != nil {
		return models.Coordinates{}, errors.NewCoordinateExtractionError("could not extract coordinates from model output", err)
	}

	lat, err := parseCoordinate("lat", payload.Lat)
	if err != nil {
		return models.Coordinates{}, errors.NewCoordinateExtractionError("invalid latitude in model output", err)
	}

	lon, err := parseCoordinate("lon", payload.Lon)
	if err != nil {
		return models.Coordinates{}, errors.NewCoordinateExtractionError("invalid longitude in model output", err)
	}

	coords := models.Coordinates{Latitude: lat, Longitude: lon}
	if err := coords.Validate(); err != nil {
		return models.Coordinates{}, errors.NewCoordinateExtractionError("coordinates out of range", err)
	}

	return coords, nil
}

// parseCoordinate accepts the string values the model is asked for as well
// as bare numbers, since extraction may surface either. String values shed
// one layer of surrounding quotes before parsing.
func parseCoordinate(field string, value interface{}) (float64, error) {
	switch v := value.(type) {
	case string:
		s := validation.StripOuterQuotes(strings.TrimSpace(v))
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%s value %q is not numeric", field, v)
		}
		return parsed, nil
	case float64:
		return v, nil
	case nil:
		return 0, fmt.Errorf("%s field is missing", field)
	default:
		return 0, fmt.Errorf("%s field has unexpected type %T", field, value)
	}
}
