// Package resolver turns free-form weather questions into a place name and
// geographic coordinates using the language model.
package resolver

import (
	"context"
	"fmt"

	"weatherchat.app/errors"
	"weatherchat.app/llm"
	"weatherchat.app/pkg/validation"
)

const locationPrompt = `Extract only the location name from this question.
Question: %s
Return only the location name in JSON format like {"location": "extracted_location"}`

// LocationResolver extracts the place a question asks about
type LocationResolver struct {
	generator llm.TextGenerator
}

// NewLocationResolver creates a location resolver backed by the given generator
func NewLocationResolver(generator llm.TextGenerator) *LocationResolver {
	return &LocationResolver{generator: generator}
}

type locationPayload struct {
	Location string `json:"location"`
}

// Resolve asks the model which place the question refers to
func (r *LocationResolver) Resolve(ctx context.Context, question string) (string, error) {
	question, ok := validation.TrimAndValidate(question)
	if !ok {
		return "", errors.NewValidationError("question cannot be empty")
	}

	text, err := r.generator.Generate(ctx, fmt.Sprintf(locationPrompt, question))
	if err != nil {
		return "", errors.NewLocationExtractionError("model call failed", err)
	}

	var payload locationPayload
	if err := llm.ExtractJSONObject(text, &payload); err != nil {
		return "", errors.NewLocationExtractionError("could not extract a location from model output", err)
	}

	location, ok := validation.TrimAndValidate(payload.Location)
	if !ok {
		return "", errors.NewLocationExtractionError("model returned an empty location", nil)
	}

	return location, nil
}
