package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedTextGenerator wraps a TextGenerator with rate limiting so a
// burst of questions cannot exhaust the model's free-tier quota
type RateLimitedTextGenerator struct {
	generator TextGenerator
	limiter   *rate.Limiter
}

// NewRateLimitedTextGenerator creates a rate limited generator.
// requestsPerMinute is the sustained rate; burst is the number of calls
// allowed back to back (one query makes two model calls).
func NewRateLimitedTextGenerator(generator TextGenerator, requestsPerMinute, burst int) *RateLimitedTextGenerator {
	return &RateLimitedTextGenerator{
		generator: generator,
		limiter:   rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst),
	}
}

// Generate waits for rate limiter permission, then forwards to the
// underlying generator
func (r *RateLimitedTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait canceled: %w", err)
	}

	return r.generator.Generate(ctx, prompt)
}

// Verify that the rate limited generator implements the required interface
var _ TextGenerator = (*RateLimitedTextGenerator)(nil)
