package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts LLM providers for symptom analysis. Implementations return
// the model's JSON text untouched.
type Client interface {
	Analyze(ctx context.Context, req Request) (json.RawMessage, error)
}

// Request captures one analysis call.
type Request struct {
	Message string
	Prompt  Prompt
}

var (
	// ErrRateLimited marks provider throttling (HTTP 429 or quota exhaustion).
	ErrRateLimited = errors.New("llm rate limited")
	// ErrNotConfigured is returned by the placeholder client.
	ErrNotConfigured = errors.New("llm provider not configured")
)

// PlaceholderClient stands in when no provider credentials are available.
type PlaceholderClient struct{}

// Analyze returns ErrNotConfigured.
func (PlaceholderClient) Analyze(ctx context.Context, req Request) (json.RawMessage, error) {
	_ = ctx
	_ = req
	return nil, ErrNotConfigured
}
