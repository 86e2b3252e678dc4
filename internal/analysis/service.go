package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"healthai-backend/internal/llm"
	"healthai-backend/internal/shared/metrics"
	"healthai-backend/internal/shared/telemetry"
	"healthai-backend/internal/shared/util"
)

// Service relays one message to the configured model.
type Service struct {
	LLM      llm.Client
	Prompt   llm.Prompt
	Provider string
	Model    string
	// Timeout bounds the provider call; zero disables it.
	Timeout time.Duration
}

// Analyze forwards message with the configured prompt and returns the model's
// JSON text unchanged. Exactly one provider call is made per valid message.
func (s *Service) Analyze(ctx context.Context, message string) (json.RawMessage, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	metrics.IncAnalyzeRequests()

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	client := s.LLM
	if client == nil {
		client = llm.PlaceholderClient{}
	}

	start := time.Now()
	raw, err := client.Analyze(ctx, llm.Request{Message: message, Prompt: s.Prompt})
	if err == nil {
		raw, err = checkOutput(raw)
	}
	durationMs := time.Since(start).Milliseconds()
	metrics.ObserveAnalyzeDurationMs(float64(durationMs))

	fields := map[string]any{
		"provider":     s.Provider,
		"model":        s.Model,
		"duration_ms":  durationMs,
		"message_hash": util.Fingerprint(message),
		"message_len":  len(message),
	}
	outcome := Classify(err)
	fields["outcome"] = string(outcome)

	if err != nil {
		fields["err"] = err
		if outcome == OutcomeRateLimited {
			metrics.IncAnalyzeRateLimited()
			telemetry.Warn("analysis.failed", fields)
		} else {
			metrics.IncAnalyzeFailed()
			telemetry.Error("analysis.failed", fields)
		}
		return nil, err
	}

	metrics.IncAnalyzeSucceeded()
	fields["bytes"] = len(raw)
	telemetry.Info("analysis.complete", fields)
	return raw, nil
}

func checkOutput(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrInvalidModelOutput)
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidModelOutput, len(trimmed))
	}
	return json.RawMessage(trimmed), nil
}
