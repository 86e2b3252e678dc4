package analysis

import (
	"context"
	"errors"

	"healthai-backend/internal/llm"
)

var (
	ErrEmptyMessage       = errors.New("message is required")
	ErrInvalidModelOutput = errors.New("model output is not a JSON object")
)

// Outcome labels how a relay call ended; it is logged and drives the status code.
type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeInvalidRequest Outcome = "invalid_request"
	OutcomeRateLimited    Outcome = "rate_limited"
	OutcomeThrottled      Outcome = "throttled"
	OutcomeTimeout        Outcome = "timeout"
	OutcomeInvalidOutput  Outcome = "invalid_output"
	OutcomeProviderError  Outcome = "provider_error"
)

// Classify maps a relay error onto an Outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrEmptyMessage):
		return OutcomeInvalidRequest
	case errors.Is(err, llm.ErrRateLimited):
		return OutcomeRateLimited
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, ErrInvalidModelOutput):
		return OutcomeInvalidOutput
	default:
		return OutcomeProviderError
	}
}
