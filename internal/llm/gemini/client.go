package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"healthai-backend/internal/llm"
)

// DefaultModel balances latency and reliability for short advisory replies.
const DefaultModel = "gemini-2.5-flash"

// Client implements llm.Client on the Google Gen AI SDK.
type Client struct {
	models *genai.Models
	model  string
}

// Options tweak client construction; zero values use the public Gemini API.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient constructs a Gemini client. The SDK client is built once and shared
// by all requests.
func NewClient(ctx context.Context, apiKey, model string, opts Options) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	sdk, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{models: sdk.Models, model: model}, nil
}

// Analyze sends one user message with the prompt's system instruction and
// response schema, and returns the JSON text of the first candidate.
func (c *Client) Analyze(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.Prompt.SystemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    toGenaiSchema(req.Prompt.Schema),
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(req.Message), config)
	if err != nil {
		return nil, classify(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, errors.New("gemini response empty content")
	}
	return json.RawMessage(text), nil
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED" {
			return fmt.Errorf("%w: gemini: %s", llm.ErrRateLimited, apiErr.Message)
		}
		return fmt.Errorf("gemini http status %d: %s", apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return classify(*apiErrPtr)
	}
	return fmt.Errorf("gemini generate content: %w", err)
}

func toGenaiSchema(s llm.Schema) *genai.Schema {
	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		names := s.PropertyNames()
		for _, name := range names {
			if prop := s.Properties[name]; prop != nil {
				out.Properties[name] = toGenaiSchema(*prop)
			}
		}
		out.PropertyOrdering = names
	}
	if s.Items != nil {
		out.Items = toGenaiSchema(*s.Items)
	}
	return out
}

func genaiType(t string) genai.Type {
	switch strings.ToLower(t) {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

var _ llm.Client = (*Client)(nil)
