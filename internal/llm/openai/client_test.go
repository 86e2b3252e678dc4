package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"healthai-backend/internal/llm"
)

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, func() map[string]any) {
	t.Helper()
	var mu sync.Mutex
	var last map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if r.URL.Path != "/v1/chat/completions" {
			http.Error(w, "unexpected path", http.StatusNotFound)
			return
		}
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		mu.Lock()
		last = payload
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, func() map[string]any {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func TestAnalyzeSendsStrictSchema(t *testing.T) {
	srv, lastBody := newTestServer(t, http.StatusOK,
		`{"choices":[{"index":0,"message":{"role":"assistant","content":"{\"reply\":\"Hydrate.\",\"mhScore\":20,\"phScore\":40,\"color\":\"GREEN\"}"}}]}`)

	client, err := NewClient("test-key", "", Options{BaseURL: srv.URL + "/v1/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	raw, err := client.Analyze(context.Background(), llm.Request{Message: "headache", Prompt: llm.DefaultPrompt()})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if string(raw) != `{"reply":"Hydrate.","mhScore":20,"phScore":40,"color":"GREEN"}` {
		t.Fatalf("unexpected content %s", raw)
	}

	body := lastBody()
	if body["model"] != DefaultModel {
		t.Fatalf("expected default model, got %v", body["model"])
	}
	format, _ := body["response_format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Fatalf("expected json_schema response format, got %v", body["response_format"])
	}
	schema, _ := format["json_schema"].(map[string]any)
	if schema["strict"] != true || schema["name"] != schemaName {
		t.Fatalf("unexpected json_schema block %v", schema)
	}
	messages, _ := body["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(messages))
	}
}

func TestAnalyzeMapsTooManyRequests(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusTooManyRequests,
		`{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`)

	client, err := NewClient("test-key", "gpt-4o-mini", Options{BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Analyze(context.Background(), llm.Request{Message: "hi", Prompt: llm.DefaultPrompt()})
	if !errors.Is(err, llm.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestAnalyzeServerErrorIsNotRateLimit(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusInternalServerError,
		`{"error":{"message":"boom","type":"server_error"}}`)

	client, err := NewClient("test-key", "gpt-4o-mini", Options{BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Analyze(context.Background(), llm.Request{Message: "hi", Prompt: llm.DefaultPrompt()})
	if err == nil || errors.Is(err, llm.ErrRateLimited) {
		t.Fatalf("expected non rate-limit error, got %v", err)
	}
}

func TestAnalyzeEmptyChoices(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"choices":[]}`)

	client, err := NewClient("test-key", "gpt-4o-mini", Options{BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.Analyze(context.Background(), llm.Request{Message: "hi", Prompt: llm.DefaultPrompt()}); err == nil {
		t.Fatal("expected error for missing choices")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini", Options{}); err == nil {
		t.Fatal("expected error without api key")
	}
}
