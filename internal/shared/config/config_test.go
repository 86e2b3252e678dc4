package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "LLM_PROVIDER", "LLM_MODEL", "ANALYZE_TIMEOUT_SECONDS", "CORS_ALLOW_ORIGINS", "PUBLIC_DIR"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "3000" {
		t.Fatalf("expected default port 3000, got %s", cfg.Port)
	}
	if cfg.LLMProvider != "gemini" || cfg.LLMModel != "gemini-2.5-flash" {
		t.Fatalf("unexpected provider defaults: %s %s", cfg.LLMProvider, cfg.LLMModel)
	}
	if cfg.AnalyzeTimeout != 60*time.Second {
		t.Fatalf("expected 60s timeout, got %s", cfg.AnalyzeTimeout)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowOrigin)
	}
	if cfg.PublicDir != "public" {
		t.Fatalf("unexpected public dir: %s", cfg.PublicDir)
	}
}

func TestLoadPortOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8081")

	if got := Load().Port; got != "8081" {
		t.Fatalf("expected port 8081, got %s", got)
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("GEMINI_API_KEY", "")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// Setenv registers the restore; the key must be absent for the file to apply.
	os.Unsetenv("GEMINI_API_KEY")

	cfg := Load()
	if cfg.GeminiAPIKey != "from-file" {
		t.Fatalf("expected key from .env, got %q", cfg.GeminiAPIKey)
	}
	if cfg.APIKey() != "from-file" {
		t.Fatalf("expected APIKey to use gemini key, got %q", cfg.APIKey())
	}
}

func TestLoadProviderSelection(t *testing.T) {
	tests := []struct {
		raw       string
		provider  string
		model     string
		apiKeyEnv string
	}{
		{raw: "OpenAI", provider: "openai", model: "gpt-4o-mini", apiKeyEnv: "OPENAI_API_KEY"},
		{raw: "mock", provider: "mock", model: "mock"},
		{raw: "unknown", provider: "gemini", model: "gemini-2.5-flash", apiKeyEnv: "GEMINI_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("LLM_PROVIDER", tt.raw)
			t.Setenv("LLM_MODEL", "")
			t.Setenv("OPENAI_API_KEY", "oa-key")
			t.Setenv("GEMINI_API_KEY", "gm-key")

			cfg := Load()
			if cfg.LLMProvider != tt.provider || cfg.LLMModel != tt.model {
				t.Fatalf("got provider=%s model=%s", cfg.LLMProvider, cfg.LLMModel)
			}
			want := ""
			if tt.apiKeyEnv != "" {
				want = os.Getenv(tt.apiKeyEnv)
			}
			if cfg.APIKey() != want {
				t.Fatalf("expected api key %q, got %q", want, cfg.APIKey())
			}
		})
	}
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ANALYZE_TIMEOUT_SECONDS", "soon")
	t.Setenv("RATE_LIMIT_RPS", "-2")
	t.Setenv("RATE_LIMIT_BURST", "0")

	cfg := Load()
	if cfg.AnalyzeTimeout != 60*time.Second {
		t.Fatalf("expected fallback timeout, got %s", cfg.AnalyzeTimeout)
	}
	if cfg.RateLimitRPS != 1 {
		t.Fatalf("expected fallback rps, got %g", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst != 0 {
		t.Fatalf("expected explicit zero burst, got %d", cfg.RateLimitBurst)
	}
}
