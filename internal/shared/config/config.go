package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	CORSAllowOrigin  []string
	PublicDir        string
	LLMProvider      string
	LLMModel         string
	GeminiAPIKey     string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	PromptConfigPath string
	AnalyzeTimeout   time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
	MaxBodyBytes     int64
	ReportLogoPath   string
	ReportAuthor     string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	provider := normalizeProvider(getEnv("LLM_PROVIDER", "gemini"))
	cfg := Config{
		Port:             getEnv("PORT", "3000"),
		Env:              normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		PublicDir:        getEnv("PUBLIC_DIR", "public"),
		LLMProvider:      provider,
		LLMModel:         getEnv("LLM_MODEL", defaultModel(provider)),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		PromptConfigPath: os.Getenv("PROMPT_CONFIG_PATH"),
		AnalyzeTimeout:   time.Duration(getInt("ANALYZE_TIMEOUT_SECONDS", 60)) * time.Second,
		RateLimitRPS:     getFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:   getInt("RATE_LIMIT_BURST", 10),
		MaxBodyBytes:     int64(getInt("MAX_BODY_BYTES", 1<<20)),
		ReportLogoPath:   os.Getenv("REPORT_LOGO_PATH"),
		ReportAuthor:     getEnv("REPORT_AUTHOR", "SAURAV KUMAR"),
	}

	if cfg.Env == "production" && cfg.APIKey() == "" && cfg.LLMProvider != "mock" {
		log.Printf("no API key configured for LLM provider %s", cfg.LLMProvider)
	}
	return cfg
}

// APIKey returns the key for the selected provider.
func (c Config) APIKey() string {
	switch c.LLMProvider {
	case "openai":
		return c.OpenAIAPIKey
	case "gemini":
		return c.GeminiAPIKey
	default:
		return ""
	}
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		// Load never overrides variables already present in the environment.
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: skip env file %s: %v", path, err)
		}
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		log.Printf("config: invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return parsed
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 {
		log.Printf("config: invalid %s=%q, using %g", key, raw, def)
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "mock":
		return "mock"
	default:
		return "gemini"
	}
}

func defaultModel(provider string) string {
	switch provider {
	case "openai":
		return "gpt-4o-mini"
	case "mock":
		return "mock"
	default:
		return "gemini-2.5-flash"
	}
}
