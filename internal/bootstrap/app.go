package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"healthai-backend/internal/analysis"
	"healthai-backend/internal/llm"
	"healthai-backend/internal/llm/gemini"
	"healthai-backend/internal/llm/mock"
	openai "healthai-backend/internal/llm/openai"
	"healthai-backend/internal/report"
	"healthai-backend/internal/shared/config"
	"healthai-backend/internal/shared/server"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	LLM             llm.Client
	LLMConfigured   bool
	Prompt          llm.Prompt
	AnalysisService *analysis.Service
	AnalysisHandler *analysis.Handler
	ReportHandler   *report.Handler
}

// Build prepares dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	prompt, err := llm.LoadPrompt(cfg.PromptConfigPath)
	if err != nil {
		return nil, err
	}

	client, configured, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := &analysis.Service{
		LLM:      client,
		Prompt:   prompt,
		Provider: cfg.LLMProvider,
		Model:    cfg.LLMModel,
		Timeout:  cfg.AnalyzeTimeout,
	}

	app := &App{
		Config:          cfg,
		LLM:             client,
		LLMConfigured:   configured,
		Prompt:          prompt,
		AnalysisService: svc,
		AnalysisHandler: analysis.NewHandler(svc),
		ReportHandler:   report.NewHandler(report.NewGenerator(cfg.ReportAuthor, cfg.LLMModel, cfg.ReportLogoPath)),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		AnalysisHandler: app.AnalysisHandler,
		ReportHandler:   app.ReportHandler,
		Ready:           func() bool { return app.LLMConfigured },
	})
	return app, nil
}

// buildLLM selects the provider client. A missing key leaves the placeholder
// in place in dev-like environments and is an error elsewhere.
func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, bool, error) {
	if cfg.LLMProvider == "mock" {
		return mock.Client{}, true, nil
	}
	if strings.TrimSpace(cfg.APIKey()) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: no API key for %s; analyze requests will fail", cfg.LLMProvider)
			return llm.PlaceholderClient{}, false, nil
		}
		return nil, false, fmt.Errorf("API key required for LLM provider %s", cfg.LLMProvider)
	}

	switch cfg.LLMProvider {
	case "openai":
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, openai.Options{BaseURL: cfg.OpenAIBaseURL})
		if err != nil {
			return nil, false, err
		}
		return client, true, nil
	default:
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, gemini.Options{})
		if err != nil {
			return nil, false, err
		}
		return client, true, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
