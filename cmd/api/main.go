package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthai-backend/internal/bootstrap"
	"healthai-backend/internal/shared/config"
	"healthai-backend/internal/shared/server"
	"healthai-backend/internal/shared/telemetry"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.Load()
	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	writeTimeout := 30 * time.Second
	if cfg.AnalyzeTimeout > 0 && cfg.AnalyzeTimeout+10*time.Second > writeTimeout {
		writeTimeout = cfg.AnalyzeTimeout + 10*time.Second
	}
	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	telemetry.Info("server.start", map[string]any{
		"addr":           srv.Addr,
		"env":            cfg.Env,
		"provider":       cfg.LLMProvider,
		"model":          cfg.LLMModel,
		"llm_configured": app.LLMConfigured,
	})
	waitForShutdown(srv)
}

func waitForShutdown(srv *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	telemetry.Info("server.shutdown", nil)
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		telemetry.Error("server.shutdown_failed", map[string]any{"err": err})
	}
}
