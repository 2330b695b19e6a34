package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/asyncopatedsoul/health-protocol/config"
	_ "github.com/asyncopatedsoul/health-protocol/docs" // Swagger docs
	"github.com/asyncopatedsoul/health-protocol/internal/bootstrap"
	"github.com/asyncopatedsoul/health-protocol/internal/httpserver"
	"github.com/asyncopatedsoul/health-protocol/internal/middleware"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

// @title       Health Protocol API
// @description Workout journal import, activity catalog and program scheduling.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Health Protocol API...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Infrastructure
	infra, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize infrastructure: ", err)
		return
	}
	defer infra.Close()

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:       logger,
		Port:         cfg.HTTPServer.Port,
		Mode:         cfg.HTTPServer.Mode,
		Environment:  cfg.Environment.Name,
		Store:        infra.Store,
		Notes:        infra.Notes,
		Programs:     infra.Programs,
		MemosWebhook: infra.MemosEnabled,
		Search:       infra.Search,
		Publisher:    infra.Publisher,
		Calendar:     infra.Calendar,
		Dates:        infra.Dates,
		Importer:     bootstrap.ImporterConfig(cfg),
		Plan:         bootstrap.PlanConfig(cfg),
		Middleware: middleware.Config{
			RequestsPerMin: cfg.HTTPServer.RateLimitPerMin,
			WebhookSecret:  cfg.Memos.WebhookSecret,
		},
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
