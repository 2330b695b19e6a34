package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/asyncopatedsoul/health-protocol/config"
	kafkaCfg "github.com/asyncopatedsoul/health-protocol/config/kafka"
	activityUC "github.com/asyncopatedsoul/health-protocol/internal/activity/usecase"
	"github.com/asyncopatedsoul/health-protocol/internal/bootstrap"
	importerKafka "github.com/asyncopatedsoul/health-protocol/internal/importer/delivery/kafka"
	importerUC "github.com/asyncopatedsoul/health-protocol/internal/importer/usecase"
	pkgKafka "github.com/asyncopatedsoul/health-protocol/pkg/kafka"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

// main is the entry point for the background consumer service.
// It reads note.saved messages from the note topic and imports each referenced note.
//
// Pattern:
//  1. Initialize infra (same as cmd/api/main.go)
//  2. Create UseCases
//  3. Create the Kafka reader, wire the handler
//  4. Run & graceful shutdown
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting consumer service...")

	// Infrastructure
	infra, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize infrastructure: ", err)
		return
	}
	defer infra.Close()

	reader, err := kafkaCfg.NewNoteReader(cfg.Kafka)
	if err != nil {
		logger.Error(ctx, "Kafka is required by the consumer: ", err)
		return
	}
	defer reader.Close()

	// UseCases
	resolver := activityUC.New(infra.Store, infra.Search, logger)
	importer := importerUC.New(logger, infra.Notes, infra.Store, infra.Store, infra.Store, resolver, infra.Publisher, bootstrap.ImporterConfig(cfg))

	// Consumer
	processor := pkgKafka.NewProcessor(reader, importerKafka.New(logger, importer), logger)

	logger.Infof(ctx, "Consumer running on topic %s (group %s)", cfg.Kafka.NoteTopic, cfg.Kafka.GroupID)
	if err := processor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "Consumer stopped: ", err)
		return
	}
	logger.Info(ctx, "Consumer service stopped gracefully")
}
