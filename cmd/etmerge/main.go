package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/couchcryptid/et0-merge/internal/adapter/console"
	"github.com/couchcryptid/et0-merge/internal/adapter/csvfile"
	kafkaadapter "github.com/couchcryptid/et0-merge/internal/adapter/kafka"
	"github.com/couchcryptid/et0-merge/internal/adapter/tsv"
	"github.com/couchcryptid/et0-merge/internal/config"
	"github.com/couchcryptid/et0-merge/internal/domain"
	"github.com/couchcryptid/et0-merge/internal/observability"
	"github.com/couchcryptid/et0-merge/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg, os.Stderr)
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	loaders := []pipeline.Loader{
		csvfile.NewWriter(filepath.Join(cfg.DataDir, domain.OutputFile), logger),
		console.NewPrinter(os.Stdout),
	}

	// Kafka publishing is feature-flagged via KAFKA_BROKERS.
	if cfg.KafkaEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		loaders = append(loaders, writer)
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(
		tsv.NewReader(cfg.DataDir, logger),
		pipeline.NewTransformer(domain.DefaultWindow(), logger),
		loaders,
		logger,
		metrics,
		clockwork.NewRealClock(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, runErr := p.Run(ctx)
	if runErr != nil {
		logger.Error("merge failed", "error", runErr, "class", domain.ErrorClass(runErr))
	}

	if cfg.PushgatewayURL != "" {
		if err := observability.Push(ctx, cfg.PushgatewayURL, reg); err != nil {
			logger.Warn("metrics push failed", "error", err, "url", cfg.PushgatewayURL)
		}
	}

	if runErr != nil {
		return 1
	}
	return 0
}
