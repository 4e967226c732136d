package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/suPer8Hu/legal-assistant/internal/app"
	"github.com/suPer8Hu/legal-assistant/internal/config"
	"github.com/suPer8Hu/legal-assistant/internal/store/rabbitmq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("worker exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, cfg.RabbitQueue, cfg.WorkerConcurrency)
	if err != nil {
		return err
	}
	defer consumer.Close()
	// generation timeout plus room for ingestion and status writes
	consumer.JobTimeout = cfg.AITimeout + time.Minute

	slog.Info("worker started", "queue", cfg.RabbitQueue, "concurrency", cfg.WorkerConcurrency)
	err = consumer.Run(ctx, a.Chat.RunJob)
	slog.Info("worker shutting down")
	return err
}
