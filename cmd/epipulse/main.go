package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"epicli/internal/app"
	"epicli/internal/config"
	"epicli/internal/infrastructure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), uuid.NewString())

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	logger.InfoContext(ctx, "starting report pipeline",
		slog.String("source_url", cfg.Source.URL),
		slog.Any("countries", cfg.Entities.Countries),
		slog.String("reference_date", today.Format("2006-01-02")))

	path, err := app.New(cfg, today).Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "pipeline run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println(path)
}
