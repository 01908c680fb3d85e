// Command export writes the month schedule workbook for a given date and
// exits. Useful for cron jobs and manual pulls outside the API process.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"roomcal/internal/config"
	"roomcal/internal/export"
	"roomcal/internal/logging"
	"roomcal/internal/models"
	"roomcal/internal/repository"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	var dateStr string
	flag.StringVar(&dateStr, "date", "", "any date inside the month to export (YYYY-MM-DD, default today)")
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	logger := baseLogger.With().Str("component", "export").Logger()

	ref := models.DayOf(time.Now())
	if dateStr != "" {
		ref, err = models.ParseDay(dateStr)
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if cfg.Database.Path == "" {
		return fmt.Errorf("database.path is required for one-shot export")
	}
	store, err := repository.NewSQLiteReservationStore(cfg.Database.Path, &logger)
	if err != nil {
		return fmt.Errorf("open sqlite store: %w", err)
	}
	defer store.Close()

	exporter := export.NewExporter(store, cfg, &logger)
	path, err := exporter.WriteMonth(ctx, ref)
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}
