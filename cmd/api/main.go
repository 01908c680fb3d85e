package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomcal/internal/api"
	"roomcal/internal/config"
	"roomcal/internal/domain"
	"roomcal/internal/events"
	"roomcal/internal/export"
	"roomcal/internal/logging"
	"roomcal/internal/metrics"
	"roomcal/internal/repository"
	"roomcal/internal/service"
	"roomcal/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	store, cleanup, err := buildStore(cfg, logger)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()

	exporter := export.NewExporter(store, cfg, logger)
	exportWorker := worker.NewExportWorker(exporter, logger)
	exportWorker.Start(ctx)

	eventBus := events.NewEventBus()
	svc := service.NewReservationService(store, eventBus, exportWorker, cfg, logger)

	httpServer := api.NewHTTPServer(cfg, svc, logger)

	startMetricsServer(ctx, cfg, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	exportWorker.Wait()

	return nil
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, &logger, closer, nil
}

// buildStore picks the reservation store from config: Redis with an
// in-memory failover when enabled, else SQLite when a path is set, else
// plain in-memory.
func buildStore(cfg *config.Config, logger *zerolog.Logger) (domain.ReservationStore, func(), error) {
	if cfg.Redis.Enabled {
		client := repository.NewRedisClient(cfg.Redis)

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repository.Ping(pingCtx, client); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable at startup, failover will cover")
		}

		primary := repository.NewRedisReservationStore(client, logger)
		fallback := repository.NewMemoryReservationStore()
		store := repository.NewFailoverReservationStore(primary, fallback, logger)
		return store, func() { _ = repository.Close(client) }, nil
	}

	if cfg.Database.Path != "" {
		store, err := repository.NewSQLiteReservationStore(cfg.Database.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	}

	logger.Warn().Msg("no redis or sqlite configured, reservations are in-memory only")
	return repository.NewMemoryReservationStore(), nil, nil
}

func startMetricsServer(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("metrics listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}
