// Command stilbard is the StilBAR conversion API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/stilbar/internal/application/conversion"
	"github.com/turtacn/stilbar/internal/application/library"
	"github.com/turtacn/stilbar/internal/config"
	"github.com/turtacn/stilbar/internal/domain/compound"
	"github.com/turtacn/stilbar/internal/infrastructure/database/postgres"
	"github.com/turtacn/stilbar/internal/infrastructure/database/postgres/repositories"
	redisclient "github.com/turtacn/stilbar/internal/infrastructure/database/redis"
	"github.com/turtacn/stilbar/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/stilbar/internal/infrastructure/storage/csvstore"
	minioclient "github.com/turtacn/stilbar/internal/infrastructure/storage/minio"
	httpserver "github.com/turtacn/stilbar/internal/interfaces/http"
	"github.com/turtacn/stilbar/internal/interfaces/http/handlers"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment variables only)")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	if err := run(*configPath, *port); err != nil {
		fmt.Fprintf(os.Stderr, "stilbard: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, portOverride int) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if portOverride > 0 {
		cfg.Server.Port = portOverride
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	logger = logger.Named("stilbard")

	logger.Info("starting API server", logging.Int("port", cfg.Server.Port))

	// PostgreSQL: migrations, repository, seed.
	conn, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	if cfg.Database.MigrationPath != "" {
		if err := postgres.RunMigrations(postgres.BuildDSN(cfg.Database), cfg.Database.MigrationPath); err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}
	}

	repo := repositories.NewCompoundRepository(conn, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed, store := loadSeed(cfg, logger)
	seeded, err := repo.SeedIfEmpty(ctx, seed)
	if err != nil {
		return fmt.Errorf("library seeding failed: %w", err)
	}
	if seeded > 0 {
		logger.Info("seeded compound library", logging.Int("compounds", seeded))
	}

	index := compound.NewIndex()
	all, err := repo.All(ctx)
	if err != nil {
		return fmt.Errorf("library load failed: %w", err)
	}
	index.Reload(all)
	logger.Info("compound library loaded", logging.Int("compounds", index.Len()))

	// Redis: result cache and batch job store.
	rdb, err := redisclient.NewClient(cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()
	cache := redisclient.NewResultCache(rdb, cfg.Redis.DefaultTTL, logger)
	jobStore := redisclient.NewJobStore(rdb, 0, logger)

	// Kafka: conversion events and the batch job queue.
	producer, err := kafka.NewProducer(cfg.Kafka, logger)
	if err != nil {
		return err
	}
	defer producer.Close()
	events := kafka.NewEventPublisher(producer)
	jobQueue := kafka.NewJobQueue(producer)

	// MinIO: batch result artifacts.
	var artifacts conversion.ArtifactStore
	mc, err := minioclient.NewClient(cfg.MinIO, logger)
	if err != nil {
		logger.Warn("object storage unavailable, batch exports disabled", logging.Err(err))
	} else {
		artifacts = minioclient.NewArtifactStore(mc, cfg.MinIO.PresignExpiry)
	}

	metrics := prometheus.NewMetrics()

	convSvc := conversion.NewService(index, logger,
		conversion.WithCache(cache),
		conversion.WithEvents(events),
		conversion.WithMetrics(metrics),
	)
	runner := conversion.NewBatchRunner(convSvc, jobQueue, jobStore, artifacts,
		cfg.Worker.MaxBatchItems, logger)
	libSvc := library.NewService(repo, index, logger)

	health := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"postgres": handlers.PingerFunc(conn.HealthCheck),
		"redis":    handlers.PingerFunc(rdb.Ping),
	})

	router := httpserver.NewRouter(httpserver.RouterConfig{
		ConvertHandler: handlers.NewConvertHandler(convSvc, runner),
		LibraryHandler: handlers.NewLibraryHandler(libSvc),
		HealthHandler:  health,
		Logger:         logger,
		Metrics:        metrics,
		Mode:           ginMode(cfg.Server.Mode),
	})
	server := httpserver.NewServer(cfg.Server, router, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Stop(shutdownCtx)
	})

	// Optional CSV hot reload: re-import edited rows and refresh the index.
	if store != nil && cfg.Library.WatchCSV {
		g.Go(func() error {
			return store.Watch(gctx, func(compounds []*compound.Compound) {
				for _, c := range compounds {
					if err := repo.Save(gctx, c); err != nil {
						continue
					}
				}
				refreshed, err := repo.All(gctx)
				if err != nil {
					logger.Warn("library refresh failed", logging.Err(err))
					return
				}
				index.Reload(refreshed)
				logger.Info("compound library reloaded", logging.Int("compounds", index.Len()))
			})
		})
	}

	return g.Wait()
}

// loadSeed reads the seed library from the configured CSV, falling back to
// the embedded curated set.
func loadSeed(cfg *config.Config, logger logging.Logger) ([]*compound.Compound, *csvstore.Store) {
	if cfg.Library.CSVPath == "" {
		return compound.Seed(), nil
	}
	store := csvstore.NewStore(cfg.Library.CSVPath, cfg.Library.BackupOnWrite, logger)
	compounds, err := store.Load()
	if err != nil {
		logger.Warn("library CSV unreadable, using embedded seed",
			logging.String("path", cfg.Library.CSVPath), logging.Err(err))
		return compound.Seed(), store
	}
	return compounds, store
}

func ginMode(mode string) string {
	if mode == "" {
		return "release"
	}
	return mode
}
