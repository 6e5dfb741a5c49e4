// Command stilbar-worker processes asynchronous batch conversion jobs from
// the Kafka queue.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/stilbar/internal/application/conversion"
	"github.com/turtacn/stilbar/internal/config"
	"github.com/turtacn/stilbar/internal/domain/compound"
	"github.com/turtacn/stilbar/internal/infrastructure/database/postgres"
	"github.com/turtacn/stilbar/internal/infrastructure/database/postgres/repositories"
	redisclient "github.com/turtacn/stilbar/internal/infrastructure/database/redis"
	"github.com/turtacn/stilbar/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/prometheus"
	minioclient "github.com/turtacn/stilbar/internal/infrastructure/storage/minio"
)

const defaultHealthPort = 8081

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment variables only)")
	healthPort := flag.Int("health-port", defaultHealthPort, "port for health and metrics endpoints")
	flag.Parse()

	if err := run(*configPath, *healthPort); err != nil {
		fmt.Fprintf(os.Stderr, "stilbar-worker: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, healthPort int) error {
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

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	logger = logger.Named("worker")

	logger.Info("starting batch worker",
		logging.String("group_id", cfg.Kafka.GroupID),
		logging.Int("concurrency", cfg.Worker.Concurrency))

	conn, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	repo := repositories.NewCompoundRepository(conn, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	index := compound.NewIndex()
	all, err := repo.All(ctx)
	if err != nil {
		return fmt.Errorf("library load failed: %w", err)
	}
	index.Reload(all)

	rdb, err := redisclient.NewClient(cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()
	jobStore := redisclient.NewJobStore(rdb, 0, logger)

	var artifacts conversion.ArtifactStore
	mc, err := minioclient.NewClient(cfg.MinIO, logger)
	if err != nil {
		logger.Warn("object storage unavailable, batch exports disabled", logging.Err(err))
	} else {
		artifacts = minioclient.NewArtifactStore(mc, cfg.MinIO.PresignExpiry)
	}

	metrics := prometheus.NewMetrics()

	convSvc := conversion.NewService(index, logger, conversion.WithMetrics(metrics))
	runner := conversion.NewBatchRunner(convSvc, noQueue{}, jobStore, artifacts,
		cfg.Worker.MaxBatchItems, logger)

	handler := func(ctx context.Context, job *conversion.BatchJob) error {
		// Per-job lock: a rebalance can redeliver an in-flight job to
		// another group member before its offset commits.
		lock := redisclient.NewLock(rdb, "job:"+job.ID, 0)
		held, err := lock.TryLock(ctx)
		if err != nil {
			return err
		}
		if !held {
			logger.Info("batch job already being processed, skipping",
				logging.String("job_id", job.ID))
			return nil
		}
		defer func() {
			if err := lock.Unlock(context.Background()); err != nil {
				logger.Warn("failed to release job lock",
					logging.String("job_id", job.ID), logging.Err(err))
			}
		}()

		start := time.Now()
		err = runner.Process(ctx, job)
		state := "completed"
		succeeded, failed := 0, 0
		if job.Result != nil {
			succeeded = job.Result.Summary.Succeeded
			failed = job.Result.Summary.Failed
		}
		if err != nil {
			state = "failed"
		}
		metrics.ObserveBatchJob(state, succeeded, failed, time.Since(start))
		return err
	}

	consumer, err := kafka.NewJobConsumer(cfg.Kafka, handler, logger)
	if err != nil {
		return err
	}
	defer consumer.Close()

	// Health and metrics endpoint for probes and scrapers.
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", metrics.Handler())
	healthSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", healthPort),
		Handler: mux,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Run(gctx)
	})
	g.Go(func() error {
		if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return healthSrv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("worker stopped",
		logging.Int64("processed", consumer.Processed()),
		logging.Int64("failed", consumer.Failed()))
	return err
}

// noQueue satisfies the runner's queue dependency; workers only dequeue, so
// submitting from a worker is a wiring bug.
type noQueue struct{}

func (noQueue) EnqueueBatchJob(context.Context, *conversion.BatchJob) error {
	return fmt.Errorf("batch jobs cannot be enqueued from a worker")
}
