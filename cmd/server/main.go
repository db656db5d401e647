package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ekoly/ufc-fight-prediction/internal/config"
	"github.com/ekoly/ufc-fight-prediction/internal/dataset"
	"github.com/ekoly/ufc-fight-prediction/internal/handlers"
	"github.com/ekoly/ufc-fight-prediction/internal/logic"
	"github.com/ekoly/ufc-fight-prediction/internal/mlmodel"
	"github.com/ekoly/ufc-fight-prediction/internal/models"
	"github.com/ekoly/ufc-fight-prediction/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := newLogger(cfg.Env)
	defer logger.Sync()
	sugar := logger.Sugar()

	// Reference tables and the model bundle are required. Load them in
	// parallel; any failure aborts startup.
	var (
		snapshots []models.FighterSnapshot
		nicknames map[string]string
		bundle    *mlmodel.Bundle
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		snapshots, err = dataset.LoadFighters(cfg.FightersCSV)
		return err
	})
	g.Go(func() error {
		var err error
		nicknames, err = dataset.LoadNicknames(cfg.NicknamesCSV)
		return err
	})
	g.Go(func() error {
		var err error
		bundle, err = mlmodel.LoadBundle(cfg.ModelBundle)
		return err
	})
	if err := g.Wait(); err != nil {
		sugar.Fatalw("Failed to load reference data", "error", err)
	}
	sugar.Infow("Reference data loaded",
		"fighters", len(snapshots),
		"nicknames", len(nicknames),
		"modelVersion", bundle.Manifest.Version,
	)

	roster := logic.NewRosterService(snapshots, nicknames)
	prediction, err := logic.NewPredictionService(snapshots, bundle)
	if err != nil {
		sugar.Fatalw("Failed to initialize prediction service", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional stores. A missing URL disables the feature; a configured URL
	// that cannot be reached after retries is fatal, since the operator
	// asked for it.
	pgPool := connectPostgres(ctx, sugar, cfg.PostgresURL)
	chConn := connectClickHouse(ctx, sugar, cfg.ClickHouseURL)
	redisClient := connectRedis(ctx, sugar, cfg.RedisURL)

	var history logic.HistoryService
	if pgPool != nil {
		history = logic.NewHistoryService(pgPool)
	}
	var analytics logic.AnalyticsService
	if chConn != nil {
		analytics = logic.NewAnalyticsService(chConn)
	}

	var pool *worker.Pool
	if pgPool != nil || chConn != nil || redisClient != nil {
		pool = worker.NewPool(worker.PoolConfig{
			WorkerCount:   cfg.WorkerCount,
			QueueSize:     cfg.QueueSize,
			BatchSize:     cfg.BatchSize,
			FlushInterval: cfg.FlushInterval,
			ClickHouse:    chConn,
			Postgres:      pgPool,
			Redis:         redisClient,
			Logger:        logger,
		})
		pool.Start(ctx)
	}

	hcfg := handlers.Config{
		Postgres:   pgPool,
		ClickHouse: chConn,
		Redis:      redisClient,
		Logger:     logger,
		CacheTTL:   cfg.CacheTTL,
		Roster:     roster,
		Prediction: prediction,
		History:    history,
		Analytics:  analytics,
	}
	if pool != nil {
		hcfg.WorkerPool = pool
	}
	h := handlers.New(hcfg)

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: h.Router(handlers.RouterConfig{
			AllowedOrigins:     cfg.AllowedOrigins,
			RateLimitPerSecond: float64(cfg.RateLimitPerSecond),
			RateLimitBurst:     cfg.RateLimitBurst,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sugar.Infow("Server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server shutdown error", "error", err)
	}

	if pool != nil {
		pool.Stop()
	}
	if pgPool != nil {
		pgPool.Close()
	}
	if chConn != nil {
		chConn.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}

	sugar.Info("Shutdown complete")
}

func newLogger(env string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func dialBackoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 30 * time.Second
	return backoff.WithContext(b, ctx)
}

func connectPostgres(ctx context.Context, sugar *zap.SugaredLogger, url string) *pgxpool.Pool {
	if url == "" {
		sugar.Info("Postgres not configured, prediction history disabled")
		return nil
	}

	var pool *pgxpool.Pool
	err := backoff.Retry(func() error {
		var err error
		pool, err = pgxpool.New(ctx, url)
		if err != nil {
			return err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return err
		}
		return nil
	}, dialBackoff(ctx))
	if err != nil {
		sugar.Fatalw("Failed to connect to Postgres", "error", err)
	}

	sugar.Info("Connected to Postgres")
	return pool
}

func connectClickHouse(ctx context.Context, sugar *zap.SugaredLogger, url string) driver.Conn {
	if url == "" {
		sugar.Info("ClickHouse not configured, prediction analytics disabled")
		return nil
	}

	opts, err := clickhouse.ParseDSN(url)
	if err != nil {
		sugar.Fatalw("Invalid ClickHouse DSN", "error", err)
	}

	var conn driver.Conn
	err = backoff.Retry(func() error {
		var err error
		conn, err = clickhouse.Open(opts)
		if err != nil {
			return err
		}
		return conn.Ping(ctx)
	}, dialBackoff(ctx))
	if err != nil {
		sugar.Fatalw("Failed to connect to ClickHouse", "error", err)
	}

	sugar.Info("Connected to ClickHouse")
	return conn
}

func connectRedis(ctx context.Context, sugar *zap.SugaredLogger, url string) *redis.Client {
	if url == "" {
		sugar.Info("Redis not configured, prediction cache and matchup counters disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		sugar.Fatalw("Invalid Redis URL", "error", err)
	}

	client := redis.NewClient(opts)
	err = backoff.Retry(func() error {
		return client.Ping(ctx).Err()
	}, dialBackoff(ctx))
	if err != nil {
		sugar.Fatalw("Failed to connect to Redis", "error", err)
	}

	sugar.Info("Connected to Redis")
	return client
}
