// Package worker implements the buffered worker pool that records scored
// bouts asynchronously. This decouples request handling from the optional
// stores, providing:
// - Backpressure handling via load shedding
// - Batch inserts for efficient ClickHouse writes
// - Graceful shutdown with flush guarantees
package worker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ekoly/ufc-fight-prediction/internal/logic"
	"github.com/ekoly/ufc-fight-prediction/internal/models"
)

// MatchupLeaderboardKey is the Redis sorted set counting prediction
// requests per fighter pair.
const MatchupLeaderboardKey = "matchup_requests"

// Prometheus metrics
var (
	predictionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ufc_predictions_recorded_total",
		Help: "Total number of prediction events enqueued",
	})

	predictionsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ufc_predictions_processed_total",
		Help: "Total number of prediction events processed by workers",
	})

	predictionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ufc_predictions_failed_total",
		Help: "Total number of prediction events that failed processing",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ufc_worker_queue_depth",
		Help: "Current depth of the worker queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ufc_batch_insert_duration_seconds",
		Help:    "Duration of prediction event batch writes",
		Buckets: prometheus.DefBuckets,
	})

	predictionsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ufc_predictions_load_shed_total",
		Help: "Total number of prediction events dropped due to load shedding",
	})
)

// Job represents a unit of work for the worker pool
type Job struct {
	Event     *models.PredictionEvent
	Timestamp time.Time
}

// PoolConfig configures the worker pool. Any of the three sinks may be nil;
// a nil sink is skipped.
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Postgres      logic.PgPool
	Redis         *redis.Client
	Logger        *zap.Logger
}

// Pool manages a pool of workers recording prediction events
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop gracefully shuts down the worker pool, flushing pending batches
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")

	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
	p.logger.Info("Worker pool stopped")
}

// Enqueue adds a prediction event to the queue. Returns false when the
// event was shed because the pool is stopping or the queue is full.
func (p *Pool) Enqueue(event *models.PredictionEvent) bool {
	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue prediction event (pool stopped)", "error", r)
		}
	}()

	job := Job{Event: event, Timestamp: time.Now()}

	select {
	case p.jobQueue <- job:
		predictionsRecorded.Inc()
		return true
	default:
		p.logger.Warn("Worker queue full, dropping prediction event")
		predictionsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker processes jobs from the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch processing failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			predictionsFailed.Add(float64(len(batch)))
		} else {
			predictionsProcessed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}

			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			flush()
			return
		}
	}
}

// processBatch writes a batch of prediction events to the configured sinks.
// Only the ClickHouse analytics write is treated as the batch outcome; the
// Redis counters and Postgres history are side effects logged on failure.
func (p *Pool) processBatch(batch []Job) error {
	if len(batch) == 0 {
		return nil
	}

	ctx := context.Background()

	p.updateMatchupCounters(ctx, batch)
	p.persistHistory(ctx, batch)

	if p.config.ClickHouse == nil {
		return nil
	}

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, `
		INSERT INTO ufc_stats.prediction_events (
			id, predicted_at, red_fighter, blue_fighter,
			winner, confidence, supporting_factors, opposing_factors
		)
	`)
	if err != nil {
		return err
	}

	for _, job := range batch {
		event := job.Event
		err := chBatch.Append(
			event.ID,
			event.PredictedAt,
			event.RedFighter,
			event.BlueFighter,
			event.Winner,
			event.Confidence,
			event.SupportingFactors,
			event.OpposingFactors,
		)
		if err != nil {
			p.logger.Warnw("Failed to append prediction event to batch", "error", err, "id", event.ID)
			continue
		}
	}

	if err := chBatch.Send(); err != nil {
		p.logger.Errorw("Failed to send batch to ClickHouse", "error", err, "batchSize", len(batch))
		return err
	}
	return nil
}

// updateMatchupCounters bumps the per-pair request counters in Redis.
func (p *Pool) updateMatchupCounters(ctx context.Context, batch []Job) {
	if p.config.Redis == nil {
		return
	}

	pipe := p.config.Redis.Pipeline()
	for _, job := range batch {
		pipe.ZIncrBy(ctx, MatchupLeaderboardKey, 1, MatchupKey(job.Event.RedFighter, job.Event.BlueFighter))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		p.logger.Errorw("Redis pipeline failed", "error", err)
	}
}

// persistHistory bulk-inserts the batch into the Postgres history table.
func (p *Pool) persistHistory(ctx context.Context, batch []Job) {
	if p.config.Postgres == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO bout_predictions (id, red_fighter, blue_fighter, winner, confidence, created_at) VALUES ")
	vals := []interface{}{}

	for i, job := range batch {
		event := job.Event
		n := i * 6
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6)
		vals = append(vals, event.ID, event.RedFighter, event.BlueFighter, event.Winner, event.Confidence, event.PredictedAt)
	}
	sb.WriteString(" ON CONFLICT (id) DO NOTHING")

	if _, err := p.config.Postgres.Exec(ctx, sb.String(), vals...); err != nil {
		p.logger.Errorw("Failed to bulk insert prediction history", "error", err, "count", len(batch))
	}
}

// MatchupKey normalizes a fighter pair so both corner orders count toward
// the same leaderboard entry.
func MatchupKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + " vs " + b
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
