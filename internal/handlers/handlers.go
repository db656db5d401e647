package handlers

import (
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ekoly/ufc-fight-prediction/internal/logic"
	"github.com/ekoly/ufc-fight-prediction/internal/models"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// EventQueue defines the interface for the prediction event worker pool
type EventQueue interface {
	Enqueue(event *models.PredictionEvent) bool
	QueueDepth() int
}

// Config wires the handler. The worker pool, stores and the history/
// analytics services are optional; their endpoints answer 503 when absent.
type Config struct {
	WorkerPool EventQueue
	Postgres   *pgxpool.Pool
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger
	CacheTTL   time.Duration
	// Services
	Roster     logic.RosterService
	Prediction logic.PredictionService
	History    logic.HistoryService
	Analytics  logic.AnalyticsService
}

type Handler struct {
	pool       EventQueue
	pg         *pgxpool.Pool
	ch         driver.Conn
	redis      *redis.Client
	logger     *zap.SugaredLogger
	validator  *validator.Validate
	cacheTTL   time.Duration
	roster     logic.RosterService
	prediction logic.PredictionService
	history    logic.HistoryService
	analytics  logic.AnalyticsService
}

func New(cfg Config) *Handler {
	return &Handler{
		pool:       cfg.WorkerPool,
		pg:         cfg.Postgres,
		ch:         cfg.ClickHouse,
		redis:      cfg.Redis,
		logger:     cfg.Logger.Sugar(),
		validator:  validator.New(),
		cacheTTL:   cfg.CacheTTL,
		roster:     cfg.Roster,
		prediction: cfg.Prediction,
		history:    cfg.History,
		analytics:  cfg.Analytics,
	}
}
