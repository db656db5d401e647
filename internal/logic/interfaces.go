package logic

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ekoly/ufc-fight-prediction/internal/models"
)

// PgPool defines the interface for the PostgreSQL connection pool.
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RosterService answers fighter lookups over the tables loaded at startup.
// Unknown fighters yield placeholder values, never errors.
type RosterService interface {
	AllFighters(weightClass string) []string
	WeightClasses() []models.WeightClass
	Nickname(fighter string) string
	Reach(fighter string) string
	Height(fighter string) string
	Wins(fighter string) string
	Losses(fighter string) string
	Card(fighter string) models.FighterCard
}

// PredictionService scores hypothetical bouts.
type PredictionService interface {
	Predict(ctx context.Context, redFighter, blueFighter string) *models.BoutPrediction
}

// HistoryService reads back stored predictions.
type HistoryService interface {
	Recent(ctx context.Context, limit int) ([]models.PredictionRecord, error)
	HeadToHead(ctx context.Context, redFighter, blueFighter string) (*models.HeadToHead, error)
}

// AnalyticsService aggregates the prediction event stream.
type AnalyticsService interface {
	TopFactors(ctx context.Context, limit int) ([]models.FactorCount, error)
}
