package logic

import (
	"context"
	"fmt"

	"github.com/ekoly/ufc-fight-prediction/internal/models"
)

type historyService struct {
	pg PgPool
}

// NewHistoryService reads stored predictions back from Postgres.
func NewHistoryService(pg PgPool) HistoryService {
	return &historyService{pg: pg}
}

func (s *historyService) Recent(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := s.pg.Query(ctx, `
		SELECT id, red_fighter, blue_fighter, winner, confidence, created_at
		FROM bout_predictions
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent predictions: %w", err)
	}
	defer rows.Close()

	records := make([]models.PredictionRecord, 0, limit)
	for rows.Next() {
		var rec models.PredictionRecord
		if err := rows.Scan(&rec.ID, &rec.RedFighter, &rec.BlueFighter, &rec.Winner, &rec.Confidence, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("recent predictions: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *historyService) HeadToHead(ctx context.Context, redFighter, blueFighter string) (*models.HeadToHead, error) {
	h2h := &models.HeadToHead{RedFighter: redFighter, BlueFighter: blueFighter}

	// Either corner order counts toward the same pair.
	err := s.pg.QueryRow(ctx, `
		SELECT
			count(*),
			count(*) FILTER (WHERE winner = $1),
			count(*) FILTER (WHERE winner = $2)
		FROM bout_predictions
		WHERE (red_fighter = $1 AND blue_fighter = $2)
		   OR (red_fighter = $2 AND blue_fighter = $1)
	`, redFighter, blueFighter).Scan(&h2h.Total, &h2h.RedWins, &h2h.BlueWins)
	if err != nil {
		return nil, fmt.Errorf("head to head: %w", err)
	}
	return h2h, nil
}
