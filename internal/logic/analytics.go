package logic

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/ekoly/ufc-fight-prediction/internal/models"
)

type analyticsService struct {
	ch driver.Conn
}

// NewAnalyticsService aggregates the prediction event stream in ClickHouse.
func NewAnalyticsService(ch driver.Conn) AnalyticsService {
	return &analyticsService{ch: ch}
}

// TopFactors returns the most-cited supporting factor labels across all
// recorded predictions.
func (s *analyticsService) TopFactors(ctx context.Context, limit int) ([]models.FactorCount, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	rows, err := s.ch.Query(ctx, `
		SELECT factor, count() AS cited
		FROM ufc_stats.prediction_events
		ARRAY JOIN supporting_factors AS factor
		GROUP BY factor
		ORDER BY cited DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("top factors: %w", err)
	}
	defer rows.Close()

	factors := make([]models.FactorCount, 0, limit)
	for rows.Next() {
		var fc models.FactorCount
		if err := rows.Scan(&fc.Factor, &fc.Cited); err != nil {
			return nil, fmt.Errorf("top factors: %w", err)
		}
		factors = append(factors, fc)
	}
	return factors, rows.Err()
}
