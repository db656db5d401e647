package handlers

import (
	"context"

	"github.com/ekoly/ufc-fight-prediction/internal/models"
)

// MockEventQueue
type MockEventQueue struct {
	EnqueueFunc func(event *models.PredictionEvent) bool
	Enqueued    []*models.PredictionEvent
}

func (m *MockEventQueue) Enqueue(event *models.PredictionEvent) bool {
	m.Enqueued = append(m.Enqueued, event)
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(event)
	}
	return true
}
func (m *MockEventQueue) QueueDepth() int { return 0 }

// MockRosterService
type MockRosterService struct {
	AllFightersFunc func(weightClass string) []string
	CardFunc        func(fighter string) models.FighterCard
}

func (m *MockRosterService) AllFighters(weightClass string) []string {
	if m.AllFightersFunc != nil {
		return m.AllFightersFunc(weightClass)
	}
	return []string{"Jon Jones", "Stipe Miocic"}
}

func (m *MockRosterService) WeightClasses() []models.WeightClass {
	return []models.WeightClass{{Label: "Heavyweight", Value: "Heavyweight"}}
}

func (m *MockRosterService) Nickname(fighter string) string { return "Bones" }
func (m *MockRosterService) Reach(fighter string) string    { return "215.9 cms" }
func (m *MockRosterService) Height(fighter string) string   { return "193.04 cms" }
func (m *MockRosterService) Wins(fighter string) string     { return "26" }
func (m *MockRosterService) Losses(fighter string) string   { return "1" }

func (m *MockRosterService) Card(fighter string) models.FighterCard {
	if m.CardFunc != nil {
		return m.CardFunc(fighter)
	}
	return models.FighterCard{
		Name:     fighter,
		Nickname: "Bones",
		Reach:    "215.9 cms",
		Height:   "193.04 cms",
		Wins:     "26",
		Losses:   "1",
	}
}

// MockPredictionService
type MockPredictionService struct {
	PredictFunc func(ctx context.Context, redFighter, blueFighter string) *models.BoutPrediction
}

func (m *MockPredictionService) Predict(ctx context.Context, redFighter, blueFighter string) *models.BoutPrediction {
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, redFighter, blueFighter)
	}
	return &models.BoutPrediction{
		RedFighter:  redFighter,
		BlueFighter: blueFighter,
		Winner:      redFighter,
		Confidence:  75,
		Scored:      true,
	}
}

// MockHistoryService
type MockHistoryService struct {
	RecentFunc     func(ctx context.Context, limit int) ([]models.PredictionRecord, error)
	HeadToHeadFunc func(ctx context.Context, redFighter, blueFighter string) (*models.HeadToHead, error)
}

func (m *MockHistoryService) Recent(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockHistoryService) HeadToHead(ctx context.Context, redFighter, blueFighter string) (*models.HeadToHead, error) {
	if m.HeadToHeadFunc != nil {
		return m.HeadToHeadFunc(ctx, redFighter, blueFighter)
	}
	return &models.HeadToHead{RedFighter: redFighter, BlueFighter: blueFighter}, nil
}

// MockAnalyticsService
type MockAnalyticsService struct {
	TopFactorsFunc func(ctx context.Context, limit int) ([]models.FactorCount, error)
}

func (m *MockAnalyticsService) TopFactors(ctx context.Context, limit int) ([]models.FactorCount, error) {
	if m.TopFactorsFunc != nil {
		return m.TopFactorsFunc(ctx, limit)
	}
	return nil, nil
}
