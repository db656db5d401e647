package models

import (
	"time"

	"github.com/google/uuid"
)

// NoWinner is the sentinel returned when no prediction is possible.
const NoWinner = "-"

// BoutPrediction is the outcome of scoring a hypothetical bout.
type BoutPrediction struct {
	RedFighter  string  `json:"red_fighter"`
	BlueFighter string  `json:"blue_fighter"`
	Confidence  float64 `json:"confidence"` // 0-100
	Winner      string  `json:"winner"`     // fighter name or NoWinner

	// Up to three entries each, no duplicates within or across the lists.
	SupportingFactors []string `json:"supporting_factors"`
	OpposingFactors   []string `json:"opposing_factors"`

	// Scored is true only when the model actually ran, i.e. the result is
	// not one of the empty/identical/unknown-fighter short circuits.
	Scored bool `json:"-"`
}

// PredictionEvent is the analytics record emitted for every scored bout.
type PredictionEvent struct {
	ID                uuid.UUID `json:"id"`
	PredictedAt       time.Time `json:"predicted_at"`
	RedFighter        string    `json:"red_fighter"`
	BlueFighter       string    `json:"blue_fighter"`
	Winner            string    `json:"winner"`
	Confidence        float64   `json:"confidence"`
	SupportingFactors []string  `json:"supporting_factors"`
	OpposingFactors   []string  `json:"opposing_factors"`
}

// PredictionRecord is a stored prediction as read back from history.
type PredictionRecord struct {
	ID          string    `json:"id"`
	RedFighter  string    `json:"red_fighter"`
	BlueFighter string    `json:"blue_fighter"`
	Winner      string    `json:"winner"`
	Confidence  float64   `json:"confidence"`
	CreatedAt   time.Time `json:"created_at"`
}

// HeadToHead summarizes stored predictions for one fighter pair, in either
// corner order.
type HeadToHead struct {
	RedFighter  string `json:"red_fighter"`
	BlueFighter string `json:"blue_fighter"`
	Total       int    `json:"total"`
	RedWins     int    `json:"red_wins"`
	BlueWins    int    `json:"blue_wins"`
}

// MatchupCount is one entry of the most-requested-matchups leaderboard.
type MatchupCount struct {
	Matchup  string  `json:"matchup"`
	Requests float64 `json:"requests"`
}

// FactorCount is one entry of the most-cited-factors leaderboard.
type FactorCount struct {
	Factor string `json:"factor"`
	Cited  uint64 `json:"cited"`
}
