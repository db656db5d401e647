package models

import "time"

// FighterSnapshot is a fighter's most recent known statistical record,
// built once at load from the fighter statistics table. One snapshot per
// fighter name; ties broken by most recent bout date.
type FighterSnapshot struct {
	Name        string
	Date        time.Time
	WeightClass string

	// Numeric holds every per-fighter numeric column from the source table.
	// Missing cells are NaN.
	Numeric map[string]float64

	// Categorical holds the remaining string columns (Stance etc.).
	Categorical map[string]string
}

// Stance returns the fighter's stance, or "" when unknown.
func (s FighterSnapshot) Stance() string {
	return s.Categorical["Stance"]
}

// WeightClass is a (display label, internal value) pair. The catch-all
// Open Weight entry carries an empty Value.
type WeightClass struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FighterCard is the per-fighter stat summary shown next to a selected
// fighter. Absent values are the "-" placeholder (nickname: empty string).
type FighterCard struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Reach    string `json:"reach"`
	Height   string `json:"height"`
	Wins     string `json:"wins"`
	Losses   string `json:"losses"`
}
