package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ekoly/ufc-fight-prediction/internal/models"
)

// Well-known columns of the fighter statistics table.
const (
	ColFighter     = "fighter"
	ColDate        = "date"
	ColWeightClass = "weight_class"
	ColStance      = "Stance"
	ColReach       = "Reach_cms"
	ColHeight      = "Height_cms"
	ColWins        = "wins"
	ColLosses      = "losses"

	colIsWinner = "is_winner"
)

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

// LoadFighters reads the fighter statistics table and reduces it to one
// snapshot per fighter: pairwise columns (opponent mirrors, ratios) and the
// outcome label are dropped, rows are ordered by date, and the last row per
// fighter wins.
func LoadFighters(path string) ([]models.FighterSnapshot, error) {
	t, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if !t.Has(ColFighter) {
		return nil, fmt.Errorf("fighter table %s: missing %q column", path, ColFighter)
	}

	cols := individualColumns(t.Columns())
	numeric := numericColumns(t, cols)

	type datedRow struct {
		row  int
		date time.Time
	}
	rows := make([]datedRow, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		rows = append(rows, datedRow{row: i, date: parseDate(t.Get(i, ColDate))})
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].date.Before(rows[b].date) })

	latest := make(map[string]models.FighterSnapshot)
	order := make([]string, 0)
	for _, dr := range rows {
		name := strings.TrimSpace(t.Get(dr.row, ColFighter))
		if name == "" {
			continue
		}

		snap := models.FighterSnapshot{
			Name:        name,
			Date:        dr.date,
			WeightClass: t.Get(dr.row, ColWeightClass),
			Numeric:     make(map[string]float64),
			Categorical: make(map[string]string),
		}
		for _, col := range cols {
			if col == ColFighter || col == ColDate || col == ColWeightClass {
				continue
			}
			cell := t.Get(dr.row, col)
			if numeric[col] {
				snap.Numeric[col] = parseNumeric(cell)
			} else {
				snap.Categorical[col] = cell
			}
		}

		if _, seen := latest[name]; !seen {
			order = append(order, name)
		}
		latest[name] = snap
	}

	out := make([]models.FighterSnapshot, 0, len(latest))
	for _, name := range order {
		out = append(out, latest[name])
	}
	return out, nil
}

// LoadNicknames reads the name-to-nickname table. Absent or "nan" nicknames
// normalize to the empty string.
func LoadNicknames(path string) (map[string]string, error) {
	t, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if !t.Has("name") || !t.Has("nick") {
		return nil, fmt.Errorf("nickname table %s: expected name and nick columns", path)
	}

	nicks := make(map[string]string, t.Len())
	for i := 0; i < t.Len(); i++ {
		name := strings.TrimSpace(t.Get(i, "name"))
		if name == "" {
			continue
		}
		nick := strings.TrimSpace(t.Get(i, "nick"))
		if strings.EqualFold(nick, "nan") {
			nick = ""
		}
		nicks[name] = nick
	}
	return nicks, nil
}

// individualColumns filters the header down to per-fighter columns: the
// opponent mirrors, derived ratios and the outcome label are recomputed per
// bout at prediction time, never read from the table.
func individualColumns(header []string) []string {
	out := make([]string, 0, len(header))
	for _, col := range header {
		if col == colIsWinner {
			continue
		}
		if strings.Contains(col, "_opponent") || strings.HasSuffix(col, "_ratio") {
			continue
		}
		out = append(out, col)
	}
	return out
}

// numericColumns classifies columns: a column is numeric when every
// non-empty cell parses as a float. The identity columns are always treated
// as categorical.
func numericColumns(t *Table, cols []string) map[string]bool {
	numeric := make(map[string]bool, len(cols))
	for _, col := range cols {
		switch col {
		case ColFighter, ColDate, ColWeightClass, ColStance:
			continue
		}
		isNum := false
		for i := 0; i < t.Len(); i++ {
			cell := strings.TrimSpace(t.Get(i, col))
			if cell == "" || strings.EqualFold(cell, "nan") {
				continue
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isNum = false
				break
			}
			isNum = true
		}
		numeric[col] = isNum
	}
	return numeric
}

func parseNumeric(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "nan") {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseDate(cell string) time.Time {
	cell = strings.TrimSpace(cell)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts
		}
	}
	return time.Time{}
}
