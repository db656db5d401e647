package logic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekoly/ufc-fight-prediction/internal/models"
)

func testSnapshots() []models.FighterSnapshot {
	return []models.FighterSnapshot{
		{
			Name:        "Jon Jones",
			WeightClass: "Light Heavyweight",
			Numeric: map[string]float64{
				"Reach_cms":  215.9,
				"Height_cms": 193.04,
				"wins":       26,
				"losses":     1,
			},
			Categorical: map[string]string{"Stance": "Orthodox"},
		},
		{
			Name:        "Dustin Poirier",
			WeightClass: "Lightweight",
			Numeric: map[string]float64{
				"Reach_cms":  math.NaN(),
				"Height_cms": 175.26,
				"wins":       26,
				"losses":     6,
			},
			Categorical: map[string]string{"Stance": "Southpaw"},
		},
		{
			Name:        "Charles Oliveira",
			WeightClass: "Lightweight",
			Numeric: map[string]float64{
				"Reach_cms":  187.96,
				"Height_cms": 177.8,
				"wins":       31,
				"losses":     8,
			},
			Categorical: map[string]string{"Stance": "Orthodox"},
		},
	}
}

func testRoster() RosterService {
	return NewRosterService(testSnapshots(), map[string]string{
		"Jon Jones":      "Bones",
		"Dustin Poirier": "The Diamond",
	})
}

func TestRoster_AllFighters(t *testing.T) {
	roster := testRoster()

	all := roster.AllFighters("")
	assert.Equal(t, []string{"Charles Oliveira", "Dustin Poirier", "Jon Jones"}, all)
}

func TestRoster_AllFightersByWeightClass(t *testing.T) {
	roster := testRoster()

	lw := roster.AllFighters("Lightweight")
	assert.Equal(t, []string{"Charles Oliveira", "Dustin Poirier"}, lw)

	assert.Empty(t, roster.AllFighters("Super Heavyweight"), "unknown class yields empty result")
}

func TestRoster_WeightClasses(t *testing.T) {
	classes := testRoster().WeightClasses()
	require.NotEmpty(t, classes)

	assert.Equal(t, "Heavyweight", classes[0].Value)
	last := classes[len(classes)-1]
	assert.Equal(t, "Open Weight", last.Label)
	assert.Equal(t, "", last.Value, "Open Weight is the catch-all")
}

func TestRoster_Lookups(t *testing.T) {
	roster := testRoster()

	assert.Equal(t, "Bones", roster.Nickname("Jon Jones"))
	assert.Equal(t, "215.9 cms", roster.Reach("Jon Jones"))
	assert.Equal(t, "193.04 cms", roster.Height("Jon Jones"))
	assert.Equal(t, "26", roster.Wins("Jon Jones"))
	assert.Equal(t, "1", roster.Losses("Jon Jones"))

	assert.Equal(t, "-", roster.Reach("Dustin Poirier"), "missing stat yields placeholder")
}

func TestRoster_UnknownFighterPlaceholders(t *testing.T) {
	roster := testRoster()

	for _, name := range []string{"Unknown Fighter", ""} {
		assert.Equal(t, "", roster.Nickname(name))
		assert.Equal(t, "-", roster.Reach(name))
		assert.Equal(t, "-", roster.Height(name))
		assert.Equal(t, "-", roster.Wins(name))
		assert.Equal(t, "-", roster.Losses(name))
	}
}

func TestRoster_Card(t *testing.T) {
	card := testRoster().Card("Dustin Poirier")

	assert.Equal(t, models.FighterCard{
		Name:     "Dustin Poirier",
		Nickname: "The Diamond",
		Reach:    "-",
		Height:   "175.26 cms",
		Wins:     "26",
		Losses:   "6",
	}, card)
}
