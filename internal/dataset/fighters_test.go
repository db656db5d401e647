package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const fightersCSV = `fighter,date,weight_class,Stance,Reach_cms,Height_cms,wins,losses,sig_strikes,sig_strikes_opponent,sig_strikes_ratio,is_winner
Jon Jones,2019-03-02,Light Heavyweight,Orthodox,215.9,193.04,23,1,4.3,2.1,1.5,True
Jon Jones,2020-02-08,Light Heavyweight,Orthodox,215.9,193.04,26,1,4.5,3.0,1.2,True
Dominick Reyes,2020-02-08,Light Heavyweight,Southpaw,,195.58,12,1,5.1,4.5,1.1,False
`

func TestLoadFighters_LatestSnapshotPerFighter(t *testing.T) {
	path := writeTempCSV(t, "fighters.csv", fightersCSV)

	snaps, err := LoadFighters(path)
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	byName := make(map[string]int)
	for i, s := range snaps {
		byName[s.Name] = i
	}

	jones := snaps[byName["Jon Jones"]]
	assert.Equal(t, "Light Heavyweight", jones.WeightClass)
	assert.Equal(t, "Orthodox", jones.Stance())
	assert.Equal(t, 26.0, jones.Numeric["wins"], "latest row should win")
	assert.Equal(t, 4.5, jones.Numeric["sig_strikes"])
}

func TestLoadFighters_DropsPairwiseColumns(t *testing.T) {
	path := writeTempCSV(t, "fighters.csv", fightersCSV)

	snaps, err := LoadFighters(path)
	require.NoError(t, err)

	for _, s := range snaps {
		assert.NotContains(t, s.Numeric, "sig_strikes_opponent")
		assert.NotContains(t, s.Numeric, "sig_strikes_ratio")
		assert.NotContains(t, s.Categorical, "is_winner")
		assert.NotContains(t, s.Numeric, "is_winner")
	}
}

func TestLoadFighters_MissingNumericIsNaN(t *testing.T) {
	path := writeTempCSV(t, "fighters.csv", fightersCSV)

	snaps, err := LoadFighters(path)
	require.NoError(t, err)

	for _, s := range snaps {
		if s.Name == "Dominick Reyes" {
			assert.True(t, math.IsNaN(s.Numeric["Reach_cms"]))
			assert.Equal(t, 195.58, s.Numeric["Height_cms"])
			return
		}
	}
	t.Fatal("snapshot for Dominick Reyes not found")
}

func TestLoadFighters_MissingFile(t *testing.T) {
	_, err := LoadFighters(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestLoadNicknames(t *testing.T) {
	path := writeTempCSV(t, "nicks.csv", "name,nick\nJon Jones,Bones\nDominick Reyes,The Devastator\nStipe Miocic,nan\n")

	nicks, err := LoadNicknames(path)
	require.NoError(t, err)

	assert.Equal(t, "Bones", nicks["Jon Jones"])
	assert.Equal(t, "", nicks["Stipe Miocic"], `"nan" nickname normalizes to empty`)
	_, ok := nicks["Unknown Fighter"]
	assert.False(t, ok)
}
