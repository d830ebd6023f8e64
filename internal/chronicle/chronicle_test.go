package chronicle_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LDCODES12/EconGame/internal/chronicle"
	"github.com/LDCODES12/EconGame/internal/game"
	"github.com/LDCODES12/EconGame/internal/military"
	"github.com/LDCODES12/EconGame/internal/nation"
)

func openTestChronicle(t *testing.T, path string) *chronicle.Chronicle {
	t.Helper()
	c, err := chronicle.Open(path, 42)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestChronicle_RecordsBattles(t *testing.T) {
	c := openTestChronicle(t, filepath.Join(t.TempDir(), "run.db"))

	c.RecordBattle("15 March 1402", &military.Report{
		ProvinceID:         7,
		AttackerNationID:   0,
		DefenderNationID:   1,
		Winner:             military.SideAttacker,
		AttackerCasualties: map[string]int{"infantry": 3},
		DefenderCasualties: map[string]int{"infantry": 12, "cavalry": 2},
	})
	c.RecordBattle("15 June 1402", &military.Report{
		ProvinceID:         8,
		AttackerNationID:   1,
		DefenderNationID:   0,
		Winner:             military.SideDefender,
		AttackerCasualties: map[string]int{},
		DefenderCasualties: map[string]int{},
	})

	rows, err := c.RecentBattles(10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Most recent first.
	assert.Equal(t, "15 June 1402", rows[0].Date)
	assert.Equal(t, "defender", rows[0].Winner)
	assert.Equal(t, 7, rows[1].ProvinceID)
	assert.Equal(t, 3, rows[1].AttackerLosses)
	assert.Equal(t, 14, rows[1].DefenderLosses)
}

func TestChronicle_RunsShareOneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.db")

	first := openTestChronicle(t, path)
	first.RecordBattle("1 January 1400", &military.Report{
		Winner:             military.SideAttacker,
		AttackerCasualties: map[string]int{},
		DefenderCasualties: map[string]int{},
	})

	second := openTestChronicle(t, path)
	assert.NotEqual(t, first.RunID, second.RunID)

	rows, err := second.RecentBattles(10)
	require.NoError(t, err)
	assert.Empty(t, rows, "battles are scoped to their own run")
}

func TestChronicle_YearSnapshotsUpsert(t *testing.T) {
	c := openTestChronicle(t, filepath.Join(t.TempDir(), "years.db"))

	nations := map[int]*nation.Nation{0: nation.New(0, "Francia", 0, 0)}
	stats := game.Statistics{WarsFought: 1, BattlesFought: 4}

	// Recording the same year twice must replace, not duplicate.
	c.RecordYear(1401, stats, nations)
	nations[0].Treasury = 250
	c.RecordYear(1401, stats, nations)

	rows, err := c.YearSnapshots(1401)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Francia", rows[0].NationName)
	assert.InDelta(t, 250, rows[0].Treasury, 1e-9)

	c.RecordEvent("1 January 1401", "diplomacy", "Francia declares war on Anglia")
}
