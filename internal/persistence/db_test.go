package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/tuning"
	"github.com/talgya/statecraft/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestSim(t *testing.T) *engine.Simulation {
	t.Helper()
	w := world.Generate(world.SmallTestConfig())
	tune := tuning.Default()
	s := engine.NewSimulation(w, &tune)
	s.Workers = 2
	return s
}

func TestMetaRoundtrip(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SaveMeta("scenario", "1836"))
	v, err := db.GetMeta("scenario")
	require.NoError(t, err)
	assert.Equal(t, "1836", v)

	// Overwrite keeps one row per key.
	require.NoError(t, db.SaveMeta("scenario", "1840"))
	v, err = db.GetMeta("scenario")
	require.NoError(t, err)
	assert.Equal(t, "1840", v)

	_, err = db.GetMeta("missing")
	assert.Error(t, err)
}

func TestSaveDayRoundtrip(t *testing.T) {
	db := openTestDB(t)
	s := newTestSim(t)

	s.Notify("debtor_default", 0, -1)
	require.NoError(t, db.SaveDay(s))

	day, err := db.GetMeta("last_day")
	require.NoError(t, err)
	assert.Equal(t, "0", day)

	events, err := db.RecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "debtor_default", events[0].Key)

	var nations int
	require.NoError(t, db.conn.Get(&nations,
		"SELECT COUNT(*) FROM nations WHERE run_id = ?", db.RunID))
	assert.Equal(t, len(s.World.Nations), nations)

	var prices int
	require.NoError(t, db.conn.Get(&prices,
		"SELECT COUNT(*) FROM prices WHERE run_id = ?", db.RunID))
	assert.Equal(t, len(s.World.Commodities)-1, prices, "gold has no tracked market price")
}

func TestSaveDayIdempotentPerDay(t *testing.T) {
	db := openTestDB(t)
	s := newTestSim(t)

	require.NoError(t, db.SaveDay(s))
	require.NoError(t, db.SaveDay(s))

	var rows int
	require.NoError(t, db.conn.Get(&rows,
		"SELECT COUNT(*) FROM nations WHERE run_id = ? AND day = 0", db.RunID))
	assert.Equal(t, len(s.World.Nations), rows, "same-day saves replace, not append")
}

func TestRunsAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.db")
	first, err := Open(path)
	require.NoError(t, err)
	defer first.Close()
	s := newTestSim(t)
	require.NoError(t, first.SaveDay(s))

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()
	require.NotEqual(t, first.RunID, second.RunID)

	events, err := second.RecentEvents(10)
	require.NoError(t, err)
	assert.Empty(t, events, "a fresh run sees none of the old run's rows")

	_, err = second.GetMeta("last_day")
	assert.Error(t, err)
}
