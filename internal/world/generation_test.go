package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSmallWorld(t *testing.T) {
	w := Generate(SmallTestConfig())

	require.Equal(t, SmallTestConfig().NationCount, len(w.Nations))
	require.NotEmpty(t, w.Provinces, "sea level must leave land")
	require.NotEmpty(t, w.Pops)

	for pi := range w.Provinces {
		p := &w.Provinces[pi]
		assert.GreaterOrEqual(t, int(p.Owner), 0)
		assert.Less(t, int(p.Owner), len(w.Nations))
		assert.Equal(t, p.Owner, p.Controller)
		assert.GreaterOrEqual(t, int(p.State), 0)
		assert.Equal(t, p.Owner, w.States[p.State].Owner)
		assert.Greater(t, p.RGOSize, 0.0)
		assert.Equal(t, 1.0, p.RGOMaxShare[p.RGO], "primary resource takes the whole province")
	}

	for i := range w.Pops {
		pop := &w.Pops[i]
		assert.Greater(t, pop.Size, 0.0)
		assert.GreaterOrEqual(t, int(pop.Type), 0)
		assert.Less(t, int(pop.Type), len(w.PopTypes))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(SmallTestConfig())
	b := Generate(SmallTestConfig())

	require.Equal(t, len(a.Provinces), len(b.Provinces))
	require.Equal(t, len(a.Pops), len(b.Pops))
	for pi := range a.Provinces {
		assert.Equal(t, a.Provinces[pi].RGO, b.Provinces[pi].RGO)
		assert.Equal(t, a.Provinces[pi].RGOSize, b.Provinces[pi].RGOSize)
	}
	for i := range a.Pops {
		assert.Equal(t, a.Pops[i].Size, b.Pops[i].Size)
	}
}

func TestGenerateRanks(t *testing.T) {
	w := Generate(DefaultGenConfig())

	// Ranks are dense 1..N and the strongest nation leads every sphere.
	seen := make(map[int]bool)
	for i := range w.Nations {
		n := &w.Nations[i]
		assert.False(t, seen[n.Rank])
		seen[n.Rank] = true
		assert.GreaterOrEqual(t, n.Rank, 1)
		assert.LessOrEqual(t, n.Rank, len(w.Nations))

		if !n.Civilized {
			assert.Equal(t, NationID(0), n.SphereLeader)
		}
		assert.Greater(t, n.Treasury, 0.0)
	}
}
