package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/tuning"
	"github.com/talgya/statecraft/internal/world"
)

// TestDailyUpdateStability runs the whole tick on a generated world and
// checks the invariants every phase relies on.
func TestDailyUpdateStability(t *testing.T) {
	w := world.Generate(world.SmallTestConfig())
	tune := tuning.Default()
	s := NewSimulation(w, &tune)
	s.Workers = 2

	const days = 15
	for d := 0; d < days; d++ {
		s.DailyUpdate()
	}
	require.Equal(t, days, w.Day)

	for c := range w.Commodities {
		p := w.CurrentPrice[c]
		require.False(t, math.IsNaN(p) || math.IsInf(p, 0), "price of %s", w.Commodities[c].Name)
		require.GreaterOrEqual(t, p, tune.MinPrice)
		require.LessOrEqual(t, p, tune.MaxPrice)
		require.GreaterOrEqual(t, w.GlobalPool[c], 0.0)
	}

	for i := range w.Nations {
		n := &w.Nations[i]
		require.False(t, math.IsNaN(n.Treasury), "treasury of %s", n.Name)
		require.False(t, math.IsNaN(n.GDP), "gdp of %s", n.Name)
		require.GreaterOrEqual(t, n.SpendingScale, 0.0)
		require.LessOrEqual(t, n.SpendingScale, 1.0)
		for c := range w.Commodities {
			require.GreaterOrEqual(t, n.DemandSat[c], 0.0)
			require.LessOrEqual(t, n.DemandSat[c], 1.0)
			require.GreaterOrEqual(t, n.DomesticPool[c], 0.0)
		}
	}

	for i := range w.Pops {
		pop := &w.Pops[i]
		require.False(t, math.IsNaN(pop.Savings), "pop %d savings", i)
		require.GreaterOrEqual(t, pop.LifeNeeds, 0.0)
		require.LessOrEqual(t, pop.Employment, pop.Size+1e-6)
	}
}

// Production should actually happen: after a warm-up the world market and
// GDP both carry real volume.
func TestDailyUpdateProducesOutput(t *testing.T) {
	w := world.Generate(world.SmallTestConfig())
	tune := tuning.Default()
	s := NewSimulation(w, &tune)
	s.Workers = 2

	for d := 0; d < 10; d++ {
		s.DailyUpdate()
	}

	totalProduction := 0.0
	for c := 1; c < len(w.Commodities); c++ {
		totalProduction += w.TotalProduction[c]
	}
	assert.Greater(t, totalProduction, 0.0)
	assert.Greater(t, s.WorldGDP(), 0.0)
	assert.Greater(t, s.MeanPriceLevel(), 0.0)
}

func TestRebalanceNeedsWeightsKeepsMean(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World

	// Skew one price hard and let the weights drift for a while.
	w.CurrentPrice[world.Grain] = 50
	for i := 0; i < 200; i++ {
		s.rebalanceNeedsWeights(id)
	}

	n := &w.Nations[id]
	total, count := 0.0, 0
	for c := range w.Commodities {
		if s.isLifeNeed[c] && w.Commodities[c].AvailableFromStart {
			total += n.LifeNeedWeights[c]
			count++
		}
	}
	require.Greater(t, count, 1)
	assert.InDelta(t, 1.0, total/float64(count), 0.01, "tier weights keep a mean of one")

	// The expensive good lost weight to its substitutes.
	assert.Less(t, n.LifeNeedWeights[world.Grain], 1.0)
}

func TestNotifyDrainEvents(t *testing.T) {
	s, id := newBareSim(t)

	s.Notify("factory_closed", id, 7)
	s.Notify("building_complete", id, 3)

	events := s.DrainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "factory_closed", events[0].Key)
	assert.Equal(t, int32(7), events[0].Subject)

	assert.Empty(t, s.DrainEvents(), "drain clears the queue")
}
