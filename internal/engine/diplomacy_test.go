package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/world"
)

func newPairSim(t *testing.T) (*Simulation, world.NationID, world.NationID) {
	t.Helper()
	s, a := newBareSim(t)
	b := s.World.AddNation(world.Nation{Name: "Otherland", Rank: 2, SphereLeader: world.NoNation})
	s.minWages = append(s.minWages, nationWages{})
	return s, a, b
}

func TestWarSubsidyTransfer(t *testing.T) {
	s, a, b := newPairSim(t)
	w := s.World

	w.Nations[a].Treasury = 1000
	w.Nations[b].Treasury = 0
	w.Nations[b].MaximumMilitaryCosts = 100
	w.Subsidies = append(w.Subsidies, world.WarSubsidy{Source: a, Target: b})

	s.settleDiplomaticExpenses()

	cost := 100 * s.Tuning.WarSubsidiesFraction
	assert.InDelta(t, 1000-cost, w.Nations[a].Treasury, 1e-9)
	assert.InDelta(t, cost, w.Nations[b].Treasury, 1e-9)
	assert.Len(t, w.Subsidies, 1, "an affordable subsidy survives")
}

func TestWarSubsidyCancelledWhenBroke(t *testing.T) {
	s, a, b := newPairSim(t)
	w := s.World

	w.Nations[a].Treasury = 0.01
	w.Nations[b].MaximumMilitaryCosts = 1e6
	w.Subsidies = append(w.Subsidies, world.WarSubsidy{Source: a, Target: b})

	s.settleDiplomaticExpenses()

	assert.Empty(t, w.Subsidies)
	events := s.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "war_subsidies_end", events[0].Key)
	assert.Equal(t, a, events[0].Nation)
}

func TestReparationsCappedAndExpired(t *testing.T) {
	s, a, b := newPairSim(t)
	w := s.World

	w.Nations[a].Treasury = 50
	w.Nations[a].PoorIncome = 1e9
	w.Reparations = append(w.Reparations, world.Reparation{Source: a, Target: b, Until: w.Day + 10})

	s.settleDiplomaticExpenses()

	// The tax-based payout exceeds the treasury; only what exists moves.
	assert.Zero(t, w.Nations[a].Treasury)
	assert.InDelta(t, 50.0, w.Nations[b].Treasury, 1e-9)

	// Expired reparations pay nothing.
	w.Nations[a].Treasury = 50
	w.Reparations[0].Until = w.Day
	s.settleDiplomaticExpenses()
	assert.InDelta(t, 50.0, w.Nations[a].Treasury, 1e-9)
}
