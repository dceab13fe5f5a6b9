package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/tuning"
	"github.com/talgya/statecraft/internal/world"
)

// newBareSim builds a one-nation world with no pops or industry, so market
// state can be staged by hand.
func newBareSim(t *testing.T) (*Simulation, world.NationID) {
	t.Helper()
	w := world.New(world.StandardCommodities(), world.StandardPopTypes(),
		world.StandardFactoryTypes(), world.StandardUnitTypes())
	w.Buildings = world.StandardBuildings()

	id := w.AddNation(world.Nation{
		Name:         "Testland",
		Rank:         1,
		SphereLeader: world.NoNation,
		Mods: world.Modifiers{
			TaxEfficiency:            0.5,
			AdministrativeEfficiency: 0.5,
		},
	})

	tune := tuning.Default()
	s := NewSimulation(w, &tune)
	s.Workers = 2
	return s, id
}

func TestEffectivePriceBlending(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World
	n := &w.Nations[id]

	n.TariffRate = 10 // effective rate 0.05, markup 1.05
	base := w.CurrentPrice[world.Grain]

	n.DomesticPool[world.Grain] = 10
	w.GlobalPool[world.Grain] = 10

	// Fully covered at home: no markup.
	n.RealDemand[world.Grain] = 5
	s.populateEffectivePrices(id)
	assert.InDelta(t, base, n.EffectivePrice[world.Grain], 1e-9)

	// Spills into the world market: markup on the imported fraction only.
	n.RealDemand[world.Grain] = 15
	s.populateEffectivePrices(id)
	f := 10.0 / 15.0
	want := base*f + base*(1.0-f)*1.05
	assert.InDelta(t, want, n.EffectivePrice[world.Grain], 1e-9)

	// Demand beyond all supply: fraction fixed by pool sizes.
	n.RealDemand[world.Grain] = 40
	s.populateEffectivePrices(id)
	want = base*0.5 + base*0.5*1.05
	assert.InDelta(t, want, n.EffectivePrice[world.Grain], 1e-9)

	// No supply anywhere: the full markup applies.
	n.DomesticPool[world.Grain] = 0
	w.GlobalPool[world.Grain] = 0
	s.populateEffectivePrices(id)
	assert.InDelta(t, base*1.05, n.EffectivePrice[world.Grain], 1e-9)
}

func TestClearMarketDepletionOrder(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World
	n := &w.Nations[id]

	n.DomesticPool[world.Grain] = 4
	w.GlobalPool[world.Grain] = 100
	n.RealDemand[world.Grain] = 10

	s.clearMarket(id)

	// Tariff wall at or above par drains the home pool before importing.
	assert.Zero(t, n.DomesticPool[world.Grain])
	assert.InDelta(t, 94.0, w.GlobalPool[world.Grain], 1e-9)
	assert.InDelta(t, 6.0, n.Imports[world.Grain], 1e-9)
}

func TestClearMarketSatisfactionBounds(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World
	n := &w.Nations[id]

	n.DomesticPool[world.Grain] = 1
	n.RealDemand[world.Grain] = 1000
	n.RealDemand[world.Iron] = 10
	w.GlobalPool[world.Iron] = 1e6

	s.clearMarket(id)

	for c := range w.Commodities {
		require.GreaterOrEqual(t, n.DemandSat[c], 0.0)
		require.LessOrEqual(t, n.DemandSat[c], 1.0)
		require.LessOrEqual(t, n.DirectDemandSat[c], 1.0)
	}
	assert.Less(t, n.DemandSat[world.Grain], 0.1, "starved good stays unsatisfied")
	assert.Greater(t, n.DirectDemandSat[world.Iron], 0.99, "flooded good clears fully")
}

func TestDecayGlobalPoolFoldsDomestic(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World
	n := &w.Nations[id]

	w.GlobalPool[world.Grain] = 10
	n.DomesticPool[world.Grain] = 5

	s.decayGlobalPool()

	want := 10*s.Tuning.GlobalPoolDecay + 5
	assert.InDelta(t, want, w.GlobalPool[world.Grain], 1e-9)
	assert.Zero(t, n.DomesticPool[world.Grain])
}

func TestSphereAbsorption(t *testing.T) {
	s, leader := newBareSim(t)
	w := s.World

	member := w.AddNation(world.Nation{
		Name:         "Client",
		Rank:         2,
		Civilized:    false,
		SphereLeader: leader,
	})
	s.minWages = append(s.minWages, nationWages{})

	w.Nations[member].DomesticPool[world.Cotton] = 8

	// Uncivilized members are absorbed whole.
	s.absorbSphereProduction(leader)
	s.giveSphereLeaderProduction(member)

	assert.InDelta(t, 8.0, w.Nations[leader].DomesticPool[world.Cotton], 1e-9)
	assert.Zero(t, w.Nations[member].DomesticPool[world.Cotton])
}

func TestSphereShareCivilized(t *testing.T) {
	s, _ := newBareSim(t)

	m := &world.Nation{Civilized: true, Rank: 100, LeaderInvestment: 0}
	assert.InDelta(t, s.Tuning.CivBaseShare, s.sphereShare(m), 1e-9)

	m.LeaderInvestment = 1
	assert.InDelta(t, 1.0, s.sphereShare(m), 1e-9)

	gp := &world.Nation{Civilized: true, GreatPower: true}
	assert.InDelta(t, s.Tuning.SecondRankBaseShare, s.sphereShare(gp), 1e-9)
}

func TestRegisterSupplyAndDemandGDP(t *testing.T) {
	s, id := newBareSim(t)
	n := &s.World.Nations[id]

	registerDomesticSupply(n, world.Lumber, 10, 2.0)
	assert.InDelta(t, 20.0, n.GDP, 1e-9)
	assert.InDelta(t, 10.0, n.DomesticPool[world.Lumber], 1e-9)

	n.DemandSat[world.Timber] = 0.5
	registerIntermediateDemand(n, world.Timber, 4, 3.0)
	assert.InDelta(t, 4.0, n.RealDemand[world.Timber], 1e-9)
	assert.InDelta(t, 20.0-4*3.0*0.5, n.GDP, 1e-9)
}

func TestDepleteLeavesNoNegativePools(t *testing.T) {
	pool := 5.0
	left := deplete(&pool, 3)
	assert.Zero(t, left)
	assert.InDelta(t, 2.0, pool, 1e-9)

	left = deplete(&pool, 10)
	assert.InDelta(t, 8.0, left, 1e-9)
	assert.Zero(t, pool)

	assert.False(t, math.Signbit(pool))
}
