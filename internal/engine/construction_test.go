package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/world"
)

func TestBuildTimeModifiersDecay(t *testing.T) {
	s, _ := newBareSim(t)

	early := s.nonFactoryBuildTimeModifier()
	s.World.Day = 5000
	late := s.nonFactoryBuildTimeModifier()

	assert.Greater(t, early, late, "construction slows down less as the game ages")
	assert.Greater(t, late, s.Tuning.NonFactoryBuildTimeInfinity)

	s.World.Day = 0
	fEarly := s.factoryBuildTimeModifier()
	s.World.Day = 5000
	fLate := s.factoryBuildTimeModifier()
	assert.Greater(t, fEarly, fLate)
	assert.Greater(t, fLate, s.Tuning.FactoryBuildTimeInfinity)
}

func TestRegisterUnfinishedSlots(t *testing.T) {
	var cost economy.CommoditySet
	cost.Add(world.Lumber, 100)
	cost.Add(world.Cement, 50)

	dst := make([]float64, world.CommodityCount)
	var purchased economy.SlotAmounts
	purchased[1] = 80 // cement slot already over 50*1.5

	registerUnfinishedSlots(dst, &cost, &purchased, 1.5, 10.0)

	assert.InDelta(t, 100*1.5/10.0, dst[world.Lumber], 1e-9)
	assert.Zero(t, dst[world.Cement], "finished slots draw nothing")
}

func TestPurchaseSlotsBoundedBySource(t *testing.T) {
	var cost economy.CommoditySet
	cost.Add(world.Lumber, 100)

	source := make([]float64, world.CommodityCount)
	source[world.Lumber] = 2.0
	var purchased economy.SlotAmounts

	// Daily draw would be 10 units, but only 2 are in the pool.
	purchaseSlots(source, &cost, &purchased, 1.0, 1.0, 10.0)
	assert.InDelta(t, 2.0, purchased[0], 1e-9)
	assert.Zero(t, source[world.Lumber])

	source[world.Lumber] = 1000
	purchaseSlots(source, &cost, &purchased, 1.0, 1.0, 10.0)
	assert.InDelta(t, 12.0, purchased[0], 1e-9)
	assert.InDelta(t, 990.0, source[world.Lumber], 1e-9)

	// A complete slot stops buying.
	purchased[0] = 100
	purchaseSlots(source, &cost, &purchased, 1.0, 1.0, 10.0)
	assert.InDelta(t, 100.0, purchased[0], 1e-9)
}

func TestSlotsComplete(t *testing.T) {
	var cost economy.CommoditySet
	cost.Add(world.Lumber, 100)
	cost.Add(world.Cement, 50)

	var purchased economy.SlotAmounts
	purchased[0] = 150
	purchased[1] = 74
	assert.False(t, slotsComplete(&cost, &purchased, 1.5))

	purchased[1] = 75
	assert.True(t, slotsComplete(&cost, &purchased, 1.5))
}

func TestAdvanceConstructionRefundsUndelivered(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World
	n := &w.Nations[id]

	n.Treasury = 0
	n.ConstructionSpending = 100
	n.ConstructionDemand[world.Lumber] = 10
	n.DemandSat[world.Lumber] = 0.5

	s.advanceConstruction(id)

	// Half the ordered lumber never arrived: its money flows back.
	price := w.CurrentPrice[world.Lumber]
	assert.InDelta(t, 10*0.5*price, n.Treasury, 1e-9)
	assert.InDelta(t, 5.0, n.ConstructionDemand[world.Lumber], 1e-9)
}

func TestResolveLandProject(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World

	sid := w.AddState(world.State{Name: "State", Owner: id})
	pid := w.AddProvince(world.Province{
		Name: "P", Owner: id, Controller: id, State: sid, RGO: world.Grain,
	})

	// Infantry costs 10 small arms and 10 canned food; the fixture's
	// admin factor of 1.5 raises each slot to 15.
	incomplete := economy.SlotAmounts{14.9, 15}
	complete := economy.SlotAmounts{15, 15}
	w.LandProjects = append(w.LandProjects,
		world.LandProject{Nation: id, Province: pid, Type: world.Infantry, Purchased: incomplete},
		world.LandProject{Nation: id, Province: pid, Type: world.Infantry, Purchased: complete},
	)

	s.resolveConstructions()

	require.Len(t, w.LandProjects, 1, "only the paid-up project finishes")
	assert.Equal(t, incomplete, w.LandProjects[0].Purchased)
	require.Len(t, w.Regiments, 1)
	assert.Equal(t, id, w.Regiments[0].Nation)

	events := s.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "regiment_built", events[0].Key)
}

func TestResolveFactoryProject(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World

	sid := w.AddState(world.State{Name: "State", Owner: id})
	pid := w.AddProvince(world.Province{
		Name: "P", Owner: id, Controller: id, State: sid, RGO: world.Grain,
	})
	w.States[sid].Capital = pid

	ft := &w.FactoryTypes[world.LumberMill]
	var purchased economy.SlotAmounts
	for i := 0; i < ft.ConstructionCosts.N; i++ {
		purchased[i] = ft.ConstructionCosts.Amounts[i] * 1.5
	}
	w.FactoryProjects = append(w.FactoryProjects, world.FactoryProject{
		Nation: id, State: sid, Type: world.LumberMill, Purchased: purchased,
	})

	s.resolveConstructions()

	require.Empty(t, w.FactoryProjects)
	require.Len(t, w.Provinces[pid].Factories, 1)
	f := &w.Factories[w.Provinces[pid].Factories[0]]
	assert.Equal(t, world.LumberMill, f.Type)
	assert.Equal(t, uint8(1), f.Level)
}

func TestFactoryUpgradeGrowsSuperlinearly(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World

	sid := w.AddState(world.State{Name: "State", Owner: id})
	pid := w.AddProvince(world.Province{
		Name: "P", Owner: id, Controller: id, State: sid, RGO: world.Grain,
	})
	w.States[sid].Capital = pid
	fid := w.AddFactory(world.Factory{Type: world.LumberMill, Province: pid, Level: 4, ProductionScale: 1})

	s.addFactoryLevelToState(sid, world.LumberMill, true)

	// 4 + 1 + sqrt(4)/2 = 6.
	assert.Equal(t, uint8(6), w.Factories[fid].Level)
	assert.Len(t, w.Provinces[pid].Factories, 1, "upgrades never open a second mill")
}

func TestResolveBuildingRespectsMaxLevel(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World

	sid := w.AddState(world.State{Name: "State", Owner: id})
	pid := w.AddProvince(world.Province{
		Name: "P", Owner: id, Controller: id, State: sid, RGO: world.Grain,
	})
	maxLevel := w.Buildings[economy.BuildingRailroad].MaxLevel
	w.Provinces[pid].Railroad = maxLevel

	def := &w.Buildings[economy.BuildingRailroad]
	var purchased economy.SlotAmounts
	for i := 0; i < def.Costs.N; i++ {
		purchased[i] = def.Costs.Amounts[i] * 1.5
	}
	w.BuildingProjects = append(w.BuildingProjects, world.BuildingProject{
		Nation: id, Province: pid, Type: economy.BuildingRailroad, Purchased: purchased,
	})

	s.resolveConstructions()

	assert.Empty(t, w.BuildingProjects, "project still resolves")
	assert.Equal(t, maxLevel, w.Provinces[pid].Railroad, "level is capped")
}
