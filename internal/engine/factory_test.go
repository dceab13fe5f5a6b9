package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/world"
)

func TestFactoryIsProfitable(t *testing.T) {
	assert.True(t, factoryIsProfitable(&world.Factory{}))
	assert.False(t, factoryIsProfitable(&world.Factory{Unprofitable: true}))
	assert.True(t, factoryIsProfitable(&world.Factory{Unprofitable: true, Subsidized: true}))
}

func TestUpdateFactoryScaleSubsidized(t *testing.T) {
	s, _ := newBareSim(t)

	f := &world.Factory{Type: world.LumberMill, Level: 1, ProductionScale: 0.5, Subsidized: true}
	scale := s.updateFactoryScale(f, 10.0, -1000.0, 1.0)

	// Subsidies override the profit controller entirely.
	assert.Greater(t, f.ProductionScale, 0.5)
	assert.LessOrEqual(t, f.ProductionScale, 1.0)
	assert.InDelta(t, f.ProductionScale*1.0, scale, 1e-9)
}

func TestUpdateFactoryScaleStaysBounded(t *testing.T) {
	s, _ := newBareSim(t)

	f := &world.Factory{Type: world.LumberMill, Level: 2, ProductionScale: 1.0}
	for i := 0; i < 50; i++ {
		s.updateFactoryScale(f, 100.0, 1e9, 1.0)
	}
	assert.LessOrEqual(t, f.ProductionScale, 1.0)

	for i := 0; i < 50; i++ {
		s.updateFactoryScale(f, 100.0, 0.0, 1e9)
	}
	assert.GreaterOrEqual(t, f.ProductionScale, 0.0)
}

func TestUpdateFactoryScaleOccupationThrottle(t *testing.T) {
	s, id := newBareSim(t)
	n := &s.World.Nations[id]

	f := &world.Factory{Type: world.LumberMill, Level: 4, PrimaryEmployment: 1.0}
	open := s.factoryMaxProductionScale(f, n, false)
	occupied := s.factoryMaxProductionScale(f, n, true)
	assert.InDelta(t, open*0.1, occupied, 1e-9)
}

func TestFactoryWithoutWorkersProducesNothing(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World

	sid := w.AddState(world.State{Name: "State", Owner: id})
	pid := w.AddProvince(world.Province{
		Name: "P", Owner: id, Controller: id, State: sid, RGO: world.Grain,
	})
	fid := w.AddFactory(world.Factory{
		Type: world.SteelMill, Province: pid, Level: 1,
		ProductionScale: 1, PrimaryEmployment: 0,
	})

	s.updateFactoryConsumption(fid, id, 0, false)
	f := &w.Factories[fid]
	assert.Zero(t, f.ActualProduction)
	assert.True(t, f.Unprofitable)

	n := &w.Nations[id]
	before := n.DomesticPool[world.Steel]
	s.realizeFactoryProduction(fid, id, 0)
	assert.Equal(t, before, n.DomesticPool[world.Steel], "nothing to sell")
	assert.Equal(t, 1, f.UnprofitableDays)
}

func TestPruneFactoriesClosesIdleUnprofitable(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World
	s.Tuning.FactoriesPerState = 1

	sid := w.AddState(world.State{Name: "State", Owner: id})
	pid := w.AddProvince(world.Province{
		Name: "P", Owner: id, Controller: id, State: sid, RGO: world.Grain,
	})
	w.States[sid].Capital = pid

	dead := w.AddFactory(world.Factory{
		Type: world.LumberMill, Province: pid, Level: 1,
		ProductionScale: 0, Unprofitable: true,
	})
	alive := w.AddFactory(world.Factory{
		Type: world.SteelMill, Province: pid, Level: 3, ProductionScale: 1,
	})

	s.pruneFactories()

	assert.False(t, w.Factories[dead].Live)
	assert.True(t, w.Factories[alive].Live)
	require.Len(t, w.Provinces[pid].Factories, 1)
	assert.Equal(t, alive, w.Provinces[pid].Factories[0])

	events := s.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "factory_closed", events[0].Key)
}

func TestPruneFactoriesKeepsSmallStates(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World
	// Default cap leaves room: 4 + 1 factory stays under the limit.
	s.Tuning.FactoriesPerState = 12

	sid := w.AddState(world.State{Name: "State", Owner: id})
	pid := w.AddProvince(world.Province{
		Name: "P", Owner: id, Controller: id, State: sid, RGO: world.Grain,
	})
	dead := w.AddFactory(world.Factory{
		Type: world.LumberMill, Province: pid, Level: 1,
		ProductionScale: 0, Unprofitable: true,
	})

	s.pruneFactories()

	assert.True(t, w.Factories[dead].Live, "below the state cap nothing closes")
}
