package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/statecraft/internal/world"
)

func TestRGOProductionRegistersSupply(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World

	sid := w.AddState(world.State{Name: "State", Owner: id})
	pid := w.AddProvince(world.Province{
		Name: "P", Owner: id, Controller: id, State: sid, RGO: world.Grain,
	})
	p := &w.Provinces[pid]
	p.RGOProduction[world.Grain] = 10

	s.updateProvinceRGOProduction(int(pid), id)

	n := &w.Nations[id]
	price := w.CurrentPrice[world.Grain]
	assert.InDelta(t, 10.0, n.DomesticPool[world.Grain], 1e-9)
	assert.InDelta(t, 10*price, n.GDP, 1e-9)
	assert.InDelta(t, 10*price, p.RGOProfit[world.Grain], 1e-9)
	assert.InDelta(t, 10*price, p.RGOFullProfit, 1e-9)
}

func TestRGOGoldMintsTreasuryMoney(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World

	sid := w.AddState(world.State{Name: "State", Owner: id})
	pid := w.AddProvince(world.Province{
		Name: "P", Owner: id, Controller: id, State: sid, RGO: world.Gold,
	})
	p := &w.Provinces[pid]
	p.RGOProduction[world.Gold] = 5

	n := &w.Nations[id]
	n.Treasury = 0
	s.updateProvinceRGOProduction(int(pid), id)

	// Mined gold bypasses the market and becomes cash directly.
	assert.InDelta(t, 5*s.Tuning.GoldToCash, n.Treasury, 1e-9)
	assert.InDelta(t, 5.0, n.DomesticPool[world.Gold], 1e-9)
}

func TestUpdateRGOEmploymentBoundedByLabor(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World

	sid := w.AddState(world.State{Name: "State", Owner: id})
	pid := w.AddProvince(world.Province{
		Name: "P", Owner: id, Controller: id, State: sid, RGO: world.Grain,
		RGOSize: 10, AristocratOwnership: 1,
	})
	p := &w.Provinces[pid]
	p.RGOMaxShare[world.Grain] = 1
	p.RGOTargetEmployment[world.Grain] = 1e9

	farmers := w.AddPop(world.Pop{Type: world.Farmers, Province: pid, Size: 100})

	// Two rounds so the lagged employment snapshot catches up.
	s.updateRGOEmployment()
	s.updateRGOEmployment()

	assert.LessOrEqual(t, s.rgoTotalEmployment(p), 100.0+1e-9,
		"a province cannot employ more rural workers than live there")
	assert.Greater(t, p.RGOEmployment[world.Grain], 0.0)
	pop := &w.Pops[farmers]
	assert.LessOrEqual(t, pop.Employment, pop.Size+1e-9)
}
