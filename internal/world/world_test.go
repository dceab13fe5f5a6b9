package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld() *World {
	w := New(StandardCommodities(), StandardPopTypes(), StandardFactoryTypes(), StandardUnitTypes())
	w.Buildings = StandardBuildings()
	return w
}

func TestNewInitializesPrices(t *testing.T) {
	w := newTestWorld()

	require.Len(t, w.CurrentPrice, int(CommodityCount))
	for c := range w.Commodities {
		assert.Equal(t, w.Commodities[c].BaseCost, w.CurrentPrice[c])
		for d := 0; d < PriceHistoryDays; d++ {
			assert.Equal(t, w.Commodities[c].BaseCost, w.PriceHistory[c][d])
		}
	}
}

func TestAddNationDefaults(t *testing.T) {
	w := newTestWorld()
	id := w.AddNation(Nation{Name: "Test", Rank: 1, SphereLeader: NoNation})
	n := &w.Nations[id]

	assert.Len(t, n.DomesticPool, int(CommodityCount))
	assert.Len(t, n.EffectivePrice, int(CommodityCount))
	assert.Len(t, n.LifeNeedsCosts, int(PopTypeCount))

	assert.Equal(t, 1.0, n.SpendingScale)
	assert.Equal(t, 1.0, n.Inflation)
	assert.Equal(t, 1.0, n.Mods.MobilizationImpact)
	assert.Equal(t, 1.0, n.Mods.FactoryOwnerCost)

	for c := range w.Commodities {
		assert.Equal(t, w.CurrentPrice[c], n.EffectivePrice[c])
		assert.Equal(t, 1.0, n.LifeNeedWeights[c])
	}
}

func TestRankedNations(t *testing.T) {
	w := newTestWorld()
	w.AddNation(Nation{Name: "C", Rank: 3, SphereLeader: NoNation})
	w.AddNation(Nation{Name: "A", Rank: 1, SphereLeader: NoNation})
	w.AddNation(Nation{Name: "B", Rank: 2, SphereLeader: NoNation})

	ranked := w.RankedNations()
	require.Len(t, ranked, 3)
	assert.Equal(t, "A", w.Nations[ranked[0]].Name)
	assert.Equal(t, "B", w.Nations[ranked[1]].Name)
	assert.Equal(t, "C", w.Nations[ranked[2]].Name)
}

func TestRecordPricesRing(t *testing.T) {
	w := newTestWorld()

	w.CurrentPrice[Grain] = 9.5
	w.RecordPrices()
	assert.Equal(t, 9.5, w.PriceHistory[Grain][0])
	assert.Equal(t, 1, w.PriceHistoryHead)

	// Head wraps after a full ring.
	for i := 0; i < PriceHistoryDays-1; i++ {
		w.RecordPrices()
	}
	assert.Equal(t, 0, w.PriceHistoryHead)
}

func TestFactoryLinking(t *testing.T) {
	w := newTestWorld()
	nid := w.AddNation(Nation{Name: "Test", Rank: 1, SphereLeader: NoNation})
	sid := w.AddState(State{Name: "State", Owner: nid})
	pid := w.AddProvince(Province{Name: "P", Owner: nid, Controller: nid, State: sid, RGO: Grain})

	fid := w.AddFactory(Factory{Type: LumberMill, Province: pid, Level: 1, ProductionScale: 1})
	require.True(t, w.Factories[fid].Live)
	require.Contains(t, w.Provinces[pid].Factories, fid)

	w.RemoveFactory(fid)
	assert.False(t, w.Factories[fid].Live)
	assert.NotContains(t, w.Provinces[pid].Factories, fid)
}

func TestPopulationCounts(t *testing.T) {
	w := newTestWorld()
	nid := w.AddNation(Nation{Name: "Test", Rank: 1, SphereLeader: NoNation})
	sid := w.AddState(State{Name: "State", Owner: nid})
	pid := w.AddProvince(Province{Name: "P", Owner: nid, Controller: nid, State: sid, RGO: Grain})

	w.AddPop(Pop{Type: Farmers, Province: pid, Size: 1000})
	w.AddPop(Pop{Type: Craftsmen, Province: pid, Size: 400})
	w.AddPop(Pop{Type: Farmers, Province: pid, Size: 600})

	assert.Equal(t, 2000.0, w.NationPopulation(nid))
	assert.Equal(t, 2000.0, w.StatePopulation(sid))
	assert.Equal(t, 1600.0, w.PopTypeCount(nid, Farmers))
	assert.Equal(t, 400.0, w.PopTypeCount(nid, Craftsmen))
}
