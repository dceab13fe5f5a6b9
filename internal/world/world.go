package world

import (
	"sort"

	"github.com/talgya/statecraft/internal/economy"
)

// World is the complete simulation context, passed explicitly to every
// phase. Entities are dense slices indexed by their typed handle; hot loops
// iterate index ranges, never pointer graphs.
type World struct {
	Day int

	// Static definition tables, built at scenario load.
	Commodities  []economy.Commodity
	PopTypes     []economy.PopType
	FactoryTypes []economy.FactoryType
	UnitTypes    []economy.UnitType
	Buildings    [economy.BuildingCount]economy.BuildingDef

	// Per-commodity global market state.
	CurrentPrice     []float64
	GlobalPool       []float64
	TotalProduction  []float64
	TotalRealDemand  []float64
	TotalConsumption []float64
	// PriceHistory is a bounded ring per commodity; PriceHistoryHead is the
	// next write slot.
	PriceHistory     [][PriceHistoryDays]float64
	PriceHistoryHead int

	Nations   []Nation
	States    []State
	Provinces []Province
	Pops      []Pop
	Factories []Factory
	Regiments []Regiment
	Ships     []Ship

	LandProjects     []LandProject
	NavalProjects    []NavalProject
	BuildingProjects []BuildingProject
	FactoryProjects  []FactoryProject

	Subsidies   []WarSubsidy
	Reparations []Reparation
}

// PriceHistoryDays bounds the per-commodity price ring.
const PriceHistoryDays = 32

// New builds an empty world over the given definition tables and allocates
// all per-commodity global state.
func New(commodities []economy.Commodity, popTypes []economy.PopType, factoryTypes []economy.FactoryType, unitTypes []economy.UnitType) *World {
	n := len(commodities)
	w := &World{
		Commodities:  commodities,
		PopTypes:     popTypes,
		FactoryTypes: factoryTypes,
		UnitTypes:    unitTypes,

		CurrentPrice:     make([]float64, n),
		GlobalPool:       make([]float64, n),
		TotalProduction:  make([]float64, n),
		TotalRealDemand:  make([]float64, n),
		TotalConsumption: make([]float64, n),
		PriceHistory:     make([][PriceHistoryDays]float64, n),
	}
	for c := range commodities {
		w.CurrentPrice[c] = commodities[c].BaseCost
		for d := 0; d < PriceHistoryDays; d++ {
			w.PriceHistory[c][d] = commodities[c].BaseCost
		}
	}
	return w
}

// RecordPrices pushes the current prices into the bounded history ring.
func (w *World) RecordPrices() {
	for c := range w.Commodities {
		w.PriceHistory[c][w.PriceHistoryHead] = w.CurrentPrice[c]
	}
	w.PriceHistoryHead = (w.PriceHistoryHead + 1) % PriceHistoryDays
}

// AddNation appends a nation with all per-commodity and per-pop-type slices
// allocated and neutral defaults set.
func (w *World) AddNation(n Nation) NationID {
	nc := len(w.Commodities)
	np := len(w.PopTypes)

	n.DomesticPool = make([]float64, nc)
	n.RealDemand = make([]float64, nc)
	n.DemandSat = make([]float64, nc)
	n.DirectDemandSat = make([]float64, nc)
	n.EffectivePrice = make([]float64, nc)
	n.ArmyDemand = make([]float64, nc)
	n.NavyDemand = make([]float64, nc)
	n.ConstructionDemand = make([]float64, nc)
	n.PrivateConstructionDemand = make([]float64, nc)
	n.Stockpiles = make([]float64, nc)
	n.StockpileTargets = make([]float64, nc)
	n.Imports = make([]float64, nc)
	n.ArtisanScore = make([]float64, nc)
	n.ArtisanShare = make([]float64, nc)
	n.ArtisanProduction = make([]float64, nc)
	n.LifeNeedWeights = make([]float64, nc)
	n.EverydayNeedWeights = make([]float64, nc)
	n.LuxuryNeedWeights = make([]float64, nc)
	n.LifeNeedsCosts = make([]float64, np)
	n.EverydayNeedsCosts = make([]float64, np)
	n.LuxuryNeedsCosts = make([]float64, np)

	copy(n.EffectivePrice, w.CurrentPrice)
	for c := 0; c < nc; c++ {
		n.LifeNeedWeights[c] = 1
		n.EverydayNeedWeights[c] = 1
		n.LuxuryNeedWeights[c] = 1
	}
	if n.Mods.MobilizationImpact == 0 {
		n.Mods.MobilizationImpact = 1
	}
	if n.Mods.FactoryOwnerCost == 0 {
		n.Mods.FactoryOwnerCost = 1
	}
	n.SpendingScale = 1
	n.PrivateInvestmentScale = 1
	n.Inflation = 1

	w.Nations = append(w.Nations, n)
	return NationID(len(w.Nations) - 1)
}

// AddState appends a state.
func (w *World) AddState(s State) StateID {
	w.States = append(w.States, s)
	return StateID(len(w.States) - 1)
}

// AddProvince appends a province with per-commodity slices allocated.
func (w *World) AddProvince(p Province) ProvinceID {
	nc := len(w.Commodities)
	if p.RGOMaxShare == nil {
		p.RGOMaxShare = make([]float64, nc)
	}
	p.RGOEmployment = make([]float64, nc)
	p.RGOTargetEmployment = make([]float64, nc)
	p.RGOProduction = make([]float64, nc)
	p.RGOProfit = make([]float64, nc)

	id := ProvinceID(len(w.Provinces))
	w.Provinces = append(w.Provinces, p)
	if p.State >= 0 {
		w.States[p.State].Provinces = append(w.States[p.State].Provinces, id)
	}
	return id
}

// AddPop appends a pop and registers it with its province.
func (w *World) AddPop(p Pop) PopID {
	id := PopID(len(w.Pops))
	w.Pops = append(w.Pops, p)
	w.Provinces[p.Province].Pops = append(w.Provinces[p.Province].Pops, id)
	return id
}

// AddFactory appends a live factory and registers it with its province.
func (w *World) AddFactory(f Factory) FactoryID {
	f.Live = true
	id := FactoryID(len(w.Factories))
	w.Factories = append(w.Factories, f)
	w.Provinces[f.Province].Factories = append(w.Provinces[f.Province].Factories, id)
	return id
}

// RemoveFactory marks a factory dead and unlinks it from its province.
func (w *World) RemoveFactory(id FactoryID) {
	f := &w.Factories[id]
	f.Live = false
	list := w.Provinces[f.Province].Factories
	for i, fid := range list {
		if fid == id {
			w.Provinces[f.Province].Factories = append(list[:i], list[i+1:]...)
			break
		}
	}
}

// RankedNations returns nation handles ordered by rank, strongest first.
// Sphere absorption and the serialized consumption pass both require this
// order.
func (w *World) RankedNations() []NationID {
	ids := make([]NationID, len(w.Nations))
	for i := range ids {
		ids[i] = NationID(i)
	}
	sort.Slice(ids, func(a, b int) bool {
		return w.Nations[ids[a]].Rank < w.Nations[ids[b]].Rank
	})
	return ids
}

// StateFactoryCount counts live factories plus queued new builds in a
// state, the figure capped by the factories-per-state rule.
func (w *World) StateFactoryCount(s StateID) int {
	n := 0
	for _, pid := range w.States[s].Provinces {
		n += len(w.Provinces[pid].Factories)
	}
	for i := range w.FactoryProjects {
		if w.FactoryProjects[i].State == s && !w.FactoryProjects[i].Upgrade {
			n++
		}
	}
	return n
}

// StatePopulation sums pop sizes across a state's provinces.
func (w *World) StatePopulation(s StateID) float64 {
	total := 0.0
	for _, pid := range w.States[s].Provinces {
		for _, popID := range w.Provinces[pid].Pops {
			total += w.Pops[popID].Size
		}
	}
	return total
}

// NationPopulation sums pop sizes across a nation.
func (w *World) NationPopulation(n NationID) float64 {
	total := 0.0
	for pid := range w.Provinces {
		if w.Provinces[pid].Owner != n {
			continue
		}
		for _, popID := range w.Provinces[pid].Pops {
			total += w.Pops[popID].Size
		}
	}
	return total
}

// PopTypeCount sums one pop type's population across a nation.
func (w *World) PopTypeCount(n NationID, t economy.PopTypeID) float64 {
	total := 0.0
	for pid := range w.Provinces {
		if w.Provinces[pid].Owner != n {
			continue
		}
		for _, popID := range w.Provinces[pid].Pops {
			if w.Pops[popID].Type == t {
				total += w.Pops[popID].Size
			}
		}
	}
	return total
}
