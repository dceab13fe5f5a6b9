package engine

import (
	"math"

	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/world"
)

// populateArmyConsumption rebuilds every nation's army supply demand from
// the regiment list.
func (s *Simulation) populateArmyConsumption() {
	w := s.World
	for i := range w.Nations {
		clearSlice(w.Nations[i].ArmyDemand)
	}
	for i := range w.Regiments {
		r := &w.Regiments[i]
		if r.Nation == world.NoNation {
			continue
		}
		n := &w.Nations[r.Nation]
		ut := &w.UnitTypes[r.Type]
		mod := math.Max(0.01, n.Mods.SupplyConsumption+1.0)
		for j := 0; j < ut.SupplyCost.N; j++ {
			n.ArmyDemand[ut.SupplyCost.Commodities[j]] += ut.SupplyCost.Amounts[j] * ut.SupplyConsumption * mod
		}
	}
}

func (s *Simulation) populateNavyConsumption() {
	w := s.World
	for i := range w.Nations {
		clearSlice(w.Nations[i].NavyDemand)
	}
	for i := range w.Ships {
		sh := &w.Ships[i]
		if sh.Nation == world.NoNation {
			continue
		}
		n := &w.Nations[sh.Nation]
		ut := &w.UnitTypes[sh.Type]
		mod := math.Max(0.01, n.Mods.SupplyConsumption+1.0)
		for j := 0; j < ut.SupplyCost.N; j++ {
			n.NavyDemand[ut.SupplyCost.Commodities[j]] += ut.SupplyCost.Amounts[j] * ut.SupplyConsumption * mod
		}
	}
}

func clearSlice(xs []float64) {
	for i := range xs {
		xs[i] = 0
	}
}

// Construction time asymptotes: slow at the start to avoid an initial
// demand bomb, faster later. Factories run on their own, gentler curve.
func (s *Simulation) nonFactoryBuildTimeModifier() float64 {
	t := s.Tuning
	diff := t.NonFactoryBuildTimeDayOne - t.NonFactoryBuildTimeInfinity
	shift := -diff / t.NonFactoryBuildTimeSlope
	slope := diff * shift
	x := math.Sqrt(float64(s.World.Day)*0.01 + 2.0)
	return t.NonFactoryBuildTimeInfinity + slope/(x+shift)
}

func (s *Simulation) factoryBuildTimeModifier() float64 {
	t := s.Tuning
	diff := t.FactoryBuildTimeDayOne - t.FactoryBuildTimeInfinity
	shift := -diff / t.FactoryBuildTimeSlope
	slope := diff * shift
	x := math.Sqrt(float64(s.World.Day)*0.01 + 2.0)
	return t.FactoryBuildTimeInfinity + slope/(x+shift)
}

func adminCostFactor(n *world.Nation) float64 {
	return 2.0 - n.Mods.AdministrativeEfficiency
}

// registerUnfinishedSlots books the daily goods draw for cost slots still
// short of costFactor times the base cost.
func registerUnfinishedSlots(dst []float64, cost *economy.CommoditySet, purchased *economy.SlotAmounts, costFactor, time float64) {
	for i := 0; i < cost.N; i++ {
		if purchased[i] < cost.Amounts[i]*costFactor {
			dst[cost.Commodities[i]] += cost.Amounts[i] * costFactor / time
		}
	}
}

// populateConstructionConsumption rebuilds state construction demand from
// the project queues. Only owner-controlled provinces draw goods.
func (s *Simulation) populateConstructionConsumption() {
	w := s.World
	for i := range w.Nations {
		clearSlice(w.Nations[i].ConstructionDemand)
	}
	nonFactoryMod := s.nonFactoryBuildTimeModifier()
	factoryMod := s.factoryBuildTimeModifier()

	for i := range w.LandProjects {
		c := &w.LandProjects[i]
		p := &w.Provinces[c.Province]
		if p.Owner != c.Nation || p.Controller != c.Nation {
			continue
		}
		n := &w.Nations[c.Nation]
		ut := &w.UnitTypes[c.Type]
		time := nonFactoryMod * float64(ut.BuildTime)
		registerUnfinishedSlots(n.ConstructionDemand, &ut.BuildCost, &c.Purchased, adminCostFactor(n), time)
	}

	// Only the head of each province's naval queue buys goods.
	navalSeen := make(map[world.ProvinceID]bool)
	for i := range w.NavalProjects {
		c := &w.NavalProjects[i]
		if navalSeen[c.Province] {
			continue
		}
		navalSeen[c.Province] = true
		p := &w.Provinces[c.Province]
		if p.Owner != c.Nation || p.Controller != c.Nation {
			continue
		}
		n := &w.Nations[c.Nation]
		ut := &w.UnitTypes[c.Type]
		time := nonFactoryMod * float64(ut.BuildTime)
		registerUnfinishedSlots(n.ConstructionDemand, &ut.BuildCost, &c.Purchased, adminCostFactor(n), time)
	}

	for i := range w.BuildingProjects {
		c := &w.BuildingProjects[i]
		p := &w.Provinces[c.Province]
		if c.PopProject || p.Owner != c.Nation || p.Controller != c.Nation {
			continue
		}
		n := &w.Nations[c.Nation]
		def := &w.Buildings[c.Type]
		time := nonFactoryMod * float64(def.Time)
		registerUnfinishedSlots(n.ConstructionDemand, &def.Costs, &c.Purchased, adminCostFactor(n), time)
	}

	for i := range w.FactoryProjects {
		c := &w.FactoryProjects[i]
		if c.PopProject {
			continue
		}
		n := &w.Nations[c.Nation]
		ft := &w.FactoryTypes[c.Type]
		time := factoryMod * float64(ft.ConstructionTime)
		if c.Upgrade {
			time *= 0.5
		}
		costFactor := (n.Mods.FactoryCost + 1.0) * adminCostFactor(n)
		registerUnfinishedSlots(n.ConstructionDemand, &ft.ConstructionCosts, &c.Purchased, costFactor, time)
	}
}

// populatePrivateConstructionConsumption does the same for pop-financed
// projects, which skip the administrative cost markup.
func (s *Simulation) populatePrivateConstructionConsumption() {
	w := s.World
	for i := range w.Nations {
		clearSlice(w.Nations[i].PrivateConstructionDemand)
	}
	nonFactoryMod := s.nonFactoryBuildTimeModifier()
	factoryMod := s.factoryBuildTimeModifier()

	for i := range w.BuildingProjects {
		c := &w.BuildingProjects[i]
		p := &w.Provinces[c.Province]
		if !c.PopProject || p.Controller != c.Nation {
			continue
		}
		n := &w.Nations[c.Nation]
		def := &w.Buildings[c.Type]
		time := nonFactoryMod * float64(def.Time)
		registerUnfinishedSlots(n.PrivateConstructionDemand, &def.Costs, &c.Purchased, 1.0, time)
	}

	for i := range w.FactoryProjects {
		c := &w.FactoryProjects[i]
		if !c.PopProject {
			continue
		}
		n := &w.Nations[c.Nation]
		ft := &w.FactoryTypes[c.Type]
		time := factoryMod * float64(ft.ConstructionTime)
		if c.Upgrade {
			time *= 0.1
		}
		costFactor := (n.Mods.FactoryCost + 1.0) * math.Max(0.1, n.Mods.FactoryOwnerCost)
		registerUnfinishedSlots(n.PrivateConstructionDemand, &ft.ConstructionCosts, &c.Purchased, costFactor, time)
	}
}

// purchaseSlots moves up to one day's draw from the demand pool into a
// project's purchase ledger.
func purchaseSlots(source []float64, cost *economy.CommoditySet, purchased *economy.SlotAmounts, costFactor, deltaFactor, time float64) {
	for i := 0; i < cost.N; i++ {
		if purchased[i] >= cost.Amounts[i]*costFactor {
			continue
		}
		c := cost.Commodities[i]
		delta := math.Max(0.0, math.Min(source[c], cost.Amounts[i]*deltaFactor/time))
		purchased[i] += delta
		source[c] -= delta
	}
}

// advanceConstruction settles the day's construction purchases: money for
// undelivered goods flows back to the treasury, the delivered remainder is
// handed out to projects, one land and one naval project per province.
func (s *Simulation) advanceConstruction(id world.NationID) {
	w := s.World
	n := &w.Nations[id]
	cSpending := n.SpendingScale * n.ConstructionSpending / 100.0
	pSpending := n.PrivateInvestmentScale

	refund := 0.0
	for c := 1; c < len(w.Commodities); c++ {
		sat := n.DemandSat[c]
		refund += n.ConstructionDemand[c] * cSpending * (1.0 - sat) * w.CurrentPrice[c]
		n.ConstructionDemand[c] *= cSpending * sat
		n.PrivateConstructionDemand[c] *= pSpending * sat
	}
	n.Treasury += refund

	nonFactoryMod := s.nonFactoryBuildTimeModifier()
	factoryMod := s.factoryBuildTimeModifier()
	adminFactor := adminCostFactor(n)

	landSeen := make(map[world.ProvinceID]bool)
	for i := range w.LandProjects {
		c := &w.LandProjects[i]
		if c.Nation != id || landSeen[c.Province] {
			continue
		}
		p := &w.Provinces[c.Province]
		if p.Controller != id {
			continue
		}
		landSeen[c.Province] = true
		ut := &w.UnitTypes[c.Type]
		time := nonFactoryMod * float64(ut.BuildTime)
		purchaseSlots(n.ConstructionDemand, &ut.BuildCost, &c.Purchased, adminFactor, 1.0, time)
	}

	navalSeen := make(map[world.ProvinceID]bool)
	for i := range w.NavalProjects {
		c := &w.NavalProjects[i]
		if c.Nation != id || navalSeen[c.Province] {
			continue
		}
		p := &w.Provinces[c.Province]
		if p.Controller != id {
			continue
		}
		navalSeen[c.Province] = true
		ut := &w.UnitTypes[c.Type]
		time := nonFactoryMod * float64(ut.BuildTime)
		purchaseSlots(n.ConstructionDemand, &ut.BuildCost, &c.Purchased, adminFactor, 1.0, time)
	}

	for i := range w.BuildingProjects {
		c := &w.BuildingProjects[i]
		if c.Nation != id {
			continue
		}
		p := &w.Provinces[c.Province]
		if p.Owner != p.Controller {
			continue
		}
		def := &w.Buildings[c.Type]
		time := nonFactoryMod * float64(def.Time)
		if c.PopProject {
			purchaseSlots(n.PrivateConstructionDemand, &def.Costs, &c.Purchased, 1.0, 1.0, time)
		} else {
			purchaseSlots(n.ConstructionDemand, &def.Costs, &c.Purchased, adminFactor, 1.0, time)
		}
	}

	for i := range w.FactoryProjects {
		c := &w.FactoryProjects[i]
		if c.Nation != id {
			continue
		}
		ft := &w.FactoryTypes[c.Type]
		time := factoryMod * float64(ft.ConstructionTime)
		if c.Upgrade {
			time *= 0.1
		}
		factoryCost := n.Mods.FactoryCost + 1.0
		if c.PopProject {
			costFactor := factoryCost * math.Max(0.1, n.Mods.FactoryOwnerCost)
			purchaseSlots(n.PrivateConstructionDemand, &ft.ConstructionCosts, &c.Purchased, costFactor, costFactor, time)
		} else {
			purchaseSlots(n.ConstructionDemand, &ft.ConstructionCosts, &c.Purchased, factoryCost*adminFactor, factoryCost, time)
		}
	}
}

func slotsComplete(cost *economy.CommoditySet, purchased *economy.SlotAmounts, costFactor float64) bool {
	for i := 0; i < cost.N; i++ {
		if purchased[i] < cost.Amounts[i]*costFactor {
			return false
		}
	}
	return true
}

// addFactoryLevelToState applies a finished factory project: upgrades grow
// an existing factory superlinearly, new builds open a level-one factory at
// the state capital.
func (s *Simulation) addFactoryLevelToState(si world.StateID, t economy.FactoryTypeID, upgrade bool) {
	w := s.World
	if upgrade {
		for _, pid := range w.States[si].Provinces {
			for _, fid := range w.Provinces[pid].Factories {
				f := &w.Factories[fid]
				if f.Type == t {
					level := math.Min(255.0, float64(f.Level)+1.0+math.Sqrt(float64(f.Level))/2.0)
					f.Level = uint8(level)
					return
				}
			}
		}
	}
	w.AddFactory(world.Factory{
		Type:            t,
		Province:        w.States[si].Capital,
		Level:           1,
		ProductionScale: 1.0,
	})
}

// resolveConstructions finishes every fully purchased project.
func (s *Simulation) resolveConstructions() {
	w := s.World

	for i := len(w.LandProjects) - 1; i >= 0; i-- {
		c := &w.LandProjects[i]
		n := &w.Nations[c.Nation]
		ut := &w.UnitTypes[c.Type]
		if !slotsComplete(&ut.BuildCost, &c.Purchased, adminCostFactor(n)) {
			continue
		}
		w.Regiments = append(w.Regiments, world.Regiment{Nation: c.Nation, Type: c.Type})
		s.Notify("regiment_built", c.Nation, int32(c.Province))
		w.LandProjects = append(w.LandProjects[:i], w.LandProjects[i+1:]...)
	}

	headDone := make(map[world.ProvinceID]bool)
	for i := len(w.NavalProjects) - 1; i >= 0; i-- {
		c := &w.NavalProjects[i]
		n := &w.Nations[c.Nation]
		ut := &w.UnitTypes[c.Type]
		if headDone[c.Province] || !slotsComplete(&ut.BuildCost, &c.Purchased, adminCostFactor(n)) {
			continue
		}
		headDone[c.Province] = true
		w.Ships = append(w.Ships, world.Ship{Nation: c.Nation, Type: c.Type})
		s.Notify("ship_built", c.Nation, int32(c.Province))
		w.NavalProjects = append(w.NavalProjects[:i], w.NavalProjects[i+1:]...)
	}

	for i := len(w.BuildingProjects) - 1; i >= 0; i-- {
		c := &w.BuildingProjects[i]
		n := &w.Nations[c.Nation]
		def := &w.Buildings[c.Type]
		costFactor := adminCostFactor(n)
		if c.PopProject {
			costFactor = 1.0
		}
		if !slotsComplete(&def.Costs, &c.Purchased, costFactor) {
			continue
		}
		p := &w.Provinces[c.Province]
		switch c.Type {
		case economy.BuildingRailroad:
			if p.Railroad < def.MaxLevel {
				p.Railroad++
			}
		case economy.BuildingFort:
			if p.Fort < def.MaxLevel {
				p.Fort++
			}
		case economy.BuildingNavalBase:
			if p.NavalBase < def.MaxLevel {
				p.NavalBase++
			}
		}
		s.Notify("building_complete", c.Nation, int32(c.Province))
		w.BuildingProjects = append(w.BuildingProjects[:i], w.BuildingProjects[i+1:]...)
	}

	for i := len(w.FactoryProjects) - 1; i >= 0; i-- {
		c := &w.FactoryProjects[i]
		n := &w.Nations[c.Nation]
		ft := &w.FactoryTypes[c.Type]
		factoryCost := n.Mods.FactoryCost + 1.0
		costFactor := factoryCost * adminCostFactor(n)
		if c.PopProject {
			costFactor = factoryCost * math.Max(0.1, n.Mods.FactoryOwnerCost)
		}
		if !slotsComplete(&ft.ConstructionCosts, &c.Purchased, costFactor) {
			continue
		}
		s.addFactoryLevelToState(c.State, c.Type, c.Upgrade)
		s.Notify("factory_complete", c.Nation, int32(c.State))
		w.FactoryProjects = append(w.FactoryProjects[:i], w.FactoryProjects[i+1:]...)
	}
}

// emulateConstructionDemand keeps military and industrial goods markets
// alive for nations whose construction queues are driven by no outside
// layer: it books demand as if a slice of national income were spent on
// infantry-artillery pairs and on one set of every starting factory type.
func (s *Simulation) emulateConstructionDemand(id world.NationID) {
	w := s.World
	n := &w.Nations[id]
	baseIncome := n.RichIncome + n.MiddleIncome + n.PoorIncome*0.00001

	var infantry, artillery economy.UnitTypeID = -1, -1
	for i := range w.UnitTypes {
		if w.UnitTypes[i].Naval {
			continue
		}
		if infantry < 0 {
			infantry = economy.UnitTypeID(i)
		} else if artillery < 0 {
			artillery = economy.UnitTypeID(i)
		}
	}
	if infantry >= 0 && artillery >= 0 {
		inf := &w.UnitTypes[infantry]
		art := &w.UnitTypes[artillery]
		dailyCost := 0.0
		for i := 0; i < inf.BuildCost.N; i++ {
			dailyCost += inf.BuildCost.Amounts[i] / float64(inf.BuildTime) * w.CurrentPrice[inf.BuildCost.Commodities[i]]
		}
		for i := 0; i < art.BuildCost.N; i++ {
			dailyCost += art.BuildCost.Amounts[i] / float64(art.BuildTime) * w.CurrentPrice[art.BuildCost.Commodities[i]]
		}
		pairs := baseIncome * 0.1 / (dailyCost + 1.0)
		for i := 0; i < inf.BuildCost.N; i++ {
			registerDemand(n, inf.BuildCost.Commodities[i], inf.BuildCost.Amounts[i]/float64(inf.BuildTime)*pairs)
		}
		for i := 0; i < art.BuildCost.N; i++ {
			registerDemand(n, art.BuildCost.Commodities[i], art.BuildCost.Amounts[i]/float64(art.BuildTime)*pairs)
		}
	}

	setCost := 0.0
	for ti := range w.FactoryTypes {
		ft := &w.FactoryTypes[ti]
		if !ft.AvailableFromStart {
			continue
		}
		for i := 0; i < ft.ConstructionCosts.N; i++ {
			setCost += w.CurrentPrice[ft.ConstructionCosts.Commodities[i]] *
				ft.ConstructionCosts.Amounts[i] / float64(ft.ConstructionTime)
		}
	}
	sets := baseIncome * 0.1 / (setCost + 1.0)
	for ti := range w.FactoryTypes {
		ft := &w.FactoryTypes[ti]
		if !ft.AvailableFromStart {
			continue
		}
		for i := 0; i < ft.ConstructionCosts.N; i++ {
			registerDemand(n, ft.ConstructionCosts.Commodities[i],
				ft.ConstructionCosts.Amounts[i]/float64(ft.ConstructionTime)*sets)
		}
	}
}

// mix is a splitmix64 step used for the deterministic investment pick.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// initiatePrivateInvestment turns accumulated pop savings into factory
// upgrades, new factories, and railroads. Every promising factory upgrades
// at once; starving the process of upgrades causes mass unemployment.
func (s *Simulation) initiatePrivateInvestment() {
	w, t := s.World, s.Tuning

	for id := range w.Nations {
		n := &w.Nations[id]
		nid := world.NationID(id)

		totalCost := 0.0
		for c := 1; c < len(w.Commodities); c++ {
			totalCost += n.PrivateConstructionDemand[c] * w.CurrentPrice[c]
		}
		totalCostAdded := 0.0

		if n.PrivateInvestment > totalCost && n.Civilized {
			var desired []economy.FactoryTypeID
			for ti := range w.FactoryTypes {
				if w.FactoryTypes[ti].AvailableFromStart {
					desired = append(desired, economy.FactoryTypeID(ti))
				}
			}

			for si := range w.States {
				if w.States[si].Owner != nid {
					continue
				}

				var pwNum, pwEmployed float64
				for _, pid := range w.States[si].Provinces {
					for _, popID := range w.Provinces[pid].Pops {
						pop := &w.Pops[popID]
						if pop.Type == s.craftsmanType {
							pwNum += pop.Size
							pwEmployed += pop.Employment
						}
					}
				}
				if pwEmployed >= pwNum && pwNum > 0 {
					continue
				}

				numFactories := 0
				bestProfit := 0.0
				var selected world.FactoryID = world.NoFactory
				for _, pid := range w.States[si].Provinces {
					for _, fid := range w.Provinces[pid].Factories {
						f := &w.Factories[fid]
						numFactories++
						if f.ProductionScale < 0.9 || f.PrimaryEmployment < 0.9 || f.Level >= 255 {
							continue
						}
						if s.upgradeInProgress(world.StateID(si), f.Type) {
							continue
						}
						if p := f.FullProfit / float64(f.Level); p > bestProfit {
							bestProfit = p
							selected = fid
						}
					}
				}
				if selected != world.NoFactory && bestProfit > 0 {
					w.FactoryProjects = append(w.FactoryProjects, world.FactoryProject{
						Nation:     nid,
						State:      world.StateID(si),
						Type:       w.Factories[selected].Type,
						Upgrade:    true,
						PopProject: true,
					})
				}

				if s.stateHasConstruction(world.StateID(si)) {
					continue
				}
				if n.PrivateInvestment*0.1 < totalCost+totalCostAdded {
					continue
				}
				if numFactories >= t.FactoriesPerState || len(desired) == 0 {
					continue
				}

				pick := desired[mix(uint64(id)<<6^uint64(si))%uint64(len(desired))]
				if s.factoryTypeInState(world.StateID(si), pick) {
					continue
				}
				w.FactoryProjects = append(w.FactoryProjects, world.FactoryProject{
					Nation:     nid,
					State:      world.StateID(si),
					Type:       pick,
					PopProject: true,
				})
				ft := &w.FactoryTypes[pick]
				for i := 0; i < ft.ConstructionCosts.N; i++ {
					totalCostAdded += n.EffectivePrice[ft.ConstructionCosts.Commodities[i]] * ft.ConstructionCosts.Amounts[i]
				}
			}

			// Railroad at the province with the heaviest factory presence.
			bestCount := -1
			var bestProvince world.ProvinceID = world.NoProvince
			for pi := range w.Provinces {
				p := &w.Provinces[pi]
				if p.Owner != nid || p.Railroad >= w.Buildings[economy.BuildingRailroad].MaxLevel {
					continue
				}
				count := 0
				for _, fid := range p.Factories {
					count += int(w.Factories[fid].Level)
				}
				if count > bestCount {
					bestCount = count
					bestProvince = world.ProvinceID(pi)
				}
			}
			if bestProvince != world.NoProvince {
				w.BuildingProjects = append(w.BuildingProjects, world.BuildingProject{
					Nation:     nid,
					Province:   bestProvince,
					Type:       economy.BuildingRailroad,
					PopProject: true,
				})
			}
		}
		n.PrivateInvestment = 0
	}
}

func (s *Simulation) upgradeInProgress(si world.StateID, t economy.FactoryTypeID) bool {
	for i := range s.World.FactoryProjects {
		c := &s.World.FactoryProjects[i]
		if c.State == si && c.Type == t {
			return true
		}
	}
	return false
}

func (s *Simulation) stateHasConstruction(si world.StateID) bool {
	for i := range s.World.FactoryProjects {
		if s.World.FactoryProjects[i].State == si {
			return true
		}
	}
	return false
}

func (s *Simulation) factoryTypeInState(si world.StateID, t economy.FactoryTypeID) bool {
	for _, pid := range s.World.States[si].Provinces {
		for _, fid := range s.World.Provinces[pid].Factories {
			if s.World.Factories[fid].Type == t {
				return true
			}
		}
	}
	return false
}
