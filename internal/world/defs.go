package world

import "github.com/talgya/statecraft/internal/economy"

// Standard scenario commodity handles. Gold must stay at index 0; the
// engine treats index 0 as the money commodity.
const (
	Gold economy.CommodityID = iota
	Grain
	Fish
	Cattle
	Wool
	Cotton
	Timber
	Coal
	Iron
	Sulphur
	Lumber
	Steel
	Cement
	Fabric
	Clothes
	Furniture
	Paper
	CannedFood
	Liquor
	MachineParts
	SmallArms
	Ammunition

	CommodityCount
)

// Standard scenario pop-type handles.
const (
	Aristocrats economy.PopTypeID = iota
	Capitalists
	Artisans
	Bureaucrats
	Clergymen
	Clerks
	Craftsmen
	Farmers
	Laborers
	Soldiers
	Slaves

	PopTypeCount
)

// Standard scenario factory-type handles.
const (
	LumberMill economy.FactoryTypeID = iota
	SteelMill
	CementFactory
	FabricMill
	ClothesFactory
	FurnitureFactory
	PaperMill
	Cannery
	Distillery
	MachinePartsFactory
	ArmsFactory
	AmmunitionPlant

	FactoryTypeCount
)

// Standard scenario unit-type handles.
const (
	Infantry economy.UnitTypeID = iota
	Artillery
	Clipper
	Steamer

	UnitTypeCount
)

func pair(c economy.CommodityID, a float64) struct {
	C economy.CommodityID
	A float64
} {
	return struct {
		C economy.CommodityID
		A float64
	}{c, a}
}

// StandardCommodities returns the scenario commodity table.
func StandardCommodities() []economy.Commodity {
	c := make([]economy.Commodity, CommodityCount)

	c[Gold] = economy.Commodity{Name: "gold", BaseCost: 8.0, RGOAmount: 1.0, Money: true, Mine: true, AvailableFromStart: true}
	c[Grain] = economy.Commodity{Name: "grain", BaseCost: 2.2, RGOAmount: 6.0, AvailableFromStart: true}
	c[Fish] = economy.Commodity{Name: "fish", BaseCost: 1.5, RGOAmount: 7.0, AvailableFromStart: true}
	c[Cattle] = economy.Commodity{Name: "cattle", BaseCost: 2.0, RGOAmount: 5.0, AvailableFromStart: true}
	c[Wool] = economy.Commodity{Name: "wool", BaseCost: 0.9, RGOAmount: 9.0, AvailableFromStart: true}
	c[Cotton] = economy.Commodity{Name: "cotton", BaseCost: 1.3, RGOAmount: 8.0, AvailableFromStart: true}
	c[Timber] = economy.Commodity{Name: "timber", BaseCost: 0.9, RGOAmount: 10.0, AvailableFromStart: true}
	c[Coal] = economy.Commodity{Name: "coal", BaseCost: 2.3, RGOAmount: 7.0, Mine: true, AvailableFromStart: true, Overseas: true}
	c[Iron] = economy.Commodity{Name: "iron", BaseCost: 3.5, RGOAmount: 6.0, Mine: true, AvailableFromStart: true}
	c[Sulphur] = economy.Commodity{Name: "sulphur", BaseCost: 6.0, RGOAmount: 4.0, Mine: true, AvailableFromStart: true}

	c[Lumber] = economy.Commodity{Name: "lumber", BaseCost: 1.0, AvailableFromStart: true}
	c[Steel] = economy.Commodity{Name: "steel", BaseCost: 4.7, AvailableFromStart: true}
	c[Cement] = economy.Commodity{Name: "cement", BaseCost: 16.0, AvailableFromStart: true}
	c[Fabric] = economy.Commodity{Name: "fabric", BaseCost: 1.8, AvailableFromStart: true}
	c[Clothes] = economy.Commodity{Name: "regular clothes", BaseCost: 5.8, AvailableFromStart: true}
	c[Furniture] = economy.Commodity{Name: "furniture", BaseCost: 4.9, AvailableFromStart: true}
	c[Paper] = economy.Commodity{Name: "paper", BaseCost: 3.4, AvailableFromStart: true}
	c[CannedFood] = economy.Commodity{Name: "canned food", BaseCost: 16.0, Overseas: true}
	c[Liquor] = economy.Commodity{Name: "liquor", BaseCost: 6.4, AvailableFromStart: true}
	c[MachineParts] = economy.Commodity{Name: "machine parts", BaseCost: 36.5, Overseas: true}
	c[SmallArms] = economy.Commodity{Name: "small arms", BaseCost: 37.0, Overseas: true}
	c[Ammunition] = economy.Commodity{Name: "ammunition", BaseCost: 17.5, Overseas: true}

	// Artisan recipes live on the output commodity.
	c[Lumber].ArtisanInputs = economy.Set(pair(Timber, 1.0))
	c[Lumber].ArtisanOutputAmount = 1.6
	c[Fabric].ArtisanInputs = economy.Set(pair(Cotton, 1.2))
	c[Fabric].ArtisanOutputAmount = 1.4
	c[Clothes].ArtisanInputs = economy.Set(pair(Fabric, 1.2))
	c[Clothes].ArtisanOutputAmount = 0.9
	c[Furniture].ArtisanInputs = economy.Set(pair(Lumber, 1.5), pair(Fabric, 0.3))
	c[Furniture].ArtisanOutputAmount = 0.9
	c[Paper].ArtisanInputs = economy.Set(pair(Timber, 2.0))
	c[Paper].ArtisanOutputAmount = 1.0
	c[Liquor].ArtisanInputs = economy.Set(pair(Grain, 1.8))
	c[Liquor].ArtisanOutputAmount = 0.8
	c[CannedFood].ArtisanInputs = economy.Set(pair(Grain, 1.0), pair(Cattle, 0.8), pair(Iron, 0.2))
	c[CannedFood].ArtisanOutputAmount = 0.5

	return c
}

// StandardPopTypes returns the scenario pop-type table. Need quantities are
// per 10k population per day before scaling.
func StandardPopTypes() []economy.PopType {
	p := make([]economy.PopType, PopTypeCount)

	lifeBasic := economy.Set(pair(Grain, 2.5), pair(Fish, 1.0))
	lifeRich := economy.Set(pair(Grain, 2.0), pair(Cattle, 1.5), pair(Fish, 0.5))
	everydayPoor := economy.Set(pair(Clothes, 0.3), pair(Liquor, 0.4), pair(Timber, 0.5))
	everydayMid := economy.Set(pair(Clothes, 0.6), pair(Furniture, 0.4), pair(Paper, 0.4), pair(Liquor, 0.4))
	everydayRich := economy.Set(pair(Clothes, 1.0), pair(Furniture, 0.8), pair(Paper, 0.6), pair(Liquor, 0.8))
	luxuryPoor := economy.Set(pair(Liquor, 0.3), pair(CannedFood, 0.1))
	luxuryMid := economy.Set(pair(Furniture, 0.4), pair(CannedFood, 0.2), pair(Liquor, 0.4))
	luxuryRich := economy.Set(pair(Furniture, 0.9), pair(CannedFood, 0.4), pair(MachineParts, 0.05), pair(Liquor, 0.8))

	p[Aristocrats] = economy.PopType{Name: "aristocrats", Strata: economy.StrataRich,
		LifeNeeds: lifeRich, EverydayNeeds: everydayRich, LuxuryNeeds: luxuryRich,
		Aristocrat: true, CanInvest: true}
	p[Capitalists] = economy.PopType{Name: "capitalists", Strata: economy.StrataRich,
		LifeNeeds: lifeRich, EverydayNeeds: everydayRich, LuxuryNeeds: luxuryRich,
		Capitalist: true, CanInvest: true}
	p[Artisans] = economy.PopType{Name: "artisans", Strata: economy.StrataMiddle,
		LifeNeeds: lifeBasic, EverydayNeeds: everydayMid, LuxuryNeeds: luxuryMid,
		Artisan: true}
	p[Bureaucrats] = economy.PopType{Name: "bureaucrats", Strata: economy.StrataMiddle,
		Paid:      economy.IncomeAdministration,
		LifeNeeds: lifeBasic, EverydayNeeds: everydayMid, LuxuryNeeds: luxuryMid,
		Bureaucrat: true}
	p[Clergymen] = economy.PopType{Name: "clergymen", Strata: economy.StrataMiddle,
		Paid:      economy.IncomeEducation,
		LifeNeeds: lifeBasic, EverydayNeeds: everydayMid, LuxuryNeeds: luxuryMid,
		Teacher: true}
	p[Clerks] = economy.PopType{Name: "clerks", Strata: economy.StrataMiddle,
		LifeNeeds: lifeBasic, EverydayNeeds: everydayMid, LuxuryNeeds: luxuryMid,
		Clerk: true}
	p[Craftsmen] = economy.PopType{Name: "craftsmen", Strata: economy.StrataPoor,
		LifeNeeds: lifeBasic, EverydayNeeds: everydayPoor, LuxuryNeeds: luxuryPoor,
		Craftsman: true}
	p[Farmers] = economy.PopType{Name: "farmers", Strata: economy.StrataPoor,
		LifeNeeds: lifeBasic, EverydayNeeds: everydayPoor, LuxuryNeeds: luxuryPoor,
		RGOWorker: true}
	p[Laborers] = economy.PopType{Name: "laborers", Strata: economy.StrataPoor,
		LifeNeeds: lifeBasic, EverydayNeeds: everydayPoor, LuxuryNeeds: luxuryPoor,
		RGOWorker: true, Miner: true}
	p[Soldiers] = economy.PopType{Name: "soldiers", Strata: economy.StrataPoor,
		Paid:      economy.IncomeMilitary,
		LifeNeeds: lifeBasic, EverydayNeeds: everydayPoor, LuxuryNeeds: luxuryPoor}
	p[Slaves] = economy.PopType{Name: "slaves", Strata: economy.StrataPoor,
		LifeNeeds: economy.Set(pair(Grain, 2.0)),
		Slave:     true, RGOWorker: true}

	return p
}

// StandardFactoryTypes returns the scenario factory table.
func StandardFactoryTypes() []economy.FactoryType {
	f := make([]economy.FactoryType, FactoryTypeCount)

	machines := economy.Set(pair(MachineParts, 0.05), pair(Paper, 0.2))

	f[LumberMill] = economy.FactoryType{Name: "lumber mill",
		Inputs: economy.Set(pair(Timber, 5.0)), EfficiencyInputs: machines,
		Output: Lumber, OutputAmount: 9.0,
		ConstructionCosts: economy.Set(pair(Cement, 100), pair(Timber, 200), pair(Iron, 50)),
		ConstructionTime:  330, AvailableFromStart: true}
	f[SteelMill] = economy.FactoryType{Name: "steel mill",
		Inputs: economy.Set(pair(Iron, 4.0), pair(Coal, 4.0)), EfficiencyInputs: machines,
		Output: Steel, OutputAmount: 6.0,
		ConstructionCosts: economy.Set(pair(Cement, 200), pair(Iron, 100), pair(MachineParts, 20)),
		ConstructionTime:  540, AvailableFromStart: true}
	f[CementFactory] = economy.FactoryType{Name: "cement factory",
		Inputs: economy.Set(pair(Coal, 3.0)), EfficiencyInputs: machines,
		Output: Cement, OutputAmount: 3.0,
		ConstructionCosts: economy.Set(pair(Cement, 100), pair(Timber, 150), pair(Iron, 80)),
		ConstructionTime:  420, AvailableFromStart: true}
	f[FabricMill] = economy.FactoryType{Name: "fabric mill",
		Inputs: economy.Set(pair(Cotton, 6.0), pair(Wool, 2.0)), EfficiencyInputs: machines,
		Output: Fabric, OutputAmount: 9.0,
		ConstructionCosts: economy.Set(pair(Cement, 150), pair(Timber, 150), pair(MachineParts, 10)),
		ConstructionTime:  420, AvailableFromStart: true}
	f[ClothesFactory] = economy.FactoryType{Name: "clothes factory",
		Inputs: economy.Set(pair(Fabric, 5.0)), EfficiencyInputs: machines,
		Output: Clothes, OutputAmount: 4.0,
		ConstructionCosts: economy.Set(pair(Cement, 150), pair(Lumber, 100), pair(MachineParts, 10)),
		ConstructionTime:  420, AvailableFromStart: true}
	f[FurnitureFactory] = economy.FactoryType{Name: "furniture factory",
		Inputs: economy.Set(pair(Lumber, 4.0), pair(Fabric, 1.5)), EfficiencyInputs: machines,
		Output: Furniture, OutputAmount: 4.0,
		ConstructionCosts: economy.Set(pair(Cement, 150), pair(Lumber, 120)),
		ConstructionTime:  420, AvailableFromStart: true}
	f[PaperMill] = economy.FactoryType{Name: "paper mill",
		Inputs: economy.Set(pair(Timber, 6.0)), EfficiencyInputs: machines,
		Output: Paper, OutputAmount: 6.0,
		ConstructionCosts: economy.Set(pair(Cement, 150), pair(Timber, 150)),
		ConstructionTime:  420, AvailableFromStart: true}
	f[Cannery] = economy.FactoryType{Name: "cannery",
		Inputs: economy.Set(pair(Grain, 3.0), pair(Cattle, 2.0), pair(Iron, 1.0)), EfficiencyInputs: machines,
		Output: CannedFood, OutputAmount: 2.5,
		ConstructionCosts: economy.Set(pair(Cement, 200), pair(Steel, 60)),
		ConstructionTime:  480}
	f[Distillery] = economy.FactoryType{Name: "distillery",
		Inputs: economy.Set(pair(Grain, 6.0)), EfficiencyInputs: machines,
		Output: Liquor, OutputAmount: 5.0,
		ConstructionCosts: economy.Set(pair(Cement, 150), pair(Timber, 120), pair(Iron, 40)),
		ConstructionTime:  420, AvailableFromStart: true}
	f[MachinePartsFactory] = economy.FactoryType{Name: "machine parts factory",
		Inputs: economy.Set(pair(Steel, 4.0), pair(Coal, 2.0)), EfficiencyInputs: machines,
		Output: MachineParts, OutputAmount: 1.5,
		ConstructionCosts: economy.Set(pair(Cement, 250), pair(Steel, 100), pair(MachineParts, 30)),
		ConstructionTime:  600}
	f[ArmsFactory] = economy.FactoryType{Name: "arms factory",
		Inputs: economy.Set(pair(Steel, 3.0), pair(Lumber, 1.0), pair(Ammunition, 1.0)), EfficiencyInputs: machines,
		Output: SmallArms, OutputAmount: 1.2,
		ConstructionCosts: economy.Set(pair(Cement, 200), pair(Steel, 80), pair(MachineParts, 20)),
		ConstructionTime:  540}
	f[AmmunitionPlant] = economy.FactoryType{Name: "ammunition plant",
		Inputs: economy.Set(pair(Steel, 2.0), pair(Sulphur, 2.0)), EfficiencyInputs: machines,
		Output: Ammunition, OutputAmount: 2.0,
		ConstructionCosts: economy.Set(pair(Cement, 200), pair(Steel, 80)),
		ConstructionTime:  540}

	return f
}

// StandardUnitTypes returns the scenario military unit table.
func StandardUnitTypes() []economy.UnitType {
	u := make([]economy.UnitType, UnitTypeCount)

	u[Infantry] = economy.UnitType{Name: "infantry",
		SupplyCost:        economy.Set(pair(CannedFood, 0.25), pair(Ammunition, 0.20)),
		SupplyConsumption: 1.0,
		BuildCost:         economy.Set(pair(SmallArms, 10), pair(CannedFood, 10)),
		BuildTime:         120}
	u[Artillery] = economy.UnitType{Name: "artillery",
		SupplyCost:        economy.Set(pair(CannedFood, 0.25), pair(Ammunition, 0.80)),
		SupplyConsumption: 1.0,
		BuildCost:         economy.Set(pair(SmallArms, 15), pair(Ammunition, 20), pair(CannedFood, 10)),
		BuildTime:         180}
	u[Clipper] = economy.UnitType{Name: "clipper", Naval: true,
		SupplyCost:        economy.Set(pair(Fabric, 0.5), pair(Lumber, 0.5)),
		SupplyConsumption: 1.0,
		BuildCost:         economy.Set(pair(Fabric, 40), pair(Lumber, 60)),
		BuildTime:         300}
	u[Steamer] = economy.UnitType{Name: "steamer", Naval: true,
		SupplyCost:        economy.Set(pair(Coal, 1.0), pair(Steel, 0.3)),
		SupplyConsumption: 1.0,
		BuildCost:         economy.Set(pair(Steel, 80), pair(MachineParts, 20), pair(Coal, 40)),
		BuildTime:         420}

	return u
}

// StandardBuildings returns the province building table.
func StandardBuildings() [economy.BuildingCount]economy.BuildingDef {
	var b [economy.BuildingCount]economy.BuildingDef
	b[economy.BuildingRailroad] = economy.BuildingDef{Name: "railroad",
		Costs:    economy.Set(pair(Cement, 100), pair(Steel, 40), pair(Lumber, 60), pair(MachineParts, 10)),
		Time:     360, MaxLevel: 5}
	b[economy.BuildingFort] = economy.BuildingDef{Name: "fort",
		Costs:    economy.Set(pair(Cement, 150), pair(Steel, 30), pair(Lumber, 40)),
		Time:     400, MaxLevel: 6}
	b[economy.BuildingNavalBase] = economy.BuildingDef{Name: "naval base",
		Costs:    economy.Set(pair(Cement, 200), pair(Steel, 50), pair(Lumber, 80)),
		Time:     480, MaxLevel: 6}
	return b
}
