package economy

// PopTypeID indexes the pop-type table.
type PopTypeID int32

// Strata groups pop types for taxation and need weighting.
type Strata uint8

const (
	StrataPoor Strata = iota
	StrataMiddle
	StrataRich
)

// IncomeType identifies which budget slider pays a non-market pop type.
type IncomeType uint8

const (
	IncomeNone IncomeType = iota
	IncomeAdministration
	IncomeEducation
	IncomeMilitary
)

// PopType is a worker-class definition. Need sets are per 10k population
// before demand scaling.
type PopType struct {
	Name   string
	Strata Strata
	// Paid routes wages from a national budget slider instead of the market.
	Paid IncomeType

	LifeNeeds     CommoditySet
	EverydayNeeds CommoditySet
	LuxuryNeeds   CommoditySet

	Slave      bool // works RGOs without wages
	RGOWorker  bool // farmer or laborer
	Miner      bool // laborer; works mine RGOs
	Artisan    bool
	Craftsman  bool // factory primary workforce
	Clerk      bool // factory secondary workforce
	Capitalist bool
	Aristocrat bool
	Bureaucrat bool
	Teacher    bool
	// CanInvest pops divert a savings fraction into private investment.
	CanInvest bool
}

// FactoryTypeID indexes the factory-type table.
type FactoryTypeID int32

// BonusPredicate gates a triggered production bonus. The evaluator itself
// is external; producers only call it with the province and owner indexes.
type BonusPredicate func(province, nation int32) bool

// TriggeredBonus is a conditional modifier on a factory type.
type TriggeredBonus struct {
	When       BonusPredicate
	Input      float64
	Output     float64
	Throughput float64
}

// FactoryType defines a factory recipe and its bill of materials.
type FactoryType struct {
	Name string

	// Inputs are consumed proportionally to output; EfficiencyInputs
	// (maintenance goods) gate throughput but only partially block output.
	Inputs           CommoditySet
	EfficiencyInputs CommoditySet
	Output           CommodityID
	OutputAmount     float64

	ConstructionCosts CommoditySet
	ConstructionTime  int // days, before global time modifiers

	AvailableFromStart bool
	Bonuses            []TriggeredBonus
}

// UnitTypeID indexes the military unit-type table.
type UnitTypeID int32

// UnitType carries the build and supply tables the engine needs; combat
// stats belong to the military module.
type UnitType struct {
	Name              string
	Naval             bool
	SupplyCost        CommoditySet
	SupplyConsumption float64
	BuildCost         CommoditySet
	BuildTime         int // days
}

// BuildingType enumerates province-level buildings.
type BuildingType uint8

const (
	BuildingRailroad BuildingType = iota
	BuildingFort
	BuildingNavalBase

	BuildingCount
)

// BuildingDef is the bill of materials for one province building type.
type BuildingDef struct {
	Name     string
	Costs    CommoditySet
	Time     int // days
	MaxLevel int
}
