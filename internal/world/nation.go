package world

// Modifiers aggregates every national modifier the economy reads. All are
// additive deltas around zero unless noted; technology, reforms, and events
// write them, the engine only reads.
type Modifiers struct {
	SupplyConsumption float64

	FactoryInput      float64
	FactoryOutput     float64
	FactoryThroughput float64
	FactoryCost       float64
	FactoryOwnerCost  float64 // multiplier, 1 = neutral

	RGOOutput     float64
	RGOThroughput float64
	RGOSize       float64

	ArtisanInput      float64
	ArtisanOutput     float64
	ArtisanThroughput float64

	// AdministrativeEfficiency and TaxEfficiency are fractions in [0,1].
	AdministrativeEfficiency float64
	TaxEfficiency            float64

	MinWageFactor float64
	LoanInterest  float64 // added to the base daily rate
	MaxLoan       float64 // multiplier on the tax-base loan ceiling

	// Social policy levels as fractions of the life-needs basket.
	PensionLevel        float64
	UnemploymentBenefit float64

	// MobilizationImpact scales civilian production while mobilized; 1 at
	// peace.
	MobilizationImpact float64

	// Inventions raises everyday/luxury demand.
	Inventions int
}

// Nation is the fiscal and market-clearing unit. All slices indexed by
// commodity have length len(World.Commodities); the needs-cost slices are
// indexed by pop type.
type Nation struct {
	Name string
	Tag  string

	Civilized  bool
	GreatPower bool
	Rank       int // 1 = strongest; drives sphere processing order
	Capital    ProvinceID

	// SphereLeader is NoNation for independent nations.
	SphereLeader NationID
	// LeaderInvestment is the leader's share of foreign investment here,
	// in [0,1]; raises the absorbed pool share for civilized members.
	LeaderInvestment float64

	Treasury     float64
	LastTreasury float64
	// AllowBorrowing keeps spending_scale at 1 and lets treasury go
	// negative.
	AllowBorrowing bool
	BankruptUntil  int // day; 0 = never bankrupted
	BadDebtorUntil int

	// Budget sliders, set externally, all in [0,100].
	LandSpending           float64
	NavalSpending          float64
	ConstructionSpending   float64
	EducationSpending      float64
	AdministrativeSpending float64
	SocialSpending         float64
	MilitarySpending       float64
	TariffRate             float64
	DomesticInvestment     float64
	OverseasSpending       float64
	PoorTax                float64
	MiddleTax              float64
	RichTax                float64

	// Blockaded is the blockaded fraction of ports, in [0,1].
	Blockaded float64
	// OverseasFraction of provinces detached from the capital landmass.
	OverseasFraction float64

	Mods Modifiers

	// Per-day fiscal results.
	SpendingScale          float64
	PrivateInvestmentScale float64
	PrivateInvestment      float64
	Inflation              float64
	InterestPaid           float64
	TaxIncome              float64
	TariffIncome           float64
	GDP                    float64

	// Per-strata income sums from the last tax pass; together they form
	// the tax base that caps loans and reparations.
	PoorIncome   float64
	MiddleIncome float64
	RichIncome   float64

	// MaximumMilitaryCosts is yesterday's full army and navy bill; war
	// subsidies are priced from it.
	MaximumMilitaryCosts float64

	// StockpileDraw lets market clearing consume national stockpiles.
	StockpileDraw bool
	// ConstructionInitiated is false when no external layer queues builds;
	// the engine then emulates construction demand to keep markets fed.
	ConstructionInitiated bool

	// Reporting snapshots of satisfaction-weighted spending.
	EffectiveLandSpending         float64
	EffectiveNavalSpending        float64
	EffectiveConstructionSpending float64
	// OverseasSatisfaction is the funded fraction of overseas maintenance.
	OverseasSatisfaction float64

	// Per-commodity market state.
	DomesticPool              []float64
	RealDemand                []float64
	DemandSat                 []float64
	DirectDemandSat           []float64
	EffectivePrice            []float64
	ArmyDemand                []float64
	NavyDemand                []float64
	ConstructionDemand        []float64
	PrivateConstructionDemand []float64
	Stockpiles                []float64
	StockpileTargets          []float64
	Imports                   []float64

	// Artisan allocation state.
	ArtisanScore      []float64
	ArtisanShare      []float64
	ArtisanProduction []float64
	ArtisanProfit     float64

	// Need weights drift toward cheaper substitutes within each tier.
	LifeNeedWeights     []float64
	EverydayNeedWeights []float64
	LuxuryNeedWeights   []float64

	// Per-pop-type daily cost of one full needs basket.
	LifeNeedsCosts     []float64
	EverydayNeedsCosts []float64
	LuxuryNeedsCosts   []float64
}

// InBankruptcy reports whether the nation is inside a bankruptcy window.
func (n *Nation) InBankruptcy(day int) bool {
	return n.BankruptUntil > 0 && day < n.BankruptUntil
}

// TaxBase sums the strata incomes recorded by the last tax pass.
func (n *Nation) TaxBase() float64 {
	return n.PoorIncome + n.MiddleIncome + n.RichIncome
}

// BadDebtor reports whether a prior default still taints the nation.
func (n *Nation) BadDebtor(day int) bool {
	return n.BadDebtorUntil > 0 && day < n.BadDebtorUntil
}

// WarSubsidy is a daily transfer from Source to Target while active.
type WarSubsidy struct {
	Source NationID
	Target NationID
}

// Reparation is a tax-based daily transfer until the given day.
type Reparation struct {
	Source NationID
	Target NationID
	Until  int
}
