// Package tuning holds every named constant of the economic model.
// All values are balance-tuned, not derived; a yaml overlay can replace
// any of them per scenario.
// See design doc Section 4.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning is the full constant set. Zero values are never meaningful;
// always start from Default.
type Tuning struct {
	// ── Prices ────────────────────────────────────────────────────────

	// PriceSpeed scales the daily additive price step.
	PriceSpeed float64 `yaml:"price_speed"`
	// MinPrice and MaxPrice bound every commodity price.
	MinPrice float64 `yaml:"min_price"`
	MaxPrice float64 `yaml:"max_price"`
	// MoneyPriceFactor converts the laborer consumption basket into the
	// money commodity's price.
	MoneyPriceFactor float64 `yaml:"money_price_factor"`
	// GoldToCash converts mined money-commodity units into treasury funds.
	GoldToCash float64 `yaml:"gold_to_cash"`

	// ── Market pools ──────────────────────────────────────────────────

	// GlobalPoolDecay is the fraction of the global pool surviving each day.
	GlobalPoolDecay float64 `yaml:"global_pool_decay"`
	// GlobalPoolSupplyDivisor dilutes the global pool's contribution to
	// the supply figure used for price updates.
	GlobalPoolSupplyDivisor float64 `yaml:"global_pool_supply_divisor"`
	// SatDelayFactor smooths demand satisfaction across days.
	SatDelayFactor float64 `yaml:"sat_delay_factor"`

	// ── Employment ────────────────────────────────────────────────────

	// RGOEmploymentSpeed blends province RGO employment toward its target.
	RGOEmploymentSpeed float64 `yaml:"rgo_employment_speed"`
	// FactoryEmploymentSpeed blends factory employment; far slower than
	// RGOs so factories cannot thrash the labor market.
	FactoryEmploymentSpeed float64 `yaml:"factory_employment_speed"`
	// RGOTargetStep is the discrete daily step of the RGO target controller.
	RGOTargetStep float64 `yaml:"rgo_target_step"`
	// RGOPerSizeEmployment is workers employable per unit of RGO size.
	RGOPerSizeEmployment float64 `yaml:"rgo_per_size_employment"`
	// FactoryPerLevelEmployment is workers employable per factory level.
	FactoryPerLevelEmployment float64 `yaml:"factory_per_level_employment"`
	// CraftsmenFraction splits factory jobs between primary and secondary
	// worker types.
	CraftsmenFraction float64 `yaml:"craftsmen_fraction"`
	// RGOOwnersCut is the share of RGO income owners always take.
	RGOOwnersCut float64 `yaml:"rgo_owners_cut"`

	// ── Production scale ──────────────────────────────────────────────

	// ProductionScaleDelta scales the profit-driven factory scale step.
	ProductionScaleDelta float64 `yaml:"production_scale_delta"`
	// ArtisanBaselineScore anchors the artisan allocation softmax.
	ArtisanBaselineScore float64 `yaml:"artisan_baseline_score"`
	// ArtisanDistributionDrift moves artisan scores toward profit.
	ArtisanDistributionDrift float64 `yaml:"artisan_distribution_drift"`
	// ArtisanInputBaseFactor and ArtisanOutputBaseFactor scale artisan
	// recipe throughput relative to factories.
	ArtisanInputBaseFactor  float64 `yaml:"artisan_input_base_factor"`
	ArtisanOutputBaseFactor float64 `yaml:"artisan_output_base_factor"`
	// InputBaseFactor scales factory input costs.
	InputBaseFactor float64 `yaml:"input_base_factor"`
	// RGOBoost, RGOBaseEfficiencyBonus and RGOBaseEmploymentBonus shape the
	// primary sector's technology-free baseline.
	RGOBoost               float64 `yaml:"rgo_boost"`
	RGOBaseEfficiencyBonus float64 `yaml:"rgo_base_efficiency_bonus"`
	RGOBaseEmploymentBonus float64 `yaml:"rgo_base_employment_bonus"`

	// ── Pop needs ─────────────────────────────────────────────────────

	// NeedsScale divides all need quantities; raising it makes goods go
	// further.
	NeedsScale float64 `yaml:"needs_scale"`
	// BaseGoodsDemand multiplies every per-capita need quantity.
	BaseGoodsDemand float64 `yaml:"base_goods_demand"`
	// LifeNeedsScale, EverydayNeedsScale and LuxuryNeedsScale weight the
	// three tiers.
	LifeNeedsScale     float64 `yaml:"life_needs_scale"`
	EverydayNeedsScale float64 `yaml:"everyday_needs_scale"`
	LuxuryNeedsScale   float64 `yaml:"luxury_needs_scale"`
	// LifeSpendShare, EverydaySpendShare and LuxurySpendShare direct
	// leftover pop budget into extra demand per tier.
	LifeSpendShare     float64 `yaml:"life_spend_share"`
	EverydaySpendShare float64 `yaml:"everyday_spend_share"`
	LuxurySpendShare   float64 `yaml:"luxury_spend_share"`
	// InventionImpactOnDemand raises everyday/luxury demand per invention.
	InventionImpactOnDemand float64 `yaml:"invention_impact_on_demand"`
	// NeedDriftSpeed rebalances need weights toward cheaper substitutes.
	NeedDriftSpeed float64 `yaml:"need_drift_speed"`
	// SubsistenceFactor scales province life rating into subsistence
	// output; the tier scores split a province's subsistence score into
	// life, everyday, and luxury coverage, in that order.
	SubsistenceFactor        float64 `yaml:"subsistence_factor"`
	SubsistenceScoreLife     float64 `yaml:"subsistence_score_life"`
	SubsistenceScoreEveryday float64 `yaml:"subsistence_score_everyday"`
	SubsistenceScoreLuxury   float64 `yaml:"subsistence_score_luxury"`
	// InvestCapitalist and InvestAristocrat are savings fractions routed
	// into private investment before everyday needs.
	InvestCapitalist float64 `yaml:"invest_capitalist"`
	InvestAristocrat float64 `yaml:"invest_aristocrat"`
	// DomesticInvestmentMultiplier scales the state's investment transfer
	// to owning classes.
	DomesticInvestmentMultiplier float64 `yaml:"domestic_investment_multiplier"`
	// EducationSavingsCut is the savings share collected for teachers and
	// bureaucrats each day.
	EducationSavingsCut float64 `yaml:"education_savings_cut"`

	// ── Fiscal ────────────────────────────────────────────────────────

	// LoanBaseInterest is daily interest charged on negative treasury.
	LoanBaseInterest float64 `yaml:"loan_base_interest"`
	// MaxLoanTaxBaseFraction sets max_loan from the national tax base.
	MaxLoanTaxBaseFraction float64 `yaml:"max_loan_tax_base_fraction"`
	// SmallDebtLimit separates the mild bankruptcy event from the normal one.
	SmallDebtLimit float64 `yaml:"small_debt_limit"`
	// BankruptcyDuration and BadDebtorDuration are in days.
	BankruptcyDuration int `yaml:"bankruptcy_duration"`
	BadDebtorDuration  int `yaml:"bad_debtor_duration"`
	// WarSubsidiesFraction of the target's maximum military cost per day.
	WarSubsidiesFraction float64 `yaml:"war_subsidies_fraction"`
	// ReparationsTaxHit is the tax-base fraction paid as reparations.
	ReparationsTaxHit float64 `yaml:"reparations_tax_hit"`
	// OverseasPenalty is per-commodity daily overseas maintenance quantity.
	OverseasPenalty float64 `yaml:"overseas_penalty"`

	// ── Construction ──────────────────────────────────────────────────

	// FactoriesPerState caps operating plus under-construction factories.
	FactoriesPerState int `yaml:"factories_per_state"`
	// Construction-time asymptotes. Day-one values make early construction
	// slow (cheap per day) to avoid an initial demand bomb; both curves
	// approach their infinity value as the calendar advances.
	NonFactoryBuildTimeDayOne   float64 `yaml:"non_factory_build_time_day_one"`
	NonFactoryBuildTimeInfinity float64 `yaml:"non_factory_build_time_infinity"`
	NonFactoryBuildTimeSlope    float64 `yaml:"non_factory_build_time_slope"`
	FactoryBuildTimeDayOne      float64 `yaml:"factory_build_time_day_one"`
	FactoryBuildTimeInfinity    float64 `yaml:"factory_build_time_infinity"`
	FactoryBuildTimeSlope       float64 `yaml:"factory_build_time_slope"`

	// ── Sphere ────────────────────────────────────────────────────────

	// CivBaseShare, SecondRankBaseShare and UncivBaseShare set how much of
	// a member's domestic pool the sphere leader absorbs.
	CivBaseShare        float64 `yaml:"civ_base_share"`
	SecondRankBaseShare float64 `yaml:"second_rank_base_share"`
	UncivBaseShare      float64 `yaml:"unciv_base_share"`
}

// Default returns the reference constant set.
func Default() Tuning {
	return Tuning{
		PriceSpeed:       0.05,
		MinPrice:         0.001,
		MaxPrice:         100000.0,
		MoneyPriceFactor: 0.3,
		GoldToCash:       1.5,

		GlobalPoolDecay:         0.5,
		GlobalPoolSupplyDivisor: 12.0,
		SatDelayFactor:          0.95,

		RGOEmploymentSpeed:        0.20,
		FactoryEmploymentSpeed:    0.001,
		RGOTargetStep:             20.0,
		RGOPerSizeEmployment:      40000.0,
		FactoryPerLevelEmployment: 10000.0,
		CraftsmenFraction:         0.8,
		RGOOwnersCut:              0.25,

		ProductionScaleDelta:     0.1,
		ArtisanBaselineScore:     5.0,
		ArtisanDistributionDrift: 0.0001,
		ArtisanInputBaseFactor:   1.0,
		ArtisanOutputBaseFactor:  1.0,
		InputBaseFactor:          1.0,
		RGOBoost:                 1.0,
		RGOBaseEfficiencyBonus:   1.0,
		RGOBaseEmploymentBonus:   1.0,

		NeedsScale:                   1.0,
		BaseGoodsDemand:              1.0,
		LifeNeedsScale:               1.0,
		EverydayNeedsScale:           1.0,
		LuxuryNeedsScale:             1.0,
		LifeSpendShare:               0.1,
		EverydaySpendShare:           0.3,
		LuxurySpendShare:             0.6,
		InventionImpactOnDemand:      0.05,
		NeedDriftSpeed:               0.1,
		SubsistenceFactor:            0.4,
		SubsistenceScoreLife:         0.4,
		SubsistenceScoreEveryday:     0.2,
		SubsistenceScoreLuxury:       0.1,
		InvestCapitalist:             0.3,
		InvestAristocrat:             0.1,
		DomesticInvestmentMultiplier: 1.0,
		EducationSavingsCut:          0.05,

		LoanBaseInterest:       0.0001,
		MaxLoanTaxBaseFraction: 1.0,
		SmallDebtLimit:         5000.0,
		BankruptcyDuration:     730,
		BadDebtorDuration:      1825,
		WarSubsidiesFraction:   0.3,
		ReparationsTaxHit:      0.25,
		OverseasPenalty:        0.07,

		FactoriesPerState:           8,
		NonFactoryBuildTimeDayOne:   2.0,
		NonFactoryBuildTimeInfinity: 0.5,
		NonFactoryBuildTimeSlope:    -0.2,
		FactoryBuildTimeDayOne:      0.9,
		FactoryBuildTimeInfinity:    0.75,
		FactoryBuildTimeSlope:       -0.01,

		CivBaseShare:        0.2,
		SecondRankBaseShare: 0.1,
		UncivBaseShare:      1.0,
	}
}

// Load returns Default overlaid with the yaml file at path. A missing file
// is not an error; a malformed one is.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("read tuning: %w", err)
	}

	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("parse tuning: %w", err)
	}
	return t, nil
}
