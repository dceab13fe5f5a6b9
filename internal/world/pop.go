package world

import "github.com/talgya/statecraft/internal/economy"

// Pop is an aggregate population group of one type at one province.
type Pop struct {
	Type     economy.PopTypeID
	Province ProvinceID

	Size    float64
	Savings float64
	// Employment is the absolute number of employed members.
	Employment float64
	// Literacy scales education wages; in [0,1].
	Literacy float64

	// Demand-side satisfaction fractions, fast-smoothed; these drive the
	// demand generated next day.
	LifeNeeds     float64
	EverydayNeeds float64
	LuxuryNeeds   float64

	// Reported satisfaction fractions, slow-smoothed; these are what the
	// rest of the game observes.
	LifeNeedsReported     float64
	EverydayNeedsReported float64
	LuxuryNeedsReported   float64
}

// Factory is a production building at a province.
type Factory struct {
	Type     economy.FactoryTypeID
	Province ProvinceID
	Live     bool

	Level uint8
	// ProductionScale is the continuous utilization of the installed level.
	ProductionScale float64
	// PrimaryEmployment and SecondaryEmployment are fractions in [0,1] of
	// the per-level workforce slots filled.
	PrimaryEmployment   float64
	SecondaryEmployment float64

	Subsidized   bool
	Unprofitable bool
	// PriorityLow and PriorityHigh order labor allocation buckets.
	PriorityLow  bool
	PriorityHigh bool

	// Daily results.
	ActualProduction float64
	FullProfit       float64
	FullOutputCost   float64
	UnprofitableDays int
}

// Priority folds the two priority bits into a sortable rank.
func (f *Factory) Priority() int {
	p := 0
	if f.PriorityLow {
		p += 1
	}
	if f.PriorityHigh {
		p += 2
	}
	return p
}

// Regiment and Ship exist here only to source supply demand; combat and
// movement belong to the military module.
type Regiment struct {
	Nation NationID
	Type   economy.UnitTypeID
}

type Ship struct {
	Nation NationID
	Type   economy.UnitTypeID
}
