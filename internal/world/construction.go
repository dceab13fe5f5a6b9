package world

import "github.com/talgya/statecraft/internal/economy"

// LandProject builds one land regiment at a province.
type LandProject struct {
	Nation   NationID
	Province ProvinceID
	Type     economy.UnitTypeID
	// Purchased tracks goods bought so far, slot-aligned with the type's
	// build cost set.
	Purchased economy.SlotAmounts
}

// NavalProject builds one ship at a coastal province. Only the first
// project per province advances each day.
type NavalProject struct {
	Nation    NationID
	Province  ProvinceID
	Type      economy.UnitTypeID
	Purchased economy.SlotAmounts
}

// BuildingProject raises a province building level.
type BuildingProject struct {
	Nation   NationID
	Province ProvinceID
	Type     economy.BuildingType
	// PopProject builds are financed from private investment.
	PopProject bool
	Purchased  economy.SlotAmounts
}

// FactoryProject creates or upgrades a factory in a state.
type FactoryProject struct {
	Nation     NationID
	State      StateID
	Type       economy.FactoryTypeID
	Upgrade    bool
	PopProject bool
	Purchased  economy.SlotAmounts
}
