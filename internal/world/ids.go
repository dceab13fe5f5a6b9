// Package world holds the simulation context: dense entity arenas indexed
// by typed integer handles, plus scenario generation. Every phase function
// receives the World explicitly; there is no ambient state.
// See design doc Section 3.
package world

// Typed handles into the world arenas. A negative handle is invalid.
type (
	NationID   int32
	StateID    int32
	ProvinceID int32
	PopID      int32
	FactoryID  int32
)

const (
	NoNation   NationID   = -1
	NoState    StateID    = -1
	NoProvince ProvinceID = -1
	NoFactory  FactoryID  = -1
)
