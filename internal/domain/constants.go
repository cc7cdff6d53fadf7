package domain

// Node kind names as they appear in catalogs and payloads
const (
	NodeKindNameDropper = "dropper"
	NodeKindNameFloor   = "floor"
)

// Income sources recorded by the economy
const (
	SourcePassive  = "passive"
	SourceConveyor = "conveyor"
	SourceGrant    = "grant"
)

// GroundFloorCount is the floor count before any floor is purchased
const GroundFloorCount = 1
