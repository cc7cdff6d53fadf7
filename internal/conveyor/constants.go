package conveyor

// Defaults mirror the classic tycoon tuning
const (
	DefaultDropperPeriod = 100
	DefaultItemPayout    = 10
	DefaultSpawnOffset   = 1.0
	DefaultOrigin        = -8.0
	DefaultLength        = 16.0
	DefaultItemSpeed     = 0.05
)

// DropperIDPrefix prefixes sequential dropper ids
const DropperIDPrefix = "dropper-"

// Log messages
const (
	LogMsgDropperAdded  = "Dropper registered with conveyor"
	LogMsgItemDelivered = "Item delivered"
)
