package progression

// Defaults match the classic tycoon layout
const (
	DefaultProximityRadius       = 2.5
	DefaultPurchaseCooldownTicks = 60
	DefaultFloorHeight           = 5.0
	DefaultMarkerOffset          = 0.01
)

// CatalogSchemaPath is the schema every catalog file is checked against
const CatalogSchemaPath = "configs/schemas/catalog.schema.json"

// NodeIDSeparator joins a catalog key and tier into a node id
const NodeIDSeparator = "/"

// MaxTierCost caps the cost of an unbounded repeating node
const MaxTierCost = 1_000_000_000

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgCatalogLoaded  = "Unlock catalog loaded"
	LogMsgNodeRegistered = "Purchasable node registered"
	LogMsgNodePurchased  = "Node purchased"
	LogMsgDebitDeclined  = "Node in range but balance too low"
	LogMsgFloorAdded     = "Floor added"
	LogMsgDropperAdded   = "Dropper added"
	LogMsgMaxTierReached = "Repeatable node reached max tier"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgReadCatalog  = "failed to read catalog file"
	ErrMsgParseCatalog = "failed to parse catalog"
)
