package cooldown

// =============================================================================
// Action Keys
// =============================================================================

const (
	// ActionPurchase is the global purchase lock shared by every node
	ActionPurchase = "purchase"
)

// =============================================================================
// Error Formats
// =============================================================================

const (
	ErrFmtCooldownTicks = "action '%s' on cooldown: %d ticks remaining"
)

// =============================================================================
// Log Messages
// =============================================================================

const (
	LogMsgCooldownArmed   = "Cooldown armed"
	LogMsgCooldownBlocked = "Action blocked by cooldown"
)
