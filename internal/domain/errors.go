package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Configuration errors
	ErrMsgInvalidConfig  = "invalid configuration"
	ErrMsgInvalidCatalog = "invalid catalog"

	// Catalog graph errors
	ErrMsgDuplicateNodeKey    = "duplicate node key"
	ErrMsgMissingUnlockTarget = "unlock target not found"
	ErrMsgCycleDetected       = "cycle detected in unlock graph"
	ErrMsgUnknownNodeKind     = "unknown node kind"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Progression errors
	ErrMsgNodeNotFound      = "node not found"
	ErrMsgAlreadyPurchased  = "node already purchased"
	ErrMsgOnCooldown        = "action on cooldown"
	ErrMsgNotInRange        = "player not in range"
	ErrMsgSimulationStopped = "simulation stopped"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidConfig  = errors.New(ErrMsgInvalidConfig)
	ErrInvalidCatalog = errors.New(ErrMsgInvalidCatalog)

	ErrDuplicateNodeKey    = errors.New(ErrMsgDuplicateNodeKey)
	ErrMissingUnlockTarget = errors.New(ErrMsgMissingUnlockTarget)
	ErrCycleDetected       = errors.New(ErrMsgCycleDetected)
	ErrUnknownNodeKind     = errors.New(ErrMsgUnknownNodeKind)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	ErrNodeNotFound      = errors.New(ErrMsgNodeNotFound)
	ErrAlreadyPurchased  = errors.New(ErrMsgAlreadyPurchased)
	ErrOnCooldown        = errors.New(ErrMsgOnCooldown)
	ErrNotInRange        = errors.New(ErrMsgNotInRange)
	ErrSimulationStopped = errors.New(ErrMsgSimulationStopped)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
