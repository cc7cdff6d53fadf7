package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// State endpoints
	ErrMsgEncodeStateFailed = "Failed to encode state"
	ErrMsgCatalogUnloaded   = "Catalog not loaded"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgRequestDecoded   = "Request decoded"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgInputAccepted    = "Input accepted"
	LogMsgStateEncodeError = "Failed to encode snapshot"
)

// Response headers
const (
	HeaderCache     = "X-Cache"
	CacheHit        = "HIT"
	CacheMiss       = "MISS"
	HeaderTick      = "X-Tick"
	ContentTypeJSON = "application/json"
)
