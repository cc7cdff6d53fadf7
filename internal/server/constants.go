package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgServerStopping   = "Server stopping"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"

	LogMsgRepeatedAuthFailures = "Repeated API key failures from client"
	LogMsgClientOverLimit      = "Client over request limit"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// QueryAPIKey carries the key for browser EventSource and WebSocket clients,
// which cannot set request headers
const QueryAPIKey = "api_key"

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Route paths
const (
	PathHealthz = "/healthz"
	PathReadyz  = "/readyz"
	PathVersion = "/version"
	PathMetrics = "/metrics"
	PathAPI     = "/api/v1"
	PathState   = "/state"
	PathHUD     = "/state/hud"
	PathCatalog = "/catalog"
	PathInput   = "/input"
	PathEvents  = "/events"
	PathWS      = "/ws"
)

// Public path prefixes that bypass authentication
var PublicPaths = []string{
	PathHealthz,
	PathReadyz,
	PathVersion,
	PathMetrics,
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)

// Limits and timeouts
const (
	DefaultMaxBodyBytes = 1 << 20
	ReadHeaderTimeout   = 5 * time.Second

	// A controller posting input every tick at 60 Hz stays under the limit
	ClientWindow       = time.Minute
	ClientMaxRequests  = 6000
	AuthFailureAlertAt = 5
	RateLimitLogEvery  = 100
)
