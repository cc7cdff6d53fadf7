package engine

// Defaults for the tick loop and the player avatar
const (
	DefaultTickRateHz  = 60
	DefaultPlayerSpeed = 0.1
)

// Log messages
const (
	LogMsgGameCreated   = "Game created"
	LogMsgRunStarted    = "Tick loop started"
	LogMsgRunStopped    = "Tick loop stopped"
	LogMsgPublishFailed = "Failed to publish tick events"
	LogMsgTickSlow      = "Tick exceeded its interval"
)

// Error messages
const (
	ErrMsgNotRunning = "tick loop not running"
)
