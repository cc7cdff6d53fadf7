package observer

import "time"

// Defaults
const (
	DefaultInterval   = 100 * time.Millisecond
	DefaultSendBuffer = 8
	DefaultPongWait   = 60 * time.Second
	BufferSize        = 64 * 1024
)

// Connection timeouts
const (
	WriteTimeout = 5 * time.Second
	CloseTimeout = time.Second
	WriterDrain  = 500 * time.Millisecond
)

// Log messages
const (
	LogMsgSessionJoined   = "Observer session joined"
	LogMsgSessionLeft     = "Observer session left"
	LogMsgUpgradeFailed   = "Observer websocket upgrade failed"
	LogMsgInputRejected   = "Observer input frame rejected"
	LogMsgSnapshotEncode  = "Failed to encode observer snapshot"
	LogMsgSnapshotDropped = "Observer send buffer full, snapshot dropped"
)
