package observer

import "github.com/osse101/Tycoon_Go/internal/domain"

// ProtocolVersion is bumped on any incompatible frame change
const ProtocolVersion = 1

// Frame types
const (
	MsgTypeHello    = "HELLO"
	MsgTypeSnapshot = "SNAPSHOT"
	MsgTypeInput    = "INPUT"
)

// HelloMsg is the first frame a session receives
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion int    `json:"protocol_version"`
	SessionID       string `json:"session_id"`
	Tick            uint64 `json:"tick"`
	TickRateHz      int    `json:"tick_rate_hz"`
}

// SnapshotMsg carries the full renderable state
type SnapshotMsg struct {
	Type            string          `json:"type"`
	ProtocolVersion int             `json:"protocol_version"`
	Snapshot        domain.Snapshot `json:"snapshot"`
}

// MovementInput is a movement vector with each component in [-1, 1]
type MovementInput struct {
	X float64 `json:"x" validate:"gte=-1,lte=1"`
	Y float64 `json:"y" validate:"gte=-1,lte=1"`
	Z float64 `json:"z" validate:"gte=-1,lte=1"`
}

// InputMsg is sent by a client to steer the player
type InputMsg struct {
	Type            string        `json:"type" validate:"eq=INPUT"`
	ProtocolVersion int           `json:"protocol_version" validate:"eq=1"`
	Movement        MovementInput `json:"movement"`
	Yaw             float64       `json:"yaw"`
}

// Snapshot converts the message to the engine's input form
func (m InputMsg) Snapshot() domain.InputSnapshot {
	return domain.InputSnapshot{
		Movement: domain.Vec3{X: m.Movement.X, Y: m.Movement.Y, Z: m.Movement.Z},
		Yaw:      m.Yaw,
	}
}
