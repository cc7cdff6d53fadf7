package engine

import (
	"sync"

	"github.com/osse101/Tycoon_Go/internal/domain"
)

// InputSource is sampled once at the start of every tick
type InputSource interface {
	CurrentMovementVector() domain.Vec3
	CurrentPlayerFacingYaw() float64
}

// InputLatch holds the most recent input pushed by the host. The tick loop
// reads it while transports write it.
type InputLatch struct {
	mu   sync.RWMutex
	snap domain.InputSnapshot
}

// NewInputLatch returns a latch with no movement
func NewInputLatch() *InputLatch {
	return &InputLatch{}
}

// Set replaces the latched input
func (l *InputLatch) Set(in domain.InputSnapshot) {
	l.mu.Lock()
	l.snap = in
	l.mu.Unlock()
}

// Latest returns the latched input
func (l *InputLatch) Latest() domain.InputSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap
}

func (l *InputLatch) CurrentMovementVector() domain.Vec3 {
	return l.Latest().Movement
}

func (l *InputLatch) CurrentPlayerFacingYaw() float64 {
	return l.Latest().Yaw
}

func sample(src InputSource) domain.InputSnapshot {
	if src == nil {
		return domain.InputSnapshot{}
	}
	if l, ok := src.(*InputLatch); ok {
		return l.Latest()
	}
	return domain.InputSnapshot{
		Movement: src.CurrentMovementVector(),
		Yaw:      src.CurrentPlayerFacingYaw(),
	}
}
