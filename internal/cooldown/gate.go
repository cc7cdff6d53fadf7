package cooldown

import (
	"fmt"

	"github.com/osse101/Tycoon_Go/internal/domain"
)

// ErrOnCooldown is returned when an action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining uint64 // ticks
}

func (e ErrOnCooldown) Error() string {
	return fmt.Sprintf(ErrFmtCooldownTicks, e.Action, e.Remaining)
}

// Is allows errors.Is() to match any ErrOnCooldown and domain.ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	if target == domain.ErrOnCooldown {
		return true
	}
	_, ok := target.(ErrOnCooldown)
	return ok
}

// Gate is a tick-counted re-arm deadline. After an action at tick t the gate
// stays closed until tick t+duration. It is evaluated by the tick loop and is
// not safe for concurrent use.
type Gate struct {
	action   string
	duration uint64
	lastUsed *uint64
}

// NewGate creates an open gate for action with a cooldown of durationTicks
func NewGate(action string, durationTicks uint64) *Gate {
	return &Gate{action: action, duration: durationTicks}
}

// Action returns the action key guarded by the gate
func (g *Gate) Action() string {
	return g.action
}

// Duration returns the cooldown length in ticks
func (g *Gate) Duration() uint64 {
	return g.duration
}

// Check reports whether the gate is closed at tick now and how many ticks remain
func (g *Gate) Check(now uint64) (bool, uint64) {
	return checkCooldownInternal(now, g.lastUsed, g.duration)
}

// Ready reports whether the action may run at tick now
func (g *Gate) Ready(now uint64) bool {
	onCooldown, _ := g.Check(now)
	return !onCooldown
}

// Remaining returns the ticks left before the gate re-opens
func (g *Gate) Remaining(now uint64) uint64 {
	_, remaining := g.Check(now)
	return remaining
}

// Arm records an action at tick now
func (g *Gate) Arm(now uint64) {
	t := now
	g.lastUsed = &t
}

// Reset re-opens the gate immediately
func (g *Gate) Reset() {
	g.lastUsed = nil
}

// Enforce runs fn if the gate is open. fn reports whether the action actually
// happened; only then is the gate armed.
func (g *Gate) Enforce(now uint64, fn func() bool) error {
	if onCooldown, remaining := g.Check(now); onCooldown {
		return ErrOnCooldown{Action: g.action, Remaining: remaining}
	}
	if fn() {
		g.Arm(now)
	}
	return nil
}

func checkCooldownInternal(now uint64, lastUsed *uint64, duration uint64) (bool, uint64) {
	if lastUsed == nil || now < *lastUsed {
		return false, 0
	}

	elapsed := now - *lastUsed
	if elapsed >= duration {
		return false, 0
	}
	return true, duration - elapsed
}
