package cooldown

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Tycoon_Go/internal/domain"
)

func TestCheckCooldownInternal(t *testing.T) {
	const duration = 60

	tests := []struct {
		name           string
		now            uint64
		lastUsed       *uint64
		wantOnCooldown bool
		wantRemaining  uint64
	}{
		{name: "never used", now: 100, lastUsed: nil},
		{name: "active cooldown", now: 120, lastUsed: ptr(100), wantOnCooldown: true, wantRemaining: 40},
		{name: "same tick", now: 100, lastUsed: ptr(100), wantOnCooldown: true, wantRemaining: 60},
		{name: "exact boundary", now: 160, lastUsed: ptr(100)},
		{name: "just before expiry", now: 159, lastUsed: ptr(100), wantOnCooldown: true, wantRemaining: 1},
		{name: "expired", now: 500, lastUsed: ptr(100)},
		{name: "clock behind last use", now: 50, lastUsed: ptr(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotOnCooldown, gotRemaining := checkCooldownInternal(tt.now, tt.lastUsed, duration)
			assert.Equal(t, tt.wantOnCooldown, gotOnCooldown)
			assert.Equal(t, tt.wantRemaining, gotRemaining)
		})
	}
}

func TestGate_ArmAndReset(t *testing.T) {
	g := NewGate(ActionPurchase, 60)
	assert.True(t, g.Ready(0))

	g.Arm(10)
	assert.False(t, g.Ready(10))
	assert.Equal(t, uint64(30), g.Remaining(40))
	assert.True(t, g.Ready(70))

	g.Reset()
	assert.True(t, g.Ready(11))
}

func TestGate_ZeroDurationNeverBlocks(t *testing.T) {
	g := NewGate(ActionPurchase, 0)
	g.Arm(5)

	assert.True(t, g.Ready(5))
}

func TestGate_Enforce(t *testing.T) {
	g := NewGate(ActionPurchase, 3)

	t.Run("action that does not happen leaves gate open", func(t *testing.T) {
		require.NoError(t, g.Enforce(1, func() bool { return false }))
		assert.True(t, g.Ready(1))
	})

	t.Run("action that happens arms the gate", func(t *testing.T) {
		calls := 0
		require.NoError(t, g.Enforce(2, func() bool { calls++; return true }))
		assert.Equal(t, 1, calls)

		err := g.Enforce(3, func() bool { calls++; return true })
		assert.Equal(t, 1, calls, "fn must not run while on cooldown")

		var cdErr ErrOnCooldown
		require.ErrorAs(t, err, &cdErr)
		assert.Equal(t, uint64(2), cdErr.Remaining)
		assert.Equal(t, ActionPurchase, cdErr.Action)
	})

	t.Run("gate re-opens after duration", func(t *testing.T) {
		assert.NoError(t, g.Enforce(5, func() bool { return true }))
	})
}

func TestErrOnCooldown_Error(t *testing.T) {
	err := ErrOnCooldown{Action: "purchase", Remaining: 12}
	assert.Equal(t, fmt.Sprintf(ErrFmtCooldownTicks, "purchase", 12), err.Error())
}

func TestErrOnCooldown_Is(t *testing.T) {
	err := ErrOnCooldown{Action: "test", Remaining: 1}

	assert.True(t, errors.Is(err, ErrOnCooldown{}))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), domain.ErrOnCooldown))
	assert.False(t, errors.Is(err, errors.New("other error")))
}

func ptr(v uint64) *uint64 {
	return &v
}
