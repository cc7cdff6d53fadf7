package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/event"
	"github.com/osse101/Tycoon_Go/internal/progression"
	"github.com/osse101/Tycoon_Go/internal/testing/leaktest"
)

func newTestGame(t *testing.T, cfg Config, opts ...Option) *Game {
	t.Helper()
	g, err := New(cfg, progression.DefaultCatalog(), opts...)
	require.NoError(t, err)
	return g
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick rate", func(c *Config) { c.TickRateHz = 0 }},
		{"zero player speed", func(c *Config) { c.PlayerSpeed = 0 }},
		{"zero dropper period", func(c *Config) { c.Conveyor.DropperPeriod = 0 }},
		{"negative dropper period", func(c *Config) { c.Conveyor.DropperPeriod = -1 }},
		{"zero payout", func(c *Config) { c.Conveyor.ItemPayout = 0 }},
		{"zero radius", func(c *Config) { c.Progression.ProximityRadius = 0 }},
		{"zero passive interval", func(c *Config) { c.Economy.PassiveIncomeInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			g, err := New(cfg, nil)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
			assert.Nil(t, g)
		})
	}
}

func TestNew_RejectsInvalidCatalog(t *testing.T) {
	_, err := New(DefaultConfig(), &progression.Catalog{})
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
}

// Ten passive intervals reach 10, which buys the floor pad the player is
// standing on: balance back to 0 and two floors.
func TestScenario_PassiveIncomeBuysFloor(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.PlayerStart = domain.Point3{X: 5, Y: 1, Z: 5}
	g := newTestGame(t, cfg)

	for i := 0; i < 10; i++ {
		g.Economy().PassiveTick(ctx)
	}
	require.Equal(t, 10, g.Snapshot().Balance)

	res := g.Step(ctx, domain.InputSnapshot{})

	require.NotNil(t, res.Purchased)
	assert.Equal(t, "floor/1", res.Purchased.ID)
	require.NotNil(t, res.Floor)

	snap := g.Snapshot()
	assert.Equal(t, 0, snap.Balance)
	assert.Equal(t, 2, snap.FloorCount)
	assert.Equal(t, []string{"floor/1"}, snap.PurchasedNodeIDs)
	assert.Equal(t, 10, snap.Counters.Spent)
	assert.Equal(t, 10, snap.Counters.Earned[domain.SourcePassive])
}

func TestStep_NoMoneyNoPurchase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PlayerStart = domain.Point3{X: 5, Y: 1, Z: 5}
	g := newTestGame(t, cfg)

	for i := 0; i < 5; i++ {
		assert.Nil(t, g.Step(context.Background(), domain.InputSnapshot{}).Purchased)
	}
	assert.Equal(t, domain.GroundFloorCount, g.Snapshot().FloorCount)
}

func TestStep_AppliesMovement(t *testing.T) {
	g := newTestGame(t, DefaultConfig())

	for i := 0; i < 10; i++ {
		g.Step(context.Background(), domain.InputSnapshot{Movement: domain.Vec3{X: 1, Z: -1}, Yaw: 1.5})
	}

	player := g.Snapshot().Player
	assert.InDelta(t, 1.0, player.Position.X, 1e-9)
	assert.InDelta(t, 1.0, player.Position.Y, 1e-9)
	assert.InDelta(t, -1.0, player.Position.Z, 1e-9)
	assert.Equal(t, 1.5, player.Yaw)
	assert.Equal(t, uint64(10), g.Tick())
}

// One dropper with period 100 and payout 10: income after N ticks is
// floor(N/100)*10 less at most the items still on the belt.
func TestStep_DropperThroughput(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Economy.StartingBalance = 25
	cfg.PlayerStart = domain.Point3{X: -6, Y: 1, Z: 4}
	cfg.PlayerSpeed = 100
	g := newTestGame(t, cfg)

	res := g.Step(ctx, domain.InputSnapshot{})
	require.NotNil(t, res.Dropper)
	// leave every pad behind
	g.Step(ctx, domain.InputSnapshot{Movement: domain.Vec3{Z: -1}})

	const n = 2000
	income := 0
	for tick := 3; tick <= n; tick++ {
		income += g.Step(ctx, domain.InputSnapshot{}).Payout
	}

	// transit from x=-6 past x=8 at 0.05 per tick takes 281 ticks
	assert.LessOrEqual(t, income, (n/100)*10)
	assert.GreaterOrEqual(t, income, ((n-300)/100)*10)

	snap := g.Snapshot()
	assert.Equal(t, income, snap.Balance)
	assert.Equal(t, snap.Counters.ItemsSpawned, snap.Counters.ItemsDelivered+uint64(len(snap.Items)))
}

func TestStep_PublishesEventsInOrder(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()
	var got []event.Type
	var mu sync.Mutex
	for _, typ := range event.AllTypes {
		bus.Subscribe(typ, func(_ context.Context, evt event.Event) error {
			mu.Lock()
			got = append(got, evt.Type)
			mu.Unlock()
			return nil
		})
	}

	cfg := DefaultConfig()
	cfg.Economy.StartingBalance = 10
	cfg.PlayerStart = domain.Point3{X: 5, Y: 1, Z: 5}
	cfg.Progression.Metric = "planar"
	g := newTestGame(t, cfg, WithPublisher(bus))

	res := g.Step(ctx, domain.InputSnapshot{})

	assert.Equal(t, []event.Type{
		event.NodeRegistered, // floor/1
		event.NodeRegistered, // dropper_basic/1
		event.NodePurchased,
		event.FloorAdded,
		event.NodeRegistered, // floor/2
	}, got)
	assert.Len(t, res.Events, 5)

	purchased, err := event.DecodePayload[event.NodePurchasedPayloadV1](res.Events[2].Payload)
	require.NoError(t, err)
	assert.Equal(t, 0, purchased.BalanceAfter)
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Economy.StartingBalance = 25
	cfg.PlayerStart = domain.Point3{X: -6, Y: 1, Z: 4}
	g := newTestGame(t, cfg)
	g.Step(ctx, domain.InputSnapshot{})

	snap := g.Snapshot()
	require.Len(t, snap.Droppers, 1)
	snap.Droppers[0].Period = 1
	snap.Nodes[0].Cost = 1
	snap.Counters.Earned["x"] = 99

	fresh := g.Snapshot()
	assert.Equal(t, cfg.Conveyor.DropperPeriod, fresh.Droppers[0].Period)
	assert.NotEqual(t, 1, fresh.Nodes[0].Cost)
	assert.NotContains(t, fresh.Counters.Earned, "x")
}

func TestStepOnce_UsesInputLatch(t *testing.T) {
	latch := NewInputLatch()
	g := newTestGame(t, DefaultConfig(), WithInputSource(latch))

	latch.Set(domain.InputSnapshot{Movement: domain.Vec3{X: 1}, Yaw: 0.25})
	g.StepOnce(context.Background())
	latch.Set(domain.InputSnapshot{})
	g.StepOnce(context.Background())

	player := g.Snapshot().Player
	assert.InDelta(t, DefaultPlayerSpeed, player.Position.X, 1e-9)
	assert.Zero(t, player.Yaw)
}

func TestRun_StopsOnContextAndStop(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	cfg := DefaultConfig()
	cfg.TickRateHz = 500
	var ticks int
	var mu sync.Mutex
	g := newTestGame(t, cfg, WithTickObserver(func(time.Duration) {
		mu.Lock()
		ticks++
		mu.Unlock()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()

	require.Eventually(t, func() bool { return g.Tick() >= 5 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	mu.Lock()
	assert.GreaterOrEqual(t, ticks, 5)
	mu.Unlock()

	g2 := newTestGame(t, cfg)
	go func() { done <- g2.Run(context.Background()) }()
	require.Eventually(t, func() bool { return g2.Tick() >= 1 }, 2*time.Second, 5*time.Millisecond)
	assert.NoError(t, g2.CheckHealth(context.Background()))
	g2.Stop()
	g2.Stop()
	assert.NoError(t, <-done)
	assert.ErrorIs(t, g2.Run(context.Background()), domain.ErrSimulationStopped)
	assert.ErrorIs(t, g2.CheckHealth(context.Background()), domain.ErrSimulationStopped)
	assert.ErrorIs(t, newTestGame(t, cfg).CheckHealth(context.Background()), domain.ErrSimulationStopped, "not yet running")

	checker.Check(2)
}

func TestConcurrentSnapshotAndStep(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Economy.StartingBalance = 25
	cfg.PlayerStart = domain.Point3{X: -6, Y: 1, Z: 4}
	g := newTestGame(t, cfg)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			g.Step(ctx, domain.InputSnapshot{})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			g.Economy().PassiveTick(ctx)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			snap := g.Snapshot()
			assert.GreaterOrEqual(t, snap.Balance, 0)
		}
	}()
	wg.Wait()

	assert.Equal(t, uint64(1000), g.Tick())
}
