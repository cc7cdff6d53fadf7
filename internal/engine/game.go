// Package engine orchestrates one tick of the tycoon simulation: player
// movement, purchase evaluation, dropper spawning and item delivery.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/Tycoon_Go/internal/conveyor"
	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/economy"
	"github.com/osse101/Tycoon_Go/internal/event"
	"github.com/osse101/Tycoon_Go/internal/logger"
	"github.com/osse101/Tycoon_Go/internal/progression"
)

// Option configures a Game
type Option func(*Game)

// WithPublisher sets the bus tick events are published to
func WithPublisher(p event.Publisher) Option {
	return func(g *Game) { g.publisher = p }
}

// WithInputSource sets the input sampled by StepOnce
func WithInputSource(src InputSource) Option {
	return func(g *Game) { g.input = src }
}

// WithEconomy replaces the economy built from Config.Economy
func WithEconomy(svc economy.Service) Option {
	return func(g *Game) { g.econ = svc }
}

// WithTickObserver registers a callback receiving every tick's wall duration
func WithTickObserver(fn func(time.Duration)) Option {
	return func(g *Game) { g.onTick = fn }
}

// StepResult summarizes one tick
type StepResult struct {
	Tick      uint64
	Purchased *domain.PurchasableNode
	Floor     *domain.FloorRecord
	Dropper   *domain.Dropper
	Spawned   int
	Delivered int
	Payout    int
	Events    []event.Event
}

// Game owns the simulation state. Step is serialized by an RWMutex so
// Snapshot can be called from any goroutine between ticks.
type Game struct {
	mu sync.RWMutex

	cfg       Config
	econ      economy.Service
	machine   *progression.Machine
	conveyor  *conveyor.Simulation
	publisher event.Publisher
	input     InputSource
	onTick    func(time.Duration)

	tick    uint64
	player  domain.PlayerAgent
	pending []event.Event

	running  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
}

// New validates cfg and builds a game at tick 0 with the catalog's root
// nodes registered
func New(cfg Config, catalog *progression.Catalog, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if catalog == nil {
		catalog = progression.DefaultCatalog()
	}

	g := &Game{
		cfg:    cfg,
		player: domain.PlayerAgent{Position: cfg.PlayerStart},
		stop:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	ctx := context.Background()
	if g.econ == nil {
		var econOpts []economy.Option
		if g.publisher != nil {
			econOpts = append(econOpts, economy.WithPublisher(g.publisher))
		}
		svc, err := economy.NewService(cfg.Economy, econOpts...)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		g.econ = svc
	}

	sim, err := conveyor.NewSimulation(cfg.Conveyor, g.econ)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	g.conveyor = sim

	machine, err := progression.NewMachine(ctx, cfg.Progression, catalog, g.econ, sim)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	g.machine = machine

	// root registrations go out with the first tick
	for _, n := range machine.Nodes() {
		g.pending = append(g.pending, event.NewNodeRegisteredEvent(0, n))
	}

	logger.FromContext(ctx).Info(LogMsgGameCreated,
		"tick_rate_hz", cfg.TickRateHz,
		"catalog_version", catalog.Version,
		"root_nodes", len(g.pending))
	return g, nil
}

// Step runs one tick with input in. Events produced by the tick are
// published after the state lock is released.
func (g *Game) Step(ctx context.Context, in domain.InputSnapshot) StepResult {
	start := time.Now()

	res := g.advance(ctx, in)

	if g.publisher != nil && len(res.Events) > 0 {
		if err := event.PublishAll(ctx, g.publisher, res.Events); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "tick", res.Tick, "error", err)
		}
	}

	elapsed := time.Since(start)
	if g.onTick != nil {
		g.onTick(elapsed)
	}
	if elapsed > g.cfg.TickInterval() {
		logger.FromContext(ctx).Debug(LogMsgTickSlow, "tick", res.Tick, "elapsed", elapsed)
	}
	return res
}

func (g *Game) advance(ctx context.Context, in domain.InputSnapshot) StepResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tick++
	tick := g.tick
	res := StepResult{Tick: tick, Events: g.pending}
	g.pending = nil

	g.player.Position = g.player.Position.Add(in.Movement.Scale(g.cfg.PlayerSpeed))
	g.player.Yaw = in.Yaw

	out := g.machine.Evaluate(ctx, tick, g.player.Position)
	if out.Purchased != nil {
		res.Purchased = out.Purchased
		res.Events = append(res.Events, event.NewNodePurchasedEvent(tick, *out.Purchased, g.econ.Balance()))
	}
	if out.Floor != nil {
		res.Floor = out.Floor
		res.Events = append(res.Events, event.NewFloorAddedEvent(tick, *out.Floor, g.machine.FloorCount()))
	}
	if out.Dropper != nil {
		res.Dropper = out.Dropper
		res.Events = append(res.Events, event.NewDropperAddedEvent(tick, *out.Dropper))
	}
	for _, n := range out.Registered {
		res.Events = append(res.Events, event.NewNodeRegisteredEvent(tick, n))
	}

	conv := g.conveyor.Tick(ctx, tick)
	for _, item := range conv.Spawned {
		res.Events = append(res.Events, event.NewItemSpawnedEvent(tick, item))
	}
	for _, item := range conv.Delivered {
		res.Events = append(res.Events, event.NewItemDeliveredEvent(tick, item, g.cfg.Conveyor.ItemPayout))
	}
	res.Spawned = len(conv.Spawned)
	res.Delivered = len(conv.Delivered)
	res.Payout = conv.Payout

	return res
}

// StepOnce samples the configured input source and runs one tick
func (g *Game) StepOnce(ctx context.Context) StepResult {
	return g.Step(ctx, sample(g.input))
}

// Snapshot returns a deep copy of the observable state
func (g *Game) Snapshot() domain.Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	spawned, delivered := g.conveyor.Counts()
	stats := g.econ.Stats()

	purchased := g.machine.PurchasedIDs()
	if purchased == nil {
		purchased = []string{}
	}

	return domain.Snapshot{
		Tick:              g.tick,
		Balance:           g.econ.Balance(),
		FloorCount:        g.machine.FloorCount(),
		Floors:            g.machine.Floors(),
		Droppers:          g.conveyor.Droppers(),
		Items:             g.conveyor.Items(),
		Nodes:             g.machine.Available(),
		PurchasedNodeIDs:  purchased,
		Player:            g.player,
		CooldownRemaining: g.machine.CooldownRemaining(g.tick),
		Counters: domain.Counters{
			ItemsSpawned:   spawned,
			ItemsDelivered: delivered,
			Purchases:      g.machine.Purchases(),
			Earned:         stats.Earned,
			Spent:          stats.Spent,
		},
	}
}

// Tick returns the number of completed ticks
func (g *Game) Tick() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tick
}

// Economy returns the economy so the host can drive passive income
func (g *Game) Economy() economy.Service {
	return g.econ
}

// Catalog returns the unlock catalog
func (g *Game) Catalog() *progression.Catalog {
	return g.machine.Catalog()
}

// Config returns the simulation constants
func (g *Game) Config() Config {
	return g.cfg
}
