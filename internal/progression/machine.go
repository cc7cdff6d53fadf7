package progression

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/osse101/Tycoon_Go/internal/cooldown"
	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/logger"
	"github.com/osse101/Tycoon_Go/internal/spatial"
)

// Economy is the purchase gate
type Economy interface {
	TryDebit(ctx context.Context, amount int) bool
}

// Spawner receives droppers created by purchases
type Spawner interface {
	AddDropper(ctx context.Context, pos domain.Point3, sourceNodeID string) domain.Dropper
}

// Outcome describes what one evaluation changed. Purchased is nil when no
// purchase resolved.
type Outcome struct {
	Purchased  *domain.PurchasableNode
	Floor      *domain.FloorRecord
	Dropper    *domain.Dropper
	Registered []domain.PurchasableNode

	// Declined lists in-range nodes whose debit failed this tick
	Declined []string
	// CooldownRemaining is non-zero when the purchase lock blocked evaluation
	CooldownRemaining uint64
}

// Machine tracks every registered node and applies purchase consequences.
// It is driven by the game tick and is not safe for concurrent use.
type Machine struct {
	cfg     Config
	catalog *Catalog
	econ    Economy
	spawner Spawner
	query   spatial.Query
	gate    *cooldown.Gate

	nodes      []domain.PurchasableNode // registration order
	registered map[string]bool          // catalog keys that have a tier registered
	floors     []domain.FloorRecord
	floorCount int
	purchases  uint64
}

// NewMachine validates cfg and catalog and registers the root nodes
func NewMachine(ctx context.Context, cfg Config, catalog *Catalog, econ Economy, spawner Spawner) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("progression: %w", err)
	}
	metric, err := spatial.ParseMetric(string(cfg.Metric))
	if err != nil {
		return nil, err
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	if econ == nil || spawner == nil {
		return nil, fmt.Errorf("%w: progression requires an economy and a spawner", domain.ErrInvalidConfig)
	}

	m := &Machine{
		cfg:        cfg,
		catalog:    catalog,
		econ:       econ,
		spawner:    spawner,
		query:      spatial.NewQuery(metric),
		gate:       cooldown.NewGate(cooldown.ActionPurchase, cfg.PurchaseCooldownTicks),
		registered: make(map[string]bool),
		floorCount: domain.GroundFloorCount,
	}
	for _, root := range catalog.Roots() {
		m.register(ctx, 0, root, 1, root.Position, root.Cost)
	}
	return m, nil
}

// Evaluate resolves at most one purchase for the player at tick. Nodes are
// checked in registration order; the first in-range node whose debit
// succeeds is purchased and arms the global purchase cooldown.
func (m *Machine) Evaluate(ctx context.Context, tick uint64, player domain.Point3) Outcome {
	var out Outcome

	err := m.gate.Enforce(tick, func() bool {
		for i := range m.nodes {
			node := m.nodes[i]
			if node.Purchased || !m.query.Within(player, node.Position, m.cfg.ProximityRadius) {
				continue
			}
			if !m.econ.TryDebit(ctx, node.Cost) {
				out.Declined = append(out.Declined, node.ID)
				continue
			}

			node.Purchased = true
			node.PurchasedAt = tick
			m.nodes[i] = node
			m.purchases++
			out.Purchased = &node

			logger.FromContext(ctx).Info(LogMsgNodePurchased,
				"tick", tick,
				"node_id", node.ID,
				"kind", node.Kind.String(),
				"cost", node.Cost)

			m.applyConsequence(ctx, tick, node, &out)
			return true
		}
		return false
	})
	if err != nil {
		out.CooldownRemaining = m.gate.Remaining(tick)
		logger.FromContext(ctx).Debug(cooldown.LogMsgCooldownBlocked,
			"action", m.gate.Action(),
			"remaining_ticks", out.CooldownRemaining)
		return out
	}
	if out.Purchased != nil {
		logger.FromContext(ctx).Debug(cooldown.LogMsgCooldownArmed,
			"action", m.gate.Action(),
			"ticks", m.gate.Duration())
	}

	if len(out.Declined) > 0 && out.Purchased == nil {
		logger.FromContext(ctx).Debug(LogMsgDebitDeclined, "tick", tick, "node_ids", out.Declined)
	}
	return out
}

func (m *Machine) applyConsequence(ctx context.Context, tick uint64, node domain.PurchasableNode, out *Outcome) {
	cfg, _ := m.catalog.Node(node.Key)
	log := logger.FromContext(ctx)

	switch node.Kind {
	case domain.NodeKindFloor:
		floor := domain.FloorRecord{
			Index:     m.floorCount,
			Elevation: m.cfg.FloorHeight * float64(m.floorCount),
		}
		m.floors = append(m.floors, floor)
		m.floorCount++
		out.Floor = &floor
		log.Info(LogMsgFloorAdded, "index", floor.Index, "elevation", floor.Elevation, "floor_count", m.floorCount)

		if cfg.Repeats() {
			if cfg.Repeat.MaxTier > 0 && node.Tier >= cfg.Repeat.MaxTier {
				log.Info(LogMsgMaxTierReached, "key", node.Key, "tier", node.Tier)
			} else {
				pos := node.Position
				pos.Y = floor.Elevation + m.cfg.MarkerOffset
				next := m.register(ctx, tick, cfg, node.Tier+1, pos, nextTierCost(node.Cost, cfg.Repeat.CostGrowth))
				out.Registered = append(out.Registered, next)
			}
		}

	case domain.NodeKindDropper:
		dropper := m.spawner.AddDropper(ctx, node.Position.Add(m.cfg.DropperOffset), node.ID)
		out.Dropper = &dropper
		log.Info(LogMsgDropperAdded, "dropper_id", dropper.ID, "node_id", node.ID)

		if cfg.Repeats() && (cfg.Repeat.MaxTier == 0 || node.Tier < cfg.Repeat.MaxTier) {
			next := m.register(ctx, tick, cfg, node.Tier+1, node.Position, nextTierCost(node.Cost, cfg.Repeat.CostGrowth))
			out.Registered = append(out.Registered, next)
		}

	default:
		panic(fmt.Sprintf("progression: unhandled node kind %s", node.Kind))
	}

	for _, key := range cfg.Unlocks {
		if m.registered[key] {
			continue
		}
		target, _ := m.catalog.Node(key)
		out.Registered = append(out.Registered, m.register(ctx, tick, target, 1, target.Position, target.Cost))
	}
}

func (m *Machine) register(ctx context.Context, tick uint64, cfg NodeConfig, tier int, pos domain.Point3, cost int) domain.PurchasableNode {
	kind, _ := cfg.NodeKind()
	node := domain.PurchasableNode{
		ID:           NodeID(cfg.Key, tier),
		Key:          cfg.Key,
		DisplayName:  cfg.DisplayName,
		Position:     pos,
		Cost:         cost,
		Kind:         kind,
		Tier:         tier,
		RegisteredAt: tick,
	}
	m.nodes = append(m.nodes, node)
	m.registered[cfg.Key] = true

	logger.FromContext(ctx).Debug(LogMsgNodeRegistered, "node_id", node.ID, "cost", cost, "tick", tick)
	return node
}

// NodeID builds the id of tier of a catalog key
func NodeID(key string, tier int) string {
	return key + NodeIDSeparator + strconv.Itoa(tier)
}

func nextTierCost(cost int, growth float64) int {
	if growth <= 1 {
		return cost
	}
	next := math.Ceil(float64(cost) * growth)
	// also catches +Inf and NaN before the int conversion
	if !(next < MaxTierCost) {
		return MaxTierCost
	}
	return int(next)
}

// Nodes returns every registered node, purchased or not, in registration order
func (m *Machine) Nodes() []domain.PurchasableNode {
	out := make([]domain.PurchasableNode, len(m.nodes))
	copy(out, m.nodes)
	return out
}

// Available returns the nodes still open for purchase
func (m *Machine) Available() []domain.PurchasableNode {
	out := make([]domain.PurchasableNode, 0, len(m.nodes))
	for _, n := range m.nodes {
		if !n.Purchased {
			out = append(out, n)
		}
	}
	return out
}

// PurchasedIDs returns purchased node ids in registration order
func (m *Machine) PurchasedIDs() []string {
	var ids []string
	for _, n := range m.nodes {
		if n.Purchased {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Floors returns the purchased floors
func (m *Machine) Floors() []domain.FloorRecord {
	out := make([]domain.FloorRecord, len(m.floors))
	copy(out, m.floors)
	return out
}

// FloorCount includes the ground floor
func (m *Machine) FloorCount() int {
	return m.floorCount
}

// Purchases returns the number of resolved purchases
func (m *Machine) Purchases() uint64 {
	return m.purchases
}

// CooldownRemaining returns ticks until the purchase lock opens at tick
func (m *Machine) CooldownRemaining(tick uint64) uint64 {
	return m.gate.Remaining(tick)
}

// Catalog returns the catalog the machine was built from
func (m *Machine) Catalog() *Catalog {
	return m.catalog
}
