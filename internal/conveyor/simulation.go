package conveyor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/logger"
)

// Crediter receives delivery payouts
type Crediter interface {
	Credit(ctx context.Context, amount int, source string)
}

// TickResult lists what happened on the conveyor during one tick
type TickResult struct {
	Spawned   []domain.Item
	Delivered []domain.Item
	Payout    int
}

// Simulation owns droppers and in-transit items. It is driven by the game
// tick and is not safe for concurrent use.
type Simulation struct {
	cfg  Config
	econ Crediter

	droppers []domain.Dropper
	items    []domain.Item

	nextItemID uint64
	spawned    uint64
	delivered  uint64
}

// NewSimulation creates an empty conveyor crediting payouts to econ
func NewSimulation(cfg Config, econ Crediter) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("conveyor: %w", err)
	}
	if econ == nil {
		return nil, fmt.Errorf("%w: conveyor requires an economy", domain.ErrInvalidConfig)
	}
	return &Simulation{cfg: cfg, econ: econ}, nil
}

// AddDropper registers a dropper at pos. Its first item spawns one full
// period later.
func (s *Simulation) AddDropper(ctx context.Context, pos domain.Point3, sourceNodeID string) domain.Dropper {
	d := domain.Dropper{
		ID:                DropperIDPrefix + strconv.Itoa(len(s.droppers)+1),
		Position:          pos,
		CooldownRemaining: s.cfg.DropperPeriod,
		Period:            s.cfg.DropperPeriod,
		SourceNodeID:      sourceNodeID,
	}
	s.droppers = append(s.droppers, d)

	logger.FromContext(ctx).Info(LogMsgDropperAdded,
		"dropper_id", d.ID,
		"source_node_id", sourceNodeID,
		"period", d.Period)
	return d
}

// Tick advances dropper cooldowns, spawns due items, then moves every item
// and delivers those past the conveyor endpoint
func (s *Simulation) Tick(ctx context.Context, tick uint64) TickResult {
	var res TickResult

	for i := range s.droppers {
		d := &s.droppers[i]
		d.CooldownRemaining--
		if d.CooldownRemaining > 0 {
			continue
		}
		d.CooldownRemaining = d.Period

		s.nextItemID++
		item := domain.Item{
			ID:        s.nextItemID,
			Position:  d.Position.Add(domain.Vec3{Y: s.cfg.SpawnOffset}),
			State:     domain.ItemInTransit,
			DropperID: d.ID,
			SpawnedAt: tick,
		}
		s.items = append(s.items, item)
		s.spawned++
		res.Spawned = append(res.Spawned, item)
	}

	threshold := s.cfg.Threshold()
	active := s.items[:0]
	for _, item := range s.items {
		along := item.Position.Component(s.cfg.Axis) + s.cfg.ItemSpeed
		item.Position = item.Position.WithComponent(s.cfg.Axis, along)

		if along <= threshold {
			active = append(active, item)
			continue
		}

		item.State = domain.ItemDelivered
		s.delivered++
		res.Delivered = append(res.Delivered, item)
		res.Payout += s.cfg.ItemPayout
	}
	// clear the tail so delivered items are not retained by the backing array
	for i := len(active); i < len(s.items); i++ {
		s.items[i] = domain.Item{}
	}
	s.items = active

	if res.Payout > 0 {
		s.econ.Credit(ctx, res.Payout, domain.SourceConveyor)
		logger.FromContext(ctx).Debug(LogMsgItemDelivered,
			"tick", tick,
			"count", len(res.Delivered),
			"payout", res.Payout)
	}

	return res
}

// Droppers returns a copy of the registered droppers
func (s *Simulation) Droppers() []domain.Dropper {
	out := make([]domain.Dropper, len(s.droppers))
	copy(out, s.droppers)
	return out
}

// Items returns a copy of the in-transit items in spawn order
func (s *Simulation) Items() []domain.Item {
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Counts returns lifetime spawned and delivered totals
func (s *Simulation) Counts() (spawned, delivered uint64) {
	return s.spawned, s.delivered
}

// Config returns the simulation constants
func (s *Simulation) Config() Config {
	return s.cfg
}
