package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/Tycoon_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Tick    uint64      `json:"tick"`
	Payload interface{} `json:"payload"`
}

// Tycoon event types
const (
	NodeRegistered Type = domain.EventTypeNodeRegistered
	NodePurchased  Type = domain.EventTypeNodePurchased
	FloorAdded     Type = domain.EventTypeFloorAdded
	DropperAdded   Type = domain.EventTypeDropperAdded
	ItemSpawned    Type = domain.EventTypeItemSpawned
	ItemDelivered  Type = domain.EventTypeItemDelivered
	IncomePassive  Type = domain.EventTypeIncomePassive
)

// AllTypes lists every event type the engine publishes
var AllTypes = []Type{
	NodeRegistered,
	NodePurchased,
	FloorAdded,
	DropperAdded,
	ItemSpawned,
	ItemDelivered,
	IncomePassive,
}

// Typed event payloads for type safety

// NodeRegisteredPayloadV1 is the typed payload for node registration events
type NodeRegisteredPayloadV1 struct {
	NodeID   string        `json:"node_id"`
	Key      string        `json:"key"`
	Kind     string        `json:"kind"`
	Cost     int           `json:"cost"`
	Tier     int           `json:"tier"`
	Position domain.Point3 `json:"position"`
}

// NodePurchasedPayloadV1 is the typed payload for node purchase events
type NodePurchasedPayloadV1 struct {
	NodeID       string `json:"node_id"`
	Key          string `json:"key"`
	Kind         string `json:"kind"`
	Cost         int    `json:"cost"`
	BalanceAfter int    `json:"balance_after"`
}

// FloorAddedPayloadV1 is the typed payload for floor creation events
type FloorAddedPayloadV1 struct {
	Index      int     `json:"index"`
	Elevation  float64 `json:"elevation"`
	FloorCount int     `json:"floor_count"`
}

// DropperAddedPayloadV1 is the typed payload for dropper creation events
type DropperAddedPayloadV1 struct {
	DropperID    string        `json:"dropper_id"`
	SourceNodeID string        `json:"source_node_id"`
	Position     domain.Point3 `json:"position"`
	Period       int           `json:"period"`
}

// ItemSpawnedPayloadV1 is the typed payload for item spawn events
type ItemSpawnedPayloadV1 struct {
	ItemID    uint64        `json:"item_id"`
	DropperID string        `json:"dropper_id"`
	Position  domain.Point3 `json:"position"`
}

// ItemDeliveredPayloadV1 is the typed payload for item delivery events
type ItemDeliveredPayloadV1 struct {
	ItemID       uint64 `json:"item_id"`
	DropperID    string `json:"dropper_id"`
	Payout       int    `json:"payout"`
	TransitTicks uint64 `json:"transit_ticks"`
}

// IncomePassivePayloadV1 is the typed payload for passive income events
type IncomePassivePayloadV1 struct {
	Amount       int   `json:"amount"`
	BalanceAfter int   `json:"balance_after"`
	Timestamp    int64 `json:"timestamp"`
}

// NewNodeRegisteredEvent creates a node registered event
func NewNodeRegisteredEvent(tick uint64, node domain.PurchasableNode) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    NodeRegistered,
		Tick:    tick,
		Payload: NodeRegisteredPayloadV1{
			NodeID:   node.ID,
			Key:      node.Key,
			Kind:     node.Kind.String(),
			Cost:     node.Cost,
			Tier:     node.Tier,
			Position: node.Position,
		},
	}
}

// NewNodePurchasedEvent creates a node purchased event
func NewNodePurchasedEvent(tick uint64, node domain.PurchasableNode, balanceAfter int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    NodePurchased,
		Tick:    tick,
		Payload: NodePurchasedPayloadV1{
			NodeID:       node.ID,
			Key:          node.Key,
			Kind:         node.Kind.String(),
			Cost:         node.Cost,
			BalanceAfter: balanceAfter,
		},
	}
}

// NewFloorAddedEvent creates a floor added event
func NewFloorAddedEvent(tick uint64, floor domain.FloorRecord, floorCount int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    FloorAdded,
		Tick:    tick,
		Payload: FloorAddedPayloadV1{
			Index:      floor.Index,
			Elevation:  floor.Elevation,
			FloorCount: floorCount,
		},
	}
}

// NewDropperAddedEvent creates a dropper added event
func NewDropperAddedEvent(tick uint64, d domain.Dropper) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DropperAdded,
		Tick:    tick,
		Payload: DropperAddedPayloadV1{
			DropperID:    d.ID,
			SourceNodeID: d.SourceNodeID,
			Position:     d.Position,
			Period:       d.Period,
		},
	}
}

// NewItemSpawnedEvent creates an item spawned event
func NewItemSpawnedEvent(tick uint64, item domain.Item) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemSpawned,
		Tick:    tick,
		Payload: ItemSpawnedPayloadV1{
			ItemID:    item.ID,
			DropperID: item.DropperID,
			Position:  item.Position,
		},
	}
}

// NewItemDeliveredEvent creates an item delivered event
func NewItemDeliveredEvent(tick uint64, item domain.Item, payout int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemDelivered,
		Tick:    tick,
		Payload: ItemDeliveredPayloadV1{
			ItemID:       item.ID,
			DropperID:    item.DropperID,
			Payout:       payout,
			TransitTicks: tick - item.SpawnedAt,
		},
	}
}

// NewIncomePassiveEvent creates a passive income event
func NewIncomePassiveEvent(amount, balanceAfter int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    IncomePassive,
		Payload: IncomePassivePayloadV1{
			Amount:       amount,
			BalanceAfter: balanceAfter,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus defines the interface for an event bus
type Bus interface {
	Publisher
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously in
// subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// PublishAll publishes events in order and returns the first error after
// attempting all of them
func PublishAll(ctx context.Context, p Publisher, events []Event) error {
	var first error
	for _, evt := range events {
		if err := p.Publish(ctx, evt); err != nil && first == nil {
			first = err
		}
	}
	return first
}
