package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/Tycoon_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub   *Hub
	bus   event.Bus
	types []event.Type
}

// NewSubscriber creates a new SSE subscriber. With no types it forwards every
// event the engine publishes.
func NewSubscriber(hub *Hub, bus event.Bus, types ...event.Type) *Subscriber {
	if len(types) == 0 {
		types = event.AllTypes
	}
	return &Subscriber{
		hub:   hub,
		bus:   bus,
		types: types,
	}
}

// Subscribe registers the forwarding handler for each configured type
func (s *Subscriber) Subscribe() {
	names := make([]string, 0, len(s.types))
	for _, t := range s.types {
		s.bus.Subscribe(t, s.forward)
		names = append(names, string(t))
	}
	slog.Info(LogMsgSubscribed, "types", names)
}

// forward relays the typed payload unchanged so stream consumers see the
// same JSON the bus carries.
func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Tick, evt.Payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "tick", evt.Tick)
	return nil
}
