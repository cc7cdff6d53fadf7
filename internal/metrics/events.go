package metrics

import (
	"context"

	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/event"
	"github.com/osse101/Tycoon_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.NodeRegistered:
		var p event.NodeRegisteredPayloadV1
		if p, err = event.DecodePayload[event.NodeRegisteredPayloadV1](evt.Payload); err == nil {
			NodesRegistered.WithLabelValues(p.Kind).Inc()
		}

	case event.NodePurchased:
		var p event.NodePurchasedPayloadV1
		if p, err = event.DecodePayload[event.NodePurchasedPayloadV1](evt.Payload); err == nil {
			PurchasesTotal.WithLabelValues(p.Kind).Inc()
			MoneySpent.Add(float64(p.Cost))
		}

	case event.ItemSpawned:
		ItemsSpawned.Inc()

	case event.ItemDelivered:
		var p event.ItemDeliveredPayloadV1
		if p, err = event.DecodePayload[event.ItemDeliveredPayloadV1](evt.Payload); err == nil {
			ItemsDelivered.Inc()
			ItemTransitTicks.Observe(float64(p.TransitTicks))
			MoneyEarned.WithLabelValues(domain.SourceConveyor).Add(float64(p.Payout))
		}

	case event.IncomePassive:
		var p event.IncomePassivePayloadV1
		if p, err = event.DecodePayload[event.IncomePassivePayloadV1](evt.Payload); err == nil {
			MoneyEarned.WithLabelValues(domain.SourcePassive).Add(float64(p.Amount))
		}
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
