package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/Tycoon_Go/internal/event"
	"github.com/osse101/Tycoon_Go/internal/metrics"
	"github.com/osse101/Tycoon_Go/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	// Hub is optional; without it no stream subscriber is attached
	Hub *sse.Hub
}

// RegisterEventHandlers attaches the metrics collector and, when a hub is
// given, the server-sent events relay to the bus.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
		slog.Info(LogMsgStreamSubscriberRegistered, "types", len(event.AllTypes))
	}

	return nil
}
