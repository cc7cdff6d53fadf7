package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Tycoon_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	handled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		assert.Equal(t, eventType, event.Type)
		assert.Equal(t, "payload", event.Payload)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType, Payload: "payload"})

	require.NoError(t, err)
	assert.True(t, handled, "Handler was not called")
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	var order []int

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		order = append(order, 1)
		return nil
	})
	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		order = append(order, 2)
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType}))
	assert.Equal(t, []int{1, 2}, order, "handlers run in subscription order")
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	secondCalled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return errors.New("handler error")
	})
	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		secondCalled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler error")
	assert.True(t, secondCalled, "a failing handler must not stop later handlers")
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), Event{Type: "nobody"}))
}

func TestPublishAll_ReturnsFirstError(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	bus.Subscribe("a", func(ctx context.Context, event Event) error {
		count++
		return errors.New("first")
	})
	bus.Subscribe("b", func(ctx context.Context, event Event) error {
		count++
		return nil
	})

	err := PublishAll(context.Background(), bus, []Event{{Type: "a"}, {Type: "b"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")
	assert.Equal(t, 2, count)
}

func TestNodePurchasedEvent(t *testing.T) {
	node := domain.PurchasableNode{ID: "floor/1", Key: "floor", Kind: domain.NodeKindFloor, Cost: 10}

	evt := NewNodePurchasedEvent(42, node, 5)

	assert.Equal(t, NodePurchased, evt.Type)
	assert.Equal(t, EventSchemaVersion, evt.Version)
	assert.Equal(t, uint64(42), evt.Tick)

	payload, err := DecodePayload[NodePurchasedPayloadV1](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, "floor", payload.Kind)
	assert.Equal(t, 5, payload.BalanceAfter)
}

func TestEvent_WireShape(t *testing.T) {
	evt := NewFloorAddedEvent(3, domain.FloorRecord{Index: 1, Elevation: 10}, 2)

	data, err := json.Marshal(evt)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.ElementsMatch(t, []string{"version", "type", "tick", "payload"}, keys(fields))
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestItemDeliveredEvent_TransitTicks(t *testing.T) {
	item := domain.Item{ID: 7, DropperID: "dropper-1", SpawnedAt: 100}

	evt := NewItemDeliveredEvent(160, item, 10)

	payload, err := DecodePayload[ItemDeliveredPayloadV1](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), payload.TransitTicks)
	assert.Equal(t, 10, payload.Payout)
}

func TestDecodePayload_FromMap(t *testing.T) {
	raw := map[string]interface{}{"index": float64(2), "elevation": 10.0, "floor_count": float64(3)}

	payload, err := DecodePayload[FloorAddedPayloadV1](raw)

	require.NoError(t, err)
	assert.Equal(t, FloorAddedPayloadV1{Index: 2, Elevation: 10, FloorCount: 3}, payload)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 10
	assert.Equal(t, 10, int(CalculateRetryDelay(10, 1)))
	assert.Equal(t, 20, int(CalculateRetryDelay(10, 2)))
	assert.Equal(t, 80, int(CalculateRetryDelay(10, 4)))
	assert.Equal(t, base, int(CalculateRetryDelay(10, 0)))
}
