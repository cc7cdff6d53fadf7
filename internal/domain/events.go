package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "node.purchased")
const (
	// EventTypeNodeRegistered is published when a purchasable node becomes available
	EventTypeNodeRegistered = "node.registered"

	// EventTypeNodePurchased is published when a node transitions to Purchased
	EventTypeNodePurchased = "node.purchased"

	// EventTypeFloorAdded is published when a floor purchase creates a floor record
	EventTypeFloorAdded = "floor.added"

	// EventTypeDropperAdded is published when a dropper purchase creates a dropper
	EventTypeDropperAdded = "dropper.added"

	// EventTypeItemSpawned is published when a dropper spawns an item
	EventTypeItemSpawned = "item.spawned"

	// EventTypeItemDelivered is published when an item crosses the conveyor endpoint
	EventTypeItemDelivered = "item.delivered"

	// EventTypeIncomePassive is published for each passive income credit
	EventTypeIncomePassive = "income.passive"
)
