package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Simulation metric names
const (
	MetricNameTickDuration      = "tycoon_tick_duration_seconds"
	MetricNameBalance           = "tycoon_balance"
	MetricNameFloorCount        = "tycoon_floor_count"
	MetricNameDroppersActive    = "tycoon_droppers_active"
	MetricNameItemsInTransit    = "tycoon_items_in_transit"
	MetricNamePurchasesTotal    = "tycoon_purchases_total"
	MetricNameNodesRegistered   = "tycoon_nodes_registered_total"
	MetricNameItemsSpawned      = "tycoon_items_spawned_total"
	MetricNameItemsDelivered    = "tycoon_items_delivered_total"
	MetricNameItemTransitTicks  = "tycoon_item_transit_ticks"
	MetricNameMoneyEarned       = "tycoon_money_earned_total"
	MetricNameMoneySpent        = "tycoon_money_spent_total"
	MetricNameObserversAttached = "tycoon_observers_attached"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Simulation metric help text
const (
	HelpTextTickDuration      = "Wall time spent in one simulation tick"
	HelpTextBalance           = "Current currency balance"
	HelpTextFloorCount        = "Current floor count including the ground floor"
	HelpTextDroppersActive    = "Droppers feeding the conveyor"
	HelpTextItemsInTransit    = "Items currently on the conveyor"
	HelpTextPurchasesTotal    = "Total number of node purchases"
	HelpTextNodesRegistered   = "Total number of purchasable nodes registered"
	HelpTextItemsSpawned      = "Total number of items spawned by droppers"
	HelpTextItemsDelivered    = "Total number of items delivered off the conveyor"
	HelpTextItemTransitTicks  = "Ticks an item spends on the conveyor"
	HelpTextMoneyEarned       = "Total currency credited"
	HelpTextMoneySpent        = "Total currency spent on purchases"
	HelpTextObserversAttached = "Websocket observers currently attached"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelKind   = "kind"
	LabelSource = "source"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// TickLatencyBuckets range from 10µs to one 60 Hz frame and beyond
var TickLatencyBuckets = []float64{.00001, .00005, .0001, .0005, .001, .0025, .005, .01, .0167, .05}

// TransitTickBuckets cover belts from a few ticks to several seconds at 60 Hz
var TransitTickBuckets = []float64{1, 10, 50, 100, 200, 300, 500, 1000}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded          = "Metrics recorded for event"
)
