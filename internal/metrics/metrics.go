package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/osse101/Tycoon_Go/internal/domain"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Simulation Metrics
var (
	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameTickDuration,
			Help:    HelpTextTickDuration,
			Buckets: TickLatencyBuckets,
		},
	)

	Balance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameBalance,
			Help: HelpTextBalance,
		},
	)

	FloorCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameFloorCount,
			Help: HelpTextFloorCount,
		},
	)

	DroppersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameDroppersActive,
			Help: HelpTextDroppersActive,
		},
	)

	ItemsInTransit = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameItemsInTransit,
			Help: HelpTextItemsInTransit,
		},
	)

	ObserversAttached = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameObserversAttached,
			Help: HelpTextObserversAttached,
		},
	)

	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePurchasesTotal,
			Help: HelpTextPurchasesTotal,
		},
		[]string{LabelKind},
	)

	NodesRegistered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNodesRegistered,
			Help: HelpTextNodesRegistered,
		},
		[]string{LabelKind},
	)

	ItemsSpawned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsSpawned,
			Help: HelpTextItemsSpawned,
		},
	)

	ItemsDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsDelivered,
			Help: HelpTextItemsDelivered,
		},
	)

	ItemTransitTicks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameItemTransitTicks,
			Help:    HelpTextItemTransitTicks,
			Buckets: TransitTickBuckets,
		},
	)

	MoneyEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMoneyEarned,
			Help: HelpTextMoneyEarned,
		},
		[]string{LabelSource},
	)

	MoneySpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneySpent,
			Help: HelpTextMoneySpent,
		},
	)
)

// ObserveTick records one tick's wall duration
func ObserveTick(d time.Duration) {
	TickDuration.Observe(d.Seconds())
}

// RecordSnapshot refreshes the state gauges
func RecordSnapshot(snap domain.Snapshot) {
	Balance.Set(float64(snap.Balance))
	FloorCount.Set(float64(snap.FloorCount))
	DroppersActive.Set(float64(len(snap.Droppers)))
	ItemsInTransit.Set(float64(len(snap.Items)))
}
