// Package spatial answers the point-distance questions the progression engine
// asks about the player and purchase markers.
package spatial

import (
	"fmt"
	"math"
	"strings"

	"github.com/osse101/Tycoon_Go/internal/domain"
)

// Metric selects how distance is measured
type Metric string

const (
	// MetricEuclidean measures full 3D distance
	MetricEuclidean Metric = "euclidean"
	// MetricPlanar ignores elevation and measures on the XZ ground plane
	MetricPlanar Metric = "planar"
)

// ParseMetric parses a metric name, defaulting to euclidean when empty
func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case "", MetricEuclidean:
		return MetricEuclidean, nil
	case MetricPlanar:
		return MetricPlanar, nil
	default:
		return "", fmt.Errorf("%w: unknown distance metric %q", domain.ErrInvalidConfig, s)
	}
}

// Query measures distances between world positions
type Query interface {
	Distance(a, b domain.Point3) float64
	Within(a, b domain.Point3, radius float64) bool
}

type query struct {
	metric Metric
}

// NewQuery returns a Query using metric
func NewQuery(metric Metric) Query {
	return query{metric: metric}
}

func (q query) Distance(a, b domain.Point3) float64 {
	if q.metric == MetricPlanar {
		dx, dz := a.X-b.X, a.Z-b.Z
		return math.Sqrt(dx*dx + dz*dz)
	}
	return a.DistanceTo(b)
}

// Within reports whether b is strictly closer to a than radius
func (q query) Within(a, b domain.Point3, radius float64) bool {
	return q.Distance(a, b) < radius
}
