package progression

import (
	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/spatial"
	"github.com/osse101/Tycoon_Go/internal/validation"
)

// Config holds the purchase and consequence constants
type Config struct {
	ProximityRadius       float64        `yaml:"proximity_radius" json:"proximity_radius" validate:"gt=0"`
	PurchaseCooldownTicks uint64         `yaml:"purchase_cooldown_ticks" json:"purchase_cooldown_ticks"`
	FloorHeight           float64        `yaml:"floor_height" json:"floor_height" validate:"gt=0"`
	MarkerOffset          float64        `yaml:"marker_offset" json:"marker_offset" validate:"gte=0"`
	DropperOffset         domain.Vec3    `yaml:"dropper_offset" json:"dropper_offset"`
	Metric                spatial.Metric `yaml:"metric" json:"metric" validate:"omitempty,oneof=euclidean planar"`
}

// DefaultConfig returns the stock game constants
func DefaultConfig() Config {
	return Config{
		ProximityRadius:       DefaultProximityRadius,
		PurchaseCooldownTicks: DefaultPurchaseCooldownTicks,
		FloorHeight:           DefaultFloorHeight,
		MarkerOffset:          DefaultMarkerOffset,
		DropperOffset:         domain.Vec3{Z: 2},
		Metric:                spatial.MetricEuclidean,
	}
}

// Validate checks the constants
func (c Config) Validate() error {
	return validation.Config(c)
}
