package conveyor

import (
	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/validation"
)

// Config holds the spawner and conveyor constants
type Config struct {
	DropperPeriod int         `yaml:"dropper_period" json:"dropper_period" validate:"gt=0"`
	ItemPayout    int         `yaml:"item_payout" json:"item_payout" validate:"gt=0"`
	SpawnOffset   float64     `yaml:"spawn_offset" json:"spawn_offset" validate:"gte=0"`
	Axis          domain.Axis `yaml:"axis" json:"axis" validate:"oneof=x y z"`
	Origin        float64     `yaml:"origin" json:"origin"`
	Length        float64     `yaml:"length" json:"length" validate:"gt=0"`
	ItemSpeed     float64     `yaml:"item_speed" json:"item_speed" validate:"gt=0"`
}

// DefaultConfig returns a conveyor along X from -8 to 8
func DefaultConfig() Config {
	return Config{
		DropperPeriod: DefaultDropperPeriod,
		ItemPayout:    DefaultItemPayout,
		SpawnOffset:   DefaultSpawnOffset,
		Axis:          domain.AxisX,
		Origin:        DefaultOrigin,
		Length:        DefaultLength,
		ItemSpeed:     DefaultItemSpeed,
	}
}

// Validate rejects out-of-range constants; a zero period would spawn forever
func (c Config) Validate() error {
	return validation.Config(c)
}

// Threshold is the axis coordinate past which an item is delivered
func (c Config) Threshold() float64 {
	return c.Origin + c.Length
}
