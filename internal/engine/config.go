package engine

import (
	"time"

	"github.com/osse101/Tycoon_Go/internal/conveyor"
	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/economy"
	"github.com/osse101/Tycoon_Go/internal/progression"
	"github.com/osse101/Tycoon_Go/internal/validation"
)

// Config gathers every simulation constant. It is fixed once the game is built.
type Config struct {
	TickRateHz  int           `yaml:"tick_rate_hz" json:"tick_rate_hz" validate:"gt=0,lte=1000"`
	PlayerSpeed float64       `yaml:"player_speed" json:"player_speed" validate:"gt=0"`
	PlayerStart domain.Point3 `yaml:"player_start" json:"player_start"`

	Economy     economy.Config     `yaml:"economy" json:"economy"`
	Progression progression.Config `yaml:"progression" json:"progression"`
	Conveyor    conveyor.Config    `yaml:"conveyor" json:"conveyor"`
}

// DefaultConfig returns the stock game tuning
func DefaultConfig() Config {
	return Config{
		TickRateHz:  DefaultTickRateHz,
		PlayerSpeed: DefaultPlayerSpeed,
		PlayerStart: domain.Point3{Y: 1},
		Economy:     economy.DefaultConfig(),
		Progression: progression.DefaultConfig(),
		Conveyor:    conveyor.DefaultConfig(),
	}
}

// Validate checks every nested section
func (c Config) Validate() error {
	return validation.Config(c)
}

// TickInterval is the wall-clock duration of one tick
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRateHz)
}
