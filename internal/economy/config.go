package economy

import (
	"time"

	"github.com/osse101/Tycoon_Go/internal/validation"
)

// Config holds the economy constants fixed at construction
type Config struct {
	StartingBalance       int           `yaml:"starting_balance" json:"starting_balance" validate:"gte=0"`
	PassiveIncomeAmount   int           `yaml:"passive_income_amount" json:"passive_income_amount" validate:"gt=0"`
	PassiveIncomeInterval time.Duration `yaml:"passive_income_interval" json:"passive_income_interval" validate:"gt=0"`
}

// DefaultConfig returns the classic one-coin-per-second economy
func DefaultConfig() Config {
	return Config{
		StartingBalance:       0,
		PassiveIncomeAmount:   DefaultPassiveIncomeAmount,
		PassiveIncomeInterval: DefaultPassiveIncomeInterval,
	}
}

// Validate rejects out-of-range constants
func (c Config) Validate() error {
	return validation.Config(c)
}
