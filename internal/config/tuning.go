package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/engine"
)

// DefaultTuning returns the simulation constants used when no tuning file is given
func DefaultTuning() engine.Config {
	return engine.DefaultConfig()
}

// LoadTuning reads a YAML tuning file over DefaultTuning. An empty path
// returns the defaults. Unknown keys are rejected.
func LoadTuning(path string) (engine.Config, error) {
	cfg := DefaultTuning()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Config{}, fmt.Errorf("failed to read tuning file: %w", err)
	}
	return ParseTuning(data)
}

// ParseTuning decodes YAML tuning data over DefaultTuning and validates it
func ParseTuning(data []byte) (engine.Config, error) {
	cfg := DefaultTuning()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return engine.Config{}, fmt.Errorf("%w: failed to parse tuning: %v", domain.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}
	return cfg, nil
}
