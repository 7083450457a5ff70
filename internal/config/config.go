// Package config loads simulation defaults from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/peterkuimelis/amdsim/internal/sim"
)

// Defaults are the simulation settings used when neither a flag nor a
// scenario overrides them.
type Defaults struct {
	Trials    int    `env:"AMDSIM_TRIALS" envDefault:"100000"`
	Seed      uint64 `env:"AMDSIM_SEED" envDefault:"747"`
	HandSize  int    `env:"AMDSIM_HAND_SIZE" envDefault:"9"`
	BaseMin   int    `env:"AMDSIM_BASE_MIN" envDefault:"2"`
	BaseMax   int    `env:"AMDSIM_BASE_MAX" envDefault:"6"`
	Scenarios string `env:"AMDSIM_SCENARIOS" envDefault:"scenarios.yaml"`
}

// Load parses Defaults from the environment.
func Load() (Defaults, error) {
	var d Defaults
	if err := env.Parse(&d); err != nil {
		return Defaults{}, fmt.Errorf("parse env: %w", err)
	}
	if err := d.Base().Validate(); err != nil {
		return Defaults{}, fmt.Errorf("AMDSIM_BASE_MIN/AMDSIM_BASE_MAX: %w", err)
	}
	return d, nil
}

// SimConfig returns a simulation config carrying these defaults.
func (d Defaults) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Trials = d.Trials
	cfg.Seed = d.Seed
	cfg.HandSize = d.HandSize
	return cfg
}

// Base returns the default base attack range.
func (d Defaults) Base() sim.Uniform {
	return sim.Uniform{Min: d.BaseMin, Max: d.BaseMax}
}
