// Package config loads the YAML-configured settings for the out-of-order
// pipeline simulator (CA3) and the TAGE branch predictor (CA2).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jasonKoogler/archsim/internal/tage"
)

// ProcConfig configures the out-of-order pipeline simulator: result-bus
// count, per-type functional-unit pool sizes, and fetch width.
type ProcConfig struct {
	ResultBuses int `yaml:"resultBuses"` // R: result buses available for broadcast each cycle
	K0Units     int `yaml:"k0Units"`     // functional units handling op_code == 0
	K1Units     int `yaml:"k1Units"`     // functional units handling op_code ∈ {1, -1}
	K2Units     int `yaml:"k2Units"`     // functional units handling everything else
	FetchWidth  int `yaml:"fetchWidth"`  // F: instructions fetched per cycle

	TracePath string `yaml:"tracePath"`
}

// Validate rejects configurations the simulator has no defined behavior
// for: a zero result-bus count, a zero fetch width, or functional-unit
// pools that are all empty (every instruction would stall forever).
func (c *ProcConfig) Validate() error {
	if c.ResultBuses <= 0 {
		return fmt.Errorf("resultBuses must be positive")
	}
	if c.FetchWidth <= 0 {
		return fmt.Errorf("fetchWidth must be positive")
	}
	if c.K0Units < 0 || c.K1Units < 0 || c.K2Units < 0 {
		return fmt.Errorf("functional-unit counts must not be negative")
	}
	if c.K0Units == 0 && c.K1Units == 0 && c.K2Units == 0 {
		return fmt.Errorf("at least one functional-unit pool must be non-empty")
	}
	return nil
}

// RSCapacity returns the reservation-station slab size, 2*(K0+K1+K2).
func (c *ProcConfig) RSCapacity() int {
	return 2 * (c.K0Units + c.K1Units + c.K2Units)
}

// DefaultProcConfig matches §8's canonical scenario configuration.
func DefaultProcConfig() *ProcConfig {
	return &ProcConfig{
		ResultBuses: 2,
		K0Units:     1,
		K1Units:     1,
		K2Units:     1,
		FetchWidth:  2,
		TracePath:   "traces/default.trace",
	}
}

// TageConfig configures the TAGE conditional branch predictor. Variant is
// tage.Variant directly rather than a duplicate config-local string type:
// the two packages mean the same thing by "variant", so there is only one
// declaration of it.
type TageConfig struct {
	Variant   tage.Variant `yaml:"variant"`
	TracePath string       `yaml:"tracePath"`
}

// Validate rejects an unrecognized predictor variant.
func (c *TageConfig) Validate() error {
	switch c.Variant {
	case tage.VariantTuned, tage.VariantWide:
		return nil
	default:
		return fmt.Errorf("unsupported TAGE variant: %q", c.Variant)
	}
}

// DefaultTageConfig selects the tuned (3.7.h) variant used by §8 scenario 6.
func DefaultTageConfig() *TageConfig {
	return &TageConfig{
		Variant:   tage.VariantTuned,
		TracePath: "traces/branches.trace",
	}
}

// LoadProcConfig loads a ProcConfig from a YAML file.
func LoadProcConfig(path string) (*ProcConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultProcConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadTageConfig loads a TageConfig from a YAML file.
func LoadTageConfig(path string) (*TageConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultTageConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
