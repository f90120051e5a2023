// Package config holds the JSON-loadable scenario configuration,
// mirroring the node-configuration pattern of the reference this
// module was adapted from: a struct with JSON tags, a DefaultConfig
// constructor, and a Validate method performing range checks.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// ScenarioConfig parameterizes one simulation run.
type ScenarioConfig struct {
	Name                string  `json:"name"`
	AverageBlockInterval float64 `json:"average_block_interval"` // seconds
	ConfirmationDepth    int     `json:"confirmation_depth"`
	StopTime             float64 `json:"stop_time"` // simulated seconds
	Seed                 uint64  `json:"seed"`
	NumRegularNodes      int     `json:"num_regular_nodes"`
	NumMiners            int     `json:"num_miners"`
	NeighborDegree       int     `json:"neighbor_degree"`
	OutputDir            string  `json:"output_dir"`
}

// DefaultConfig returns the "ten-minute Bitcoin day" smoke-test
// scenario from the testable-properties section: 8013 nodes, 30
// miners, 10-minute average interval, depth 6, a full day of
// simulated time.
func DefaultConfig() *ScenarioConfig {
	return &ScenarioConfig{
		Name:                 "bitcoin-day",
		AverageBlockInterval: 600,
		ConfirmationDepth:    6,
		StopTime:             86400,
		Seed:                 0,
		NumRegularNodes:      7983,
		NumMiners:            30,
		NeighborDegree:       8,
		OutputDir:            "./out",
	}
}

// Load reads a JSON scenario file from path, applying it on top of
// DefaultConfig, and validates the result.
func Load(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as formatted JSON.
func Save(cfg *ScenarioConfig, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Validate checks that every field is within a sane range before a
// run is allowed to start scheduling events.
func (c *ScenarioConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if c.AverageBlockInterval <= 0 {
		return fmt.Errorf("average_block_interval must be positive, got %g", c.AverageBlockInterval)
	}
	if c.ConfirmationDepth < 0 {
		return fmt.Errorf("confirmation_depth must be >= 0, got %d", c.ConfirmationDepth)
	}
	if c.StopTime < 0 {
		return fmt.Errorf("stop_time must be >= 0, got %g", c.StopTime)
	}
	if c.NumMiners <= 0 {
		return fmt.Errorf("num_miners must be positive, got %d", c.NumMiners)
	}
	if c.NumRegularNodes < 0 {
		return fmt.Errorf("num_regular_nodes must be >= 0, got %d", c.NumRegularNodes)
	}
	if c.NeighborDegree <= 0 {
		return fmt.Errorf("neighbor_degree must be positive, got %d", c.NeighborDegree)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}
