// Package runconfig holds the JSON-loadable launch configuration for the
// branch and cache simulators, replacing the original's build-time
// #define policy selection with a runtime, file- or flag-driven one.
package runconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/archsim-lab/uarchsim/branch"
)

// BranchConfig selects the branch predictor policy a run drives the BTB
// with.
type BranchConfig struct {
	Predictor branch.Kind `json:"predictor"`
}

// DefaultBranchConfig returns the gshare-style two-level global predictor,
// matching the source's historical default build.
func DefaultBranchConfig() *BranchConfig {
	return &BranchConfig{Predictor: branch.TwoLevelGlobalKind}
}

// LoadBranchConfig loads a BranchConfig from a JSON file, starting from
// defaults for any field the file omits.
func LoadBranchConfig(path string) (*BranchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read branch config file: %w", err)
	}

	cfg := DefaultBranchConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse branch config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the BranchConfig to path as JSON.
func (c *BranchConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize branch config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write branch config file: %w", err)
	}
	return nil
}

// Validate checks that Predictor names a real policy.
func (c *BranchConfig) Validate() error {
	if _, err := branch.New(c.Predictor); err != nil {
		return fmt.Errorf("invalid branch config: %w", err)
	}
	return nil
}

// Clone returns a copy of the BranchConfig.
func (c *BranchConfig) Clone() *BranchConfig {
	clone := *c
	return &clone
}
