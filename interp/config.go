package interp

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfigFile reads a YAML-encoded Config from path, letting a host
// ship interpreter tuning (recursion caps, expansion caps) alongside its
// program instead of hardcoding interp.Option calls. This is the one
// place SPEC_FULL.md's ambient configuration section wires yaml.v3.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
