// Package config loads the checker's ambient settings: which strategy to
// run, how many errors to collect before giving up, and whether to keep the
// built-in function table enabled.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BuiltinSig describes one extra built-in function signature to layer on
// top of the checker's fixed table. Params/Return name a primitive type,
// with an optional trailing "?" for nullable (e.g. "Int", "String?");
// cmd/tlcheck maps this to types.ExtraBuiltin at the boundary.
type BuiltinSig struct {
	Name   string   `yaml:"name"`
	Params []string `yaml:"params"`
	Return string   `yaml:"return"`
}

// Config controls one checker run. Strategy is a string here (rather than
// types.Strategy) so the package doesn't need to import internal/types just
// to unmarshal YAML; cmd/tlcheck maps it to types.Strategy at the boundary.
type Config struct {
	Strategy        string       `yaml:"strategy"`
	MaxErrors       int          `yaml:"max_errors"`
	DisableBuiltins bool         `yaml:"disable_builtins"`
	Builtins        []BuiltinSig `yaml:"builtins"`
}

// Default returns the checker's out-of-the-box configuration.
func Default() *Config {
	return &Config{
		Strategy:  "constraint",
		MaxErrors: 0,
	}
}

// Load reads a YAML config file from path, falling back to Default for any
// field left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Strategy != "algorithmic" && cfg.Strategy != "constraint" {
		return nil, fmt.Errorf("config %s: strategy must be \"algorithmic\" or \"constraint\", got %q", path, cfg.Strategy)
	}
	return cfg, nil
}
