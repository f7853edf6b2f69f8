package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jeduden/hclmark/internal/lint"
)

// DefaultMaxAnnotations caps how many annotations a single document
// run may emit.
const DefaultMaxAnnotations = 3

// Config is the top-level configuration.
type Config struct {
	Rules            map[string]RuleCfg `yaml:"rules"`
	Include          []string           `yaml:"include"`
	Ignore           []string           `yaml:"ignore"`
	Overrides        []Override         `yaml:"overrides"`
	MaxAnnotations   *int               `yaml:"max-annotations"`
	SuppressionToken *string            `yaml:"suppression-token"`
}

// IncludeOrDefault returns the configured discovery patterns, or the
// default of every .tf file under the working directory.
func (c *Config) IncludeOrDefault() []string {
	if len(c.Include) > 0 {
		return c.Include
	}
	return []string{"**/*.tf"}
}

// Override applies rule settings to files matching glob patterns.
type Override struct {
	Files []string           `yaml:"files"`
	Rules map[string]RuleCfg `yaml:"rules"`
}

// MaxAnnotationsOrDefault returns the configured annotation cap, or
// DefaultMaxAnnotations when unset or non-positive.
func (c *Config) MaxAnnotationsOrDefault() int {
	if c.MaxAnnotations != nil && *c.MaxAnnotations > 0 {
		return *c.MaxAnnotations
	}
	return DefaultMaxAnnotations
}

// SuppressionTokenOrDefault returns the configured suppression
// directive, or lint.DefaultSuppressionToken when unset.
func (c *Config) SuppressionTokenOrDefault() string {
	if c.SuppressionToken != nil {
		return *c.SuppressionToken
	}
	return lint.DefaultSuppressionToken
}

// RuleCfg is a YAML union: can be bool (enable/disable) or map[string]any (settings).
type RuleCfg struct {
	Enabled  bool
	Settings map[string]any
}

// UnmarshalYAML implements custom YAML unmarshalling for RuleCfg.
// It handles three forms:
//   - false -> Enabled=false, Settings=nil
//   - true  -> Enabled=true,  Settings=nil
//   - {key: val, ...} -> Enabled=true, Settings={key: val, ...}
func (r *RuleCfg) UnmarshalYAML(value *yaml.Node) error {
	// Try bool first
	if value.Kind == yaml.ScalarNode {
		var b bool
		if err := value.Decode(&b); err == nil {
			r.Enabled = b
			r.Settings = nil
			return nil
		}
	}

	// Try map
	if value.Kind == yaml.MappingNode {
		var m map[string]any
		if err := value.Decode(&m); err != nil {
			return fmt.Errorf("invalid rule config: %w", err)
		}
		r.Enabled = true
		r.Settings = m
		return nil
	}

	return fmt.Errorf("rule config must be a bool or a mapping, got %v", value.Kind)
}
