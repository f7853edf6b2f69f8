package config

import (
	"github.com/gobwas/glob"
)

// Merge merges a loaded config on top of defaults. The loaded config's
// rules override the defaults; any rule not mentioned in loaded keeps
// its default value. Include, Ignore, Overrides, the annotation cap and
// the suppression token come from the loaded config only.
func Merge(defaults, loaded *Config) *Config {
	rules := make(map[string]RuleCfg, len(defaults.Rules))
	for k, v := range defaults.Rules {
		rules[k] = v
	}

	if loaded == nil {
		// No user config: return a copy of defaults.
		return &Config{
			Rules:            rules,
			MaxAnnotations:   defaults.MaxAnnotations,
			SuppressionToken: defaults.SuppressionToken,
		}
	}

	// Apply loaded rules on top.
	for k, v := range loaded.Rules {
		rules[k] = v
	}

	max := defaults.MaxAnnotations
	if loaded.MaxAnnotations != nil {
		max = loaded.MaxAnnotations
	}

	token := defaults.SuppressionToken
	if loaded.SuppressionToken != nil {
		token = loaded.SuppressionToken
	}

	return &Config{
		Rules:            rules,
		Include:          loaded.Include,
		Ignore:           loaded.Ignore,
		Overrides:        loaded.Overrides,
		MaxAnnotations:   max,
		SuppressionToken: token,
	}
}

// Effective returns the effective rule configuration for a given file path.
// It starts with the top-level rules and then applies each override whose
// file patterns match filePath, in order. Later overrides take precedence.
func Effective(cfg *Config, filePath string) map[string]RuleCfg {
	result := make(map[string]RuleCfg, len(cfg.Rules))
	for k, v := range cfg.Rules {
		result[k] = v
	}

	for _, o := range cfg.Overrides {
		if matchesAny(o.Files, filePath) {
			for k, v := range o.Rules {
				result[k] = v
			}
		}
	}

	return result
}

// matchesAny returns true if filePath matches any of the given glob patterns.
func matchesAny(patterns []string, filePath string) bool {
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			// Skip invalid patterns silently.
			continue
		}
		if g.Match(filePath) {
			return true
		}
	}
	return false
}
