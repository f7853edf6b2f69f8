package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jeduden/hclmark/internal/rule"
)

const configFileName = ".hclmark.yml"

// Load reads and parses a config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Discover walks up the directory tree from startDir looking for a
// .hclmark.yml config file. It stops searching when it encounters a .git
// directory (the repository root) or reaches the filesystem root.
// Returns the path to the config file, or "" if none was found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		// Check for .git boundary — if .git exists in this dir,
		// this is the repo root and we should not search further up.
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// Defaults returns a Config with all built-in rules enabled
// with default settings (no custom settings).
func Defaults() *Config {
	all := rule.All()
	rules := make(map[string]RuleCfg, len(all))
	for _, r := range all {
		rules[r.Name()] = RuleCfg{Enabled: true}
	}
	return &Config{
		Rules: rules,
	}
}

// DumpDefaults returns a Config with all registered rules enabled and
// their default settings populated. Rules that implement Configurable
// have their DefaultSettings() included in RuleCfg.Settings. The
// annotation cap and suppression token are populated explicitly.
// This is consumed by `hclmark init` to generate a default config file.
func DumpDefaults() *Config {
	all := rule.All()
	rules := make(map[string]RuleCfg, len(all))
	for _, r := range all {
		rc := RuleCfg{Enabled: true}
		if c, ok := r.(rule.Configurable); ok {
			rc.Settings = c.DefaultSettings()
		}
		rules[r.Name()] = rc
	}

	max := DefaultMaxAnnotations
	cfg := &Config{
		Rules:          rules,
		MaxAnnotations: &max,
	}
	cfg.Include = cfg.IncludeOrDefault()
	token := cfg.SuppressionTokenOrDefault()
	cfg.SuppressionToken = &token
	return cfg
}
