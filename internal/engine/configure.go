package engine

import (
	"fmt"

	"github.com/jeduden/hclmark/internal/config"
	"github.com/jeduden/hclmark/internal/rule"
)

// ConfigureRule clones a rule and applies settings from cfg if the rule
// implements Configurable and cfg has settings. Returns the configured
// rule (or the original if no settings apply) and any error from
// ApplySettings.
func ConfigureRule(rl rule.Rule, cfg config.RuleCfg) (rule.Rule, error) {
	if cfg.Settings == nil {
		return rl, nil
	}
	if _, ok := rl.(rule.Configurable); !ok {
		return rl, nil
	}
	clone := rule.CloneRule(rl)
	if c, ok := clone.(rule.Configurable); ok {
		if err := c.ApplySettings(cfg.Settings); err != nil {
			return nil, fmt.Errorf("applying settings for %s: %w", rl.Name(), err)
		}
	}
	return clone, nil
}

// EnabledRules filters and configures the catalog for one document,
// preserving catalog order. Settings-application errors are returned
// alongside the rules that did configure cleanly.
func EnabledRules(rules []rule.Rule, effective map[string]config.RuleCfg) ([]rule.Rule, []error) {
	var enabled []rule.Rule
	var errs []error

	for _, rl := range rules {
		cfg, ok := effective[rl.Name()]
		if !ok || !cfg.Enabled {
			continue
		}

		configured, err := ConfigureRule(rl, cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		enabled = append(enabled, configured)
	}

	return enabled, errs
}
