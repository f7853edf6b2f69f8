package missingrequiredtags

import (
	"fmt"
	"strings"

	"github.com/jeduden/hclmark/internal/lint"
	"github.com/jeduden/hclmark/internal/rule"
)

func init() {
	rule.Register(&Rule{
		Tags: defaultTags(),
	})
}

func defaultTags() []string {
	return []string{"Environment", "Owner", "Project"}
}

// untaggable lists resource types that take no tags attribute; they
// are skipped rather than flagged.
var untaggable = map[string]bool{
	"aws_iam_role_policy_attachment": true,
	"aws_iam_user_policy_attachment": true,
	"aws_route":                      true,
	"aws_route_table_association":    true,
	"aws_security_group_rule":        true,
	"null_resource":                  true,
}

// Rule checks that every taggable resource carries the required tags.
// A resource without a tags attribute at all is flagged over its whole
// block; a resource with a literal tags map is flagged once, naming
// the missing keys.
type Rule struct {
	Tags []string
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "HM005" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "missing-required-tags" }

// Description implements rule.Rule.
func (r *Rule) Description() string {
	return "Resources must carry the organization's required tags"
}

// Importance implements rule.Rule.
func (r *Rule) Importance() int { return 3 }

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "tags":
			list, ok := toStringSlice(v)
			if !ok {
				return fmt.Errorf("missing-required-tags: tags must be a list of strings, got %T", v)
			}
			r.Tags = list
		default:
			return fmt.Errorf("missing-required-tags: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"tags": defaultTags(),
	}
}

// Check implements rule.Rule.
func (r *Rule) Check(d *lint.Document) []lint.Finding {
	if len(r.Tags) == 0 {
		return nil
	}

	var findings []lint.Finding

	for _, b := range d.BlocksOfType("resource") {
		if len(b.Labels) != 2 || untaggable[b.Labels[0]] {
			continue
		}
		resource := b.Labels[0] + "." + b.Labels[1]

		attr, tags, ok := lint.AttrValueMap(b, "tags")
		if attr == nil {
			// No tags attribute at all: flag the whole block.
			blockRange := b.Range()
			findings = append(findings, lint.Finding{
				File:      d.Path,
				StartLine: blockRange.Start.Line,
				EndLine:   blockRange.End.Line,
				RuleID:    r.ID(),
				RuleName:  r.Name(),
				Severity:  lint.Warning,
				Message:   fmt.Sprintf("resource %s has no tags attribute", resource),
			})
			continue
		}
		if !ok {
			// Tags exist but are not a literal map (e.g. merge()
			// or a variable reference); nothing to verify here.
			continue
		}

		var missing []string
		for _, tag := range r.Tags {
			if _, present := tags[tag]; !present {
				missing = append(missing, tag)
			}
		}
		if len(missing) == 0 {
			continue
		}

		findings = append(findings, lint.Finding{
			File:      d.Path,
			StartLine: attr.SrcRange.Start.Line,
			EndLine:   attr.SrcRange.End.Line,
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			Severity:  lint.Warning,
			Message:   fmt.Sprintf("resource %s is missing required tags: %s", resource, strings.Join(missing, ", ")),
		})
	}

	return findings
}

// toStringSlice converts a value to []string. YAML decodes sequences
// as []any with string elements.
func toStringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []any:
		result := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			result = append(result, str)
		}
		return result, true
	}
	return nil, false
}

var _ rule.Configurable = (*Rule)(nil)
