package hardcodedsecret

import (
	"fmt"
	"strings"

	"github.com/jeduden/hclmark/internal/lint"
	"github.com/jeduden/hclmark/internal/rule"
)

func init() {
	rule.Register(&Rule{
		Keywords: defaultKeywords(),
	})
}

func defaultKeywords() []string {
	return []string{"password", "secret", "token", "key", "pwd"}
}

// Rule checks for literal string values on secret-looking attribute
// names: resource attributes and variable defaults whose name contains
// one of the configured keywords.
type Rule struct {
	Keywords []string
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "HM001" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "hardcoded-secret" }

// Description implements rule.Rule.
func (r *Rule) Description() string {
	return "Secrets must come from variables or a secret store, never literals"
}

// Importance implements rule.Rule.
func (r *Rule) Importance() int { return 1 }

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "keywords":
			list, ok := toStringSlice(v)
			if !ok {
				return fmt.Errorf("hardcoded-secret: keywords must be a list of strings, got %T", v)
			}
			r.Keywords = list
		default:
			return fmt.Errorf("hardcoded-secret: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"keywords": defaultKeywords(),
	}
}

// Check implements rule.Rule.
func (r *Rule) Check(d *lint.Document) []lint.Finding {
	var findings []lint.Finding

	for _, b := range d.BlocksOfType("resource") {
		if len(b.Labels) != 2 {
			continue
		}
		for _, name := range lint.AttrNames(b) {
			if !r.secretName(name) {
				continue
			}
			attr := b.Body.Attributes[name]
			val, ok := lint.LiteralString(attr)
			if !ok || val == "" {
				continue
			}
			findings = append(findings, lint.Finding{
				File:      d.Path,
				StartLine: attr.SrcRange.Start.Line,
				EndLine:   attr.SrcRange.End.Line,
				RuleID:    r.ID(),
				RuleName:  r.Name(),
				Severity:  lint.Error,
				Message:   fmt.Sprintf("attribute %q may contain a hardcoded secret", name),
			})
		}
	}

	for _, b := range d.BlocksOfType("variable") {
		if len(b.Labels) != 1 {
			continue
		}
		varName := b.Labels[0]
		if !r.secretName(varName) {
			continue
		}
		attr := lint.Attr(b, "default")
		val, ok := lint.LiteralString(attr)
		if !ok || val == "" {
			continue
		}
		findings = append(findings, lint.Finding{
			File:      d.Path,
			StartLine: attr.SrcRange.Start.Line,
			EndLine:   attr.SrcRange.End.Line,
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			Severity:  lint.Error,
			Message:   fmt.Sprintf("variable %q has a hardcoded default secret", varName),
		})
	}

	return findings
}

// secretName returns true if the lowercased name contains a keyword.
func (r *Rule) secretName(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
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
