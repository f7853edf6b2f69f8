package unpinnedprovider

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/jeduden/hclmark/internal/lint"
	"github.com/jeduden/hclmark/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that provider requirements pin a version: entries in
// terraform.required_providers must carry a version constraint. The
// legacy string shorthand is the constraint itself and counts as
// pinned.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "HM006" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "unpinned-provider" }

// Description implements rule.Rule.
func (r *Rule) Description() string {
	return "Provider requirements must pin a version constraint"
}

// Importance implements rule.Rule.
func (r *Rule) Importance() int { return 4 }

// Check implements rule.Rule.
func (r *Rule) Check(d *lint.Document) []lint.Finding {
	var findings []lint.Finding

	for _, tf := range d.BlocksOfType("terraform") {
		for _, rp := range lint.NestedBlocks(tf, "required_providers") {
			for _, name := range lint.AttrNames(rp) {
				attr := rp.Body.Attributes[name]
				if pinsVersion(attr) {
					continue
				}
				findings = append(findings, lint.Finding{
					File:      d.Path,
					StartLine: attr.SrcRange.Start.Line,
					EndLine:   attr.SrcRange.End.Line,
					RuleID:    r.ID(),
					RuleName:  r.Name(),
					Severity:  lint.Warning,
					Message:   fmt.Sprintf("provider %q has no version constraint", name),
				})
			}
		}
	}

	return findings
}

// pinsVersion returns true when a required_providers entry evaluates
// to an object carrying a version key, or cannot be evaluated
// statically (references are given the benefit of the doubt).
func pinsVersion(attr *hclsyntax.Attribute) bool {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || val.IsNull() {
		return true
	}
	if val.Type() == cty.String {
		// Legacy shorthand: the string is the constraint itself.
		return true
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return false
	}
	_, ok := val.AsValueMap()["version"]
	return ok
}
