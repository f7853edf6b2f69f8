package openingress

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

// Rule checks for security group ingress blocks open to the world
// (0.0.0.0/0 or ::/0).
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "HM003" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "open-ingress" }

// Description implements rule.Rule.
func (r *Rule) Description() string {
	return "Security group ingress must not be open to the whole internet"
}

// Importance implements rule.Rule.
func (r *Rule) Importance() int { return 2 }

// Check implements rule.Rule.
func (r *Rule) Check(d *lint.Document) []lint.Finding {
	var findings []lint.Finding

	for _, b := range d.BlocksOfType("resource") {
		if len(b.Labels) != 2 {
			continue
		}
		switch b.Labels[0] {
		case "aws_security_group":
			for _, ingress := range lint.NestedBlocks(b, "ingress") {
				if f, ok := r.worldOpen(d, b.Labels[1], ingress); ok {
					findings = append(findings, f)
				}
			}
		case "aws_security_group_rule":
			if _, typ, ok := lint.AttrString(b, "type"); !ok || typ != "ingress" {
				continue
			}
			if f, ok := r.worldOpen(d, b.Labels[1], b); ok {
				findings = append(findings, f)
			}
		}
	}

	return findings
}

// worldOpen inspects one ingress block (or rule resource body) and
// returns a finding when its CIDR lists include a world-open range.
func (r *Rule) worldOpen(d *lint.Document, name string, b *hclsyntax.Block) (lint.Finding, bool) {
	for _, attrName := range []string{"cidr_blocks", "ipv6_cidr_blocks"} {
		attr := lint.Attr(b, attrName)
		if attr == nil {
			continue
		}
		cidr, ok := worldOpenCIDR(attr)
		if !ok {
			continue
		}
		return lint.Finding{
			File:      d.Path,
			StartLine: attr.SrcRange.Start.Line,
			EndLine:   attr.SrcRange.End.Line,
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			Severity:  lint.Warning,
			Message:   fmt.Sprintf("security group %q allows ingress from %s", name, cidr),
		}, true
	}
	return lint.Finding{}, false
}

// worldOpenCIDR evaluates a CIDR list attribute and returns the first
// world-open element.
func worldOpenCIDR(attr *hclsyntax.Attribute) (string, bool) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || val.IsNull() {
		return "", false
	}
	if !val.Type().IsTupleType() && !val.Type().IsListType() {
		return "", false
	}

	for it := val.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		if ev.IsNull() || ev.Type() != cty.String {
			continue
		}
		s := ev.AsString()
		if s == "0.0.0.0/0" || s == "::/0" {
			return s, true
		}
	}
	return "", false
}
