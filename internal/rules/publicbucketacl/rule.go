package publicbucketacl

import (
	"fmt"

	"github.com/jeduden/hclmark/internal/lint"
	"github.com/jeduden/hclmark/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that aws_s3_bucket resources do not declare a public ACL.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "HM002" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "public-bucket-acl" }

// Description implements rule.Rule.
func (r *Rule) Description() string {
	return "S3 buckets must not be publicly readable or writable via ACL"
}

// Importance implements rule.Rule.
func (r *Rule) Importance() int { return 1 }

// Check implements rule.Rule.
func (r *Rule) Check(d *lint.Document) []lint.Finding {
	var findings []lint.Finding

	for _, b := range d.BlocksOfType("resource") {
		if len(b.Labels) != 2 || b.Labels[0] != "aws_s3_bucket" {
			continue
		}
		attr, acl, ok := lint.AttrString(b, "acl")
		if !ok {
			continue
		}
		if acl != "public-read" && acl != "public-read-write" {
			continue
		}
		findings = append(findings, lint.Finding{
			File:      d.Path,
			StartLine: attr.SrcRange.Start.Line,
			EndLine:   attr.SrcRange.End.Line,
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			Severity:  lint.Error,
			Message:   fmt.Sprintf("S3 bucket %q has ACL %q (publicly accessible)", b.Labels[1], acl),
		})
	}

	return findings
}
