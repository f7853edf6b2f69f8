package deprecatedresource

import (
	"fmt"

	"github.com/jeduden/hclmark/internal/lint"
	"github.com/jeduden/hclmark/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// deprecated maps resource types to their replacement hints.
var deprecated = map[string]string{
	"aws_elb":                   "use aws_lb instead",
	"aws_elasticsearch_domain":  "use aws_opensearch_domain instead",
	"aws_iam_policy_attachment": "use aws_iam_role_policy_attachment or aws_iam_user_policy_attachment instead",
	"aws_launch_configuration":  "use aws_autoscaling_group with a launch template instead",
	"aws_spot_instance_request": "use aws_spot_fleet_request instead",
}

// Rule checks for resource types that providers have deprecated.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "HM004" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "deprecated-resource" }

// Description implements rule.Rule.
func (r *Rule) Description() string {
	return "Deprecated resource types should be migrated to their replacements"
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
		hint, ok := deprecated[b.Labels[0]]
		if !ok {
			continue
		}
		defRange := b.DefRange()
		findings = append(findings, lint.Finding{
			File:      d.Path,
			StartLine: defRange.Start.Line,
			EndLine:   defRange.End.Line,
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			Severity:  lint.Warning,
			Message:   fmt.Sprintf("resource type %q is deprecated: %s", b.Labels[0], hint),
		})
	}

	return findings
}
