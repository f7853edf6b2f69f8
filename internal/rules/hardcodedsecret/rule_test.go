package hardcodedsecret

import (
	"testing"

	"github.com/jeduden/hclmark/internal/lint"
)

func newRule() *Rule {
	return &Rule{Keywords: defaultKeywords()}
}

func TestCheck_ResourceAttribute(t *testing.T) {
	src := `resource "aws_db_instance" "db" {
  engine   = "postgres"
  password = "hunter2"
}
`
	d := lint.NewDocument("main.tf", []byte(src))
	findings := newRule().Check(d)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.StartLine != 3 {
		t.Errorf("expected line 3, got %d", f.StartLine)
	}
	if f.RuleID != "HM001" {
		t.Errorf("expected rule ID HM001, got %s", f.RuleID)
	}
	if f.Severity != lint.Error {
		t.Errorf("expected error severity, got %s", f.Severity)
	}
}

func TestCheck_VariableDefault(t *testing.T) {
	src := `variable "api_token" {
  type    = string
  default = "abc123"
}
`
	d := lint.NewDocument("variables.tf", []byte(src))
	findings := newRule().Check(d)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].StartLine != 3 {
		t.Errorf("expected line 3 (the default), got %d", findings[0].StartLine)
	}
}

func TestCheck_VariableWithoutDefaultClean(t *testing.T) {
	src := `variable "db_password" {
  type      = string
  sensitive = true
}
`
	d := lint.NewDocument("variables.tf", []byte(src))
	if findings := newRule().Check(d); len(findings) != 0 {
		t.Fatalf("expected 0 findings, got %d", len(findings))
	}
}

func TestCheck_ReferenceValueIgnored(t *testing.T) {
	// A non-literal value cannot be a hardcoded secret.
	src := `resource "aws_db_instance" "db" {
  password = var.db_password
}
`
	d := lint.NewDocument("main.tf", []byte(src))
	if findings := newRule().Check(d); len(findings) != 0 {
		t.Fatalf("expected 0 findings, got %d", len(findings))
	}
}

func TestCheck_DeterministicOrder(t *testing.T) {
	src := `resource "x" "y" {
  api_key  = "k"
  password = "p"
  token    = "t"
}
`
	d := lint.NewDocument("main.tf", []byte(src))
	r := newRule()
	first := r.Check(d)
	if len(first) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(first))
	}
	for i := 0; i < 10; i++ {
		again := r.Check(d)
		for j := range first {
			if again[j].StartLine != first[j].StartLine {
				t.Fatalf("finding order changed between runs")
			}
		}
	}
}

func TestApplySettings_CustomKeywords(t *testing.T) {
	r := newRule()
	err := r.ApplySettings(map[string]any{"keywords": []any{"credential"}})
	if err != nil {
		t.Fatal(err)
	}

	src := `resource "x" "y" {
  password        = "p"
  auth_credential = "c"
}
`
	d := lint.NewDocument("main.tf", []byte(src))
	findings := r.Check(d)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding with custom keywords, got %d", len(findings))
	}
}

func TestApplySettings_Invalid(t *testing.T) {
	r := newRule()
	if err := r.ApplySettings(map[string]any{"keywords": 7}); err == nil {
		t.Error("expected error for non-list keywords")
	}
	if err := r.ApplySettings(map[string]any{"bogus": true}); err == nil {
		t.Error("expected error for unknown setting")
	}
}
