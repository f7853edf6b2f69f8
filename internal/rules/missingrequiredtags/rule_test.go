package missingrequiredtags

import (
	"strings"
	"testing"

	"github.com/jeduden/hclmark/internal/lint"
)

func newRule() *Rule {
	return &Rule{Tags: defaultTags()}
}

func TestCheck_NoTagsAttribute(t *testing.T) {
	src := `resource "aws_instance" "web" {
  ami           = "ami-12345"
  instance_type = "t3.micro"
}
`
	d := lint.NewDocument("main.tf", []byte(src))
	findings := newRule().Check(d)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.StartLine != 1 || f.EndLine != 4 {
		t.Errorf("expected the whole block range 1-4, got %d-%d", f.StartLine, f.EndLine)
	}
	if !strings.Contains(f.Message, "aws_instance.web") {
		t.Errorf("message should name the resource: %q", f.Message)
	}
}

func TestCheck_MissingKeys(t *testing.T) {
	src := `resource "aws_instance" "web" {
  ami = "ami-12345"

  tags = {
    Environment = "prod"
  }
}
`
	d := lint.NewDocument("main.tf", []byte(src))
	findings := newRule().Check(d)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.StartLine != 4 {
		t.Errorf("expected line 4 (the tags attr), got %d", f.StartLine)
	}
	if !strings.Contains(f.Message, "Owner") || !strings.Contains(f.Message, "Project") {
		t.Errorf("message should name the missing keys: %q", f.Message)
	}
	if strings.Contains(f.Message, "Environment") {
		t.Errorf("message should not name present keys: %q", f.Message)
	}
}

func TestCheck_AllTagsPresent(t *testing.T) {
	src := `resource "aws_instance" "web" {
  tags = {
    Environment = "prod"
    Owner       = "platform"
    Project     = "billing"
  }
}
`
	d := lint.NewDocument("main.tf", []byte(src))
	if findings := newRule().Check(d); len(findings) != 0 {
		t.Fatalf("expected 0 findings, got %d", len(findings))
	}
}

func TestCheck_UntaggableTypeSkipped(t *testing.T) {
	src := `resource "aws_security_group_rule" "ssh" {
  type = "ingress"
}
`
	d := lint.NewDocument("main.tf", []byte(src))
	if findings := newRule().Check(d); len(findings) != 0 {
		t.Fatalf("expected 0 findings for an untaggable type, got %d", len(findings))
	}
}

func TestCheck_NonLiteralTagsSkipped(t *testing.T) {
	src := `resource "aws_instance" "web" {
  tags = merge(local.common_tags, { Name = "web" })
}
`
	d := lint.NewDocument("main.tf", []byte(src))
	if findings := newRule().Check(d); len(findings) != 0 {
		t.Fatalf("expected 0 findings for non-literal tags, got %d", len(findings))
	}
}

func TestApplySettings_CustomTags(t *testing.T) {
	r := newRule()
	if err := r.ApplySettings(map[string]any{"tags": []any{"CostCenter"}}); err != nil {
		t.Fatal(err)
	}

	src := `resource "aws_instance" "web" {
  tags = {
    Environment = "prod"
  }
}
`
	d := lint.NewDocument("main.tf", []byte(src))
	findings := r.Check(d)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if !strings.Contains(findings[0].Message, "CostCenter") {
		t.Errorf("message should name CostCenter: %q", findings[0].Message)
	}
}

func TestApplySettings_EmptyTagListDisables(t *testing.T) {
	r := newRule()
	if err := r.ApplySettings(map[string]any{"tags": []any{}}); err != nil {
		t.Fatal(err)
	}

	src := `resource "aws_instance" "web" {
  ami = "ami-12345"
}
`
	d := lint.NewDocument("main.tf", []byte(src))
	if findings := r.Check(d); len(findings) != 0 {
		t.Fatalf("expected 0 findings with an empty tag list, got %d", len(findings))
	}
}

func TestApplySettings_Invalid(t *testing.T) {
	r := newRule()
	if err := r.ApplySettings(map[string]any{"tags": "Environment"}); err == nil {
		t.Error("expected error for non-list tags")
	}
	if err := r.ApplySettings(map[string]any{"unknown": 1}); err == nil {
		t.Error("expected error for unknown setting")
	}
}
