package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jeduden/hclmark/internal/lint"
)

func sampleAnnotations() []lint.Annotation {
	return []lint.Annotation{
		{
			File:       "main.tf",
			Line:       4,
			RuleID:     "HM002",
			RuleName:   "public-bucket-acl",
			Severity:   lint.Warning,
			Importance: 1,
			Message:    "S3 bucket ACL is publicly readable",
		},
		{
			File:       "main.tf",
			Line:       12,
			RuleID:     "HM006",
			RuleName:   "unpinned-provider",
			Severity:   lint.Warning,
			Importance: 4,
			Message:    "provider \"aws\" has no version constraint",
		},
	}
}

func TestTextFormatter_Plain(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{Color: false}
	if err := f.Format(&buf, sampleAnnotations()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "main.tf:4 HM002 S3 bucket ACL is publicly readable" {
		t.Errorf("unexpected first line: %q", lines[0])
	}
}

func TestTextFormatter_Color(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{Color: true}
	if err := f.Format(&buf, sampleAnnotations()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\033[36mmain.tf:4\033[0m") {
		t.Errorf("expected colored location, got %q", buf.String())
	}
}

func TestTextFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{}
	if err := f.Format(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
