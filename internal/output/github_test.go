package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jeduden/hclmark/internal/lint"
)

func TestGitHubFormatter_WarningCommand(t *testing.T) {
	var buf bytes.Buffer
	f := &GitHubFormatter{}
	if err := f.Format(&buf, sampleAnnotations()[:1]); err != nil {
		t.Fatal(err)
	}

	want := "::warning file=main.tf,line=4,title=HM002::S3 bucket ACL is publicly readable\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestGitHubFormatter_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	f := &GitHubFormatter{}
	anns := []lint.Annotation{{
		File: "broken.tf", Line: 1, RuleID: "HM000",
		Severity: lint.Error, Message: "HCL parse error",
	}}
	if err := f.Format(&buf, anns); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "::error ") {
		t.Errorf("expected ::error command, got %q", buf.String())
	}
}

func TestGitHubFormatter_EscapesNewlines(t *testing.T) {
	var buf bytes.Buffer
	f := &GitHubFormatter{}
	anns := []lint.Annotation{{
		File: "main.tf", Line: 2, RuleID: "HM001",
		Severity: lint.Warning, Message: "first\nsecond % done",
	}}
	if err := f.Format(&buf, anns); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "first%0Asecond %25 done") {
		t.Errorf("message not escaped: %q", buf.String())
	}
}
