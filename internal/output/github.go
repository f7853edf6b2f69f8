package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jeduden/hclmark/internal/lint"
)

// GitHubFormatter outputs annotations as GitHub Actions workflow
// commands, which the Actions runner turns into check-run annotations
// on the pull request.
type GitHubFormatter struct{}

// Format writes one ::warning/::error command per annotation.
func (f *GitHubFormatter) Format(w io.Writer, annotations []lint.Annotation) error {
	for _, a := range annotations {
		level := "warning"
		if a.Severity == lint.Error {
			level = "error"
		}
		_, err := fmt.Fprintf(w, "::%s file=%s,line=%d,title=%s::%s\n",
			level, a.File, a.Line, a.RuleID, escapeData(a.Message))
		if err != nil {
			return err
		}
	}
	return nil
}

// escapeData escapes message data per the workflow-command syntax.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
