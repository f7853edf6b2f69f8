package output

import (
	"fmt"
	"io"

	"github.com/jeduden/hclmark/internal/lint"
)

// TextFormatter outputs annotations in human-readable text format.
// When Color is true, the file location is printed in cyan and the
// rule ID in yellow.
type TextFormatter struct {
	Color bool
}

// Format writes each annotation as a single line in the pattern:
// file:line rule message
func (f *TextFormatter) Format(w io.Writer, annotations []lint.Annotation) error {
	for _, a := range annotations {
		var err error
		if f.Color {
			// file in cyan, rule in yellow
			_, err = fmt.Fprintf(w, "\033[36m%s:%d\033[0m \033[33m%s\033[0m %s\n",
				a.File, a.Line, a.RuleID, a.Message)
		} else {
			_, err = fmt.Fprintf(w, "%s:%d %s %s\n",
				a.File, a.Line, a.RuleID, a.Message)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
