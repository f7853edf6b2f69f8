package output

import (
	"encoding/json"
	"io"

	"github.com/jeduden/hclmark/internal/lint"
)

// JSONFormatter outputs annotations as a JSON array.
type JSONFormatter struct{}

type jsonAnnotation struct {
	File       string `json:"file"`
	Line       int    `json:"line"`
	Rule       string `json:"rule"`
	Name       string `json:"name"`
	Severity   string `json:"severity"`
	Importance int    `json:"importance"`
	Message    string `json:"message"`
}

// Format writes annotations as a pretty-printed JSON array.
// An empty slice of annotations produces [].
func (f *JSONFormatter) Format(w io.Writer, annotations []lint.Annotation) error {
	items := make([]jsonAnnotation, 0, len(annotations))
	for _, a := range annotations {
		items = append(items, jsonAnnotation{
			File:       a.File,
			Line:       a.Line,
			Rule:       a.RuleID,
			Name:       a.RuleName,
			Severity:   string(a.Severity),
			Importance: a.Importance,
			Message:    a.Message,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}
