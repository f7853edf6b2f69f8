package output

import (
	"io"

	"github.com/jeduden/hclmark/internal/lint"
)

// Formatter defines the interface for emitting annotations to a sink.
type Formatter interface {
	Format(w io.Writer, annotations []lint.Annotation) error
}
