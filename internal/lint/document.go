package lint

import (
	"bytes"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Document holds a parsed HCL configuration file and its source.
// Body is nil when the source failed to parse into native HCL syntax;
// Lines is always populated so textual rules and suppression scanning
// keep working on broken input.
type Document struct {
	Path       string
	Source     []byte
	Lines      [][]byte
	Body       *hclsyntax.Body
	ParseDiags hcl.Diagnostics
}

// NewDocument parses source as HCL and returns a Document. Parse
// failures are not errors: they are recorded in ParseDiags and leave
// Body nil.
func NewDocument(path string, source []byte) *Document {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(source, path)

	var body *hclsyntax.Body
	if file != nil {
		if b, ok := file.Body.(*hclsyntax.Body); ok {
			body = b
		}
	}
	if diags.HasErrors() {
		body = nil
	}

	return &Document{
		Path:       path,
		Source:     source,
		Lines:      bytes.Split(source, []byte("\n")),
		Body:       body,
		ParseDiags: diags,
	}
}

// NumLines returns the number of source lines in the document.
func (d *Document) NumLines() int {
	return len(d.Lines)
}

// Blocks returns the document's top-level blocks, or nil when the
// document did not parse.
func (d *Document) Blocks() hclsyntax.Blocks {
	if d.Body == nil {
		return nil
	}
	return d.Body.Blocks
}

// BlocksOfType returns the top-level blocks with the given type name.
func (d *Document) BlocksOfType(typeName string) hclsyntax.Blocks {
	var result hclsyntax.Blocks
	for _, b := range d.Blocks() {
		if b.Type == typeName {
			result = append(result, b)
		}
	}
	return result
}
